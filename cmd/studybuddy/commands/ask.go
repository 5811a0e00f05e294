// ABOUTME: CLI command for retrieval-augmented question answering
// ABOUTME: Supports blocking and streaming output over ingested study material
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/studybuddy/internal/models"
)

var (
	askFiles  []string
	askStream bool
)

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask a question about your study material",
		Long: `Answer a question from the given study material using
retrieval-augmented generation.

Examples:
  studybuddy ask --files notes.txt "What is mitosis?"
  studybuddy ask --files notes.txt --stream "Explain photosynthesis"`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().StringSliceVar(&askFiles, "files", nil, "Study material files to answer from")
	cmd.Flags().BoolVar(&askStream, "stream", false, "Stream the answer as it is generated")
	_ = cmd.MarkFlagRequired("files")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	s, err := buildSession(askFiles)
	if err != nil {
		return err
	}
	defer s.Close()

	if len(s.chunks) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No content found. Check the given files.")
		return nil
	}

	var contextChunks []models.Chunk
	if s.index.Len() > 0 {
		contextChunks = s.retriever().Retrieve(question)
	} else {
		// No embeddings available; use the leading chunks as context.
		contextChunks = s.chunks
		if len(contextChunks) > s.cfg.TopK {
			contextChunks = contextChunks[:s.cfg.TopK]
		}
	}
	if len(contextChunks) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No content found for this question.")
		return nil
	}

	generator := s.generator()
	if askStream {
		for fragment := range generator.AnswerStream(cmd.Context(), question, contextChunks) {
			fmt.Fprint(cmd.OutOrStdout(), fragment)
		}
		fmt.Fprintln(cmd.OutOrStdout())
	} else {
		answer, err := generator.Answer(cmd.Context(), question, contextChunks)
		if err != nil {
			return fmt.Errorf("generating answer: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), answer)
	}

	if verbose {
		fmt.Fprintln(cmd.OutOrStdout(), "\nSources:")
		seen := make(map[string]bool)
		for _, c := range contextChunks {
			if c.Metadata.Source == "" || seen[c.Metadata.Source] {
				continue
			}
			seen[c.Metadata.Source] = true
			fmt.Fprintf(cmd.OutOrStdout(), "  %s (%s)\n", c.Metadata.Source, c.Metadata.Topic)
		}
	}
	return nil
}
