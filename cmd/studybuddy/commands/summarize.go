// ABOUTME: CLI command to summarize ingested study material
// ABOUTME: Summarizes whole files or a single topic via windowed model calls
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harper/studybuddy/internal/rag"
)

var (
	summarizeFiles []string
	summarizeTopic string
)

// NewSummarizeCmd creates the summarize command
func NewSummarizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize study material",
		Long: `Summarize the given study material, optionally restricted to a
single detected topic.

Examples:
  studybuddy summarize --files notes.txt
  studybuddy summarize --files notes.txt --topic "Chapter 2: Atoms"`,
		RunE: runSummarize,
	}

	cmd.Flags().StringSliceVar(&summarizeFiles, "files", nil, "Study material files to summarize")
	cmd.Flags().StringVar(&summarizeTopic, "topic", "", "Restrict the summary to one topic")
	_ = cmd.MarkFlagRequired("files")

	return cmd
}

func runSummarize(cmd *cobra.Command, args []string) error {
	s, err := buildSession(summarizeFiles)
	if err != nil {
		return err
	}
	defer s.Close()

	chunks := s.chunksForTopic(summarizeTopic)
	var parts []string
	for _, c := range chunks {
		parts = append(parts, c.Text)
	}

	var model rag.LanguageModel
	if s.client != nil {
		model = s.client
	}
	summary := rag.NewSummarizer(model).Summarize(cmd.Context(), strings.Join(parts, "\n\n"))
	fmt.Fprintln(cmd.OutOrStdout(), summary)
	return nil
}
