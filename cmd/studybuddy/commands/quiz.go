// ABOUTME: CLI command to generate multiple-choice quizzes from study material
// ABOUTME: Prints numbered questions with lettered options or JSON output
package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/harper/studybuddy/internal/quiz"
)

var (
	quizFiles     []string
	quizTopic     string
	quizQuestions int
)

// NewQuizCmd creates the quiz command
func NewQuizCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Generate a quiz from study material",
		Long: `Generate multiple-choice questions from the given study material,
optionally restricted to one topic.

Examples:
  studybuddy quiz --files notes.txt
  studybuddy quiz --files notes.txt --topic "Chapter 1: Cells" -n 3
  studybuddy quiz --files notes.txt --format json`,
		RunE: runQuiz,
	}

	cmd.Flags().StringSliceVar(&quizFiles, "files", nil, "Study material files to quiz from")
	cmd.Flags().StringVar(&quizTopic, "topic", "", "Restrict questions to one topic")
	cmd.Flags().IntVarP(&quizQuestions, "num-questions", "n", 5, "Number of questions to generate")
	_ = cmd.MarkFlagRequired("files")

	return cmd
}

func runQuiz(cmd *cobra.Command, args []string) error {
	if err := validatePositiveInt(quizQuestions, "num-questions"); err != nil {
		return err
	}

	s, err := buildSession(quizFiles)
	if err != nil {
		return err
	}
	defer s.Close()

	chunks := s.chunksForTopic(quizTopic)
	if len(chunks) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No content found for this topic.")
		return nil
	}

	var model quiz.LanguageModel
	if s.client != nil {
		model = s.client
	}
	synthesizer := quiz.NewSynthesizer(model, s.cfg.MinQuizChunkChars)
	questions := synthesizer.Generate(cmd.Context(), chunks, quizQuestions)
	if len(questions) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Could not generate a quiz from the available material.")
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(questions, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	for i, q := range questions {
		fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, q.Question)
		for j, opt := range q.Options {
			fmt.Fprintf(cmd.OutOrStdout(), "   %c) %s\n", 'A'+j, opt)
		}
		if verbose {
			fmt.Fprintf(cmd.OutOrStdout(), "   Answer: %s  [%s]\n", q.Answer, q.Source)
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}
	return nil
}
