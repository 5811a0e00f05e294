// ABOUTME: CLI command to ingest study material files
// ABOUTME: Segments, chunks, and reports topic breakdown for the given files
package commands

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewIngestCmd creates the ingest command
func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <files...>",
		Short: "Ingest study material",
		Long: `Ingest study material files: extract text, split into topic
segments, and chunk for retrieval.

Examples:
  studybuddy ingest notes.txt chapter1.md
  studybuddy ingest --format json lecture.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: runIngest,
	}

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	s, err := buildSession(args)
	if err != nil {
		return err
	}
	defer s.Close()

	if len(s.chunks) == 0 {
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "No content could be extracted from the given files.")
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(s.chunks, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	counts := make(map[string]int)
	for _, c := range s.chunks {
		counts[c.Metadata.Topic]++
	}
	topics := make([]string, 0, len(counts))
	for topic := range counts {
		topics = append(topics, topic)
	}
	sort.Strings(topics)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "TOPIC\tCHUNKS\n")
	fmt.Fprintf(w, "-----\t------\n")
	for _, topic := range topics {
		fmt.Fprintf(w, "%s\t%d\n", topic, counts[topic])
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}

	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "\nIngested %d file(s) into %d chunk(s).\n", len(args), len(s.chunks))
	}
	return nil
}
