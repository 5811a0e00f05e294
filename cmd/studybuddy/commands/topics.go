// ABOUTME: CLI command to list topics detected in study material
// ABOUTME: Shows the segmentation outcome with chunk counts and previews
package commands

import (
	"encoding/json"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// NewTopicsCmd creates the topics command
func NewTopicsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "topics <files...>",
		Short: "List detected topics",
		Long: `Segment the given study material and list the detected topics.

Examples:
  studybuddy topics notes.txt
  studybuddy topics --format json chapter1.md chapter2.md`,
		Args: cobra.MinimumNArgs(1),
		RunE: runTopics,
	}

	return cmd
}

func runTopics(cmd *cobra.Command, args []string) error {
	s, err := buildSession(args)
	if err != nil {
		return err
	}
	defer s.Close()

	if len(s.chunks) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No content could be extracted from the given files.")
		return nil
	}

	type topicInfo struct {
		Topic   string `json:"topic"`
		Chunks  int    `json:"chunks"`
		Preview string `json:"preview"`
	}

	byTopic := make(map[string]*topicInfo)
	for _, c := range s.chunks {
		info, ok := byTopic[c.Metadata.Topic]
		if !ok {
			info = &topicInfo{Topic: c.Metadata.Topic, Preview: truncate(c.Text, 60)}
			byTopic[c.Metadata.Topic] = info
		}
		info.Chunks++
	}

	topics := make([]topicInfo, 0, len(byTopic))
	for _, info := range byTopic {
		topics = append(topics, *info)
	}
	sort.Slice(topics, func(i, j int) bool { return topics[i].Topic < topics[j].Topic })

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(topics, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "TOPIC\tCHUNKS\tPREVIEW\n")
	fmt.Fprintf(w, "-----\t------\t-------\n")
	for _, info := range topics {
		fmt.Fprintf(w, "%s\t%d\t%s\n", info.Topic, info.Chunks, info.Preview)
	}
	return w.Flush()
}
