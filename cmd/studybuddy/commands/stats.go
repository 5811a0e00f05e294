// ABOUTME: CLI command for study progress and ingestion statistics
// ABOUTME: Shows per-type ingestion counts and forecasts quiz scores
package commands

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/harper/studybuddy/internal/analytics"
)

var (
	statsScores string
	statsReset  bool
)

// NewStatsCmd creates the stats command
func NewStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show study progress statistics",
		Long: `Show ingestion statistics and, given past quiz scores, forecast
the next score with a trend label.

Examples:
  studybuddy stats
  studybuddy stats --scores 80,60,90
  studybuddy stats --reset`,
		RunE: runStats,
	}

	cmd.Flags().StringVar(&statsScores, "scores", "", "Comma-separated past quiz scores for forecasting")
	cmd.Flags().BoolVar(&statsReset, "reset", false, "Delete all ingestion logs")

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	logger, err := analytics.OpenLogger(analytics.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("opening analytics database: %w", err)
	}
	defer func() { _ = logger.Close() }()

	if statsReset {
		if err := logger.Reset(); err != nil {
			return fmt.Errorf("resetting ingestion logs: %w", err)
		}
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), "Ingestion logs cleared.")
		}
		return nil
	}

	stats, err := logger.IngestionStats()
	if err != nil {
		return fmt.Errorf("reading ingestion stats: %w", err)
	}

	if len(stats) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No ingestion history yet.")
	} else {
		types := make([]string, 0, len(stats))
		for t := range stats {
			types = append(types, t)
		}
		sort.Strings(types)

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "FILE TYPE\tINGESTED\n")
		fmt.Fprintf(w, "---------\t--------\n")
		for _, t := range types {
			label := t
			if label == "" {
				label = "(none)"
			}
			fmt.Fprintf(w, "%s\t%d\n", label, stats[t])
		}
		if err := w.Flush(); err != nil {
			return fmt.Errorf("flushing output: %w", err)
		}
	}

	if statsScores == "" {
		return nil
	}

	scores, err := parseScores(statsScores)
	if err != nil {
		return err
	}
	forecast := analytics.ForecastNextScore(scores)
	fmt.Fprintf(cmd.OutOrStdout(), "\nTrend: %s\n", forecast.Trend)
	if forecast.Trend != analytics.TrendInsufficient {
		fmt.Fprintf(cmd.OutOrStdout(), "Predicted next score: %.2f\n", forecast.PredictedScore)
		if verbose {
			fmt.Fprintf(cmd.OutOrStdout(), "Slope: %.4f\n", forecast.Slope)
		}
	}
	return nil
}

func parseScores(csv string) ([]int, error) {
	var scores []int
	for _, field := range strings.Split(csv, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid score %q: %w", field, err)
		}
		scores = append(scores, n)
	}
	return scores, nil
}
