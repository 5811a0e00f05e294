// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Entry point for ingest, ask, summarize, quiz, topics, stats, and version
package commands

import "github.com/spf13/cobra"

var (
	verbose      bool
	quiet        bool
	outputFormat string
	configFile   string
)

const banner = `
███████╗████████╗██╗   ██╗██████╗ ██╗   ██╗
██╔════╝╚══██╔══╝██║   ██║██╔══██╗╚██╗ ██╔╝
███████╗   ██║   ██║   ██║██║  ██║ ╚████╔╝
╚════██║   ██║   ██║   ██║██║  ██║  ╚██╔╝
███████║   ██║   ╚██████╔╝██████╔╝   ██║
╚══════╝   ╚═╝    ╚═════╝ ╚═════╝    ╚═╝`

// NewRootCmd creates the root command with all subcommands attached
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "studybuddy",
		Short: "Study assistant over your own documents",
		Long: banner + `

Studybuddy ingests study material, splits it into topic-coherent
chunks, and serves retrieval-augmented answers, summaries, and
auto-generated quizzes from the command line.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress informational output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, table, or json")
	cmd.PersistentFlags().StringVar(&configFile, "config", "studybuddy.yaml", "Path to config file")

	cmd.AddCommand(NewIngestCmd())
	cmd.AddCommand(NewAskCmd())
	cmd.AddCommand(NewSummarizeCmd())
	cmd.AddCommand(NewQuizCmd())
	cmd.AddCommand(NewTopicsCmd())
	cmd.AddCommand(NewStatsCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
