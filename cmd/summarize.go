package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/repo-miner/repo-miner/internal/export"
	"github.com/repo-miner/repo-miner/internal/usecase"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Prints aggregate summaries from exported commit and issue CSVs",
	Long: `Reads commit and issue CSV files produced by fetch-commits and
fetch-issues and prints a report with the top committers, the issue close
rate, and the average open duration of closed issues.`,
	Run: func(cmd *cobra.Command, args []string) {
		commitsPath, _ := cmd.Flags().GetString("commits")
		issuesPath, _ := cmd.Flags().GetString("issues")

		commitsFile, err := os.Open(commitsPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open commits CSV: %v\n", err)
			os.Exit(1)
		}
		defer commitsFile.Close()
		commits, err := export.ReadCommits(commitsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read commits CSV: %v\n", err)
			os.Exit(1)
		}

		issuesFile, err := os.Open(issuesPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open issues CSV: %v\n", err)
			os.Exit(1)
		}
		defer issuesFile.Close()
		issues, err := export.ReadIssues(issuesFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read issues CSV: %v\n", err)
			os.Exit(1)
		}

		reporter := usecase.NewReporter(os.Stdout)
		reporter.Summarize(commits, issues)
	},
}

func init() {
	rootCmd.AddCommand(summarizeCmd)
	summarizeCmd.Flags().String("commits", "", "Path to commits CSV (required)")
	summarizeCmd.Flags().String("issues", "", "Path to issues CSV (required)")
	summarizeCmd.MarkFlagRequired("commits")
	summarizeCmd.MarkFlagRequired("issues")
}
