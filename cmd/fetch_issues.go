package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/repo-miner/repo-miner/internal/config"
	"github.com/repo-miner/repo-miner/internal/export"
	"github.com/repo-miner/repo-miner/internal/gateway"
	"github.com/repo-miner/repo-miner/internal/usecase"
)

var fetchIssuesCmd = &cobra.Command{
	Use:   "fetch-issues",
	Short: "Fetches and normalizes issues from a repository into a CSV file",
	Long: `Fetches issues for the given repository from the GitHub API, drops items
that are actually pull requests, normalizes the rest into flat records, and
saves the result as CSV.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := newLogger(cmd)

		repo, _ := cmd.Flags().GetString("repo")
		state, _ := cmd.Flags().GetString("state")
		out, _ := cmd.Flags().GetString("out")

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		githubGateway, err := gateway.NewGitHubGateway(cfg.GitHub.Token, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create GitHub gateway: %v\n", err)
			os.Exit(1)
		}
		miner := usecase.NewMiner(githubGateway, logger)

		issues, err := miner.FetchIssues(ctx, repo, state)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to fetch issues: %v\n", err)
			os.Exit(1)
		}

		f, err := os.Create(out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create output file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := export.WriteIssues(f, issues); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write issues CSV: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Saved %d issues to %s\n", len(issues), out)
	},
}

func init() {
	rootCmd.AddCommand(fetchIssuesCmd)
	fetchIssuesCmd.Flags().StringP("repo", "r", "", "Repository in owner/repo format (required)")
	fetchIssuesCmd.Flags().StringP("state", "s", "all", "Issue state filter: open, closed or all")
	fetchIssuesCmd.Flags().StringP("out", "o", "", "Path to output issues CSV (required)")
	fetchIssuesCmd.MarkFlagRequired("repo")
	fetchIssuesCmd.MarkFlagRequired("out")
}
