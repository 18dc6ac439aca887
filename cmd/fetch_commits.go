package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/repo-miner/repo-miner/internal/config"
	"github.com/repo-miner/repo-miner/internal/export"
	"github.com/repo-miner/repo-miner/internal/gateway"
	"github.com/repo-miner/repo-miner/internal/usecase"
)

var fetchCommitsCmd = &cobra.Command{
	Use:   "fetch-commits",
	Short: "Fetches and normalizes commits from a repository into a CSV file",
	Long: `Fetches commits for the given repository from the GitHub API, normalizes
each one into a flat record (sha, author, email, date, message), and saves
the result as CSV.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := newLogger(cmd)

		repo, _ := cmd.Flags().GetString("repo")
		maxCommits, _ := cmd.Flags().GetInt("max")
		out, _ := cmd.Flags().GetString("out")

		// The token is validated before any network call is made.
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

		commits, err := miner.FetchCommits(ctx, repo, maxCommits)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to fetch commits: %v\n", err)
			os.Exit(1)
		}

		f, err := os.Create(out)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create output file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if err := export.WriteCommits(f, commits); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write commits CSV: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Saved %d commits to %s\n", len(commits), out)
	},
}

// newLogger builds the command logger. Logs are discarded unless the
// persistent --verbose flag is set, in which case they go to stderr.
func newLogger(cmd *cobra.Command) *log.Logger {
	verbose, _ := cmd.InheritedFlags().GetBool("verbose")
	logger := log.New(io.Discard, "", log.LstdFlags)
	if verbose {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func init() {
	rootCmd.AddCommand(fetchCommitsCmd)
	fetchCommitsCmd.Flags().StringP("repo", "r", "", "Repository in owner/repo format (required)")
	fetchCommitsCmd.Flags().Int("max", 0, "Max number of commits to fetch (0 means no limit)")
	fetchCommitsCmd.Flags().StringP("out", "o", "", "Path to output commits CSV (required)")
	fetchCommitsCmd.MarkFlagRequired("repo")
	fetchCommitsCmd.MarkFlagRequired("out")
}
