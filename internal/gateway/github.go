// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST client.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
)

// Fetcher defines the behavior of a gateway for fetching raw repository
// data from GitHub. Implementations return the API objects as-is; all
// normalization happens in the usecase layer.
type Fetcher interface {
	// ListCommits returns the repository's commits in API order. When
	// maxCommits is positive, pagination stops as soon as that many
	// commits have been collected and the result is truncated to the cap.
	ListCommits(ctx context.Context, repo string, maxCommits int) ([]*github.RepositoryCommit, error)
	// ListIssues returns the repository's issues filtered by state
	// ("open", "closed" or "all"). Pull requests are included here; the
	// caller is responsible for filtering them out.
	ListIssues(ctx context.Context, repo, state string) ([]*github.Issue, error)
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient *github.Client
	logger     *log.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(token string, logger *log.Logger) (Fetcher, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Hour, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := &http.Client{
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}
	return &GitHubGateway{
		restClient: github.NewClient(httpClient),
		logger:     logger,
	}, nil
}

// splitRepo splits an "owner/repo" identifier into its two parts.
func splitRepo(repo string) (string, string, error) {
	parts := strings.Split(repo, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository format: %s, expected format: owner/repo", repo)
	}
	return parts[0], parts[1], nil
}

func (g *GitHubGateway) ListCommits(ctx context.Context, repo string, maxCommits int) ([]*github.RepositoryCommit, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	g.logger.Printf("Fetching commits for %s using REST API...\n", repo)
	opts := &github.CommitsListOptions{ListOptions: github.ListOptions{PerPage: 100}}
	var allCommits []*github.RepositoryCommit
	for {
		commits, resp, err := g.restClient.Repositories.ListCommits(ctx, owner, name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list commits with REST API: %w", err)
		}
		allCommits = append(allCommits, commits...)
		if maxCommits > 0 && len(allCommits) >= maxCommits {
			allCommits = allCommits[:maxCommits]
			break
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Println("  Fetching next page of commits...")
	}
	g.logger.Printf("Completed fetching commit data (%d commits).\n", len(allCommits))
	return allCommits, nil
}

func (g *GitHubGateway) ListIssues(ctx context.Context, repo, state string) ([]*github.Issue, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	g.logger.Printf("Fetching %s issues for %s using REST API...\n", state, repo)
	opts := &github.IssueListByRepoOptions{
		State:       state,
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var allIssues []*github.Issue
	for {
		issues, resp, err := g.restClient.Issues.ListByRepo(ctx, owner, name, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list issues with REST API: %w", err)
		}
		allIssues = append(allIssues, issues...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
		g.logger.Println("  Fetching next page of issues...")
	}
	g.logger.Printf("Completed fetching issue data (%d items).\n", len(allIssues))
	return allIssues, nil
}
