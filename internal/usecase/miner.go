// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"

	"github.com/repo-miner/repo-miner/internal/domain"
	"github.com/repo-miner/repo-miner/internal/gateway"
)

// Miner is the use case for fetching and normalizing repository data.
// It turns the raw API objects returned by the gateway into flat records.
type Miner struct {
	fetcher gateway.Fetcher
	logger  *log.Logger
}

// NewMiner creates a new Miner instance.
func NewMiner(fetcher gateway.Fetcher, logger *log.Logger) *Miner {
	return &Miner{
		fetcher: fetcher,
		logger:  logger,
	}
}

// FetchCommits retrieves up to maxCommits commits for the repository and
// normalizes each one. A maxCommits of zero means no cap. The records keep
// the order the API yielded them; an empty repository produces an empty,
// non-nil slice.
func (m *Miner) FetchCommits(ctx context.Context, repo string, maxCommits int) ([]domain.CommitRecord, error) {
	m.logger.Printf("Usecase: fetching commits for %s...\n", repo)
	rawCommits, err := m.fetcher.ListCommits(ctx, repo, maxCommits)
	if err != nil {
		return nil, err
	}

	records := make([]domain.CommitRecord, 0, len(rawCommits))
	for _, raw := range rawCommits {
		records = append(records, normalizeCommit(raw))
	}
	m.logger.Printf("Usecase: normalized %d commits.\n", len(records))
	return records, nil
}

// normalizeCommit flattens one raw commit. The author sub-object is
// optional in the API model, so its presence is checked once and all three
// dependent fields fall back together.
func normalizeCommit(raw *github.RepositoryCommit) domain.CommitRecord {
	record := domain.CommitRecord{
		SHA:     raw.GetSHA(),
		Author:  domain.UnknownField,
		Email:   domain.UnknownField,
		Date:    domain.UnknownField,
		Message: domain.NoMessage,
	}

	if author := raw.GetCommit().GetAuthor(); author != nil {
		record.Author = author.GetName()
		record.Email = author.GetEmail()
		record.Date = author.GetDate().Format(time.RFC3339)
	}
	if msg := raw.GetCommit().GetMessage(); msg != "" {
		record.Message = strings.SplitN(msg, "\n", 2)[0]
	}
	return record
}

// FetchIssues retrieves the repository's issues filtered by state ("open",
// "closed" or "all") and normalizes each one. Items that are actually pull
// requests are dropped before normalization, regardless of state.
func (m *Miner) FetchIssues(ctx context.Context, repo, state string) ([]domain.IssueRecord, error) {
	switch state {
	case "open", "closed", "all":
	default:
		return nil, fmt.Errorf("invalid state %q: must be one of open, closed, all", state)
	}

	m.logger.Printf("Usecase: fetching %s issues for %s...\n", state, repo)
	rawIssues, err := m.fetcher.ListIssues(ctx, repo, state)
	if err != nil {
		return nil, err
	}

	records := make([]domain.IssueRecord, 0, len(rawIssues))
	for _, raw := range rawIssues {
		// The issues API also returns pull requests; skip them.
		if raw.PullRequestLinks != nil {
			continue
		}
		records = append(records, normalizeIssue(raw))
	}
	m.logger.Printf("Usecase: normalized %d issues (%d raw items).\n", len(records), len(rawIssues))
	return records, nil
}

// normalizeIssue flattens one raw issue. The open duration is only
// computed for issues that carry a close timestamp; open issues keep a nil
// duration rather than being measured against the current time.
func normalizeIssue(raw *github.Issue) domain.IssueRecord {
	record := domain.IssueRecord{
		ID:        raw.GetID(),
		Number:    raw.GetNumber(),
		Title:     raw.GetTitle(),
		User:      raw.GetUser().GetLogin(),
		State:     raw.GetState(),
		CreatedAt: raw.GetCreatedAt().Format(time.RFC3339),
		Comments:  raw.GetComments(),
	}

	if raw.ClosedAt != nil {
		record.ClosedAt = raw.GetClosedAt().Format(time.RFC3339)
		days := int(raw.GetClosedAt().Sub(raw.GetCreatedAt().Time).Hours() / 24)
		record.OpenDurationDays = &days
	}
	return record
}
