package usecase

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/repo-miner/repo-miner/internal/domain"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
// It allows us to simulate the behavior of the GitHub gateway without making real API calls.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) ListCommits(ctx context.Context, repo string, maxCommits int) ([]*github.RepositoryCommit, error) {
	args := m.Called(ctx, repo, maxCommits)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*github.RepositoryCommit), args.Error(1)
}

func (m *mockFetcher) ListIssues(ctx context.Context, repo, state string) ([]*github.Issue, error) {
	args := m.Called(ctx, repo, state)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*github.Issue), args.Error(1)
}

// rawCommit builds a raw API commit with a full author sub-object.
func rawCommit(sha, author, email string, date time.Time, message string) *github.RepositoryCommit {
	return &github.RepositoryCommit{
		SHA: github.String(sha),
		Commit: &github.Commit{
			Author: &github.CommitAuthor{
				Name:  github.String(author),
				Email: github.String(email),
				Date:  &github.Timestamp{Time: date},
			},
			Message: github.String(message),
		},
	}
}

func TestMiner_FetchCommits(t *testing.T) {
	now := time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC)

	testCases := []struct {
		name           string
		maxCommits     int
		mockCommits    []*github.RepositoryCommit
		mockErr        error
		expectedResult []domain.CommitRecord
		expectError    bool
	}{
		{
			name: "happy path - normalizes commits in source order",
			mockCommits: []*github.RepositoryCommit{
				rawCommit("sha1", "Alice", "a@example.com", now, "Initial commit\nDetails"),
				rawCommit("sha2", "Bob", "b@example.com", now.Add(-24*time.Hour), "Bug fix"),
			},
			expectedResult: []domain.CommitRecord{
				{SHA: "sha1", Author: "Alice", Email: "a@example.com", Date: "2025-01-15T09:30:00Z", Message: "Initial commit"},
				{SHA: "sha2", Author: "Bob", Email: "b@example.com", Date: "2025-01-14T09:30:00Z", Message: "Bug fix"},
			},
		},
		{
			name: "missing author sub-object - all three fields fall back together",
			mockCommits: []*github.RepositoryCommit{
				{SHA: github.String("sha1"), Commit: &github.Commit{Message: github.String("Orphan commit")}},
			},
			expectedResult: []domain.CommitRecord{
				{SHA: "sha1", Author: "Unknown", Email: "Unknown", Date: "Unknown", Message: "Orphan commit"},
			},
		},
		{
			name: "empty message - falls back to No message",
			mockCommits: []*github.RepositoryCommit{
				{SHA: github.String("sha1"), Commit: &github.Commit{
					Author: &github.CommitAuthor{
						Name:  github.String("Alice"),
						Email: github.String("a@example.com"),
						Date:  &github.Timestamp{Time: now},
					},
				}},
			},
			expectedResult: []domain.CommitRecord{
				{SHA: "sha1", Author: "Alice", Email: "a@example.com", Date: "2025-01-15T09:30:00Z", Message: "No message"},
			},
		},
		{
			name:        "cap passthrough - at most maxCommits records come back",
			maxCommits:  2,
			mockCommits: []*github.RepositoryCommit{rawCommit("sha1", "Alice", "a@example.com", now, "Commit 1"), rawCommit("sha2", "Bob", "b@example.com", now, "Commit 2")},
			expectedResult: []domain.CommitRecord{
				{SHA: "sha1", Author: "Alice", Email: "a@example.com", Date: "2025-01-15T09:30:00Z", Message: "Commit 1"},
				{SHA: "sha2", Author: "Bob", Email: "b@example.com", Date: "2025-01-15T09:30:00Z", Message: "Commit 2"},
			},
		},
		{
			name:           "empty repository - empty slice, not an error",
			mockCommits:    []*github.RepositoryCommit{},
			expectedResult: []domain.CommitRecord{},
		},
		{
			name:        "error case - gateway failure propagates",
			mockErr:     errors.New("github api error"),
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			logger := log.New(io.Discard, "", 0)
			fetcher := new(mockFetcher)
			fetcher.On("ListCommits", mock.Anything, "any-org/any-repo", tc.maxCommits).Return(tc.mockCommits, tc.mockErr)

			miner := NewMiner(fetcher, logger)
			results, err := miner.FetchCommits(ctx, "any-org/any-repo", tc.maxCommits)

			if tc.expectError {
				assert.Error(t, err)
				assert.Nil(t, results)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expectedResult, results)
				if tc.maxCommits > 0 {
					assert.LessOrEqual(t, len(results), tc.maxCommits)
				}
			}
			fetcher.AssertExpectations(t)
		})
	}
}

func TestMiner_FetchIssues(t *testing.T) {
	created := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	closed := time.Date(2025, 1, 6, 15, 0, 0, 0, time.UTC)
	fiveDays := 5

	testCases := []struct {
		name           string
		state          string
		mockIssues     []*github.Issue
		mockErr        error
		expectedResult []domain.IssueRecord
		expectError    bool
	}{
		{
			name:  "closed issue - open duration truncates toward zero",
			state: "closed",
			mockIssues: []*github.Issue{
				{
					ID:        github.Int64(101),
					Number:    github.Int(1),
					Title:     github.String("Crash on startup"),
					User:      &github.User{Login: github.String("alice")},
					State:     github.String("closed"),
					CreatedAt: &github.Timestamp{Time: created},
					ClosedAt:  &github.Timestamp{Time: closed},
					Comments:  github.Int(3),
				},
			},
			expectedResult: []domain.IssueRecord{
				{
					ID: 101, Number: 1, Title: "Crash on startup", User: "alice", State: "closed",
					CreatedAt: "2025-01-01T12:00:00Z", ClosedAt: "2025-01-06T15:00:00Z",
					Comments: 3, OpenDurationDays: &fiveDays,
				},
			},
		},
		{
			name:  "pull requests are filtered out regardless of state",
			state: "all",
			mockIssues: []*github.Issue{
				{
					ID:               github.Int64(102),
					Number:           github.Int(2),
					Title:            github.String("Add feature"),
					User:             &github.User{Login: github.String("bob")},
					State:            github.String("closed"),
					CreatedAt:        &github.Timestamp{Time: created},
					ClosedAt:         &github.Timestamp{Time: closed},
					PullRequestLinks: &github.PullRequestLinks{},
				},
				{
					ID:        github.Int64(103),
					Number:    github.Int(3),
					Title:     github.String("Real issue"),
					User:      &github.User{Login: github.String("carol")},
					State:     github.String("open"),
					CreatedAt: &github.Timestamp{Time: created},
				},
			},
			expectedResult: []domain.IssueRecord{
				{ID: 103, Number: 3, Title: "Real issue", User: "carol", State: "open", CreatedAt: "2025-01-01T12:00:00Z"},
			},
		},
		{
			name:  "open issue without author - empty user, nil duration",
			state: "open",
			mockIssues: []*github.Issue{
				{
					ID:        github.Int64(104),
					Number:    github.Int(4),
					Title:     github.String("Ghost report"),
					State:     github.String("open"),
					CreatedAt: &github.Timestamp{Time: created},
				},
			},
			expectedResult: []domain.IssueRecord{
				{ID: 104, Number: 4, Title: "Ghost report", User: "", State: "open", CreatedAt: "2025-01-01T12:00:00Z"},
			},
		},
		{
			name:           "only pull requests - empty slice after filtering",
			state:          "all",
			mockIssues:     []*github.Issue{{ID: github.Int64(105), PullRequestLinks: &github.PullRequestLinks{}}},
			expectedResult: []domain.IssueRecord{},
		},
		{
			name:        "error case - gateway failure propagates",
			state:       "all",
			mockErr:     errors.New("github api error"),
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			logger := log.New(io.Discard, "", 0)
			fetcher := new(mockFetcher)
			fetcher.On("ListIssues", mock.Anything, "any-org/any-repo", tc.state).Return(tc.mockIssues, tc.mockErr)

			miner := NewMiner(fetcher, logger)
			results, err := miner.FetchIssues(ctx, "any-org/any-repo", tc.state)

			if tc.expectError {
				assert.Error(t, err)
				assert.Nil(t, results)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expectedResult, results)
			}
			fetcher.AssertExpectations(t)
		})
	}
}

func TestMiner_FetchIssues_InvalidState(t *testing.T) {
	logger := log.New(io.Discard, "", 0)
	fetcher := new(mockFetcher)
	miner := NewMiner(fetcher, logger)

	results, err := miner.FetchIssues(context.Background(), "any-org/any-repo", "merged")

	assert.Error(t, err)
	assert.Nil(t, results)
	// The gateway must never be hit with an invalid state filter.
	fetcher.AssertNotCalled(t, "ListIssues", mock.Anything, mock.Anything, mock.Anything)
}
