// Package export persists normalized records as column-labeled CSV files
// and reads them back for summarization.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/repo-miner/repo-miner/internal/domain"
)

// Column sets are fixed: a zero-row export still writes the header so the
// output is a well-formed table.
var (
	commitColumns = []string{"sha", "author", "email", "date", "message"}
	issueColumns  = []string{"id", "number", "title", "user", "state", "created_at", "closed_at", "comments", "open_duration_days"}
)

// WriteCommits writes commit records as CSV, header first.
func WriteCommits(w io.Writer, commits []domain.CommitRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(commitColumns); err != nil {
		return fmt.Errorf("failed to write commit CSV header: %w", err)
	}
	for _, c := range commits {
		row := []string{c.SHA, c.Author, c.Email, c.Date, c.Message}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write commit row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteIssues writes issue records as CSV, header first. Absent closed_at
// and open_duration_days values serialize as empty cells.
func WriteIssues(w io.Writer, issues []domain.IssueRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(issueColumns); err != nil {
		return fmt.Errorf("failed to write issue CSV header: %w", err)
	}
	for _, i := range issues {
		duration := ""
		if i.OpenDurationDays != nil {
			duration = strconv.Itoa(*i.OpenDurationDays)
		}
		row := []string{
			strconv.FormatInt(i.ID, 10),
			strconv.Itoa(i.Number),
			i.Title,
			i.User,
			i.State,
			i.CreatedAt,
			i.ClosedAt,
			strconv.Itoa(i.Comments),
			duration,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write issue row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCommits parses a CSV previously written by WriteCommits.
func ReadCommits(r io.Reader) ([]domain.CommitRecord, error) {
	rows, err := readTable(r, commitColumns)
	if err != nil {
		return nil, err
	}
	commits := make([]domain.CommitRecord, 0, len(rows))
	for _, row := range rows {
		commits = append(commits, domain.CommitRecord{
			SHA:     row[0],
			Author:  row[1],
			Email:   row[2],
			Date:    row[3],
			Message: row[4],
		})
	}
	return commits, nil
}

// ReadIssues parses a CSV previously written by WriteIssues.
func ReadIssues(r io.Reader) ([]domain.IssueRecord, error) {
	rows, err := readTable(r, issueColumns)
	if err != nil {
		return nil, err
	}
	issues := make([]domain.IssueRecord, 0, len(rows))
	for _, row := range rows {
		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid issue id %q: %w", row[0], err)
		}
		number, err := strconv.Atoi(row[1])
		if err != nil {
			return nil, fmt.Errorf("invalid issue number %q: %w", row[1], err)
		}
		comments, err := strconv.Atoi(row[7])
		if err != nil {
			return nil, fmt.Errorf("invalid comment count %q: %w", row[7], err)
		}
		issue := domain.IssueRecord{
			ID:        id,
			Number:    number,
			Title:     row[2],
			User:      row[3],
			State:     row[4],
			CreatedAt: row[5],
			ClosedAt:  row[6],
			Comments:  comments,
		}
		if row[8] != "" {
			days, err := strconv.Atoi(row[8])
			if err != nil {
				return nil, fmt.Errorf("invalid open duration %q: %w", row[8], err)
			}
			issue.OpenDurationDays = &days
		}
		issues = append(issues, issue)
	}
	return issues, nil
}

// readTable reads all rows and checks the header against the expected
// column set.
func readTable(r io.Reader, columns []string) ([][]string, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV is empty: missing header row")
	}
	header := records[0]
	if len(header) != len(columns) {
		return nil, fmt.Errorf("unexpected CSV header: got %d columns, want %d", len(header), len(columns))
	}
	for i, col := range columns {
		if header[i] != col {
			return nil, fmt.Errorf("unexpected CSV column %d: got %q, want %q", i, header[i], col)
		}
	}
	return records[1:], nil
}
