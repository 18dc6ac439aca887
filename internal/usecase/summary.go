package usecase

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/repo-miner/repo-miner/internal/domain"
)

// topCommitterCount is how many committers the summary report lists.
const topCommitterCount = 5

// Reporter renders aggregate summaries of normalized commit and issue
// records as a human-readable report.
type Reporter struct {
	w io.Writer
}

// NewReporter creates a Reporter that writes its report to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Summarize emits the full report: top committers, issue close rate, and
// average open duration of closed issues, in that fixed order. The three
// metrics are computed independently; empty inputs produce placeholder
// lines instead of errors.
func (r *Reporter) Summarize(commits []domain.CommitRecord, issues []domain.IssueRecord) {
	r.reportTopCommitters(commits)
	fmt.Fprintln(r.w)
	r.reportCloseRate(issues)
	fmt.Fprintln(r.w)
	r.reportAverageOpenDuration(issues)
}

// reportTopCommitters groups commits by author and lists the most frequent
// ones, descending by count. Ties keep the order in which the authors first
// appeared in the commit sequence.
func (r *Reporter) reportTopCommitters(commits []domain.CommitRecord) {
	counts := make(map[string]int)
	var authors []string
	for _, c := range commits {
		if _, seen := counts[c.Author]; !seen {
			authors = append(authors, c.Author)
		}
		counts[c.Author]++
	}
	sort.SliceStable(authors, func(i, j int) bool {
		return counts[authors[i]] > counts[authors[j]]
	})
	if len(authors) > topCommitterCount {
		authors = authors[:topCommitterCount]
	}

	fmt.Fprintf(r.w, "Top %d Committers\n", topCommitterCount)
	for _, author := range authors {
		fmt.Fprintf(r.w, "%s: %d commits\n", author, counts[author])
	}
}

// reportCloseRate emits the percentage of fetched issues that are closed,
// rounded half-up to the nearest whole percent and displayed with one
// decimal. Zero issues yields 0.0% rather than a division error.
func (r *Reporter) reportCloseRate(issues []domain.IssueRecord) {
	rate := 0.0
	if len(issues) > 0 {
		closed := 0
		for _, issue := range issues {
			if issue.State == "closed" {
				closed++
			}
		}
		rate = math.Round(float64(closed) / float64(len(issues)) * 100)
	}
	fmt.Fprintf(r.w, "Issue Close Rate: %.1f%%\n", rate)
}

// reportAverageOpenDuration emits the mean open duration across closed
// issues that carry a computed duration.
func (r *Reporter) reportAverageOpenDuration(issues []domain.IssueRecord) {
	var durations []float64
	for _, issue := range issues {
		if issue.State == "closed" && issue.OpenDurationDays != nil {
			durations = append(durations, float64(*issue.OpenDurationDays))
		}
	}

	fmt.Fprintln(r.w, "Average Open Duration for Closed Issues:")
	if len(durations) == 0 {
		fmt.Fprintln(r.w, "No closed issues.")
		return
	}
	mean, err := stats.Mean(durations)
	if err != nil {
		fmt.Fprintln(r.w, "No closed issues.")
		return
	}
	fmt.Fprintf(r.w, "%.1f days\n", mean)
}
