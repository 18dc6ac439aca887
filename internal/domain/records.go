// Package domain contains the core data structures and domain logic for the application.
package domain

// Fallback values used when optional commit fields are absent in the raw
// API object.
const (
	UnknownField = "Unknown"
	NoMessage    = "No message"
)

// CommitRecord is a single commit normalized into a flat, tabular shape.
// It is immutable once constructed; records appear in the order the API
// yielded the raw commits (typically reverse-chronological).
type CommitRecord struct {
	SHA     string `json:"sha"`
	Author  string `json:"author"`
	Email   string `json:"email"`
	Date    string `json:"date"`
	Message string `json:"message"`
}

// IssueRecord is a single issue normalized into a flat, tabular shape.
// Raw items carrying a pull-request marker are never turned into an
// IssueRecord; they are filtered out before normalization.
//
// OpenDurationDays is the whole-day count between CreatedAt and ClosedAt,
// truncated toward zero. It is nil while the issue is still open; it is
// never computed against the current time.
type IssueRecord struct {
	ID               int64  `json:"id"`
	Number           int    `json:"number"`
	Title            string `json:"title"`
	User             string `json:"user"`
	State            string `json:"state"`
	CreatedAt        string `json:"created_at"`
	ClosedAt         string `json:"closed_at,omitempty"`
	Comments         int    `json:"comments"`
	OpenDurationDays *int   `json:"open_duration_days,omitempty"`
}
