package serplens

import (
	"context"
	"time"
)

// Run is one complete analysis: the configuration it ran with, the
// enriched page records, and the aggregate analysis. Runs are persisted
// whole and superseded by later runs, never merged.
type Run struct {
	ID        string    `json:"id"`
	Procedure string    `json:"procedure"`
	Keyword   string    `json:"keyword"`
	CreatedAt time.Time `json:"createdAt"`

	Config   Config    `json:"config"`
	Pages    []*Page   `json:"pages"`
	Analysis *Analysis `json:"analysis"`
}

// Validate returns an error if the run is missing required fields.
func (r *Run) Validate() error {
	if r.Procedure == "" {
		return Errorf(EINVALID, "run procedure required")
	}
	if len(r.Pages) == 0 {
		return Errorf(EINVALID, "run pages required")
	}
	return nil
}

// ScrapedOK counts pages fetched and extracted successfully.
func (r *Run) ScrapedOK() int {
	n := 0
	for _, p := range r.Pages {
		if p.Scraped && !p.ScrapeFailed {
			n++
		}
	}
	return n
}

// TypeCounts tallies pages by final type.
func (r *Run) TypeCounts() map[PageType]int {
	counts := make(map[PageType]int)
	for _, p := range r.Pages {
		counts[p.Type]++
	}
	return counts
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID        *string `json:"id"`
	Procedure *string `json:"procedure"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RunService manages persisted analysis runs.
type RunService interface {
	// CreateRun persists a completed run.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// DeleteRun permanently removes a run.
	// Returns ENOTFOUND if the run does not exist.
	DeleteRun(ctx context.Context, id string) error
}

// ReportWriter renders a run into a report artifact (a spreadsheet).
type ReportWriter interface {
	Write(run *Run, path string) error
}
