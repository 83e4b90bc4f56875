package labeldoc

import (
	"context"
	"time"
)

// Run is a recorded execution of the resolution pipeline.
type Run struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
	Roots      int       `json:"roots"`
	Documents  int       `json:"documents"`
	Labelled   int       `json:"labelled"`
	Resolved   int       `json:"resolved"`
	Failed     int       `json:"failed"`
}

// Entry is one resolved document reference within a recorded run.
type Entry struct {
	RunID    string `json:"runId"`
	Root     string `json:"root"`
	Path     string `json:"path"`
	Label    Label  `json:"label"`
	Text     string `json:"text"`
	TextHash string `json:"textHash"`
}

// RunService represents a service for recording and inspecting runs.
type RunService interface {
	// CreateRun records a completed report and returns the stored run.
	// Returns ECONFLICT if two roots of the report record the same path
	// under the same root name.
	CreateRun(ctx context.Context, report *Report) (*Run, error)

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// FindEntries retrieves entries matching the filter.
	FindEntries(ctx context.Context, filter EntryFilter) ([]*Entry, error)

	// FindFailures retrieves the failures recorded for a run.
	FindFailures(ctx context.Context, runID string) ([]*Failure, error)

	// DeleteRun permanently removes a run and its entries.
	// Returns ENOTFOUND if run does not exist.
	DeleteRun(ctx context.Context, id string) error
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID *string `json:"id"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// EntryFilter represents a filter for FindEntries.
type EntryFilter struct {
	RunID *string `json:"runId"`
	Root  *string `json:"root"`
	Label *Label  `json:"label"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
