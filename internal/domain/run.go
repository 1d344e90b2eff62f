package domain

import (
	"fmt"
	"time"
)

// RunMode selects how far a pipeline run goes.
type RunMode string

const (
	// ModePreview extracts and classifies without touching the store.
	ModePreview RunMode = "preview"
	// ModeCommit runs the full pipeline including persistence.
	ModeCommit RunMode = "commit"
)

// Page is the raw result of an HTTP GET.
type Page struct {
	URL        string
	StatusCode int
	Body       []byte
}

// ClassifiedListing is a listing together with its derived category.
type ClassifiedListing struct {
	Listing
	Category Category `json:"category"`
}

// SourceReport summarizes one source within a run.
type SourceReport struct {
	Source SourceID `json:"source"`
	Found  int      `json:"found"`
	Error  string   `json:"error,omitempty"`
}

// RunReport is the outcome of a single pipeline run.
type RunReport struct {
	RunID      string              `json:"runId"`
	Mode       RunMode             `json:"mode"`
	StartedAt  time.Time           `json:"startedAt"`
	FinishedAt time.Time           `json:"finishedAt"`
	Sources    []SourceReport      `json:"sources"`
	Found      int                 `json:"found"`
	Saved      int                 `json:"saved"`
	Duplicates int                 `json:"duplicates"`
	Failed     int                 `json:"failed"`
	Listings   []ClassifiedListing `json:"listings,omitempty"`
}

// Message renders the status line shown to whoever triggered the run.
func (r RunReport) Message() string {
	if r.Mode == ModePreview {
		return fmt.Sprintf("Found %d jobs from multiple sites!", r.Found)
	}
	msg := fmt.Sprintf("Saved %d new jobs! Skipped %d duplicates.", r.Saved, r.Duplicates)
	if r.Failed > 0 {
		msg += fmt.Sprintf(" %d failed.", r.Failed)
	}
	return msg
}
