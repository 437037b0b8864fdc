package history

import "time"

// Status summarizes how a run ended.
type Status string

const (
	// StatusSucceeded means every pending item was produced.
	StatusSucceeded Status = "succeeded"
	// StatusPartial means some items failed and were left for the next run.
	StatusPartial Status = "partial"
	// StatusFailed means the run aborted before writing.
	StatusFailed Status = "failed"
	// StatusCancelled means the run was interrupted.
	StatusCancelled Status = "cancelled"
)

// ItemFailure is one item the producer could not describe.
type ItemFailure struct {
	ItemID  string `json:"item_id"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Run is one recorded reconciliation.
type Run struct {
	ID            string        `json:"id"`
	Mode          string        `json:"mode"`
	Producer      string        `json:"producer"`
	Status        Status        `json:"status"`
	StartedAt     time.Time     `json:"started_at"`
	FinishedAt    time.Time     `json:"finished_at"`
	CatalogCount  int           `json:"catalog_count"`
	ExistingCount int           `json:"existing_count"`
	AddedCount    int           `json:"added_count"`
	FailedCount   int           `json:"failed_count"`
	Written       bool          `json:"written"`
	DryRun        bool          `json:"dry_run"`
	Error         string        `json:"error,omitempty"`
	Failures      []ItemFailure `json:"failures,omitempty"`
}

// Duration returns the wall time of the run.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
