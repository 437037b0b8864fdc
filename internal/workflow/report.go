package workflow

import (
	"time"

	"zenfeeds/internal/feedsync"
	"zenfeeds/internal/history"
)

// Mode selects how a run reconciles the feed.
type Mode string

const (
	// ModeIncremental adds entries for catalog ids missing from the store.
	ModeIncremental Mode = "incremental"
	// ModeRebuild regenerates every entry with a deterministic producer.
	ModeRebuild Mode = "rebuild"
)

// Request describes one run.
type Request struct {
	Mode   Mode
	DryRun bool
}

// Report summarizes a finished run. Unchanged is set when the run had nothing
// to write: no new entries, or a rebuild identical to the current store.
type Report struct {
	RunID         string
	Mode          Mode
	Producer      string
	DryRun        bool
	StorePath     string
	CatalogCount  int
	ExistingCount int
	Result        feedsync.Result
	Written       bool
	BackedUp      bool
	Unchanged     bool
	Status        history.Status
	StartedAt     time.Time
	FinishedAt    time.Time
}

// Duration returns the wall time of the run.
func (r Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

func (r Report) historyRun(runErr error) history.Run {
	run := history.Run{
		ID:            r.RunID,
		Mode:          string(r.Mode),
		Producer:      r.Producer,
		Status:        r.Status,
		StartedAt:     r.StartedAt,
		FinishedAt:    r.FinishedAt,
		CatalogCount:  r.CatalogCount,
		ExistingCount: r.ExistingCount,
		AddedCount:    r.Result.AddedCount(),
		FailedCount:   len(r.Result.Failed),
		Written:       r.Written,
		DryRun:        r.DryRun,
	}
	if runErr != nil {
		run.Error = runErr.Error()
	}
	for _, failure := range r.Result.Failed {
		message := ""
		if failure.Err != nil {
			message = failure.Err.Error()
		}
		run.Failures = append(run.Failures, history.ItemFailure{
			ItemID:  failure.ID,
			Kind:    failure.Kind(),
			Message: message,
		})
	}
	return run
}
