package feedsync

import (
	"errors"

	"zenfeeds/internal/content"
	"zenfeeds/internal/feedstore"
	"zenfeeds/internal/services"
)

// Failure records an item the producer could not describe.
type Failure struct {
	ID    string
	Index int
	Err   error
}

// Result is the outcome of a reconciliation pass.
type Result struct {
	// Feed is the reconciled map. It never aliases the map passed in.
	Feed feedstore.Feed
	// Added lists ids inserted during this pass, in catalog order.
	Added []string
	// Failed lists items the producer could not describe.
	Failed []Failure
	// Skipped counts catalog records already present in the feed.
	Skipped int
}

// AddedCount returns the number of records added.
func (r Result) AddedCount() int {
	return len(r.Added)
}

// FailedIDs returns the ids of failed items in catalog order.
func (r Result) FailedIDs() []string {
	ids := make([]string, 0, len(r.Failed))
	for _, f := range r.Failed {
		ids = append(ids, f.ID)
	}
	return ids
}

// Kind classifies a failure for logs and run history.
func (f Failure) Kind() string {
	return FailureKind(f.Err)
}

// FailureKind labels producer errors, distinguishing malformed output from
// the generic service markers.
func FailureKind(err error) string {
	if errors.Is(err, content.ErrMalformedOutput) {
		return "malformed_output"
	}
	return services.Kind(err)
}
