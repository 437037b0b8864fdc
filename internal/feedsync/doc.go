// Package feedsync reconciles the curated catalog against the persisted feed.
//
// Sync is incremental: records already in the feed are left exactly as they
// are and only missing ids are sent to the producer. A producer failure skips
// that item (it stays absent and is retried on the next run) and never aborts
// the batch. Rebuild discards the feed and regenerates every entry; it only
// accepts deterministic producers so the same catalog and seed always render
// the same bytes.
//
// Neither function touches disk. Persisting the result, and deciding whether
// a write is needed at all, belongs to the workflow runner.
package feedsync
