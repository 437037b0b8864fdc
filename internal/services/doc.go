// Package services defines shared utilities consumed by the feed workflow and
// the external content integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, catalog item IDs, and the
//     reconciliation mode for logging.
//   - Structured error markers plus the Wrap helper that classify failures as
//     fatal to a run (missing catalog, invalid records, bad configuration) or
//     local to a single item (tool failures, timeouts).
//
// Use these helpers when wiring new producers so operational behaviour (error
// handling, observability) stays uniform across the pipeline.
package services
