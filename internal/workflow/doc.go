// Package workflow runs one reconciliation end to end.
//
// A Runner takes the feed store lock, loads the catalog window and the
// current feed store, hands both to feedsync (Sync for incremental runs,
// Rebuild for full regeneration), persists the result when something
// changed, and records the outcome in the run history. Fatal problems (a
// missing or malformed catalog, a corrupt feed store, a held lock) abort the
// run before anything is written. Producer failures on single items are
// carried in the Report and the history instead.
package workflow
