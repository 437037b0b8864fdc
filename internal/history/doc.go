// Package history keeps a SQLite log of reconciliation runs: when each ran,
// in which mode and with which producer, how many entries it added, whether
// the feed store was written, and which items failed and why.
//
// The database lives at config.HistoryPath (state_dir/history.db). A schema
// version row guards against opening a database written by an incompatible
// build; delete the file to start over.
package history
