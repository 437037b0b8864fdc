// Package notifications delivers run outcomes via pluggable notifiers.
//
// The default implementation publishes to ntfy using the topic configured in
// config.toml and degrades to a no-op when notifications are disabled. Runs
// that changed nothing are suppressed so the topic only carries news: new
// feed entries, items that failed, and runs that aborted.
//
// Workflow code depends only on the Service interface.
package notifications
