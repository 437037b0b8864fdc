// Package tables implements the deterministic content producer. Titles,
// summaries and articles come from immutable lookup tables loaded from YAML
// (an embedded default or an override file) and injected at construction, so
// the same catalog and seed always yield the same feed.
package tables
