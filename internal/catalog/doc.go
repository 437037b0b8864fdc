// Package catalog loads the curated source catalog: an ordered JSON array of
// wallpaper records produced by an external curation process.
//
// Records are validated on load. A missing file yields *NotFoundError and a
// record without an id or url, an unparsable element, or a repeated id yields
// *MalformedRecordError; both match the services error markers so callers can
// classify them without type switches. The catalog is never mutated.
package catalog
