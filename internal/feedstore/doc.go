// Package feedstore owns the persisted feed map: a JSON object keyed by
// catalog id whose values are enriched wallpaper records.
//
// Records read from disk remember their original JSON and are written back
// from it unchanged, so entries edited by hand (or carrying fields this
// package does not know about) survive every save. Saves replace the file
// atomically and an exclusive lock file keeps two runs from writing the same
// store.
package feedstore
