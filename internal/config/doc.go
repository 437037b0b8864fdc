// Package config loads, normalizes, and validates the zenfeeds TOML
// configuration.
//
// Load resolves the file from an explicit path, ~/.config/zenfeeds/config.toml
// or ./zenfeeds.toml, overlays it on Default, expands paths, applies
// environment overrides (OPENROUTER_API_KEY, ZENFEEDS_GEMINI_BINARY) and runs
// Validate. CreateSample writes the embedded sample used by `zenfeeds config
// init`.
package config
