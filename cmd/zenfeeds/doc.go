// Package main hosts the zenfeeds CLI entrypoint and command graph.
//
// The Cobra-based command tree turns terminal invocations into workflow runs
// (sync, rebuild), read-only views of the feed store and run history, an
// environment check, and configuration scaffolding. It centralizes
// configuration resolution, producer selection and logging setup so
// subcommands stay small.
//
// Keep this package lean: add behaviour to the internal packages first, then
// surface it through a command or flag here.
package main
