// Package gemini wraps the gemini command-line tool as a text completer.
//
// The tool is invoked as `<binary> <prompt>` and its stdout is returned
// verbatim; parsing belongs to the caller. Each attempt is bounded by the
// configured timeout and failed attempts can be retried with exponential
// backoff. A non-zero exit is reported as services.ErrExternalTool and an
// expired attempt as services.ErrTimeout.
package gemini
