// Package llm provides an OpenRouter chat client used by the llm content
// producer and the doctor command.
//
// NewClient builds a client from Config. Complete sends one generation prompt
// and returns the raw reply; HealthCheck verifies the key and model.
// DecodeStrictJSON strips a markdown fence and decodes exactly one object.
//
// Requests are retried on HTTP 408/429/5xx, empty completions and network
// timeouts using cenkalti/backoff (exponential, 1s to 10s, five attempts by
// default). A Retry-After header replaces the next delay. Context
// cancellation stops retrying immediately.
package llm
