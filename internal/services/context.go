package services

import "context"

type contextKey string

const (
	itemIDKey contextKey = "item_id"
	runIDKey  contextKey = "run_id"
	modeKey   contextKey = "mode"
)

// WithItemID annotates context with the catalog record identifier being produced.
func WithItemID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, itemIDKey, id)
}

// ItemIDFromContext extracts the catalog record identifier if present.
func ItemIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(itemIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRunID annotates context with the run correlation identifier.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, runIDKey, id)
}

// RunIDFromContext extracts the run correlation identifier if present.
func RunIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(runIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithMode annotates context with the reconciliation mode (sync or rebuild).
func WithMode(ctx context.Context, mode string) context.Context {
	if mode == "" {
		return ctx
	}
	return context.WithValue(ctx, modeKey, mode)
}

// ModeFromContext returns the reconciliation mode if present.
func ModeFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(modeKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
