package history_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"zenfeeds/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(context.Background(), filepath.Join(t.TempDir(), "state", "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndGetRoundTrip(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	started := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)

	run := history.Run{
		ID:            "run-1",
		Mode:          "sync",
		Producer:      "gemini",
		Status:        history.StatusPartial,
		StartedAt:     started,
		FinishedAt:    started.Add(90 * time.Second),
		CatalogCount:  5,
		ExistingCount: 3,
		AddedCount:    1,
		FailedCount:   1,
		Written:       true,
		Failures: []history.ItemFailure{
			{ItemID: "b2", Kind: "timeout", Message: "producer timed out"},
		},
	}
	if err := store.Record(ctx, run); err != nil {
		t.Fatalf("Record: %v", err)
	}

	got, err := store.Get(ctx, "run-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatal("expected run")
	}
	if got.Status != history.StatusPartial || got.Producer != "gemini" || !got.Written || got.DryRun {
		t.Fatalf("unexpected run: %+v", got)
	}
	if !got.StartedAt.Equal(started) {
		t.Fatalf("started_at = %v, want %v", got.StartedAt, started)
	}
	if got.Duration() != 90*time.Second {
		t.Fatalf("duration = %v", got.Duration())
	}
	if len(got.Failures) != 1 || got.Failures[0].ItemID != "b2" || got.Failures[0].Kind != "timeout" {
		t.Fatalf("unexpected failures: %+v", got.Failures)
	}
}

func TestGetUnknownReturnsNil(t *testing.T) {
	store := openStore(t)
	got, err := store.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil, got %+v", got)
	}
}

func TestListNewestFirstWithLimit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"r1", "r2", "r3"} {
		run := history.Run{
			ID:         id,
			Mode:       "sync",
			Producer:   "tables",
			Status:     history.StatusSucceeded,
			StartedAt:  base.Add(time.Duration(i) * time.Hour),
			FinishedAt: base.Add(time.Duration(i)*time.Hour + time.Minute),
		}
		if err := store.Record(ctx, run); err != nil {
			t.Fatalf("Record %s: %v", id, err)
		}
	}

	runs, err := store.List(ctx, 2)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 || runs[0].ID != "r3" || runs[1].ID != "r2" {
		t.Fatalf("unexpected order: %+v", runs)
	}

	all, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 runs, got %d", len(all))
	}
}

func TestFailureCountsAggregateAcrossRuns(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	for _, id := range []string{"r1", "r2"} {
		run := history.Run{
			ID:       id,
			Mode:     "sync",
			Producer: "gemini",
			Status:   history.StatusPartial,
			Failures: []history.ItemFailure{{ItemID: "b2", Kind: "external_tool", Message: "exit 1"}},
		}
		if err := store.Record(ctx, run); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}
	counts, err := store.FailureCounts(ctx)
	if err != nil {
		t.Fatalf("FailureCounts: %v", err)
	}
	if counts["b2"] != 2 {
		t.Fatalf("expected b2 failed twice, got %v", counts)
	}
}

func TestRecordRequiresID(t *testing.T) {
	store := openStore(t)
	if err := store.Record(context.Background(), history.Run{Mode: "sync"}); err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()
	store, err := history.Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.Record(ctx, history.Run{ID: "r1", Mode: "rebuild", Producer: "tables", Status: history.StatusSucceeded}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	_ = store.Close()

	reopened, err := history.Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	runs, err := reopened.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 1 || runs[0].Mode != "rebuild" {
		t.Fatalf("unexpected runs after reopen: %+v", runs)
	}
}

func TestOpenRejectsOtherSchemaVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()
	store, err := history.Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.BumpVersionForTest(ctx, 99); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	_ = store.Close()

	_, err = history.Open(ctx, path)
	if !errors.Is(err, history.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestResolvePrefix(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	for _, id := range []string{"abc12345-0000", "abd99999-0000"} {
		if err := store.Record(ctx, history.Run{ID: id, Mode: "incremental", Producer: "tables", Status: history.StatusSucceeded}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	id, err := store.Resolve(ctx, "abc1")
	if err != nil || id != "abc12345-0000" {
		t.Fatalf("Resolve(abc1) = %q, %v", id, err)
	}
	if _, err := store.Resolve(ctx, "ab"); !errors.Is(err, history.ErrAmbiguousID) {
		t.Fatalf("expected ErrAmbiguousID, got %v", err)
	}
	id, err = store.Resolve(ctx, "zzz")
	if err != nil || id != "" {
		t.Fatalf("Resolve(zzz) = %q, %v", id, err)
	}
}
