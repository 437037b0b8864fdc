package catalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"zenfeeds/internal/catalog"
	"zenfeeds/internal/services"
)

func writeCatalog(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	return path
}

func TestLoadPreservesOrderAndOptionalFields(t *testing.T) {
	path := writeCatalog(t, `[
		{"id":"b2","url":"https://x/b2","author":"Ana","reason":"Food/Culinary","score":92.5,"date":"Feb 2026"},
		{"id":"a1","url":"https://x/a1"}
	]`)

	records, err := catalog.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if got := catalog.IDs(records); len(got) != 2 || got[0] != "b2" || got[1] != "a1" {
		t.Fatalf("unexpected order: %v", got)
	}
	first := records[0]
	if first.Author != "Ana" || first.Reason != "Food/Culinary" || first.Date != "Feb 2026" {
		t.Fatalf("unexpected fields: %+v", first)
	}
	if first.Score == nil || *first.Score != 92.5 {
		t.Fatalf("expected score 92.5, got %v", first.Score)
	}
	if records[1].Score != nil {
		t.Fatalf("expected absent score to stay nil")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := catalog.Load(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil {
		t.Fatal("expected error")
	}
	var notFound *catalog.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %T", err)
	}
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatal("expected error to match services.ErrNotFound")
	}
	if !services.IsFatal(err) {
		t.Fatal("missing catalog should be fatal")
	}
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantIndex int
		wantField string
	}{
		{name: "not an array", body: `{"id":"a1"}`, wantIndex: -1},
		{name: "broken json", body: `[{"id":"a1",`, wantIndex: -1},
		{name: "missing id", body: `[{"id":"a1","url":"u"},{"url":"u2"}]`, wantIndex: 1, wantField: "id"},
		{name: "blank id", body: `[{"id":"  ","url":"u"}]`, wantIndex: 0, wantField: "id"},
		{name: "missing url", body: `[{"id":"a1"}]`, wantIndex: 0, wantField: "url"},
		{name: "duplicate id", body: `[{"id":"a1","url":"u"},{"id":"a1","url":"v"}]`, wantIndex: 1, wantField: "id"},
		{name: "element not object", body: `["a1"]`, wantIndex: 0},
		{name: "score wrong type", body: `[{"id":"a1","url":"u","score":"high"}]`, wantIndex: 0, wantField: "score"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := catalog.Load(writeCatalog(t, tt.body))
			var malformed *catalog.MalformedRecordError
			if !errors.As(err, &malformed) {
				t.Fatalf("expected MalformedRecordError, got %v", err)
			}
			if malformed.Index != tt.wantIndex {
				t.Fatalf("index = %d, want %d", malformed.Index, tt.wantIndex)
			}
			if malformed.Field != tt.wantField {
				t.Fatalf("field = %q, want %q", malformed.Field, tt.wantField)
			}
			if !errors.Is(err, services.ErrValidation) {
				t.Fatal("expected error to match services.ErrValidation")
			}
		})
	}
}

func TestLoadEmptyArray(t *testing.T) {
	records, err := catalog.Load(writeCatalog(t, `[]`))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
}

func TestLatest(t *testing.T) {
	records := []catalog.Record{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	tests := []struct {
		n    int
		want int
	}{
		{n: 0, want: 3},
		{n: -1, want: 3},
		{n: 2, want: 2},
		{n: 10, want: 3},
	}
	for _, tt := range tests {
		if got := catalog.Latest(records, tt.n); len(got) != tt.want {
			t.Fatalf("Latest(%d) returned %d records, want %d", tt.n, len(got), tt.want)
		}
	}
	if got := catalog.Latest(records, 1); got[0].ID != "a" {
		t.Fatalf("Latest should keep catalog head, got %q", got[0].ID)
	}
}
