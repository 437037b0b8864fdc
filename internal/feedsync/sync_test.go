package feedsync_test

import (
	"context"
	"errors"
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"zenfeeds/internal/catalog"
	"zenfeeds/internal/content"
	"zenfeeds/internal/feedstore"
	"zenfeeds/internal/feedsync"
	"zenfeeds/internal/services"
)

// fixedProducer returns the same content for every item and can be told to
// fail for specific ids.
type fixedProducer struct {
	fail  map[string]error
	calls []string
	index []int
}

func (p *fixedProducer) Describe(_ context.Context, item catalog.Record, index int) (content.Content, error) {
	p.calls = append(p.calls, item.ID)
	p.index = append(p.index, index)
	if err, ok := p.fail[item.ID]; ok {
		return content.Content{}, err
	}
	return content.Content{Title: "T", Summary: "S"}, nil
}

func (p *fixedProducer) Deterministic() bool { return true }

func (p *fixedProducer) Name() string { return "fixed" }

func twoItemCatalog() []catalog.Record {
	return []catalog.Record{
		{ID: "a1", URL: "https://x/a1"},
		{ID: "b2", URL: "https://x/b2"},
	}
}

func TestSyncTwoItemExample(t *testing.T) {
	result, err := feedsync.Sync(context.Background(), feedstore.Feed{}, twoItemCatalog(), &fixedProducer{})
	if err != nil {
		t.Fatalf("Sync returned error: %v", err)
	}
	if result.AddedCount() != 2 {
		t.Fatalf("added = %d, want 2", result.AddedCount())
	}
	if got := result.Feed.IDs(); !slices.Equal(got, []string{"a1", "b2"}) {
		t.Fatalf("ids = %v", got)
	}
	for _, id := range []string{"a1", "b2"} {
		record := result.Feed[id]
		if record.Title != "T" || record.Summary != "S" {
			t.Fatalf("record %s = %+v", id, record)
		}
		if record.Author != "Unknown" {
			t.Fatalf("record %s author = %q, want Unknown", id, record.Author)
		}
		if record.Score != nil || record.Date != "" {
			t.Fatalf("record %s should omit score and date without defaults", id)
		}
	}
}

func TestSyncIsIdempotent(t *testing.T) {
	producer := &fixedProducer{}
	first, err := feedsync.Sync(context.Background(), nil, twoItemCatalog(), producer)
	if err != nil {
		t.Fatal(err)
	}
	second, err := feedsync.Sync(context.Background(), first.Feed, twoItemCatalog(), producer)
	if err != nil {
		t.Fatal(err)
	}
	if second.AddedCount() != 0 {
		t.Fatalf("second run added %d records", second.AddedCount())
	}
	if second.Skipped != 2 {
		t.Fatalf("skipped = %d, want 2", second.Skipped)
	}
	if len(producer.calls) != 2 {
		t.Fatalf("producer called %d times, want 2", len(producer.calls))
	}
	a, _ := feedstore.Encode(first.Feed)
	b, _ := feedstore.Encode(second.Feed)
	if string(a) != string(b) {
		t.Fatal("second run changed the feed")
	}
}

func TestSyncIsNonDestructive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feeds.json")
	stored := `{"a1":{"id":"a1","url":"https://x/a1","author":"Ana","title":"Hand edited","summary":"Kept","curator_note":"mine"}}`
	if err := os.WriteFile(path, []byte(stored), 0o644); err != nil {
		t.Fatal(err)
	}
	existing, err := feedstore.Load(path)
	if err != nil {
		t.Fatal(err)
	}

	result, err := feedsync.Sync(context.Background(), existing, twoItemCatalog(), &fixedProducer{})
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(result.Added, []string{"b2"}) {
		t.Fatalf("added = %v, want [b2]", result.Added)
	}
	data, err := feedstore.Encode(result.Feed)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`"title": "Hand edited"`, `"curator_note": "mine"`} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("existing entry changed, missing %s in\n%s", want, data)
		}
	}
	if _, ok := existing["b2"]; ok {
		t.Fatal("Sync mutated the input map")
	}
}

func TestSyncCompletenessOnSuccess(t *testing.T) {
	records := make([]catalog.Record, 0, 20)
	for i := range 20 {
		id := string(rune('a' + i))
		records = append(records, catalog.Record{ID: id, URL: "https://x/" + id})
	}
	result, err := feedsync.Sync(context.Background(), feedstore.Feed{}, records, &fixedProducer{})
	if err != nil {
		t.Fatal(err)
	}
	want := catalog.IDs(records)
	slices.Sort(want)
	if got := result.Feed.IDs(); !slices.Equal(got, want) {
		t.Fatalf("feed ids %v, want %v", got, want)
	}
}

func TestSyncContainsPartialFailure(t *testing.T) {
	records := []catalog.Record{
		{ID: "a", URL: "u"},
		{ID: "b", URL: "u"},
		{ID: "c", URL: "u"},
	}
	producer := &fixedProducer{fail: map[string]error{
		"b": services.Wrap(services.ErrExternalTool, "gemini", "complete", "exit 1", nil),
	}}

	result, err := feedsync.Sync(context.Background(), feedstore.Feed{}, records, producer)
	if err != nil {
		t.Fatalf("Sync returned error: %v", err)
	}
	if result.AddedCount() != 2 {
		t.Fatalf("added = %d, want 2", result.AddedCount())
	}
	if _, ok := result.Feed["b"]; ok {
		t.Fatal("failed item must stay absent")
	}
	if got := result.FailedIDs(); !slices.Equal(got, []string{"b"}) {
		t.Fatalf("failed = %v", got)
	}
	if result.Failed[0].Kind() != "external_tool" {
		t.Fatalf("kind = %q", result.Failed[0].Kind())
	}

	// The failed id is retried on the next run.
	retry := &fixedProducer{}
	next, err := feedsync.Sync(context.Background(), result.Feed, records, retry)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(retry.calls, []string{"b"}) || next.AddedCount() != 1 {
		t.Fatalf("retry calls = %v, added = %d", retry.calls, next.AddedCount())
	}
}

func TestSyncOrderIndependence(t *testing.T) {
	records := make([]catalog.Record, 0, 12)
	for i := range 12 {
		id := string(rune('a' + i))
		records = append(records, catalog.Record{ID: id, URL: "https://x/" + id})
	}
	fail := map[string]error{"c": errors.New("boom"), "h": errors.New("boom")}

	baseline, err := feedsync.Sync(context.Background(), feedstore.Feed{}, records, &fixedProducer{fail: fail})
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewPCG(7, 11))
	for range 5 {
		shuffled := slices.Clone(records)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		result, err := feedsync.Sync(context.Background(), feedstore.Feed{}, shuffled, &fixedProducer{fail: fail})
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Equal(result.Feed.IDs(), baseline.Feed.IDs()) {
			t.Fatalf("shuffled ids %v, want %v", result.Feed.IDs(), baseline.Feed.IDs())
		}
	}
}

func TestSyncIndexCountsNewItemsOnly(t *testing.T) {
	existing := feedstore.Feed{"a1": {ID: "a1", URL: "u", Author: "A", Title: "T", Summary: "S"}}
	records := []catalog.Record{{ID: "a1", URL: "u"}, {ID: "b2", URL: "u"}, {ID: "c3", URL: "u"}}
	producer := &fixedProducer{}
	if _, err := feedsync.Sync(context.Background(), existing, records, producer); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(producer.index, []int{0, 1}) {
		t.Fatalf("indexes = %v, want [0 1]", producer.index)
	}
}

func TestSyncAppliesDefaultsAndClamps(t *testing.T) {
	score := 85.0
	itemScore := 97.0
	records := []catalog.Record{
		{ID: "a", URL: "u", Author: "  Ana ", Score: &itemScore, Date: "Mar 2026"},
		{ID: "b", URL: "u"},
	}
	long := strings.Repeat("静", 200)
	producer := content.ProducerFunc(func(_ context.Context, item catalog.Record, _ int) (content.Content, error) {
		return content.Content{Title: long, Summary: long, Category: "food", Article: &feedstore.Article{Text: "essay"}}, nil
	})

	result, err := feedsync.Sync(context.Background(), nil, records, producer,
		feedsync.WithDefaults(feedsync.Defaults{Author: "Studio", Score: &score, Date: "Feb 2026"}))
	if err != nil {
		t.Fatal(err)
	}
	a, b := result.Feed["a"], result.Feed["b"]
	if a.Author != "Ana" || *a.Score != 97 || a.Date != "Mar 2026" {
		t.Fatalf("source fields should win: %+v", a)
	}
	if b.Author != "Studio" || b.Score == nil || *b.Score != 85 || b.Date != "Feb 2026" {
		t.Fatalf("defaults not applied: %+v", b)
	}
	if len([]rune(a.Title)) != feedsync.MaxTitleRunes || len([]rune(a.Summary)) != feedsync.MaxSummaryRunes {
		t.Fatalf("clamp failed: %d/%d runes", len([]rune(a.Title)), len([]rune(a.Summary)))
	}
	if a.Category != "food" || a.Article == nil || a.Article.Text != "essay" {
		t.Fatalf("content fields not carried: %+v", a)
	}
}

func TestSyncRejectsEmptyContent(t *testing.T) {
	producer := content.ProducerFunc(func(context.Context, catalog.Record, int) (content.Content, error) {
		return content.Content{Title: "  ", Summary: "S", Category: "space"}, nil
	})
	result, err := feedsync.Sync(context.Background(), nil, twoItemCatalog(), producer)
	if err != nil {
		t.Fatal(err)
	}
	if result.AddedCount() != 0 || len(result.Failed) != 2 {
		t.Fatalf("added %d failed %d", result.AddedCount(), len(result.Failed))
	}
	if result.Failed[0].Kind() != "malformed_output" {
		t.Fatalf("kind = %q", result.Failed[0].Kind())
	}
}

func TestSyncProducerTimeoutSkipsItem(t *testing.T) {
	producer := content.ProducerFunc(func(ctx context.Context, item catalog.Record, _ int) (content.Content, error) {
		if item.ID == "a1" {
			<-ctx.Done()
			return content.Content{}, ctx.Err()
		}
		return content.Content{Title: "T", Summary: "S"}, nil
	})
	result, err := feedsync.Sync(context.Background(), nil, twoItemCatalog(), producer,
		feedsync.WithProducerTimeout(20*time.Millisecond))
	if err != nil {
		t.Fatalf("Sync returned error: %v", err)
	}
	if !slices.Equal(result.Added, []string{"b2"}) {
		t.Fatalf("added = %v", result.Added)
	}
	if !errors.Is(result.Failed[0].Err, services.ErrTimeout) {
		t.Fatalf("expected timeout failure, got %v", result.Failed[0].Err)
	}
}

func TestSyncCancellationReturnsPartialResult(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	producer := content.ProducerFunc(func(_ context.Context, item catalog.Record, _ int) (content.Content, error) {
		if item.ID == "a1" {
			cancel()
		}
		return content.Content{Title: "T", Summary: "S"}, nil
	})
	result, err := feedsync.Sync(ctx, nil, twoItemCatalog(), producer)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !slices.Equal(result.Added, []string{"a1"}) {
		t.Fatalf("partial result added = %v, want [a1]", result.Added)
	}
}

func TestRebuildRequiresDeterministicProducer(t *testing.T) {
	producer := content.ProducerFunc(func(context.Context, catalog.Record, int) (content.Content, error) {
		return content.Content{Title: "T", Summary: "S"}, nil
	})
	_, err := feedsync.Rebuild(context.Background(), twoItemCatalog(), producer)
	if !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestRebuildDiscardsExistingAndIsByteIdentical(t *testing.T) {
	records := append(twoItemCatalog(), catalog.Record{ID: "c3", URL: "https://x/c3"})
	first, err := feedsync.Rebuild(context.Background(), records, &fixedProducer{})
	if err != nil {
		t.Fatalf("Rebuild returned error: %v", err)
	}
	second, err := feedsync.Rebuild(context.Background(), records, &fixedProducer{})
	if err != nil {
		t.Fatal(err)
	}
	a, _ := feedstore.Encode(first.Feed)
	b, _ := feedstore.Encode(second.Feed)
	if string(a) != string(b) {
		t.Fatal("rebuild output differs between runs")
	}
	if first.AddedCount() != 3 {
		t.Fatalf("added = %d", first.AddedCount())
	}
}

func TestRebuildAbortsOnFailure(t *testing.T) {
	producer := &fixedProducer{fail: map[string]error{"b2": errors.New("boom")}}
	result, err := feedsync.Rebuild(context.Background(), twoItemCatalog(), producer)
	if err == nil || !strings.Contains(err.Error(), "b2") {
		t.Fatalf("expected failure naming b2, got %v", err)
	}
	if result.Feed != nil {
		t.Fatal("failed rebuild must not return a feed")
	}
}
