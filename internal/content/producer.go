package content

import (
	"context"
	"errors"

	"zenfeeds/internal/catalog"
	"zenfeeds/internal/feedstore"
)

// ErrMalformedOutput marks producer output that could not be used. It is
// handled exactly like any other producer failure: the item is skipped.
var ErrMalformedOutput = errors.New("malformed producer output")

// Content is what a producer synthesizes for one catalog record.
type Content struct {
	Title    string
	Summary  string
	Article  *feedstore.Article
	Category string
}

// Producer synthesizes content for a catalog record. index is the position of
// the item in the batch being produced. A returned error skips the item.
type Producer interface {
	Describe(ctx context.Context, item catalog.Record, index int) (Content, error)
}

// ProducerFunc adapts a function to Producer.
type ProducerFunc func(ctx context.Context, item catalog.Record, index int) (Content, error)

func (f ProducerFunc) Describe(ctx context.Context, item catalog.Record, index int) (Content, error) {
	return f(ctx, item, index)
}

// Deterministic is implemented by producers whose output depends only on the
// item, the index and construction-time state.
type Deterministic interface {
	Deterministic() bool
}

// IsDeterministic reports whether p declares itself deterministic.
func IsDeterministic(p Producer) bool {
	d, ok := p.(Deterministic)
	return ok && d.Deterministic()
}

// Named is implemented by producers that report a display name.
type Named interface {
	Name() string
}

// NameOf returns the producer name, or "custom" when it has none.
func NameOf(p Producer) string {
	if n, ok := p.(Named); ok {
		return n.Name()
	}
	return "custom"
}
