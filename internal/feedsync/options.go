package feedsync

import (
	"log/slog"
	"time"

	"zenfeeds/internal/logging"
)

const (
	// MaxTitleRunes bounds FeedRecord titles.
	MaxTitleRunes = 60
	// MaxSummaryRunes bounds FeedRecord summaries.
	MaxSummaryRunes = 150

	defaultAuthor = "Unknown"
)

// Defaults fill source fields the catalog left out. Nil Score and empty Date
// mean the field is omitted from the record.
type Defaults struct {
	Author string
	Score  *float64
	Date   string
}

type options struct {
	defaults        Defaults
	producerTimeout time.Duration
	logger          *slog.Logger
}

// Option configures Sync and Rebuild.
type Option func(*options)

// WithDefaults sets the fallback author, score and date.
func WithDefaults(d Defaults) Option {
	return func(o *options) {
		o.defaults = d
	}
}

// WithProducerTimeout bounds each producer call. Zero disables the bound.
func WithProducerTimeout(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.producerTimeout = d
		}
	}
}

// WithLogger sets the logger used for per-item progress.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{
		defaults: Defaults{Author: defaultAuthor},
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = logging.NewComponentLogger(o.logger, "feedsync")
	return o
}
