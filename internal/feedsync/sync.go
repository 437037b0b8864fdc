package feedsync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/samber/lo"

	"zenfeeds/internal/catalog"
	"zenfeeds/internal/content"
	"zenfeeds/internal/feedstore"
	"zenfeeds/internal/logging"
	"zenfeeds/internal/services"
)

// Sync adds a record for every catalog id missing from existing. Existing
// entries are carried over untouched. Producer failures are collected in the
// result and do not stop the pass. If ctx is cancelled the partial result is
// returned together with the context error.
func Sync(ctx context.Context, existing feedstore.Feed, records []catalog.Record, producer content.Producer, opts ...Option) (Result, error) {
	o := buildOptions(opts)
	ctx = services.WithMode(ctx, "incremental")
	logger := logging.WithContext(ctx, o.logger)

	result := Result{Feed: existing.Clone()}
	pending := lo.Filter(records, func(r catalog.Record, _ int) bool {
		_, ok := result.Feed[r.ID]
		return !ok
	})
	result.Skipped = len(records) - len(pending)

	logger.Info("reconciling catalog",
		logging.Int("catalog", len(records)),
		logging.Int("existing", len(result.Feed)),
		logging.Int("pending", len(pending)),
		logging.String("producer", content.NameOf(producer)),
	)

	for index, item := range pending {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if _, ok := result.Feed[item.ID]; ok {
			continue
		}

		record, err := describe(ctx, producer, item, index, o)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			result.Failed = append(result.Failed, Failure{ID: item.ID, Index: index, Err: err})
			logItemFailure(logger, item, err)
			continue
		}

		result.Feed[item.ID] = record
		result.Added = append(result.Added, item.ID)
		logger.Info("entry added",
			logging.String(logging.FieldItemID, item.ID),
			logging.String("title", record.Title),
			logging.String("category", record.Category),
		)
	}

	return result, nil
}

// Rebuild regenerates the whole feed from the catalog. It refuses
// non-deterministic producers and stops at the first failure, since a partial
// rebuild cannot reproduce the same output twice.
func Rebuild(ctx context.Context, records []catalog.Record, producer content.Producer, opts ...Option) (Result, error) {
	o := buildOptions(opts)
	if !content.IsDeterministic(producer) {
		return Result{}, services.Wrap(
			services.ErrConfiguration,
			"feedsync",
			"rebuild",
			fmt.Sprintf("producer %q is not deterministic", content.NameOf(producer)),
			nil,
		)
	}
	ctx = services.WithMode(ctx, "rebuild")
	logger := logging.WithContext(ctx, o.logger)
	logger.Info("rebuilding feed",
		logging.Int("catalog", len(records)),
		logging.String("producer", content.NameOf(producer)),
	)

	result := Result{Feed: make(feedstore.Feed, len(records))}
	for index, item := range records {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		if _, ok := result.Feed[item.ID]; ok {
			continue
		}
		record, err := describe(ctx, producer, item, index, o)
		if err != nil {
			if ctx.Err() != nil {
				return Result{}, ctx.Err()
			}
			return Result{}, fmt.Errorf("rebuild %s: %w", item.ID, err)
		}
		result.Feed[item.ID] = record
		result.Added = append(result.Added, item.ID)
	}
	return result, nil
}

func describe(ctx context.Context, producer content.Producer, item catalog.Record, index int, o options) (feedstore.Record, error) {
	callCtx := services.WithItemID(ctx, item.ID)
	if o.producerTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(callCtx, o.producerTimeout)
		defer cancel()
	}

	produced, err := producer.Describe(callCtx, item, index)
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil && !errors.Is(err, services.ErrTimeout) {
			err = services.Wrap(services.ErrTimeout, "feedsync", "describe", fmt.Sprintf("producer exceeded %s", o.producerTimeout), err)
		}
		return feedstore.Record{}, err
	}
	return BuildRecord(item, produced, o.defaults)
}

func logItemFailure(logger *slog.Logger, item catalog.Record, err error) {
	hint := "check producer output and logs"
	switch {
	case errors.Is(err, services.ErrTimeout):
		hint = "increase sync.producer_timeout_seconds or gemini.timeout_seconds"
	case errors.Is(err, services.ErrExternalTool):
		hint = "run the generation tool by hand to check authentication and quota"
	case errors.Is(err, content.ErrMalformedOutput):
		hint = "the producer reply was not the expected JSON; it will be retried"
	}
	logging.WarnWithContext(logger, "producer failed; item skipped", "producer_failure",
		logging.String(logging.FieldItemID, item.ID),
		logging.String(logging.FieldErrorKind, FailureKind(err)),
		logging.String(logging.FieldErrorHint, hint),
		logging.String(logging.FieldImpact, "item left out of the feed and retried on the next run"),
		logging.Error(err),
	)
}
