package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"zenfeeds/internal/catalog"
	"zenfeeds/internal/config"
	"zenfeeds/internal/content"
	"zenfeeds/internal/feedstore"
	"zenfeeds/internal/feedsync"
	"zenfeeds/internal/history"
	"zenfeeds/internal/logging"
	"zenfeeds/internal/notifications"
	"zenfeeds/internal/services"
)

// Runner executes reconciliation runs against the configured catalog and
// feed store.
type Runner struct {
	cfg      *config.Config
	producer content.Producer
	history  *history.Store
	notifier notifications.Service
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
}

// Option configures a Runner.
type Option func(*Runner)

// WithHistory records every run in store.
func WithHistory(store *history.Store) Option {
	return func(r *Runner) {
		r.history = store
	}
}

// WithNotifier publishes run outcomes to svc.
func WithNotifier(svc notifications.Service) Option {
	return func(r *Runner) {
		r.notifier = svc
	}
}

// WithLogger sets the base logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithClock overrides the time source (used in tests).
func WithClock(now func() time.Time) Option {
	return func(r *Runner) {
		if now != nil {
			r.now = now
		}
	}
}

// NewRunner constructs a Runner that describes new items with producer.
func NewRunner(cfg *config.Config, producer content.Producer, opts ...Option) *Runner {
	r := &Runner{
		cfg:      cfg,
		producer: producer,
		logger:   logging.NewNop(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run performs one reconciliation. The returned Report is populated as far
// as the run got, even when an error is returned.
func (r *Runner) Run(ctx context.Context, req Request) (Report, error) {
	if req.Mode == "" {
		req.Mode = ModeIncremental
	}
	report := Report{
		RunID:     r.newID(),
		Mode:      req.Mode,
		Producer:  content.NameOf(r.producer),
		DryRun:    req.DryRun,
		StorePath: r.cfg.Paths.FeedStore,
		StartedAt: r.now(),
	}
	ctx = services.WithRunID(ctx, report.RunID)
	ctx = services.WithMode(ctx, string(req.Mode))
	logger := logging.WithContext(ctx, logging.NewComponentLogger(r.logger, "workflow"))

	runErr := r.execute(ctx, logger, req, &report)

	report.FinishedAt = r.now()
	report.Status = statusFor(report, runErr)
	r.recordHistory(ctx, logger, report, runErr)
	r.notify(ctx, logger, report, runErr)

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			logger.Warn("run cancelled; feed store left unchanged",
				logging.String(logging.FieldEventType, "run_cancelled"),
			)
		} else {
			logging.ErrorWithContext(logger, "run failed; feed store left unchanged", "run_failed",
				logging.String(logging.FieldErrorKind, services.Kind(runErr)),
				logging.String(logging.FieldErrorHint, hintFor(runErr)),
				logging.Error(runErr),
			)
		}
		return report, runErr
	}

	logger.Info("run complete",
		logging.String("status", string(report.Status)),
		logging.Int("added", report.Result.AddedCount()),
		logging.Int("failed", len(report.Result.Failed)),
		logging.Int("skipped", report.Result.Skipped),
		logging.Bool("written", report.Written),
		logging.Bool("dry_run", report.DryRun),
		logging.Duration("duration", report.Duration()),
	)
	return report, nil
}

func (r *Runner) execute(ctx context.Context, logger *slog.Logger, req Request, report *Report) error {
	storePath := r.cfg.Paths.FeedStore
	if err := os.MkdirAll(filepath.Dir(storePath), 0o755); err != nil {
		return fmt.Errorf("create feed store directory: %w", err)
	}

	lock, err := feedstore.Acquire(storePath)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("release feed store lock failed", logging.Error(err))
		}
	}()

	records, err := catalog.Load(r.cfg.Paths.Catalog)
	if err != nil {
		return err
	}
	records = catalog.Latest(records, r.cfg.Sync.Limit)
	report.CatalogCount = len(records)

	existing, err := feedstore.Load(storePath)
	if err != nil {
		return err
	}
	report.ExistingCount = len(existing)

	opts := []feedsync.Option{
		feedsync.WithDefaults(r.syncDefaults()),
		feedsync.WithProducerTimeout(r.cfg.ProducerTimeout()),
		feedsync.WithLogger(r.logger),
	}

	switch req.Mode {
	case ModeIncremental:
		result, err := feedsync.Sync(ctx, existing, records, r.producer, opts...)
		report.Result = result
		if err != nil {
			return err
		}
		if result.AddedCount() == 0 {
			report.Unchanged = true
			logger.Info("no new entries; feed store unchanged", logging.Int("existing", len(existing)))
			return nil
		}
	case ModeRebuild:
		result, err := feedsync.Rebuild(ctx, records, r.producer, opts...)
		report.Result = result
		if err != nil {
			return err
		}
		data, err := feedstore.Encode(result.Feed)
		if err != nil {
			return err
		}
		if feedstore.Matches(storePath, data) {
			report.Result.Added = nil
			report.Unchanged = true
			logger.Info("rebuild matches current feed store; nothing to write")
			return nil
		}
	default:
		return services.Wrap(services.ErrConfiguration, "workflow", "run", fmt.Sprintf("unknown mode %q", req.Mode), nil)
	}

	if req.DryRun {
		logger.Info("dry run; feed store not written", logging.Int("would_add", report.Result.AddedCount()))
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return r.persist(logger, report)
}

func (r *Runner) persist(logger *slog.Logger, report *Report) error {
	storePath := r.cfg.Paths.FeedStore
	if r.cfg.Sync.KeepBackup {
		backedUp, err := feedstore.Backup(storePath)
		if err != nil {
			return err
		}
		report.BackedUp = backedUp
		if backedUp {
			logger.Debug("feed store backed up", logging.String("path", feedstore.BackupPath(storePath)))
		}
	}
	if err := feedstore.Save(storePath, report.Result.Feed); err != nil {
		return err
	}
	report.Written = true
	logger.Info("feed store written",
		logging.String("path", storePath),
		logging.Int("entries", len(report.Result.Feed)),
	)
	return nil
}

func (r *Runner) syncDefaults() feedsync.Defaults {
	defaults := feedsync.Defaults{
		Author: r.cfg.Defaults.Author,
		Date:   r.cfg.Defaults.Date,
	}
	if r.cfg.Defaults.Score != nil {
		score := *r.cfg.Defaults.Score
		defaults.Score = &score
	}
	return defaults
}

func (r *Runner) recordHistory(ctx context.Context, logger *slog.Logger, report Report, runErr error) {
	if r.history == nil {
		return
	}
	// The run context may already be cancelled; history is still worth keeping.
	if err := r.history.Record(context.WithoutCancel(ctx), report.historyRun(runErr)); err != nil {
		logging.WarnWithContext(logger, "record run history failed", "history_write_failed",
			logging.String(logging.FieldErrorHint, "check state_dir permissions or delete history.db"),
			logging.String(logging.FieldImpact, "run not listed in history"),
			logging.Error(err),
		)
	}
}

func (r *Runner) notify(ctx context.Context, logger *slog.Logger, report Report, runErr error) {
	if r.notifier == nil || errors.Is(runErr, context.Canceled) {
		return
	}
	if runErr == nil && report.Unchanged && len(report.Result.Failed) == 0 {
		return
	}
	event := notifications.EventRunCompleted
	payload := notifications.Payload{
		"mode":      string(report.Mode),
		"added":     report.Result.AddedCount(),
		"failed":    len(report.Result.Failed),
		"failedIDs": report.Result.FailedIDs(),
		"duration":  report.Duration(),
		"dryRun":    report.DryRun,
	}
	if runErr != nil {
		event = notifications.EventRunFailed
		payload["error"] = runErr.Error()
	}
	if err := r.notifier.Publish(context.WithoutCancel(ctx), event, payload); err != nil {
		logging.WarnWithContext(logger, "notification failed", "notification_failed",
			logging.String(logging.FieldErrorHint, "check notifications.ntfy_topic"),
			logging.String(logging.FieldImpact, "run outcome not pushed"),
			logging.Error(err),
		)
	}
}

func statusFor(report Report, runErr error) history.Status {
	switch {
	case runErr != nil && errors.Is(runErr, context.Canceled):
		return history.StatusCancelled
	case runErr != nil:
		return history.StatusFailed
	case len(report.Result.Failed) > 0:
		return history.StatusPartial
	default:
		return history.StatusSucceeded
	}
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, feedstore.ErrLocked):
		return "another zenfeeds run is in progress; wait for it or remove a stale lock file"
	case !services.IsFatal(err):
		return "not caused by the inputs; rerun once the cause in the error is resolved"
	case errors.Is(err, services.ErrNotFound):
		return "check paths.catalog"
	case errors.Is(err, services.ErrValidation):
		return "fix the reported record or restore the feed store from its .bak copy"
	case errors.Is(err, services.ErrConfiguration):
		return "check the sync settings in the config file"
	default:
		return "check logs for details"
	}
}
