package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists run history in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("history path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts a run and its item failures.
func (s *Store) Record(ctx context.Context, run Run) error {
	if strings.TrimSpace(run.ID) == "" {
		return errors.New("history record: run id required")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (
            id, mode, producer, status, started_at, finished_at,
            catalog_count, existing_count, added_count, failed_count,
            written, dry_run, error_message
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Mode,
		run.Producer,
		string(run.Status),
		formatTime(run.StartedAt),
		formatTime(run.FinishedAt),
		run.CatalogCount,
		run.ExistingCount,
		run.AddedCount,
		run.FailedCount,
		boolToInt(run.Written),
		boolToInt(run.DryRun),
		run.Error,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, failure := range run.Failures {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO run_failures (run_id, item_id, kind, message) VALUES (?, ?, ?, ?)",
			run.ID, failure.ItemID, failure.Kind, failure.Message,
		); err != nil {
			return fmt.Errorf("insert run failure: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

const runColumns = `id, mode, producer, status, started_at, finished_at,
    catalog_count, existing_count, added_count, failed_count,
    written, dry_run, error_message`

// List returns the most recent runs, newest first. Failures are not loaded.
// limit <= 0 returns every run.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := "SELECT " + runColumns + " FROM runs ORDER BY started_at DESC, rowid DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Get returns one run with its failures, or nil when id is unknown.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM runs WHERE id = ?", id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT item_id, kind, message FROM run_failures WHERE run_id = ? ORDER BY rowid", id)
	if err != nil {
		return nil, fmt.Errorf("list run failures: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var failure ItemFailure
		if err := rows.Scan(&failure.ItemID, &failure.Kind, &failure.Message); err != nil {
			return nil, fmt.Errorf("scan run failure: %w", err)
		}
		run.Failures = append(run.Failures, failure)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run failures: %w", err)
	}
	return &run, nil
}

// ErrAmbiguousID is returned by Resolve when a prefix matches several runs.
var ErrAmbiguousID = errors.New("run id prefix is ambiguous")

// Resolve expands a run id prefix to the full id. It returns "" when no run
// matches.
func (s *Store) Resolve(ctx context.Context, prefix string) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", nil
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT id FROM runs WHERE substr(id, 1, ?) = ? LIMIT 2", len(prefix), prefix)
	if err != nil {
		return "", fmt.Errorf("resolve run id: %w", err)
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan run id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("iterate run ids: %w", err)
	}
	switch len(ids) {
	case 0:
		return "", nil
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%w: %s", ErrAmbiguousID, prefix)
	}
}

// FailureCounts returns how often each item failed across all recorded runs.
// Items that keep failing usually need a look at their catalog entry.
func (s *Store) FailureCounts(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT item_id, COUNT(1) FROM run_failures GROUP BY item_id")
	if err != nil {
		return nil, fmt.Errorf("count failures: %w", err)
	}
	defer rows.Close()
	counts := make(map[string]int)
	for rows.Next() {
		var id string
		var n int
		if err := rows.Scan(&id, &n); err != nil {
			return nil, fmt.Errorf("scan failure count: %w", err)
		}
		counts[id] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate failure counts: %w", err)
	}
	return counts, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run                 Run
		status              string
		startedAt, finished string
		written, dryRun     int
	)
	if err := row.Scan(
		&run.ID,
		&run.Mode,
		&run.Producer,
		&status,
		&startedAt,
		&finished,
		&run.CatalogCount,
		&run.ExistingCount,
		&run.AddedCount,
		&run.FailedCount,
		&written,
		&dryRun,
		&run.Error,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, err
		}
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.Status = Status(status)
	run.StartedAt = parseTime(startedAt)
	run.FinishedAt = parseTime(finished)
	run.Written = written != 0
	run.DryRun = dryRun != 0
	return run, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
