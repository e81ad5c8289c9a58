// Package history keeps a SQLite ledger of finished batches.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/five82/reelfx/internal/processing"
)

// Store persists batch outcomes.
type Store struct {
	db   *sql.DB
	path string
}

// Failure is one failed file of a recorded batch.
type Failure struct {
	Filename string
	Reason   string
}

// Batch is a recorded batch outcome.
type Batch struct {
	ID             string
	StartedAt      time.Time
	FinishedAt     time.Time
	Total          int
	Success        int
	Failure        int
	Skipped        int
	Cancelled      bool
	DestinationDir string
	Failures       []Failure
}

// Open creates or opens the ledger at path.
func Open(ctx context.Context, path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)

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

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record stores a finished batch and returns its id.
func (s *Store) Record(ctx context.Context, outcome *processing.BatchOutcome) (string, error) {
	id := uuid.NewString()
	finished := outcome.StartedAt.Add(outcome.Duration)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin record tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO batches (
            id, started_at, finished_at, total, success, failure, skipped, cancelled, destination_dir
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id,
		formatTime(outcome.StartedAt),
		formatTime(finished),
		outcome.Total,
		outcome.Success,
		outcome.Failure,
		outcome.Skipped,
		boolToInt(outcome.Cancelled),
		outcome.DestinationDir,
	)
	if err != nil {
		return "", fmt.Errorf("insert batch: %w", err)
	}

	for i, f := range outcome.Failures {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO failures (batch_id, position, filename, reason) VALUES (?, ?, ?, ?)",
			id, i, f.Filename, f.Reason,
		); err != nil {
			return "", fmt.Errorf("insert failure: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit batch: %w", err)
	}
	return id, nil
}

// Recent returns up to limit batches, newest first, with their failures.
func (s *Store) Recent(ctx context.Context, limit int) ([]Batch, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, total, success, failure, skipped, cancelled, destination_dir
         FROM batches ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query batches: %w", err)
	}
	defer rows.Close()

	var batches []Batch
	for rows.Next() {
		var (
			b                 Batch
			started, finished string
			cancelled         int
		)
		if err := rows.Scan(&b.ID, &started, &finished, &b.Total, &b.Success, &b.Failure, &b.Skipped, &cancelled, &b.DestinationDir); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		b.StartedAt = parseTime(started)
		b.FinishedAt = parseTime(finished)
		b.Cancelled = cancelled != 0
		batches = append(batches, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batches: %w", err)
	}
	rows.Close()

	for i := range batches {
		failures, err := s.failures(ctx, batches[i].ID)
		if err != nil {
			return nil, err
		}
		batches[i].Failures = failures
	}
	return batches, nil
}

func (s *Store) failures(ctx context.Context, batchID string) ([]Failure, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT filename, reason FROM failures WHERE batch_id = ? ORDER BY position", batchID)
	if err != nil {
		return nil, fmt.Errorf("query failures: %w", err)
	}
	defer rows.Close()

	var out []Failure
	for rows.Next() {
		var f Failure
		if err := rows.Scan(&f.Filename, &f.Reason); err != nil {
			return nil, fmt.Errorf("scan failure: %w", err)
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

// timeLayout keeps a fixed width so that text order is time order.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
