package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"

	"quiz/pkg/quiz"
)

// ErrPersistentDSN is returned for DSNs that would write attempts to disk.
var ErrPersistentDSN = errors.New("duckdb: only in-memory databases are supported")

// Backend stores attempts in an in-process DuckDB database.
type Backend struct {
	db *sql.DB
}

// IsMemoryDSN reports whether dsn opens an in-memory database.
func IsMemoryDSN(dsn string) bool {
	path, _, _ := strings.Cut(strings.TrimSpace(dsn), "?")
	return path == "" || path == ":memory:"
}

// Open creates an in-memory DuckDB database and applies the schema.
func Open(ctx context.Context, dsn string) (*Backend, error) {
	if ctx == nil {
		return nil, errors.New("duckdb: context is nil")
	}
	if !IsMemoryDSN(dsn) {
		return nil, ErrPersistentDSN
	}
	db, err := sql.Open("duckdb", strings.TrimSpace(dsn))
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	// A single connection serializes writers; DuckDB rejects concurrent updates to one row.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping duckdb: %w", err)
	}
	if err := EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Backend{db: db}, nil
}

// Close releases the database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// Save upserts the attempt, clearing any finished state.
func (b *Backend) Save(ctx context.Context, attempt quiz.Attempt) error {
	answers, err := encodeAnswers(attempt.Answers)
	if err != nil {
		return err
	}
	lastSaved := attempt.LastSaved
	if lastSaved.IsZero() {
		lastSaved = time.Now().UTC()
	}
	if _, err := b.db.ExecContext(
		ctx,
		`INSERT INTO attempts (attempt_id, answers, remaining_sec, is_finished, last_saved, finished_at)
		 VALUES (?, ?, ?, false, ?, NULL)
		 ON CONFLICT (attempt_id) DO UPDATE SET
		   answers = excluded.answers,
		   remaining_sec = excluded.remaining_sec,
		   is_finished = false,
		   last_saved = excluded.last_saved,
		   finished_at = NULL`,
		attempt.ID,
		answers,
		int64(attempt.RemainingSec),
		lastSaved.UTC(),
	); err != nil {
		return fmt.Errorf("upsert attempt: %w", err)
	}
	return nil
}

// Get loads an attempt by id.
func (b *Backend) Get(ctx context.Context, attemptID string) (quiz.Attempt, bool, error) {
	return lookupAttempt(ctx, b.db, attemptID)
}

// Finish marks the attempt finished inside a transaction and returns the prior state.
func (b *Backend) Finish(ctx context.Context, attemptID string, now time.Time) (quiz.Attempt, bool, error) {
	if now.IsZero() {
		now = time.Now().UTC()
	}
	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return quiz.Attempt{}, false, fmt.Errorf("begin finish: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()
	attempt, ok, err := lookupAttempt(ctx, tx, attemptID)
	if err != nil || !ok {
		return quiz.Attempt{}, false, err
	}
	if _, err := tx.ExecContext(
		ctx,
		`UPDATE attempts SET is_finished = true, finished_at = ? WHERE attempt_id = ?`,
		now.UTC(),
		attemptID,
	); err != nil {
		return quiz.Attempt{}, false, fmt.Errorf("mark finished: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return quiz.Attempt{}, false, fmt.Errorf("commit finish: %w", err)
	}
	return attempt, true, nil
}

// Stats counts stored attempts by status.
func (b *Backend) Stats(ctx context.Context) (quiz.Stats, error) {
	var total, finished int64
	if err := b.db.QueryRowContext(
		ctx,
		`SELECT count(*), count(*) FILTER (WHERE is_finished) FROM attempts`,
	).Scan(&total, &finished); err != nil {
		return quiz.Stats{}, fmt.Errorf("query stats: %w", err)
	}
	return quiz.Stats{
		Attempts:   int(total),
		Finished:   int(finished),
		InProgress: int(total - finished),
	}, nil
}
