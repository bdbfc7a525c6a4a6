package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"timelapse/internal/config"
	"timelapse/internal/fileutil"
)

// Store manages build history persistence backed by SQLite. Concurrent
// invocations share the database; a file lock serializes individual writes
// and is released as soon as each write completes.
type Store struct {
	db   *sql.DB
	path string
	lock *flock.Flock
}

// Open initializes or connects to the history database and applies migrations.
// Open does not block on other processes using the store.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.LogDir, "history.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{
		db:   db,
		path: dbPath,
		lock: flock.New(filepath.Join(cfg.Paths.LogDir, "history.lock")),
	}
	if err := store.withLock(func() error {
		return store.applyMigrations(context.Background())
	}); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// withLock runs fn while holding the write lock.
func (s *Store) withLock(fn func() error) error {
	if err := s.lock.Lock(); err != nil {
		return fmt.Errorf("acquire history lock: %w", err)
	}
	defer func() { _ = s.lock.Unlock() }()
	return fn()
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

const recordColumns = `id, uuid, output, source_dir, frame_count, frame_rate, preset, status, error_kind, error_message, started_at, finished_at`

// Add inserts a finished build attempt and returns the stored record.
func (s *Store) Add(ctx context.Context, rec Record) (*Record, error) {
	if rec.UUID == "" {
		rec.UUID = uuid.NewString()
	}
	if rec.StartedAt.IsZero() {
		rec.StartedAt = time.Now().UTC()
	}
	if rec.FinishedAt.IsZero() {
		rec.FinishedAt = time.Now().UTC()
	}

	var id int64
	if err := s.withLock(func() error {
		res, err := s.db.ExecContext(
			ctx,
			`INSERT INTO builds (
                uuid, output, source_dir, frame_count, frame_rate, preset,
                status, error_kind, error_message, started_at, finished_at
            ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rec.UUID,
			rec.Output,
			rec.SourceDir,
			rec.FrameCount,
			rec.FrameRate,
			rec.Preset,
			string(rec.Status),
			nullableString(rec.ErrorKind),
			nullableString(rec.ErrorMessage),
			rec.StartedAt.Format(time.RFC3339Nano),
			rec.FinishedAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("insert build: %w", err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// ExportTo copies the database file to dest while holding the write lock so
// no writer races the copy. The WAL is checkpointed first so the copy is
// complete on its own.
func (s *Store) ExportTo(dest string) error {
	return s.withLock(func() error {
		if _, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
			return fmt.Errorf("checkpoint wal: %w", err)
		}
		return fileutil.CopyFile(s.path, dest)
	})
}

// GetByID fetches a build record by identifier. Returns nil when absent.
func (s *Store) GetByID(ctx context.Context, id int64) (*Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+recordColumns+` FROM builds WHERE id = ?`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get build: %w", err)
	}
	return rec, nil
}

// Recent returns the latest build attempts, newest first. When failedOnly is
// set, completed attempts are filtered out.
func (s *Store) Recent(ctx context.Context, limit int, failedOnly bool) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT ` + recordColumns + ` FROM builds`
	args := make([]any, 0, 2)
	if failedOnly {
		query += ` WHERE status = ?`
		args = append(args, string(StatusFailed))
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query builds: %w", err)
	}
	defer rows.Close()

	records := make([]Record, 0, limit)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan build: %w", err)
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate builds: %w", err)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var rec Record
	var status string
	var errorKind, errorMessage sql.NullString
	var startedAt, finishedAt string

	if err := row.Scan(
		&rec.ID,
		&rec.UUID,
		&rec.Output,
		&rec.SourceDir,
		&rec.FrameCount,
		&rec.FrameRate,
		&rec.Preset,
		&status,
		&errorKind,
		&errorMessage,
		&startedAt,
		&finishedAt,
	); err != nil {
		return nil, err
	}

	rec.Status = Status(status)
	rec.ErrorKind = errorKind.String
	rec.ErrorMessage = errorMessage.String
	var err error
	if rec.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	if rec.FinishedAt, err = time.Parse(time.RFC3339Nano, finishedAt); err != nil {
		return nil, fmt.Errorf("parse finished_at: %w", err)
	}
	return &rec, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
