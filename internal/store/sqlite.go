package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	// Registers the "sqlite" driver (pure Go).
	_ "modernc.org/sqlite"

	"github.com/Smartnaka/SkulBell/internal/domain"
)

// lecturesKey is the single fixed key the collection blob lives under.
const lecturesKey = "lectures"

// envelopeVersion is the canonical persisted envelope version.
const envelopeVersion = 1

// envelope wraps the persisted lecture collection. Version 0 values
// (the legacy {data, savedAt} shape) and raw top-level arrays are still
// readable; they become version 1 on the next save.
type envelope struct {
	Version int              `json:"version"`
	SavedAt int64            `json:"savedAt,omitempty"`
	Data    []domain.Lecture `json:"data"`
}

// SQLiteRepo implements Repo using an embedded SQLite database.
type SQLiteRepo struct {
	db  *sql.DB
	log *zap.Logger
}

// OpenSQLite opens (or creates) the SQLite database at the given path,
// applies recommended PRAGMAs, runs SQL migrations, and returns a repository.
func OpenSQLite(ctx context.Context, path string, log *zap.Logger) (*SQLiteRepo, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Reasonable pooling for SQLite; it's a single-writer engine.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := applyPragmas(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := RunMigrations(ctx, db, log); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	return &SQLiteRepo{db: db, log: log}, nil
}

// applyPragmas configures the SQLite connection for durability and concurrency.
func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA foreign_keys=ON;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying database resources.
func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}

// SaveLectures serializes the full collection into a versioned envelope
// and upserts it under the fixed key in one statement, so a failed write
// leaves the previous value intact.
func (r *SQLiteRepo) SaveLectures(ctx context.Context, lectures []domain.Lecture) error {
	now := time.Now().UTC()
	raw, err := json.Marshal(envelope{
		Version: envelopeVersion,
		SavedAt: now.UnixMilli(),
		Data:    lectures,
	})
	if err != nil {
		return fmt.Errorf("encode lectures: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO blobs (key, value, saved_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value    = excluded.value,
			saved_at = excluded.saved_at`,
		lecturesKey, raw, now.Unix(),
	)
	if err != nil {
		return fmt.Errorf("save lectures: %w", err)
	}
	return nil
}

// LoadLectures reads and decodes the collection. Any failure — missing
// row, query error, malformed JSON, unknown envelope version — is logged
// and treated as "no data".
func (r *SQLiteRepo) LoadLectures(ctx context.Context) []domain.Lecture {
	var raw []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM blobs WHERE key = ?`, lecturesKey,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return []domain.Lecture{}
	}
	if err != nil {
		r.log.Warn("load lectures failed, treating as empty", zap.Error(err))
		return []domain.Lecture{}
	}

	lectures, err := decodeLectures(raw)
	if err != nil {
		r.log.Warn("stored lectures unreadable, treating as empty", zap.Error(err))
		return []domain.Lecture{}
	}
	return lectures
}

// decodeLectures accepts the canonical envelope plus the two legacy
// shapes the old storage paths wrote: a versionless {data, savedAt}
// wrapper and a raw top-level array.
func decodeLectures(raw []byte) ([]domain.Lecture, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Data != nil {
		if env.Version > envelopeVersion {
			return nil, fmt.Errorf("unknown envelope version %d", env.Version)
		}
		return env.Data, nil
	}

	var legacy []domain.Lecture
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return nil, fmt.Errorf("decode lectures: %w", err)
	}
	return legacy, nil
}

// ClearLectures removes the persisted collection.
func (r *SQLiteRepo) ClearLectures(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM blobs WHERE key = ?`, lecturesKey,
	); err != nil {
		return fmt.Errorf("clear lectures: %w", err)
	}
	return nil
}

// PutReminder registers one pending notification. Existing rows for the
// same lecture are untouched.
func (r *SQLiteRepo) PutReminder(ctx context.Context, rem Reminder) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO reminders (id, lecture_id, fire_at, kind, title, body)
		VALUES (?, ?, ?, ?, ?, ?)`,
		rem.ID, rem.LectureID, rem.FireAt.UTC().Unix(), rem.Kind, rem.Title, rem.Body,
	)
	return err
}

func (r *SQLiteRepo) DeleteReminder(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = ?`, id)
	return err
}

func (r *SQLiteRepo) DeleteRemindersForLecture(ctx context.Context, lectureID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE lecture_id = ?`, lectureID)
	return err
}

// ListDueReminders returns up to limit reminders due at or before now,
// earliest first.
func (r *SQLiteRepo) ListDueReminders(ctx context.Context, now time.Time, limit int) ([]Reminder, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, lecture_id, fire_at, kind, title, body
		FROM reminders
		WHERE fire_at <= ?
		ORDER BY fire_at ASC
		LIMIT ?`,
		now.UTC().Unix(), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []Reminder
	for rows.Next() {
		rem, err := scanReminder(rows.Scan)
		if err != nil {
			return nil, err
		}
		res = append(res, rem)
	}
	return res, rows.Err()
}

// NextReminder returns the earliest pending reminder, nil when the
// registry is empty.
func (r *SQLiteRepo) NextReminder(ctx context.Context) (*Reminder, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, lecture_id, fire_at, kind, title, body
		FROM reminders
		ORDER BY fire_at ASC
		LIMIT 1`,
	)
	rem, err := scanReminder(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rem, nil
}

func (r *SQLiteRepo) CountReminders(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reminders`).Scan(&n)
	return n, err
}

func scanReminder(scan func(...any) error) (Reminder, error) {
	var (
		rem    Reminder
		fireAt int64
	)
	if err := scan(&rem.ID, &rem.LectureID, &fireAt, &rem.Kind, &rem.Title, &rem.Body); err != nil {
		return Reminder{}, err
	}
	rem.FireAt = time.Unix(fireAt, 0).UTC()
	return rem, nil
}
