package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"wagontrail/internal/session/migrations"
)

// SQLiteStore keeps JSON-encoded values in one SQLite bucket. List returns
// values in creation order.
type SQLiteStore[T any] struct {
	db     *sql.DB
	bucket string
}

// OpenSQLite opens (creating if needed) the database at path and applies
// migrations. Values are stored under bucket so several stores can share a
// file.
func OpenSQLite[T any](ctx context.Context, path, bucket string) (*SQLiteStore[T], error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if strings.TrimSpace(bucket) == "" {
		return nil, fmt.Errorf("storage bucket is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(ctx, db, migrations.FS); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &SQLiteStore[T]{db: db, bucket: bucket}, nil
}

// Close releases the database.
func (s *SQLiteStore[T]) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore[T]) Get(ctx context.Context, id string) (T, bool, error) {
	var zero T
	var body string
	err := s.db.QueryRowContext(ctx,
		`SELECT body FROM records WHERE bucket = ? AND id = ?`, s.bucket, id,
	).Scan(&body)
	if err == sql.ErrNoRows {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("get %s/%s: %w", s.bucket, id, err)
	}
	var v T
	if err := json.Unmarshal([]byte(body), &v); err != nil {
		return zero, false, fmt.Errorf("decode %s/%s: %w", s.bucket, id, err)
	}
	return v, true, nil
}

func (s *SQLiteStore[T]) Put(ctx context.Context, id string, v T) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s/%s: %w", s.bucket, id, err)
	}
	now := time.Now().UTC().UnixNano()
	_, err = s.db.ExecContext(ctx, `
INSERT INTO records (bucket, id, body, created_at, updated_at)
VALUES (?, ?, ?, ?, ?)
ON CONFLICT (bucket, id) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
`, s.bucket, id, string(body), now, now)
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", s.bucket, id, err)
	}
	return nil
}

func (s *SQLiteStore[T]) List(ctx context.Context) ([]T, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, body FROM records WHERE bucket = ? ORDER BY created_at, id`, s.bucket)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.bucket, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var id, body string
		if err := rows.Scan(&id, &body); err != nil {
			return nil, fmt.Errorf("scan %s: %w", s.bucket, err)
		}
		var v T
		if err := json.Unmarshal([]byte(body), &v); err != nil {
			return nil, fmt.Errorf("decode %s/%s: %w", s.bucket, id, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list %s: %w", s.bucket, err)
	}
	return out, nil
}

func (s *SQLiteStore[T]) NewID() string {
	return uuid.NewString()
}
