package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	key        TEXT PRIMARY KEY,
	body       BLOB NOT NULL,
	updated_at TEXT NOT NULL
);
`

// SQLite is a Store backed by a single-table SQLite database. There is no
// schema versioning: readers tolerate absent or malformed snapshots by
// treating them as empty.
type SQLite struct {
	db     *sql.DB
	now    func() time.Time
	logger *slog.Logger
}

// OpenSQLite opens (creating if necessary) the snapshot database at dsn and
// applies the schema.
func OpenSQLite(dsn string, logger *slog.Logger) (*SQLite, error) {
	if logger == nil {
		logger = slog.Default()
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("cache: open %s: %w", dsn, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: apply schema: %w", err)
	}

	return &SQLite{db: db, now: time.Now, logger: logger}, nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Write stores value under key, replacing any previous snapshot. Failures
// are logged and swallowed; the caller never observes them.
func (s *SQLite) Write(ctx context.Context, key string, value any) {
	if s == nil || s.db == nil {
		return
	}

	body, err := json.Marshal(value)
	if err != nil {
		s.logger.Warn("snapshot serialization failed", "key", key, "error", err)
		return
	}

	query := `
		INSERT INTO snapshots (key, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, key, body, s.now().UTC().Format(time.RFC3339)); err != nil {
		s.logger.Warn("snapshot write failed", "key", key, "error", err)
	}
}

// Read loads the snapshot stored under key into dest. Missing or corrupt
// snapshots report absent rather than failing.
func (s *SQLite) Read(ctx context.Context, key string, dest any) bool {
	if s == nil || s.db == nil {
		return false
	}

	var body []byte
	err := s.db.QueryRowContext(ctx, `SELECT body FROM snapshots WHERE key = ?`, key).Scan(&body)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("snapshot read failed", "key", key, "error", err)
		}
		return false
	}

	if err := json.Unmarshal(body, dest); err != nil {
		s.logger.Warn("snapshot deserialization failed", "key", key, "error", err)
		return false
	}
	return true
}
