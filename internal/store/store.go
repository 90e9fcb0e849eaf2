package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists listen metadata, genre tags, the ephemeral cover-art
// cache and the deferred task queue in a single SQLite database.
type Store struct {
	db *sql.DB
}

// New opens (or creates) the database at dbPath and prepares the schema.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Single connection keeps in-memory databases consistent and is
	// plenty for this workload.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA journal_mode = WAL",
		"PRAGMA temp_store = MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS listen_meta (
			listen_id INTEGER NOT NULL,
			field TEXT NOT NULL,
			value TEXT NOT NULL,
			PRIMARY KEY (listen_id, field)
		);

		CREATE TABLE IF NOT EXISTS listen_tags (
			listen_id INTEGER NOT NULL,
			classification TEXT NOT NULL,
			tag TEXT NOT NULL,
			PRIMARY KEY (listen_id, classification, tag)
		);

		CREATE TABLE IF NOT EXISTS cache (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			expires_at INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS tasks (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			args TEXT NOT NULL,
			run_at INTEGER NOT NULL,
			done BOOLEAN DEFAULT 0,
			error TEXT,
			created_at INTEGER NOT NULL DEFAULT (strftime('%s', 'now'))
		);

		CREATE INDEX IF NOT EXISTS idx_tasks_due ON tasks(done, run_at);
		CREATE INDEX IF NOT EXISTS idx_cache_expiry ON cache(expires_at);
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SetMeta writes a key-value metadata field for a listen, replacing any
// previous value for that field.
func (s *Store) SetMeta(ctx context.Context, listenID int64, field, value string) error {
	query := `
		INSERT INTO listen_meta (listen_id, field, value)
		VALUES (?, ?, ?)
		ON CONFLICT (listen_id, field) DO UPDATE SET value = excluded.value
	`

	if _, err := s.db.ExecContext(ctx, query, listenID, field, value); err != nil {
		return fmt.Errorf("failed to set meta field %q: %w", field, err)
	}

	return nil
}

// GetMeta returns the value of a metadata field for a listen. The second
// return value reports whether the field was present.
func (s *Store) GetMeta(ctx context.Context, listenID int64, field string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		"SELECT value FROM listen_meta WHERE listen_id = ? AND field = ?",
		listenID, field,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get meta field %q: %w", field, err)
	}

	return value, true, nil
}

// DeleteMeta removes a metadata field from a listen. Deleting an absent
// field is not an error.
func (s *Store) DeleteMeta(ctx context.Context, listenID int64, field string) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM listen_meta WHERE listen_id = ? AND field = ?",
		listenID, field,
	); err != nil {
		return fmt.Errorf("failed to delete meta field %q: %w", field, err)
	}

	return nil
}

// SetTags replaces the full tag set of a classification for a listen.
// Passing an empty set clears the classification.
func (s *Store) SetTags(ctx context.Context, listenID int64, classification string, tags []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM listen_tags WHERE listen_id = ? AND classification = ?",
		listenID, classification,
	); err != nil {
		return fmt.Errorf("failed to clear tags: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT OR IGNORE INTO listen_tags (listen_id, classification, tag) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, tag := range tags {
		if _, err := stmt.ExecContext(ctx, listenID, classification, tag); err != nil {
			return fmt.Errorf("failed to insert tag %q: %w", tag, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetTags returns the tag set of a classification for a listen.
func (s *Store) GetTags(ctx context.Context, listenID int64, classification string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT tag FROM listen_tags WHERE listen_id = ? AND classification = ? ORDER BY tag",
		listenID, classification,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var tag string
		if err := rows.Scan(&tag); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tags: %w", err)
	}

	return tags, nil
}

// CacheSet stores a value under key with a time-to-live. An existing
// entry is overwritten, TTL included.
func (s *Store) CacheSet(ctx context.Context, key, value string, ttl time.Duration) error {
	expiresAt := time.Now().Add(ttl).Unix()

	query := `
		INSERT INTO cache (key, value, expires_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value, expires_at = excluded.expires_at
	`

	if _, err := s.db.ExecContext(ctx, query, key, value, expiresAt); err != nil {
		return fmt.Errorf("failed to set cache key %q: %w", key, err)
	}

	return nil
}

// CacheGet returns the cached value for key. Expired entries are
// reported as misses and removed.
func (s *Store) CacheGet(ctx context.Context, key string) (string, bool, error) {
	var value string
	var expiresAt int64
	err := s.db.QueryRowContext(ctx,
		"SELECT value, expires_at FROM cache WHERE key = ?", key,
	).Scan(&value, &expiresAt)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get cache key %q: %w", key, err)
	}

	if time.Now().Unix() >= expiresAt {
		_, _ = s.db.ExecContext(ctx, "DELETE FROM cache WHERE key = ?", key)
		return "", false, nil
	}

	return value, true, nil
}
