// Package store persists the session and the last known photo lists in a
// local SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"photogrip/internal/domain"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS session (
	id         INTEGER PRIMARY KEY CHECK (id = 1),
	token      TEXT NOT NULL,
	username   TEXT NOT NULL DEFAULT '',
	email      TEXT NOT NULL DEFAULT '',
	updated_at TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS photo_cache (
	list_key   TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	fetched_at TEXT NOT NULL
);
`

// Store is the local database. The session is mirrored in memory so token
// reads never touch the disk.
type Store struct {
	db *sql.DB

	mu      sync.RWMutex
	session domain.User
}

// Open opens or creates the database at path
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite storage: db path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("sqlite storage: create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite storage: open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.init(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	if _, err := s.db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return fmt.Errorf("sqlite storage: set busy timeout: %w", err)
	}
	if _, err := s.db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("sqlite storage: create schema: %w", err)
	}

	row := s.db.QueryRow(`SELECT token, username, email FROM session WHERE id = 1`)
	var u domain.User
	switch err := row.Scan(&u.Token, &u.Username, &u.Email); {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return fmt.Errorf("sqlite storage: load session: %w", err)
	default:
		s.session = u
	}
	return nil
}

// Close closes the underlying SQLite connection
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Session returns the stored user; a user without a token when signed out
func (s *Store) Session() domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// SaveSession replaces the stored session
func (s *Store) SaveSession(u domain.User) error {
	if u.Token == "" {
		return s.Clear()
	}
	_, err := s.db.Exec(`
		INSERT INTO session (id, token, username, email, updated_at) VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET token = excluded.token, username = excluded.username,
			email = excluded.email, updated_at = excluded.updated_at`,
		u.Token, u.Username, u.Email, utcNow())
	if err != nil {
		return fmt.Errorf("sqlite storage: save session: %w", err)
	}
	s.mu.Lock()
	s.session = domain.User{Username: u.Username, Email: u.Email, Token: u.Token}
	s.mu.Unlock()
	return nil
}

// Token returns the stored access token
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Token
}

// SetToken replaces the access token, keeping the rest of the session
func (s *Store) SetToken(token string) error {
	u := s.Session()
	u.Token = token
	return s.SaveSession(u)
}

// Clear signs out
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM session`); err != nil {
		return fmt.Errorf("sqlite storage: clear session: %w", err)
	}
	s.mu.Lock()
	s.session = domain.User{}
	s.mu.Unlock()
	return nil
}

// ListKey names a cached photo list
func ListKey(tab domain.Tab, personID string) string {
	if tab == domain.TabFind {
		return "person:" + personID
	}
	return string(tab)
}

// SavePhotos caches the list stored under key
func (s *Store) SavePhotos(ctx context.Context, key string, photos []domain.Photo) error {
	if photos == nil {
		photos = []domain.Photo{}
	}
	payload, err := json.Marshal(photos)
	if err != nil {
		return fmt.Errorf("sqlite storage: encode photos: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO photo_cache (list_key, payload, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(list_key) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`,
		key, string(payload), utcNow())
	if err != nil {
		return fmt.Errorf("sqlite storage: save photos %s: %w", key, err)
	}
	return nil
}

// LoadPhotos returns the cached list under key; ok is false when none is cached
func (s *Store) LoadPhotos(ctx context.Context, key string) (photos []domain.Photo, ok bool, err error) {
	var payload string
	err = s.db.QueryRowContext(ctx, `SELECT payload FROM photo_cache WHERE list_key = ?`, key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("sqlite storage: load photos %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(payload), &photos); err != nil {
		return nil, false, fmt.Errorf("sqlite storage: decode photos %s: %w", key, err)
	}
	return photos, true, nil
}

// DropPhotos removes a cached list, used when the session that owned it ends
func (s *Store) DropPhotos(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM photo_cache WHERE list_key = ?`, key); err != nil {
		return fmt.Errorf("sqlite storage: drop photos %s: %w", key, err)
	}
	return nil
}

func utcNow() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}
