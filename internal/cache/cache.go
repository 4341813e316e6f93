// Package cache persists per-file check results so repeated runs skip
// unchanged files. Results are keyed by a BLAKE3 digest of the file
// contents; a stale digest simply misses.
package cache

import (
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/zeebo/blake3"
	_ "modernc.org/sqlite"
)

// DirName is the cache directory created under the project root.
const DirName = ".framecheck"

const schema = `
CREATE TABLE IF NOT EXISTS results (
	path        TEXT PRIMARY KEY,
	hash        TEXT NOT NULL,
	diagnostics TEXT NOT NULL,
	checked_at  INTEGER NOT NULL
);
`

// Entry is one cached diagnostic.
type Entry struct {
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Warning bool   `json:"warning,omitempty"`
	Parse   bool   `json:"parse,omitempty"`
}

// Store is a SQLite-backed result cache.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the cache under the given project root.
func Open(root string) (*Store, error) {
	dir := filepath.Join(root, DirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cache: create dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "cache.db"))
	if err != nil {
		return nil, fmt.Errorf("cache: open: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cache: init schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Key computes the content digest used as the cache key.
func Key(content []byte) string {
	sum := blake3.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// Get returns the cached entries for path when the stored digest matches
// key.
func (s *Store) Get(path, key string) ([]Entry, bool) {
	var hash, payload string
	row := s.db.QueryRow(`SELECT hash, diagnostics FROM results WHERE path = ?`, path)
	if err := row.Scan(&hash, &payload); err != nil {
		return nil, false
	}
	if hash != key {
		return nil, false
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(payload), &entries); err != nil {
		return nil, false
	}
	return entries, true
}

// Put stores the entries for path under the given digest, replacing any
// previous result.
func (s *Store) Put(path, key string, entries []Entry, checkedAt int64) error {
	if entries == nil {
		entries = []Entry{}
	}
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("cache: encode: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO results (path, hash, diagnostics, checked_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET hash = excluded.hash, diagnostics = excluded.diagnostics, checked_at = excluded.checked_at`,
		path, key, payload, checkedAt,
	)
	if err != nil {
		return fmt.Errorf("cache: store: %w", err)
	}
	return nil
}
