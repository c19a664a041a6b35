// Package store caches extracted article text in SQLite so re-runs inside
// the freshness window skip redundant fetches.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store is the SQLite-backed article cache. The pipeline works without
// one; a nil *Store disables caching.
type Store struct {
	db   *sql.DB
	path string
}

// CachedArticle is one cache row.
type CachedArticle struct {
	URL         string
	Title       string
	CleanedText string
	RawHTML     string
	FetchedAt   time.Time
}

// New opens (creating if needed) the cache database under dataDir.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "newsbrief.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return s, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS articles (
		url TEXT PRIMARY KEY,
		title TEXT,
		cleaned_text TEXT,
		raw_html TEXT,
		fetched_at DATETIME
	);`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create articles table: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put stores (or replaces) one extracted article.
func (s *Store) Put(a CachedArticle) error {
	if s == nil {
		return nil
	}
	_, err := s.db.Exec(`
	INSERT OR REPLACE INTO articles (url, title, cleaned_text, raw_html, fetched_at)
	VALUES (?, ?, ?, ?, ?)`,
		a.URL, a.Title, a.CleanedText, a.RawHTML, a.FetchedAt)
	if err != nil {
		return fmt.Errorf("failed to cache article: %w", err)
	}
	return nil
}

// Get returns a cached article no older than maxAge, or nil on a miss.
func (s *Store) Get(url string, maxAge time.Duration) (*CachedArticle, error) {
	if s == nil {
		return nil, nil
	}
	cutoff := time.Now().UTC().Add(-maxAge)
	row := s.db.QueryRow(`
	SELECT url, title, cleaned_text, raw_html, fetched_at
	FROM articles WHERE url = ? AND fetched_at > ?`, url, cutoff)

	var a CachedArticle
	err := row.Scan(&a.URL, &a.Title, &a.CleanedText, &a.RawHTML, &a.FetchedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan cached article: %w", err)
	}
	return &a, nil
}

// Cleanup drops cache rows older than maxAge.
func (s *Store) Cleanup(maxAge time.Duration) error {
	if s == nil {
		return nil
	}
	_, err := s.db.Exec(`DELETE FROM articles WHERE fetched_at < ?`,
		time.Now().UTC().Add(-maxAge))
	if err != nil {
		return fmt.Errorf("failed to clean old articles: %w", err)
	}
	return nil
}
