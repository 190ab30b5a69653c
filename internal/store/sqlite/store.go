// Package sqlite implements the catalog store on SQLite via modernc.org/sqlite.
//
// Books keep their rating summary in denormalized columns; reviews live in
// a child table with a UNIQUE(book_id, user_id) constraint backing the
// one-review-per-user rule.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"

	"github.com/readupapp/readup-server/internal/store"
)

//go:embed schema.sql
var schemaSQL string

// Store provides SQLite-backed persistence for the ReadUp server.
type Store struct {
	db     *sql.DB
	logger *slog.Logger

	searchIndexer store.SearchIndexer
}

// Open creates a new SQLite store at the given path.
// It configures WAL mode, sets pragmas, and runs schema migrations.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(time.Hour)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}

	if logger != nil {
		logger.Info("SQLite database opened successfully", "path", path)
	}

	return &Store{
		db:            db,
		logger:        logger,
		searchIndexer: store.NewNoopSearchIndexer(),
	}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// SetSearchIndexer sets the search indexer used for maintaining the search index.
func (s *Store) SetSearchIndexer(indexer store.SearchIndexer) {
	s.searchIndexer = indexer
}

// indexForSearch pushes a book into the search index, logging failures
// instead of propagating them.
func (s *Store) indexForSearch(ctx context.Context, bookID string) {
	if s.searchIndexer == nil {
		return
	}
	book, err := s.GetBook(ctx, bookID)
	if err != nil {
		return
	}
	if err := s.searchIndexer.IndexBook(ctx, book); err != nil {
		if s.logger != nil {
			s.logger.Warn("failed to index book for search", "book_id", bookID, "error", err)
		}
	}
}

// formatTime formats a time.Time to RFC3339Nano for storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// parseTime parses a RFC3339Nano string back to time.Time.
func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// nullTimeString returns a sql.NullString from a *time.Time.
func nullTimeString(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatTime(*t), Valid: true}
}

// parseNullableTime parses an optional time string.
func parseNullableTime(s sql.NullString) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := parseTime(s.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
