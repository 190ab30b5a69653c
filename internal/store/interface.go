// Package store defines the persistence contract for the ReadUp catalog.
//
// Two backends implement it: an embedded Badger key-value store
// (store/badger) and a SQLite store (store/sqlite). Both keep the
// denormalized rating summary on each book consistent with its reviews.
package store

import (
	"context"

	"github.com/readupapp/readup-server/internal/domain"
)

// BookFilter narrows ListBooks results. Empty fields match everything.
// Genre and Author matching is case-insensitive; Author is a substring match.
type BookFilter struct {
	Genre  string
	Author string
}

// Store is the persistence interface used by the service layer.
type Store interface {
	// Users.
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// Books.
	CreateBook(ctx context.Context, book *domain.Book) error
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	ListBooks(ctx context.Context, filter BookFilter, page PageParams) (*Page[*domain.Book], error)

	// Reviews. UpdateBookReviews loads the book, applies mutate, recalculates
	// the rating summary, and persists the result atomically. The mutate
	// function sees the current book state and may add, edit, or remove
	// reviews; returning an error aborts the whole operation.
	UpdateBookReviews(ctx context.Context, bookID string, mutate func(*domain.Book) error) (*domain.Book, error)

	// GetBookByReviewID resolves a review ID to the book that contains it.
	GetBookByReviewID(ctx context.Context, reviewID string) (*domain.Book, error)

	// SetSearchIndexer wires the search index so book writes keep it in sync.
	// Set after store creation to avoid circular dependencies.
	SetSearchIndexer(indexer SearchIndexer)

	Close() error
}

// SearchIndexer is the interface for updating the search index.
// Store uses this to keep search in sync without depending on search implementation.
type SearchIndexer interface {
	IndexBook(ctx context.Context, book *domain.Book) error
	DeleteBook(ctx context.Context, bookID string) error
}

// NoopSearchIndexer is a no-op implementation for testing.
type NoopSearchIndexer struct{}

// IndexBook is a no-op.
func (NoopSearchIndexer) IndexBook(context.Context, *domain.Book) error { return nil }

// DeleteBook is a no-op.
func (NoopSearchIndexer) DeleteBook(context.Context, string) error { return nil }

// NewNoopSearchIndexer creates a new no-op search indexer for testing.
func NewNoopSearchIndexer() SearchIndexer {
	return NoopSearchIndexer{}
}
