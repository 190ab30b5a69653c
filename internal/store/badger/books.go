package badger

import (
	"context"
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	badgerdb "github.com/dgraph-io/badger/v4"

	"github.com/readupapp/readup-server/internal/domain"
	domainerrors "github.com/readupapp/readup-server/internal/errors"
	"github.com/readupapp/readup-server/internal/normalize"
	"github.com/readupapp/readup-server/internal/store"
)

// CreateBook creates a new book.
func (s *Store) CreateBook(ctx context.Context, book *domain.Book) error {
	key := []byte(bookPrefix + book.ID)

	exists, err := s.exists(key)
	if err != nil {
		return fmt.Errorf("check book exists: %w", err)
	}
	if exists {
		return store.ErrAlreadyExists
	}

	err = s.db.Update(func(txn *badgerdb.Txn) error {
		return setInTxn(txn, key, book)
	})
	if err != nil {
		return fmt.Errorf("create book: %w", err)
	}

	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "book created",
			slog.String("id", book.ID),
			slog.String("title", book.Title),
			slog.String("author", book.Author),
		)
	}

	s.indexForSearch(ctx, book)
	return nil
}

// GetBook retrieves a book by ID.
func (s *Store) GetBook(_ context.Context, id string) (*domain.Book, error) {
	var book domain.Book
	err := s.get([]byte(bookPrefix+id), &book)
	if err != nil {
		if errors.Is(err, badgerdb.ErrKeyNotFound) {
			return nil, store.ErrBookNotFound
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return &book, nil
}

// ListBooks returns a page of books matching the filter, ordered by
// creation time (oldest first).
func (s *Store) ListBooks(_ context.Context, filter store.BookFilter, page store.PageParams) (*store.Page[*domain.Book], error) {
	var books []*domain.Book

	err := s.db.View(func(txn *badgerdb.Txn) error {
		opts := badgerdb.DefaultIteratorOptions
		opts.Prefix = []byte(bookPrefix)

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var book domain.Book
				if err := json.Unmarshal(val, &book); err != nil {
					return fmt.Errorf("unmarshal book: %w", err)
				}
				if matchesFilter(&book, filter) {
					books = append(books, &book)
				}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	sort.Slice(books, func(i, j int) bool {
		if books[i].CreatedAt.Equal(books[j].CreatedAt) {
			return books[i].ID < books[j].ID
		}
		return books[i].CreatedAt.Before(books[j].CreatedAt)
	})

	return store.Paginate(books, page), nil
}

func matchesFilter(book *domain.Book, filter store.BookFilter) bool {
	if filter.Genre != "" && !normalize.ContainsFold(book.Genre, filter.Genre) {
		return false
	}
	if filter.Author != "" && !normalize.ContainsFold(book.Author, filter.Author) {
		return false
	}
	return true
}

// UpdateBookReviews applies mutate to the book's review set, recalculates the
// rating summary, and persists everything in a single transaction. The
// reviewbook index is kept in step with reviews added or removed by mutate.
func (s *Store) UpdateBookReviews(ctx context.Context, bookID string, mutate func(*domain.Book) error) (*domain.Book, error) {
	key := []byte(bookPrefix + bookID)

	var book domain.Book
	err := s.db.Update(func(txn *badgerdb.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			if errors.Is(err, badgerdb.ErrKeyNotFound) {
				return store.ErrBookNotFound
			}
			return err
		}
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &book)
		}); err != nil {
			return fmt.Errorf("unmarshal book: %w", err)
		}

		before := reviewIDs(&book)

		if err := mutate(&book); err != nil {
			return err
		}

		book.RecalculateRating()

		if err := setInTxn(txn, key, &book); err != nil {
			return err
		}

		after := reviewIDs(&book)

		// Index additions.
		for revID := range after {
			if !before[revID] {
				if err := txn.Set([]byte(reviewBookPrefix+revID), []byte(book.ID)); err != nil {
					return err
				}
			}
		}
		// Index removals.
		for revID := range before {
			if !after[revID] {
				if err := txn.Delete([]byte(reviewBookPrefix + revID)); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		var domainErr *domainerrors.Error
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, fmt.Errorf("update book reviews: %w", err)
	}

	s.indexForSearch(ctx, &book)
	return &book, nil
}

// GetBookByReviewID resolves a review ID to the book that contains it.
func (s *Store) GetBookByReviewID(ctx context.Context, reviewID string) (*domain.Book, error) {
	var bookID string
	err := s.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get([]byte(reviewBookPrefix + reviewID))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			bookID = string(val)
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, badgerdb.ErrKeyNotFound) {
			return nil, store.ErrReviewNotFound
		}
		return nil, fmt.Errorf("get book by review: %w", err)
	}
	return s.GetBook(ctx, bookID)
}

func reviewIDs(book *domain.Book) map[string]bool {
	ids := make(map[string]bool, book.Reviews.Len())
	for _, r := range book.Reviews.All() {
		ids[r.ID] = true
	}
	return ids
}

// indexForSearch pushes the book into the search index. Index failures are
// logged but never fail the store write.
func (s *Store) indexForSearch(ctx context.Context, book *domain.Book) {
	if s.searchIndexer == nil {
		return
	}
	if err := s.searchIndexer.IndexBook(ctx, book); err != nil {
		if s.logger != nil {
			s.logger.Warn("failed to index book for search", "book_id", book.ID, "error", err)
		}
	}
}
