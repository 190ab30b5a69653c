package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/readupapp/readup-server/internal/domain"
	domainerrors "github.com/readupapp/readup-server/internal/errors"
	"github.com/readupapp/readup-server/internal/normalize"
	"github.com/readupapp/readup-server/internal/store"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `id, title, author, genre, description, published_year,
	added_by, average_rating, total_reviews, created_at`

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.Book.
// Reviews are loaded separately.
func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var b domain.Book
	var createdAt string

	err := scanner.Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.Genre,
		&b.Description,
		&b.PublishedYear,
		&b.AddedBy,
		&b.AverageRating,
		&b.TotalReviews,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateBook inserts a new book.
func (s *Store) CreateBook(ctx context.Context, book *domain.Book) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO books (id, title, author, genre, description, published_year,
			added_by, average_rating, total_reviews, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		book.ID,
		book.Title,
		book.Author,
		book.Genre,
		book.Description,
		book.PublishedYear,
		book.AddedBy,
		book.AverageRating,
		book.TotalReviews,
		formatTime(book.CreatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return fmt.Errorf("create book: %w", err)
	}

	s.indexForSearch(ctx, book.ID)
	return nil
}

// GetBook retrieves a book by ID with its reviews in insertion order.
func (s *Store) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ?`, id)

	book, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.loadReviews(ctx, map[string]*domain.Book{book.ID: book}); err != nil {
		return nil, err
	}
	return book, nil
}

// ListBooks returns a page of books matching the filter, ordered by
// creation time (oldest first). Filtering happens in SQL; reviews are
// loaded for the returned page only.
func (s *Store) ListBooks(ctx context.Context, filter store.BookFilter, page store.PageParams) (*store.Page[*domain.Book], error) {
	page.Normalize()

	// Substring match, caseless. The arguments are case-folded in Go so the
	// comparison stays aligned with the badger backend; lower() keeps the
	// column side from depending on SQLite's ASCII-only LIKE.
	where := "1=1"
	var args []any
	if filter.Genre != "" {
		where += " AND lower(genre) LIKE '%' || ? || '%'"
		args = append(args, normalize.Fold(filter.Genre))
	}
	if filter.Author != "" {
		where += " AND lower(author) LIKE '%' || ? || '%'"
		args = append(args, normalize.Fold(filter.Author))
	}

	var total int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM books WHERE `+where, args...).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count books: %w", err)
	}

	query := `SELECT ` + bookColumns + ` FROM books WHERE ` + where +
		` ORDER BY created_at, id LIMIT ? OFFSET ?`
	rows, err := s.db.QueryContext(ctx, query, append(args, page.Limit, page.Offset())...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := []*domain.Book{}
	byID := make(map[string]*domain.Book)
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
		byID[book.ID] = book
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.loadReviews(ctx, byID); err != nil {
		return nil, err
	}

	return store.NewPage(books, total, page), nil
}

// loadReviews populates the review sets of the given books in one query.
func (s *Store) loadReviews(ctx context.Context, books map[string]*domain.Book) error {
	if len(books) == 0 {
		return nil
	}

	placeholders := make([]string, 0, len(books))
	args := make([]any, 0, len(books))
	for id := range books {
		placeholders = append(placeholders, "?")
		args = append(args, id)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, book_id, user_id, rating, comment, created_at, updated_at
		FROM reviews WHERE book_id IN (`+strings.Join(placeholders, ",")+`)
		ORDER BY book_id, position`, args...)
	if err != nil {
		return fmt.Errorf("load reviews: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			r         domain.Review
			bookID    string
			createdAt string
			updatedAt sql.NullString
		)
		if err := rows.Scan(&r.ID, &bookID, &r.UserID, &r.Rating, &r.Comment, &createdAt, &updatedAt); err != nil {
			return err
		}
		if r.CreatedAt, err = parseTime(createdAt); err != nil {
			return err
		}
		if r.UpdatedAt, err = parseNullableTime(updatedAt); err != nil {
			return err
		}
		if book, ok := books[bookID]; ok {
			if err := book.Reviews.Add(r); err != nil {
				return err
			}
		}
	}
	return rows.Err()
}

// UpdateBookReviews applies mutate to the book's review set, recalculates the
// rating summary, and persists everything in a single SQL transaction.
func (s *Store) UpdateBookReviews(ctx context.Context, bookID string, mutate func(*domain.Book) error) (*domain.Book, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	row := tx.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ?`, bookID)
	book, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := tx.QueryContext(ctx, `
		SELECT id, user_id, rating, comment, created_at, updated_at
		FROM reviews WHERE book_id = ? ORDER BY position`, bookID)
	if err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}
	for rows.Next() {
		var (
			r         domain.Review
			createdAt string
			updatedAt sql.NullString
		)
		if err := rows.Scan(&r.ID, &r.UserID, &r.Rating, &r.Comment, &createdAt, &updatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		if r.CreatedAt, err = parseTime(createdAt); err != nil {
			rows.Close()
			return nil, err
		}
		if r.UpdatedAt, err = parseNullableTime(updatedAt); err != nil {
			rows.Close()
			return nil, err
		}
		if err := book.Reviews.Add(r); err != nil {
			rows.Close()
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	if err := mutate(book); err != nil {
		var domainErr *domainerrors.Error
		if errors.As(err, &domainErr) {
			return nil, err
		}
		return nil, fmt.Errorf("update book reviews: %w", err)
	}

	book.RecalculateRating()

	// Rewrite the review set wholesale; handles adds, edits, and removals
	// uniformly and keeps position values dense.
	if _, err := tx.ExecContext(ctx, `DELETE FROM reviews WHERE book_id = ?`, bookID); err != nil {
		return nil, fmt.Errorf("clear reviews: %w", err)
	}
	for i, r := range book.Reviews.All() {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO reviews (id, book_id, user_id, rating, comment, created_at, updated_at, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.ID, bookID, r.UserID, r.Rating, r.Comment,
			formatTime(r.CreatedAt), nullTimeString(r.UpdatedAt), i,
		)
		if err != nil {
			return nil, fmt.Errorf("insert review: %w", err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE books SET average_rating = ?, total_reviews = ? WHERE id = ?`,
		book.AverageRating, book.TotalReviews, bookID)
	if err != nil {
		return nil, fmt.Errorf("update rating summary: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}

	s.indexForSearch(ctx, bookID)
	return book, nil
}

// GetBookByReviewID resolves a review ID to the book that contains it.
func (s *Store) GetBookByReviewID(ctx context.Context, reviewID string) (*domain.Book, error) {
	var bookID string
	err := s.db.QueryRowContext(ctx,
		`SELECT book_id FROM reviews WHERE id = ?`, reviewID).Scan(&bookID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrReviewNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.GetBook(ctx, bookID)
}
