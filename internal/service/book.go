package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/readupapp/readup-server/internal/domain"
	domainerrors "github.com/readupapp/readup-server/internal/errors"
	"github.com/readupapp/readup-server/internal/id"
	"github.com/readupapp/readup-server/internal/store"
)

// BookService orchestrates catalog operations.
type BookService struct {
	store  store.Store
	logger *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(store store.Store, logger *slog.Logger) *BookService {
	return &BookService{
		store:  store,
		logger: logger,
	}
}

// CreateBookRequest contains the fields for a new catalog entry.
// Duplicate (title, author) pairs are allowed; the catalog does not
// deduplicate editions.
type CreateBookRequest struct {
	Title         string `json:"title" validate:"required,min=1,max=500"`
	Author        string `json:"author" validate:"required,min=1,max=200"`
	Genre         string `json:"genre" validate:"required,min=1,max=100"`
	Description   string `json:"description" validate:"max=5000"`
	PublishedYear int    `json:"publishedYear" validate:"omitempty,min=0,max=9999"`
}

// BookDetail is a single book with one page of its reviews.
type BookDetail struct {
	Book    *domain.Book
	Reviews *store.Page[domain.Review]
}

// CreateBook adds a new book to the catalog on behalf of userID.
func (s *BookService) CreateBook(ctx context.Context, userID string, req CreateBookRequest) (*domain.Book, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	bookID, err := id.Generate(id.PrefixBook)
	if err != nil {
		return nil, fmt.Errorf("generate book id: %w", err)
	}

	book := &domain.Book{
		ID:            bookID,
		Title:         req.Title,
		Author:        req.Author,
		Genre:         req.Genre,
		Description:   req.Description,
		PublishedYear: req.PublishedYear,
		AddedBy:       userID,
		CreatedAt:     time.Now(),
	}

	if err := s.store.CreateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	s.logger.Info("book created",
		"book_id", book.ID,
		"title", book.Title,
		"added_by", userID,
	)

	return book, nil
}

// GetBook retrieves a single book with one page of its reviews.
// A structurally invalid ID is a validation error; a well-formed ID that
// matches nothing is a not-found.
func (s *BookService) GetBook(ctx context.Context, bookID string, reviewPage store.PageParams) (*BookDetail, error) {
	if !id.Valid(id.PrefixBook, bookID) {
		return nil, domainerrors.Validation("invalid book id")
	}

	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	return &BookDetail{
		Book:    book,
		Reviews: store.Paginate(book.Reviews.All(), reviewPage),
	}, nil
}

// ListBooks returns a page of the catalog, optionally filtered by genre
// and author.
func (s *BookService) ListBooks(ctx context.Context, filter store.BookFilter, page store.PageParams) (*store.Page[*domain.Book], error) {
	return s.store.ListBooks(ctx, filter, page)
}
