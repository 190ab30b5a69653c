package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/readupapp/readup-server/internal/domain"
	"github.com/readupapp/readup-server/internal/http/response"
	"github.com/readupapp/readup-server/internal/service"
	"github.com/readupapp/readup-server/internal/store"
)

// ListBooksResponse is one page of the catalog.
type ListBooksResponse struct {
	Books      []BookSummary `json:"books"`
	Pagination Pagination    `json:"pagination"`
}

// BookDetailResponse is a single book with one page of its reviews.
type BookDetailResponse struct {
	Book              BookSummary       `json:"book"`
	Reviews           []domain.Review   `json:"reviews"`
	ReviewsPagination ReviewsPagination `json:"reviewsPagination"`
}

// handleCreateBook adds a book to the catalog.
// POST /books
func (s *Server) handleCreateBook(w http.ResponseWriter, r *http.Request) {
	var req service.CreateBookRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}

	book, err := s.bookService.CreateBook(r.Context(), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, newBookSummary(book), s.logger)
}

// handleListBooks returns a page of the catalog, optionally filtered by
// genre and author.
// GET /books?page&limit&author&genre
func (s *Server) handleListBooks(w http.ResponseWriter, r *http.Request) {
	filter := store.BookFilter{
		Genre:  r.URL.Query().Get("genre"),
		Author: r.URL.Query().Get("author"),
	}

	page, err := s.bookService.ListBooks(r.Context(), filter, pageParamsFromQuery(r))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, ListBooksResponse{
		Books:      newBookSummaries(page.Items),
		Pagination: newPagination(page),
	}, s.logger)
}

// handleGetBook returns a single book with a page of its reviews.
// GET /books/{id}?page&limit
func (s *Server) handleGetBook(w http.ResponseWriter, r *http.Request) {
	detail, err := s.bookService.GetBook(r.Context(), chi.URLParam(r, "id"), pageParamsFromQuery(r))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, BookDetailResponse{
		Book:              newBookSummary(detail.Book),
		Reviews:           detail.Reviews.Items,
		ReviewsPagination: newReviewsPagination(detail.Reviews),
	}, s.logger)
}
