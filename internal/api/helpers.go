package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/readupapp/readup-server/internal/domain"
	"github.com/readupapp/readup-server/internal/store"
)

// pageParamsFromQuery reads page and limit query parameters. Absent or
// non-numeric values fall back to the defaults; there is no upper bound
// on limit.
func pageParamsFromQuery(r *http.Request) store.PageParams {
	params := store.PageParams{}
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		params.Page = v
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		params.Limit = v
	}
	params.Normalize()
	return params
}

// Pagination describes one page of books in API responses.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalBooks  int  `json:"totalBooks"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

func newPagination[T any](p *store.Page[T]) Pagination {
	return Pagination{
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
		TotalBooks:  p.Total,
		HasNext:     p.HasNext(),
		HasPrev:     p.HasPrev(),
	}
}

// ReviewsPagination describes one page of a book's reviews.
type ReviewsPagination struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalReviews int  `json:"totalReviews"`
	HasNext      bool `json:"hasNext"`
	HasPrev      bool `json:"hasPrev"`
}

func newReviewsPagination(p *store.Page[domain.Review]) ReviewsPagination {
	return ReviewsPagination{
		CurrentPage:  p.CurrentPage,
		TotalPages:   p.TotalPages,
		TotalReviews: p.Total,
		HasNext:      p.HasNext(),
		HasPrev:      p.HasPrev(),
	}
}

// BookSummary is the API shape of a book without its review list.
type BookSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Genre         string    `json:"genre"`
	Description   string    `json:"description,omitempty"`
	PublishedYear int       `json:"publishedYear,omitempty"`
	AddedBy       string    `json:"addedBy"`
	CreatedAt     time.Time `json:"createdAt"`
	AverageRating float64   `json:"averageRating"`
	TotalReviews  int       `json:"totalReviews"`
}

func newBookSummary(b *domain.Book) BookSummary {
	return BookSummary{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		Genre:         b.Genre,
		Description:   b.Description,
		PublishedYear: b.PublishedYear,
		AddedBy:       b.AddedBy,
		CreatedAt:     b.CreatedAt,
		AverageRating: b.AverageRating,
		TotalReviews:  b.TotalReviews,
	}
}

func newBookSummaries(books []*domain.Book) []BookSummary {
	out := make([]BookSummary, 0, len(books))
	for _, b := range books {
		out = append(out, newBookSummary(b))
	}
	return out
}
