// Package search provides full-text book search using Bleve.
// Queries match title or author as case-insensitive substrings, with
// results ordered by community rating.
package search

import (
	"github.com/readupapp/readup-server/internal/domain"
)

// SearchDocument is the document structure for the Bleve index.
//
// Title and author are indexed through a lowercasing single-token analyzer,
// so wildcard queries give substring semantics without tokenization
// splitting multi-word titles apart.
type SearchDocument struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Genre         string  `json:"genre,omitempty"`
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int     `json:"total_reviews"`
	CreatedAt     int64   `json:"created_at"` // Unix millis
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *SearchDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":             d.ID,
		"title":          d.Title,
		"author":         d.Author,
		"average_rating": d.AverageRating,
		"total_reviews":  d.TotalReviews,
		"created_at":     d.CreatedAt,
	}
	if d.Genre != "" {
		m["genre"] = d.Genre
	}
	return m
}

// BookToSearchDocument converts a domain Book to a SearchDocument.
func BookToSearchDocument(book *domain.Book) *SearchDocument {
	return &SearchDocument{
		ID:            book.ID,
		Title:         book.Title,
		Author:        book.Author,
		Genre:         book.Genre,
		AverageRating: book.AverageRating,
		TotalReviews:  book.TotalReviews,
		CreatedAt:     book.CreatedAt.UnixMilli(),
	}
}
