package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// SearchParams configures a search query.
type SearchParams struct {
	Query string // Substring matched against title and author

	// Pagination
	Limit  int
	Offset int
}

// DefaultSearchParams returns sensible defaults.
func DefaultSearchParams() SearchParams {
	return SearchParams{
		Limit:  10,
		Offset: 0,
	}
}

// SearchResult represents the search results.
type SearchResult struct {
	Query  string      `json:"query"`
	Total  uint64      `json:"total"`
	TookMs int64       `json:"took_ms"`
	Hits   []SearchHit `json:"hits"`
}

// SearchHit represents a single matching book.
type SearchHit struct {
	ID            string  `json:"id"`
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	Genre         string  `json:"genre,omitempty"`
	AverageRating float64 `json:"averageRating"`
	TotalReviews  int     `json:"totalReviews"`
}

// Search executes a search query. Results are ordered by average rating,
// then by review count, both descending.
func (s *SearchIndex) Search(ctx context.Context, params SearchParams) (*SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if params.Limit <= 0 {
		params.Limit = DefaultSearchParams().Limit
	}
	if params.Offset < 0 {
		params.Offset = 0
	}

	searchQuery := buildSearchQuery(params.Query)

	searchRequest := bleve.NewSearchRequestOptions(searchQuery, params.Limit, params.Offset, false)
	searchRequest.SortBy([]string{"-average_rating", "-total_reviews"})
	searchRequest.Fields = []string{
		"id", "title", "author", "genre", "average_rating", "total_reviews",
	}

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &SearchResult{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]SearchHit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		searchHit := SearchHit{ID: hit.ID}

		if t, ok := hit.Fields["title"].(string); ok {
			searchHit.Title = t
		}
		if a, ok := hit.Fields["author"].(string); ok {
			searchHit.Author = a
		}
		if g, ok := hit.Fields["genre"].(string); ok {
			searchHit.Genre = g
		}
		if r, ok := hit.Fields["average_rating"].(float64); ok {
			searchHit.AverageRating = r
		}
		if tr, ok := hit.Fields["total_reviews"].(float64); ok {
			searchHit.TotalReviews = int(tr)
		}

		result.Hits = append(result.Hits, searchHit)
	}

	return result, nil
}

// buildSearchQuery constructs the Bleve query for a substring search
// across title and author. An empty query matches everything.
func buildSearchQuery(q string) query.Query {
	q = strings.TrimSpace(q)
	if q == "" {
		return bleve.NewMatchAllQuery()
	}

	// Title and author are indexed as single lowercased tokens, so a
	// wildcard query on the lowercased input gives substring matching.
	pattern := "*" + escapeWildcard(strings.ToLower(q)) + "*"

	titleQuery := bleve.NewWildcardQuery(pattern)
	titleQuery.SetField("title")

	authorQuery := bleve.NewWildcardQuery(pattern)
	authorQuery.SetField("author")

	return bleve.NewDisjunctionQuery(titleQuery, authorQuery)
}

// escapeWildcard escapes characters with special meaning in wildcard queries
// so user input is always treated literally.
func escapeWildcard(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r == '*' || r == '?' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
