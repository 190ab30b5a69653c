package api

import (
	"net/http"
	"strings"

	"github.com/readupapp/readup-server/internal/http/response"
	"github.com/readupapp/readup-server/internal/search"
)

// SearchResponse is one page of search results, best rated first.
type SearchResponse struct {
	Query      string             `json:"query"`
	Books      []search.SearchHit `json:"books"`
	Pagination Pagination         `json:"pagination"`
}

// handleSearch finds books whose title or author contains the query.
// GET /search?q&page&limit
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		response.BadRequest(w, "query parameter q is required", s.logger)
		return
	}

	page := pageParamsFromQuery(r)
	result, err := s.searchService.Search(r.Context(), search.SearchParams{
		Query:  q,
		Limit:  page.Limit,
		Offset: page.Offset(),
	})
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	total := int(result.Total)
	totalPages := 0
	if page.Limit > 0 {
		totalPages = (total + page.Limit - 1) / page.Limit
	}

	response.Success(w, SearchResponse{
		Query: q,
		Books: result.Hits,
		Pagination: Pagination{
			CurrentPage: page.Page,
			TotalPages:  totalPages,
			TotalBooks:  total,
			HasNext:     page.Page < totalPages,
			HasPrev:     page.Page > 1 && total > 0,
		},
	}, s.logger)
}
