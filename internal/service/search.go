package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/readupapp/readup-server/internal/search"
	"github.com/readupapp/readup-server/internal/store"
)

// SearchService bridges the search index with the data store.
type SearchService struct {
	index  *search.SearchIndex
	store  store.Store
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(index *search.SearchIndex, store store.Store, logger *slog.Logger) *SearchService {
	return &SearchService{
		index:  index,
		store:  store,
		logger: logger,
	}
}

// Search runs a substring query over book titles and authors, ordered by
// average rating then review count.
func (s *SearchService) Search(ctx context.Context, params search.SearchParams) (*search.SearchResult, error) {
	return s.index.Search(ctx, params)
}

// Reindex rebuilds the search index from the store. Called on startup so
// the index survives mapping changes and data-path moves.
func (s *SearchService) Reindex(ctx context.Context) error {
	const batchSize = 500

	page := store.PageParams{Page: 1, Limit: batchSize}
	indexed := 0
	for {
		result, err := s.store.ListBooks(ctx, store.BookFilter{}, page)
		if err != nil {
			return fmt.Errorf("list books: %w", err)
		}
		if len(result.Items) == 0 {
			break
		}

		if err := s.index.IndexBooks(result.Items); err != nil {
			return fmt.Errorf("index books: %w", err)
		}
		indexed += len(result.Items)

		if !result.HasNext() {
			break
		}
		page.Page++
	}

	s.logger.Info("search reindex complete", "books", indexed)
	return nil
}
