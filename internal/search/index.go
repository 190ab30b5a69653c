package search

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/blevesearch/bleve/v2"

	"github.com/readupapp/readup-server/internal/domain"
)

// SearchIndex wraps a Bleve index with book-specific operations.
//
// Thread safety: All public methods are safe for concurrent use.
// The mutex protects against index corruption during rebuild operations.
type SearchIndex struct {
	index  bleve.Index
	path   string
	logger *slog.Logger
	mu     sync.RWMutex // Protects index operations during rebuild
}

// Options configures the search index.
type Options struct {
	DataPath string       // Directory for index storage
	Logger   *slog.Logger // Logger for operations (uses stderr if nil)
}

// mappingVersion is incremented whenever the index mapping changes.
// This triggers an automatic rebuild on startup when the version doesn't match.
const mappingVersion = "1"

// NewSearchIndex creates or opens a search index.
// If an existing index is found, it opens it. Otherwise, creates a new one.
// If the existing index is corrupted or has an outdated mapping, it's removed and recreated.
func NewSearchIndex(opts Options) (*SearchIndex, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	indexPath := filepath.Join(opts.DataPath, "search.bleve")
	versionPath := filepath.Join(opts.DataPath, "search.version")

	var index bleve.Index
	var err error
	needsRebuild := false

	indexExists := false
	if _, statErr := os.Stat(indexPath); statErr == nil {
		indexExists = true
	}

	if indexExists {
		existingVersion, readErr := os.ReadFile(versionPath)
		if readErr != nil {
			logger.Info("search index has no version file, will rebuild with current mapping",
				"new_version", mappingVersion,
			)
			needsRebuild = true
		} else if string(existingVersion) != mappingVersion {
			logger.Info("search index mapping version changed, will rebuild",
				"old_version", string(existingVersion),
				"new_version", mappingVersion,
			)
			needsRebuild = true
		}
	}

	if !needsRebuild && indexExists {
		index, err = bleve.Open(indexPath)
		if err != nil {
			logger.Warn("failed to open existing index, will recreate",
				"path", indexPath,
				"error", err,
			)
			needsRebuild = true
		}
	}

	if needsRebuild {
		if removeErr := os.RemoveAll(indexPath); removeErr != nil {
			return nil, fmt.Errorf("remove old index: %w", removeErr)
		}
		index = nil
	}

	if index == nil {
		indexMapping, err := buildIndexMapping()
		if err != nil {
			return nil, fmt.Errorf("build index mapping: %w", err)
		}
		index, err = bleve.New(indexPath, indexMapping)
		if err != nil {
			return nil, fmt.Errorf("create index: %w", err)
		}
		if writeErr := os.WriteFile(versionPath, []byte(mappingVersion), 0o644); writeErr != nil {
			logger.Warn("failed to write search version file", "error", writeErr)
		}
		logger.Info("created new search index", "path", indexPath, "mapping_version", mappingVersion)
	} else {
		logger.Info("opened existing search index", "path", indexPath)
	}

	return &SearchIndex{
		index:  index,
		path:   indexPath,
		logger: logger,
	}, nil
}

// Close closes the index and releases resources.
func (s *SearchIndex) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index.Close()
}

// IndexBook indexes a book, replacing any previous version of its document.
// Implements store.SearchIndexer.
func (s *SearchIndex) IndexBook(_ context.Context, book *domain.Book) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc := BookToSearchDocument(book)
	// Convert to map to ensure field names match the mapping (lowercase)
	return s.index.Index(doc.ID, doc.ToMap())
}

// DeleteBook removes a book from the index.
// Implements store.SearchIndexer.
func (s *SearchIndex) DeleteBook(_ context.Context, bookID string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.Delete(bookID)
}

// IndexBooks indexes multiple books in batches.
// This is significantly faster than calling IndexBook in a loop and is
// used when rebuilding the index from the store on startup.
func (s *SearchIndex) IndexBooks(books []*domain.Book) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	const batchSize = 500

	for i := 0; i < len(books); i += batchSize {
		end := min(i+batchSize, len(books))
		chunk := books[i:end]

		batch := s.index.NewBatch()
		for _, book := range chunk {
			doc := BookToSearchDocument(book)
			if err := batch.Index(doc.ID, doc.ToMap()); err != nil {
				return fmt.Errorf("batch index %s: %w", doc.ID, err)
			}
		}

		if err := s.index.Batch(batch); err != nil {
			return fmt.Errorf("commit batch %d-%d: %w", i, end, err)
		}
	}

	return nil
}

// DocumentCount returns the total number of indexed documents.
func (s *SearchIndex) DocumentCount() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index.DocCount()
}
