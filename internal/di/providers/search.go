package providers

import (
	"github.com/samber/do/v2"

	"github.com/readupapp/readup-server/internal/config"
	"github.com/readupapp/readup-server/internal/logger"
	"github.com/readupapp/readup-server/internal/search"
	"github.com/readupapp/readup-server/internal/service"
)

// SearchIndexHandle wraps the search index with shutdown capability.
type SearchIndexHandle struct {
	*search.SearchIndex
}

// Shutdown implements do.Shutdownable.
func (h *SearchIndexHandle) Shutdown() error {
	return h.Close()
}

// ProvideSearchIndex provides the Bleve search index and wires it to the
// store so book writes keep it in sync.
func ProvideSearchIndex(i do.Injector) (*SearchIndexHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)

	index, err := search.NewSearchIndex(search.Options{
		DataPath: cfg.Store.DataPath,
		Logger:   log.Logger,
	})
	if err != nil {
		return nil, err
	}

	storeHandle.SetSearchIndexer(index)

	docCount, _ := index.DocumentCount()
	log.Info("Search index initialized", "documents", docCount)

	return &SearchIndexHandle{SearchIndex: index}, nil
}

// ProvideSearchService provides the search service.
func ProvideSearchService(i do.Injector) (*service.SearchService, error) {
	indexHandle := do.MustInvoke[*SearchIndexHandle](i)
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewSearchService(indexHandle.SearchIndex, storeHandle.Store, log.Logger), nil
}
