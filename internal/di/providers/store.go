package providers

import (
	"fmt"
	"path/filepath"

	"github.com/samber/do/v2"

	"github.com/readupapp/readup-server/internal/config"
	"github.com/readupapp/readup-server/internal/logger"
	"github.com/readupapp/readup-server/internal/store"
	badgerstore "github.com/readupapp/readup-server/internal/store/badger"
	sqlitestore "github.com/readupapp/readup-server/internal/store/sqlite"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the configured storage backend.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	var (
		st  store.Store
		err error
	)
	switch cfg.Store.Driver {
	case config.DriverBadger:
		st, err = badgerstore.New(filepath.Join(cfg.Store.DataPath, "db"), log.Logger)
	case config.DriverSQLite:
		st, err = sqlitestore.Open(filepath.Join(cfg.Store.DataPath, "readup.db"), log.Logger)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}

	log.Info("Store initialized",
		"driver", cfg.Store.Driver,
		"path", cfg.Store.DataPath,
	)

	return &StoreHandle{Store: st}, nil
}
