// Package badger implements the catalog store on an embedded Badger key-value database.
//
// Key layout:
//
//	user:<id>                    user document (JSON)
//	user:idx:username:<folded>   username -> user ID
//	user:idx:email:<folded>      email -> user ID
//	book:<id>                    book document with embedded reviews (JSON)
//	reviewbook:<reviewID>        review ID -> containing book ID
package badger

import (
	"encoding/json/v2"
	"errors"
	"fmt"
	"log/slog"

	badgerdb "github.com/dgraph-io/badger/v4"

	"github.com/readupapp/readup-server/internal/store"
)

const (
	userPrefix          = "user:"
	userByUsernameIndex = "user:idx:username:"
	userByEmailIndex    = "user:idx:email:"
	bookPrefix          = "book:"
	reviewBookPrefix    = "reviewbook:"
)

// Store wraps a Badger database instance.
type Store struct {
	db     *badgerdb.DB
	logger *slog.Logger

	// Search indexer for keeping search in sync with store changes.
	// Set via SetSearchIndexer after store creation to avoid circular dependencies.
	searchIndexer store.SearchIndexer
}

// New creates a new Store instance with the given database path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badgerdb.DefaultOptions(path)
	opts.Logger = nil            // Disable Badger's internal logging
	opts.SyncWrites = true       // Ensure writes are synced to disk to prevent corruption on crashes
	opts.CompactL0OnClose = true // Compact L0 tables on close for faster startup

	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", path)
	}

	return &Store{
		db:     db,
		logger: logger,
	}, nil
}

// Close gracefully closes the database connection.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}

// SetSearchIndexer sets the search indexer for keeping search in sync.
// This is set after store creation to avoid circular dependencies
// (store needs to exist before search service can be created).
func (s *Store) SetSearchIndexer(indexer store.SearchIndexer) {
	s.searchIndexer = indexer
}

// Helper methods for database operations.

// get retrieves a value by key.
func (s *Store) get(key []byte, dest any) error {
	return s.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, dest)
		})
	})
}

// exists checks if a key exists.
func (s *Store) exists(key []byte) (bool, error) {
	err := s.db.View(func(txn *badgerdb.Txn) error {
		_, err := txn.Get(key)
		return err
	})

	if errors.Is(err, badgerdb.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// setInTxn marshals value and stores it under key within txn.
func setInTxn(txn *badgerdb.Txn, key []byte, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return txn.Set(key, data)
}
