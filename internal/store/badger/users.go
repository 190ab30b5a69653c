package badger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	badgerdb "github.com/dgraph-io/badger/v4"

	"github.com/readupapp/readup-server/internal/domain"
	"github.com/readupapp/readup-server/internal/normalize"
	"github.com/readupapp/readup-server/internal/store"
)

// CreateUser creates a new user and its username/email lookup indexes.
// Username and email uniqueness is case-insensitive.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	key := []byte(userPrefix + user.ID)
	usernameKey := []byte(userByUsernameIndex + normalize.Username(user.Username))
	emailKey := []byte(userByEmailIndex + normalize.Email(user.Email))

	err := s.db.Update(func(txn *badgerdb.Txn) error {
		// Uniqueness checks inside the same transaction as the writes.
		if _, err := txn.Get(usernameKey); err == nil {
			return store.ErrUsernameExists
		} else if !errors.Is(err, badgerdb.ErrKeyNotFound) {
			return err
		}

		if _, err := txn.Get(emailKey); err == nil {
			return store.ErrEmailExists
		} else if !errors.Is(err, badgerdb.ErrKeyNotFound) {
			return err
		}

		if err := setInTxn(txn, key, user); err != nil {
			return err
		}
		if err := txn.Set(usernameKey, []byte(user.ID)); err != nil {
			return err
		}
		return txn.Set(emailKey, []byte(user.ID))
	})
	if err != nil {
		if errors.Is(err, store.ErrUsernameExists) || errors.Is(err, store.ErrEmailExists) {
			return err
		}
		return fmt.Errorf("create user: %w", err)
	}

	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelInfo, "user created",
			slog.String("id", user.ID),
			slog.String("username", user.Username),
		)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (s *Store) GetUser(_ context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := s.get([]byte(userPrefix+id), &user)
	if err != nil {
		if errors.Is(err, badgerdb.ErrKeyNotFound) {
			return nil, store.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username (case-insensitive).
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.getUserByIndex(ctx, userByUsernameIndex+normalize.Username(username))
}

// GetUserByEmail retrieves a user by email address (case-insensitive).
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getUserByIndex(ctx, userByEmailIndex+normalize.Email(email))
}

func (s *Store) getUserByIndex(ctx context.Context, indexKey string) (*domain.User, error) {
	var userID string
	err := s.db.View(func(txn *badgerdb.Txn) error {
		item, err := txn.Get([]byte(indexKey))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			userID = string(val)
			return nil
		})
	})
	if err != nil {
		if errors.Is(err, badgerdb.ErrKeyNotFound) {
			return nil, store.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user by index: %w", err)
	}
	return s.GetUser(ctx, userID)
}
