package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readupapp/readup-server/internal/domain"
	"github.com/readupapp/readup-server/internal/id"
	"github.com/readupapp/readup-server/internal/store"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(dbPath, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.Close()
	})

	return s
}

func testUser(username, email string) *domain.User {
	return &domain.User{
		ID:           id.MustGenerate(id.PrefixUser),
		Username:     username,
		Email:        email,
		PasswordHash: "$argon2id$fake",
		CreatedAt:    time.Now().UTC(),
	}
}

func testBook(title, author string, createdAt time.Time) *domain.Book {
	return &domain.Book{
		ID:        id.MustGenerate(id.PrefixBook),
		Title:     title,
		Author:    author,
		Genre:     "Fiction",
		AddedBy:   "user-owner",
		CreatedAt: createdAt,
	}
}

func testReview(userID string, rating int) domain.Review {
	return domain.Review{
		ID:        id.MustGenerate(id.PrefixReview),
		UserID:    userID,
		Rating:    rating,
		Comment:   "a review",
		CreatedAt: time.Now().UTC(),
	}
}

func TestCreateUser_RoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	user := testUser("bookworm", "bookworm@example.com")
	require.NoError(t, s.CreateUser(ctx, user))

	retrieved, err := s.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, retrieved.Username)
	assert.Equal(t, user.Email, retrieved.Email)
	assert.Equal(t, user.PasswordHash, retrieved.PasswordHash)
	assert.WithinDuration(t, user.CreatedAt, retrieved.CreatedAt, time.Millisecond)
}

func TestCreateUser_UniquenessIsCaseInsensitive(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, testUser("BookWorm", "reader@example.com")))

	err := s.CreateUser(ctx, testUser("bookworm", "other@example.com"))
	assert.ErrorIs(t, err, store.ErrUsernameExists)

	err = s.CreateUser(ctx, testUser("different", "Reader@Example.COM"))
	assert.ErrorIs(t, err, store.ErrEmailExists)
}

func TestGetUserByUsernameAndEmail(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	user := testUser("bookworm", "bookworm@example.com")
	require.NoError(t, s.CreateUser(ctx, user))

	byName, err := s.GetUserByUsername(ctx, "BOOKWORM")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byName.ID)

	byEmail, err := s.GetUserByEmail(ctx, "Bookworm@Example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)

	_, err = s.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, store.ErrUserNotFound)

	_, err = s.GetUser(ctx, id.MustGenerate(id.PrefixUser))
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}
