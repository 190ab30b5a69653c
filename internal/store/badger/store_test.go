package badger

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/readupapp/readup-server/internal/domain"
	"github.com/readupapp/readup-server/internal/id"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := New(dbPath, nil)
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
