package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readupapp/readup-server/internal/domain"
	domainerrors "github.com/readupapp/readup-server/internal/errors"
	"github.com/readupapp/readup-server/internal/id"
	"github.com/readupapp/readup-server/internal/store"
)

func TestCreateAndGetBook(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	book := testBook("1984", "George Orwell", time.Now().UTC())
	book.Description = "Dystopian classic"
	book.PublishedYear = 1949
	require.NoError(t, s.CreateBook(ctx, book))

	retrieved, err := s.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "1984", retrieved.Title)
	assert.Equal(t, "Dystopian classic", retrieved.Description)
	assert.Equal(t, 1949, retrieved.PublishedYear)
	assert.Equal(t, 0, retrieved.Reviews.Len())

	_, err = s.GetBook(ctx, id.MustGenerate(id.PrefixBook))
	assert.ErrorIs(t, err, store.ErrBookNotFound)
}

func TestListBooks_OrderAndFilters(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC()
	orwell := testBook("1984", "George Orwell", base.Add(time.Minute))
	orwell.Genre = "Dystopia"
	hobbit := testBook("The Hobbit", "J.R.R. Tolkien", base)

	require.NoError(t, s.CreateBook(ctx, orwell))
	require.NoError(t, s.CreateBook(ctx, hobbit))

	// Oldest first.
	page, err := s.ListBooks(ctx, store.BookFilter{}, store.PageParams{})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "The Hobbit", page.Items[0].Title)
	assert.Equal(t, "1984", page.Items[1].Title)

	// Genre is matched case-insensitively.
	page, err = s.ListBooks(ctx, store.BookFilter{Genre: "dystopia"}, store.PageParams{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "1984", page.Items[0].Title)

	// Author is a case-insensitive substring match.
	page, err = s.ListBooks(ctx, store.BookFilter{Author: "tolkien"}, store.PageParams{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "The Hobbit", page.Items[0].Title)
}

func TestListBooks_GenreSubstringFilter(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC()
	dystopian := testBook("Nineteen Eighty-Four", "George Orwell", base)
	dystopian.Genre = "Dystopian Fiction"
	romance := testBook("Emma", "Jane Austen", base.Add(time.Minute))
	romance.Genre = "Romance"

	require.NoError(t, s.CreateBook(ctx, dystopian))
	require.NoError(t, s.CreateBook(ctx, romance))

	// A partial genre matches, ignoring case.
	page, err := s.ListBooks(ctx, store.BookFilter{Genre: "fiction"}, store.PageParams{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Nineteen Eighty-Four", page.Items[0].Title)
}

func TestListBooks_AuthorFilterFoldsArgument(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	book := testBook("Blindness", "José Saramago", time.Now().UTC())
	require.NoError(t, s.CreateBook(ctx, book))

	// The filter argument is case-folded in Go before it reaches SQLite,
	// so non-ASCII uppercase in the query still matches.
	page, err := s.ListBooks(ctx, store.BookFilter{Author: "JOSÉ"}, store.PageParams{})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Blindness", page.Items[0].Title)
}

func TestListBooks_Pagination(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC()
	for i := range 25 {
		book := testBook("Book", "Author", base.Add(time.Duration(i)*time.Second))
		require.NoError(t, s.CreateBook(ctx, book))
	}

	page, err := s.ListBooks(ctx, store.BookFilter{}, store.PageParams{Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, 25, page.Total)
	assert.Equal(t, 3, page.TotalPages)
}

func TestUpdateBookReviews_Lifecycle(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	book := testBook("1984", "George Orwell", time.Now().UTC())
	require.NoError(t, s.CreateBook(ctx, book))

	alice := testReview("user-alice", 5)
	bob := testReview("user-bob", 3)

	for _, review := range []domain.Review{alice, bob} {
		_, err := s.UpdateBookReviews(ctx, book.ID, func(b *domain.Book) error {
			return b.AddReview(review)
		})
		require.NoError(t, err)
	}

	current, err := s.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, current.TotalReviews)
	assert.InDelta(t, 4.0, current.AverageRating, 0.001)

	// Insertion order survives the rewrite.
	reviews := current.Reviews.All()
	require.Len(t, reviews, 2)
	assert.Equal(t, alice.ID, reviews[0].ID)
	assert.Equal(t, bob.ID, reviews[1].ID)

	// Review resolves to its book.
	byReview, err := s.GetBookByReviewID(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, book.ID, byReview.ID)

	// Remove one.
	updated, err := s.UpdateBookReviews(ctx, book.ID, func(b *domain.Book) error {
		b.RemoveReview(alice.ID)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.TotalReviews)
	assert.InDelta(t, 3.0, updated.AverageRating, 0.001)

	_, err = s.GetBookByReviewID(ctx, alice.ID)
	assert.ErrorIs(t, err, store.ErrReviewNotFound)
}

func TestUpdateBookReviews_MutateErrorAborts(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	book := testBook("1984", "George Orwell", time.Now().UTC())
	require.NoError(t, s.CreateBook(ctx, book))

	review := testReview("user-alice", 4)
	_, err := s.UpdateBookReviews(ctx, book.ID, func(b *domain.Book) error {
		return b.AddReview(review)
	})
	require.NoError(t, err)

	_, err = s.UpdateBookReviews(ctx, book.ID, func(b *domain.Book) error {
		return domainerrors.Conflict("you have already reviewed this book")
	})
	assert.ErrorIs(t, err, domainerrors.ErrConflict)

	current, err := s.GetBook(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, current.TotalReviews)
}

func TestUpdateBookReviews_BookNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.UpdateBookReviews(context.Background(), id.MustGenerate(id.PrefixBook), func(*domain.Book) error {
		return nil
	})
	assert.ErrorIs(t, err, store.ErrBookNotFound)
}
