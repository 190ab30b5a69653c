package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/readupapp/readup-server/internal/domain"
	domainerrors "github.com/readupapp/readup-server/internal/errors"
	"github.com/readupapp/readup-server/internal/id"
	"github.com/readupapp/readup-server/internal/store"
)

// ReviewService manages reviews and keeps each book's rating summary in
// step with them. All mutations go through the store's atomic book update
// so the summary can never drift from the review set.
type ReviewService struct {
	store  store.Store
	logger *slog.Logger
}

// NewReviewService creates a new review service.
func NewReviewService(store store.Store, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		store:  store,
		logger: logger,
	}
}

// AddReviewRequest contains a new review's rating and comment.
type AddReviewRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"max=2000"`
}

// UpdateReviewRequest is a partial review edit. Nil fields are left unchanged.
type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment" validate:"omitempty,max=2000"`
}

// AddReview adds userID's review to a book. A user may review each book at
// most once.
func (s *ReviewService) AddReview(ctx context.Context, bookID, userID string, req AddReviewRequest) (*domain.Review, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}
	if !id.Valid(id.PrefixBook, bookID) {
		return nil, domainerrors.Validation("invalid book id")
	}

	reviewID, err := id.Generate(id.PrefixReview)
	if err != nil {
		return nil, fmt.Errorf("generate review id: %w", err)
	}

	updated, err := s.store.UpdateBookReviews(ctx, bookID, func(b *domain.Book) error {
		if _, ok := b.Reviews.ByUser(userID); ok {
			return domainerrors.Conflict("you have already reviewed this book")
		}
		return b.AddReview(domain.Review{
			ID:        reviewID,
			UserID:    userID,
			Rating:    req.Rating,
			Comment:   req.Comment,
			CreatedAt: time.Now(),
		})
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("review added",
		"review_id", reviewID,
		"book_id", bookID,
		"user_id", userID,
		"rating", req.Rating,
	)

	review, _ := updated.Reviews.Get(reviewID)
	return review, nil
}

// UpdateReview applies a partial edit to userID's own review.
func (s *ReviewService) UpdateReview(ctx context.Context, reviewID, userID string, req UpdateReviewRequest) (*domain.Review, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}
	if !id.Valid(id.PrefixReview, reviewID) {
		return nil, domainerrors.Validation("invalid review id")
	}

	book, err := s.store.GetBookByReviewID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateBookReviews(ctx, book.ID, func(b *domain.Book) error {
		review, ok := b.Reviews.Get(reviewID)
		if !ok {
			return store.ErrReviewNotFound
		}
		if review.UserID != userID {
			return domainerrors.Forbidden("you can only modify your own reviews")
		}
		if req.Rating != nil {
			review.Rating = *req.Rating
		}
		if req.Comment != nil {
			review.Comment = *req.Comment
		}
		review.Touch()
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("review updated",
		"review_id", reviewID,
		"book_id", book.ID,
		"user_id", userID,
	)

	review, _ := updated.Reviews.Get(reviewID)
	return review, nil
}

// DeleteReview removes userID's own review from its book.
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID, userID string) error {
	if !id.Valid(id.PrefixReview, reviewID) {
		return domainerrors.Validation("invalid review id")
	}

	book, err := s.store.GetBookByReviewID(ctx, reviewID)
	if err != nil {
		return err
	}

	_, err = s.store.UpdateBookReviews(ctx, book.ID, func(b *domain.Book) error {
		review, ok := b.Reviews.Get(reviewID)
		if !ok {
			return store.ErrReviewNotFound
		}
		if review.UserID != userID {
			return domainerrors.Forbidden("you can only delete your own reviews")
		}
		b.RemoveReview(reviewID)
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("review deleted",
		"review_id", reviewID,
		"book_id", book.ID,
		"user_id", userID,
	)

	return nil
}
