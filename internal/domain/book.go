// Package domain contains the core business entities and domain logic for the ReadUp catalog.
package domain

import "time"

// Book represents a catalog entry with its embedded reviews and cached
// rating summary.
//
// Invariant: TotalReviews == Reviews.Len() and
// AverageRating == RecomputeAverage(Reviews.All()) after every mutation.
// Core fields (Title, Author, Genre, ...) are immutable after creation;
// only the review collection and its summary change.
type Book struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Genre         string    `json:"genre"`
	Description   string    `json:"description,omitempty"`
	PublishedYear int       `json:"publishedYear,omitempty"`
	AddedBy       string    `json:"addedBy"`
	CreatedAt     time.Time `json:"createdAt"`
	Reviews       ReviewSet `json:"reviews"`
	AverageRating float64   `json:"averageRating"`
	TotalReviews  int       `json:"totalReviews"`
}

// AddReview appends a review and refreshes the rating summary.
// The caller enforces rating bounds and the one-review-per-user rule.
func (b *Book) AddReview(r Review) error {
	if err := b.Reviews.Add(r); err != nil {
		return err
	}
	b.RecalculateRating()
	return nil
}

// RemoveReview deletes a review by ID and refreshes the rating summary.
// Returns false if the review does not exist.
func (b *Book) RemoveReview(id string) bool {
	if !b.Reviews.Remove(id) {
		return false
	}
	b.RecalculateRating()
	return true
}

// RecalculateRating recomputes the cached summary from the full review set.
// Call this after any in-place review mutation (e.g. a rating edit).
func (b *Book) RecalculateRating() {
	b.TotalReviews = b.Reviews.Len()
	b.AverageRating = RecomputeAverage(b.Reviews.All())
}
