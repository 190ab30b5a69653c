package domain

import (
	"encoding/json/v2"
	"fmt"
	"math"
	"time"
)

// Rating bounds, inclusive.
const (
	MinRating = 1
	MaxRating = 5
)

// ValidRating reports whether r is an acceptable review rating.
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// Review is a single reader's rating and comment on a book.
// A review has no existence outside its containing book, and at most one
// review per (book, user) pair may exist.
type Review struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Rating    int        `json:"rating"`
	Comment   string     `json:"comment"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Touch records that the review was edited.
func (r *Review) Touch() {
	now := time.Now()
	r.UpdatedAt = &now
}

// RecomputeAverage returns the mean rating rounded to one decimal place,
// or 0 when there are no reviews.
//
// Rounding is half-away-from-zero (math.Round), so a mean of 4.25 becomes 4.3.
// This function is the single source of truth for a book's rating summary;
// every mutating path calls it rather than recomputing inline.
func RecomputeAverage(reviews []Review) float64 {
	if len(reviews) == 0 {
		return 0
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}

	mean := float64(sum) / float64(len(reviews))
	return math.Round(mean*10) / 10
}

// ReviewSet is the ordered collection of reviews embedded in a Book.
//
// It keeps reviews keyed by ID for O(1) lookup during update/delete while
// preserving insertion order for listing. On the wire and in the store it
// serializes as a plain JSON array.
type ReviewSet struct {
	order []string
	byID  map[string]*Review
}

// Len returns the number of reviews in the set.
func (s *ReviewSet) Len() int {
	return len(s.order)
}

// Get returns the review with the given ID, or false if absent.
// The returned pointer aliases the set; mutations through it are visible.
func (s *ReviewSet) Get(id string) (*Review, bool) {
	r, ok := s.byID[id]
	return r, ok
}

// ByUser returns the review authored by userID, or false if the user has not
// reviewed this book. Linear in the number of reviews.
func (s *ReviewSet) ByUser(userID string) (*Review, bool) {
	for _, id := range s.order {
		if r := s.byID[id]; r.UserID == userID {
			return r, true
		}
	}
	return nil, false
}

// Add appends a review to the set. The caller is responsible for the
// one-review-per-user invariant; Add only rejects duplicate review IDs.
func (s *ReviewSet) Add(r Review) error {
	if s.byID == nil {
		s.byID = make(map[string]*Review)
	}
	if _, exists := s.byID[r.ID]; exists {
		return fmt.Errorf("duplicate review id %s", r.ID)
	}
	s.order = append(s.order, r.ID)
	s.byID[r.ID] = &r
	return nil
}

// Remove deletes the review with the given ID.
// Returns false if no such review exists.
func (s *ReviewSet) Remove(id string) bool {
	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	for i, rid := range s.order {
		if rid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

// All returns the reviews in insertion order.
func (s *ReviewSet) All() []Review {
	out := make([]Review, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.byID[id])
	}
	return out
}

// MarshalJSON serializes the set as an ordered array.
func (s ReviewSet) MarshalJSON() ([]byte, error) {
	reviews := make([]Review, 0, len(s.order))
	for _, id := range s.order {
		reviews = append(reviews, *s.byID[id])
	}
	return json.Marshal(reviews)
}

// UnmarshalJSON rebuilds the keyed structure from an ordered array.
func (s *ReviewSet) UnmarshalJSON(data []byte) error {
	var reviews []Review
	if err := json.Unmarshal(data, &reviews); err != nil {
		return err
	}

	s.order = make([]string, 0, len(reviews))
	s.byID = make(map[string]*Review, len(reviews))
	for _, r := range reviews {
		if err := s.Add(r); err != nil {
			return err
		}
	}
	return nil
}
