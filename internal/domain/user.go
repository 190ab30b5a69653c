package domain

import "time"

// User represents a reader account in the catalog.
// Accounts are created on signup and never mutated or deleted afterwards.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash,omitempty"` // Stored hashed, filter from API responses
	CreatedAt    time.Time `json:"createdAt"`
}
