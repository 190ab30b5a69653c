package store

import (
	"github.com/readupapp/readup-server/internal/errors"
)

// Sentinel errors returned by store implementations. Built on the shared
// domain error type so handlers can map them straight to HTTP statuses.
var (
	ErrUserNotFound   = errors.NotFound("user not found")
	ErrUsernameExists = errors.Conflict("username already taken")
	ErrEmailExists    = errors.Conflict("email already registered")

	ErrBookNotFound   = errors.NotFound("book not found")
	ErrReviewNotFound = errors.NotFound("review not found")
	ErrAlreadyExists  = errors.Conflict("resource already exists")
)
