// Package service provides the business logic layer for accounts, the book
// catalog, reviews, and search.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/readupapp/readup-server/internal/auth"
	"github.com/readupapp/readup-server/internal/domain"
	domainerrors "github.com/readupapp/readup-server/internal/errors"
	"github.com/readupapp/readup-server/internal/id"
	"github.com/readupapp/readup-server/internal/store"
	"github.com/readupapp/readup-server/internal/validation"
)

// Shared request validator for all services.
var validate = validation.New()

// AuthService handles user signup and login.
type AuthService struct {
	store  store.Store
	tokens *auth.TokenService
	logger *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(store store.Store, tokens *auth.TokenService, logger *slog.Logger) *AuthService {
	return &AuthService{
		store:  store,
		tokens: tokens,
		logger: logger,
	}
}

// SignupRequest contains signup information.
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=1024"`
}

// LoginRequest contains login credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the API shape of a user, without the password hash.
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuthResponse contains the authenticated user and their access token.
type AuthResponse struct {
	User  *UserResponse `json:"user"`
	Token string        `json:"token"`
}

func newUserResponse(u *domain.User) *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// Signup creates a new user account and issues an access token.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResponse, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate(id.PrefixUser)
	if err != nil {
		return nil, fmt.Errorf("generate user id: %w", err)
	}

	user := &domain.User{
		ID:           userID,
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}

	// Uniqueness is enforced by the store; its conflicts carry the right
	// HTTP status already.
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.IssueToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("user signed up",
		"user_id", user.ID,
		"username", user.Username,
	)

	return &AuthResponse{
		User:  newUserResponse(user),
		Token: token,
	}, nil
}

// Login authenticates a user by email and password and issues a fresh token.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Don't leak whether the email exists.
			return nil, domainerrors.InvalidCredentials("invalid email or password")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	valid, err := auth.VerifyPassword(user.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("verify password: %w", err)
	}
	if !valid {
		return nil, domainerrors.InvalidCredentials("invalid email or password")
	}

	token, err := s.tokens.IssueToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)

	return &AuthResponse{
		User:  newUserResponse(user),
		Token: token,
	}, nil
}
