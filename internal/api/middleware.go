package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/readupapp/readup-server/internal/http/response"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	contextKeyUserID   contextKey = "user_id"
	contextKeyUsername contextKey = "username"
)

// requireAuth validates the bearer token and attaches user context.
// A missing Authorization header is unauthenticated (401); a header that is
// present but carries an invalid or expired token is forbidden (403).
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "missing authorization header", s.logger)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Forbidden(w, "invalid authorization header format", s.logger)
			return
		}

		claims, err := s.tokens.VerifyToken(parts[1])
		if err != nil {
			response.Forbidden(w, "invalid or expired token", s.logger)
			return
		}

		ctx := context.WithValue(r.Context(), contextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, contextKeyUsername, claims.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getUserID extracts the authenticated user ID from request context.
// Returns empty string if not authenticated.
func getUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(contextKeyUserID).(string); ok {
		return userID
	}
	return ""
}
