package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/readupapp/readup-server/internal/ratelimit"
	"github.com/readupapp/readup-server/internal/service"
)

func TestSignup_Success(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.request(t, http.MethodPost, "/signup", map[string]any{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "a-long-enough-password",
	}, "")

	assert.Equal(t, http.StatusCreated, rec.Code)

	env := decodeEnvelope[service.AuthResponse](t, rec)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.Data.Token)
	assert.Equal(t, "alice", env.Data.User.Username)
	assert.Equal(t, "alice@example.com", env.Data.User.Email)
}

func TestSignup_NeverLeaksPasswordHash(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.request(t, http.MethodPost, "/signup", map[string]any{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "a-long-enough-password",
	}, "")

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "passwordHash")
	assert.NotContains(t, rec.Body.String(), "argon2id")
}

func TestSignup_ValidationErrors(t *testing.T) {
	ts := setupTestServer(t)

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing username", map[string]any{"email": "a@example.com", "password": "long-enough-pass"}},
		{"short username", map[string]any{"username": "ab", "email": "a@example.com", "password": "long-enough-pass"}},
		{"invalid email", map[string]any{"username": "alice", "email": "nope", "password": "long-enough-pass"}},
		{"short password", map[string]any{"username": "alice", "email": "a@example.com", "password": "short"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.request(t, http.MethodPost, "/signup", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			env := decodeEnvelope[any](t, rec)
			assert.False(t, env.Success)
			assert.NotEmpty(t, env.Error)
		})
	}
}

func TestSignup_MalformedBody(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.request(t, http.MethodPost, "/signup", "not an object", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignup_DuplicateUsernameConflict(t *testing.T) {
	ts := setupTestServer(t)
	ts.signup(t, "alice", "alice@example.com")

	rec := ts.request(t, http.MethodPost, "/signup", map[string]any{
		"username": "alice",
		"email":    "other@example.com",
		"password": "a-long-enough-password",
	}, "")

	assert.Equal(t, http.StatusConflict, rec.Code)
	env := decodeEnvelope[any](t, rec)
	assert.Equal(t, "username already taken", env.Error)
}

func TestLogin_Success(t *testing.T) {
	ts := setupTestServer(t)
	ts.signup(t, "alice", "alice@example.com")

	rec := ts.request(t, http.MethodPost, "/login", map[string]any{
		"email":    "alice@example.com",
		"password": "a-long-enough-password",
	}, "")

	assert.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope[service.AuthResponse](t, rec)
	assert.True(t, env.Success)
	assert.NotEmpty(t, env.Data.Token)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	ts := setupTestServer(t)
	ts.signup(t, "alice", "alice@example.com")

	tests := []struct {
		name string
		body map[string]any
	}{
		{"wrong password", map[string]any{"email": "alice@example.com", "password": "wrong-password-here"}},
		{"unknown email", map[string]any{"email": "nobody@example.com", "password": "a-long-enough-password"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.request(t, http.MethodPost, "/login", tt.body, "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code)

			env := decodeEnvelope[any](t, rec)
			assert.Equal(t, "invalid email or password", env.Error)
		})
	}
}

func TestAuthEndpoints_RateLimited(t *testing.T) {
	ts := setupTestServerWith(t, testServerOptions{
		authLimiter: ratelimit.New(0.001, 2),
	})

	body := map[string]any{"email": "alice@example.com", "password": "a-long-enough-password"}
	for i := 0; i < 2; i++ {
		rec := ts.request(t, http.MethodPost, "/login", body, "")
		assert.NotEqual(t, http.StatusTooManyRequests, rec.Code)
	}

	rec := ts.request(t, http.MethodPost, "/login", body, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
}
