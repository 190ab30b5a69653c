package api

import (
	"bytes"
	"encoding/json/v2"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/readupapp/readup-server/internal/auth"
	"github.com/readupapp/readup-server/internal/ratelimit"
	"github.com/readupapp/readup-server/internal/search"
	"github.com/readupapp/readup-server/internal/service"
	"github.com/readupapp/readup-server/internal/store"
	badgerstore "github.com/readupapp/readup-server/internal/store/badger"
)

// testEnvelope mirrors the response envelope for decoding in tests.
type testEnvelope[T any] struct {
	Success bool              `json:"success"`
	Data    T                 `json:"data"`
	Error   string            `json:"error"`
	Details map[string]string `json:"details"`
	Message string            `json:"message"`
}

type testServer struct {
	server *Server
	store  store.Store
	tokens *auth.TokenService
}

type testServerOptions struct {
	authLimiter *ratelimit.KeyedRateLimiter
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()
	return setupTestServerWith(t, testServerOptions{})
}

func setupTestServerWith(t *testing.T, opts testServerOptions) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	st, err := badgerstore.New(t.TempDir(), logger)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, st.Close())
	})

	index, err := search.NewSearchIndex(search.Options{
		DataPath: t.TempDir(),
		Logger:   logger,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, index.Close())
	})
	st.SetSearchIndexer(index)

	tokens, err := auth.NewTokenService(strings.Repeat("cd", 32), time.Hour)
	require.NoError(t, err)

	server := NewServer(Options{
		Store:         st,
		AuthService:   service.NewAuthService(st, tokens, logger),
		BookService:   service.NewBookService(st, logger),
		ReviewService: service.NewReviewService(st, logger),
		SearchService: service.NewSearchService(index, st, logger),
		Tokens:        tokens,
		AuthLimiter:   opts.authLimiter,
		Logger:        logger,
	})

	return &testServer{server: server, store: st, tokens: tokens}
}

// request sends an HTTP request through the full router. A non-nil body is
// JSON encoded; a non-empty token is sent as a bearer credential.
func (ts *testServer) request(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.server.ServeHTTP(rec, req)
	return rec
}

// signup registers a user and returns their token.
func (ts *testServer) signup(t *testing.T, username, email string) string {
	t.Helper()

	rec := ts.request(t, http.MethodPost, "/signup", map[string]any{
		"username": username,
		"email":    email,
		"password": "a-long-enough-password",
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	env := decodeEnvelope[service.AuthResponse](t, rec)
	return env.Data.Token
}

// createBook adds a catalog entry and returns its ID.
func (ts *testServer) createBook(t *testing.T, token, title, author, genre string) string {
	t.Helper()

	rec := ts.request(t, http.MethodPost, "/books", map[string]any{
		"title":  title,
		"author": author,
		"genre":  genre,
	}, token)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	env := decodeEnvelope[BookSummary](t, rec)
	return env.Data.ID
}

func decodeEnvelope[T any](t *testing.T, rec *httptest.ResponseRecorder) testEnvelope[T] {
	t.Helper()

	var env testEnvelope[T]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	rec := ts.request(t, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope[HealthResponse](t, rec)
	require.True(t, env.Success)
	require.Equal(t, "healthy", env.Data.Status)
}
