package response

import (
	"encoding/json/v2"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/readupapp/readup-server/internal/errors"
)

func TestJSON_Success(t *testing.T) {
	w := httptest.NewRecorder()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	data := map[string]string{"message": "test"}
	JSON(w, http.StatusOK, data, logger)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	var result Envelope
	err := json.Unmarshal(w.Body.Bytes(), &result)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.NotNil(t, result.Data)
	assert.Empty(t, result.Error)
}

func TestJSON_NilLogger(t *testing.T) {
	w := httptest.NewRecorder()

	JSON(w, http.StatusOK, map[string]string{"message": "test"}, nil)

	assert.Equal(t, http.StatusOK, w.Code)

	var result Envelope
	err := json.Unmarshal(w.Body.Bytes(), &result)
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestCreated(t *testing.T) {
	w := httptest.NewRecorder()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	Created(w, map[string]string{"id": "new-id"}, logger)

	assert.Equal(t, http.StatusCreated, w.Code)

	var result Envelope
	err := json.Unmarshal(w.Body.Bytes(), &result)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.NotNil(t, result.Data)
}

func TestMessage(t *testing.T) {
	w := httptest.NewRecorder()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	Message(w, "review deleted successfully", logger)

	assert.Equal(t, http.StatusOK, w.Code)

	var result Envelope
	err := json.Unmarshal(w.Body.Bytes(), &result)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.Nil(t, result.Data)
	assert.Equal(t, "review deleted successfully", result.Message)
}

func TestError_Generic(t *testing.T) {
	w := httptest.NewRecorder()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	Error(w, http.StatusInternalServerError, "something went wrong", logger)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	var result Envelope
	err := json.Unmarshal(w.Body.Bytes(), &result)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Nil(t, result.Data)
	assert.Equal(t, "something went wrong", result.Error)
}

func TestErrorHelpers(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name    string
		fn      func(http.ResponseWriter, string, *slog.Logger)
		status  int
		message string
	}{
		{"bad request", BadRequest, http.StatusBadRequest, "invalid input"},
		{"unauthorized", Unauthorized, http.StatusUnauthorized, "authentication required"},
		{"forbidden", Forbidden, http.StatusForbidden, "access denied"},
		{"not found", NotFound, http.StatusNotFound, "resource not found"},
		{"conflict", Conflict, http.StatusConflict, "already exists"},
		{"internal", InternalError, http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			tt.fn(w, tt.message, logger)

			assert.Equal(t, tt.status, w.Code)

			var result Envelope
			err := json.Unmarshal(w.Body.Bytes(), &result)
			require.NoError(t, err)

			assert.False(t, result.Success)
			assert.Equal(t, tt.message, result.Error)
		})
	}
}

func TestHandleError_DomainError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", domainerrors.NotFound("book not found"), http.StatusNotFound},
		{"conflict", domainerrors.Conflict("you have already reviewed this book"), http.StatusConflict},
		{"forbidden", domainerrors.Forbidden("you can only edit your own reviews"), http.StatusForbidden},
		{"validation", domainerrors.Validation("rating must be between 1 and 5"), http.StatusBadRequest},
		{"invalid credentials", domainerrors.InvalidCredentials("invalid email or password"), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			HandleError(w, tt.err, logger)

			assert.Equal(t, tt.status, w.Code)

			var result Envelope
			err := json.Unmarshal(w.Body.Bytes(), &result)
			require.NoError(t, err)
			assert.False(t, result.Success)
			assert.NotEmpty(t, result.Error)
		})
	}
}

func TestHandleError_ValidationDetails(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w := httptest.NewRecorder()

	HandleError(w, domainerrors.ValidationWithDetails("validation failed", map[string]string{
		"email": "must be a valid email address",
	}), logger)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var result Envelope
	err := json.Unmarshal(w.Body.Bytes(), &result)
	require.NoError(t, err)
	assert.Equal(t, "validation failed", result.Error)
	require.NotNil(t, result.Details)
}

func TestHandleError_Unknown(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	w := httptest.NewRecorder()

	HandleError(w, errors.New("disk exploded"), logger)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var result Envelope
	err := json.Unmarshal(w.Body.Bytes(), &result)
	require.NoError(t, err)
	assert.Equal(t, "internal server error", result.Error, "internal details must not leak to clients")
}

func TestStatusCodeBoundary(t *testing.T) {
	tests := []struct {
		name            string
		status          int
		expectedSuccess bool
	}{
		{"200 OK", 200, true},
		{"201 Created", 201, true},
		{"399 Custom Success", 399, true},
		{"400 Bad Request", 400, false},
		{"500 Internal Server Error", 500, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))

			JSON(w, tt.status, nil, logger)

			var result Envelope
			err := json.Unmarshal(w.Body.Bytes(), &result)
			require.NoError(t, err)

			assert.Equal(t, tt.expectedSuccess, result.Success, "Status %d should have Success=%v", tt.status, tt.expectedSuccess)
		})
	}
}
