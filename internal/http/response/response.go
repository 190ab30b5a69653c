// Package response provides standardized HTTP response formatting and error handling utilities.
package response

import (
	"encoding/json/v2"
	"errors"
	"log/slog"
	"net/http"

	domainerrors "github.com/readupapp/readup-server/internal/errors"
)

// Envelope provides a consistent JSON response structure.
type Envelope struct {
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Details any    `json:"details,omitempty"`
	Message string `json:"message,omitempty"`
	Success bool   `json:"success"`
}

// JSON writes a JSON response with the given status code using json/v2.
func JSON(w http.ResponseWriter, status int, data any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	envelope := Envelope{
		Success: status < 400,
		Data:    data,
	}

	// json/v2 MarshalWrite doesn't add a newline, but that's fine for HTTP responses.
	if err := json.MarshalWrite(w, envelope); err != nil {
		if logger != nil {
			logger.Error("Failed to encode JSON response", "error", err)
		}
	}
}

// Success writes a successful JSON response (200 OK).
func Success(w http.ResponseWriter, data any, logger *slog.Logger) {
	JSON(w, http.StatusOK, data, logger)
}

// Created writes a created response (201 Created).
func Created(w http.ResponseWriter, data any, logger *slog.Logger) {
	JSON(w, http.StatusCreated, data, logger)
}

// Message writes a 200 OK response carrying only a human-readable message.
func Message(w http.ResponseWriter, message string, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	envelope := Envelope{
		Success: true,
		Message: message,
	}

	if err := json.MarshalWrite(w, envelope); err != nil {
		if logger != nil {
			logger.Error("Failed to encode JSON response", "error", err)
		}
	}
}

// Error writes an error response with the given status code.
func Error(w http.ResponseWriter, status int, message string, logger *slog.Logger) {
	ErrorWithDetails(w, status, message, nil, logger)
}

// ErrorWithDetails writes an error response including structured field details.
func ErrorWithDetails(w http.ResponseWriter, status int, message string, details any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	envelope := Envelope{
		Success: false,
		Error:   message,
		Details: details,
	}

	if err := json.MarshalWrite(w, envelope); err != nil {
		if logger != nil {
			logger.Error("Failed to encode error response", "error", err)
		}
	}
}

// BadRequest writes a 400 Bad Request response.
func BadRequest(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusBadRequest, message, logger)
}

// Unauthorized writes a 401 Unauthorized response.
func Unauthorized(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusUnauthorized, message, logger)
}

// Forbidden writes a 403 Forbidden response.
func Forbidden(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusForbidden, message, logger)
}

// NotFound writes a 404 Not Found response.
func NotFound(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusNotFound, message, logger)
}

// Conflict writes a 409 Conflict response.
func Conflict(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusConflict, message, logger)
}

// TooManyRequests writes a 429 Too Many Requests response.
func TooManyRequests(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusTooManyRequests, message, logger)
}

// InternalError writes a 500 Internal Server Error response.
func InternalError(w http.ResponseWriter, message string, logger *slog.Logger) {
	Error(w, http.StatusInternalServerError, message, logger)
}

// HandleError writes an appropriate HTTP response based on the error type.
// Domain errors are mapped to their HTTP codes, unknown errors become 500.
func HandleError(w http.ResponseWriter, err error, logger *slog.Logger) {
	var domainErr *domainerrors.Error
	if errors.As(err, &domainErr) {
		ErrorWithDetails(w, domainErr.HTTPStatus(), domainErr.Message, domainErr.Details, logger)
		return
	}

	// Unknown error = 500
	if logger != nil {
		logger.Error("Unhandled error", "error", err)
	}
	InternalError(w, "internal server error", logger)
}
