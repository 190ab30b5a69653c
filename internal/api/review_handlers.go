package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/readupapp/readup-server/internal/http/response"
	"github.com/readupapp/readup-server/internal/service"
)

// handleAddReview adds the authenticated user's review to a book.
// POST /books/{id}/reviews
func (s *Server) handleAddReview(w http.ResponseWriter, r *http.Request) {
	var req service.AddReviewRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}

	review, err := s.reviewService.AddReview(r.Context(), chi.URLParam(r, "id"), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, review, s.logger)
}

// handleUpdateReview applies a partial edit to the authenticated user's
// own review.
// PUT /reviews/{id}
func (s *Server) handleUpdateReview(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateReviewRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}

	review, err := s.reviewService.UpdateReview(r.Context(), chi.URLParam(r, "id"), getUserID(r.Context()), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, review, s.logger)
}

// handleDeleteReview removes the authenticated user's own review.
// DELETE /reviews/{id}
func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	err := s.reviewService.DeleteReview(r.Context(), chi.URLParam(r, "id"), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Message(w, "review deleted", s.logger)
}
