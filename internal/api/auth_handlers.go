package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/readupapp/readup-server/internal/http/response"
	"github.com/readupapp/readup-server/internal/service"
)

// handleSignup creates a new user account.
// POST /signup
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}

	resp, err := s.authService.Signup(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, resp, s.logger)
}

// handleLogin authenticates a user.
// POST /login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "invalid request body", s.logger)
		return
	}

	resp, err := s.authService.Login(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, resp, s.logger)
}
