package handler

import (
	"net/http"

	"github.com/pkordes/driverlog/backend/internal/domain"
	"github.com/pkordes/driverlog/backend/internal/middleware"
)

// RegisterRequest is the POST /auth/register body.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the POST /auth/login body.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token and the authenticated user.
type LoginResponse struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Register handles POST /auth/register.
func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeRequestError(w, "invalid request body")
		return
	}

	user, err := s.auth.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeError(r.Context(), w, err, "user")
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Login handles POST /auth/login.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeRequestError(w, "invalid request body")
		return
	}

	token, user, err := s.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(r.Context(), w, err, "user")
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{Token: token, User: user})
}

// Logout handles POST /auth/logout. Revokes the presented token; logging
// out twice is not an error.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.CurrentToken(r.Context())
	if !ok {
		writeError(r.Context(), w, domain.ErrUnauthorized, "token")
		return
	}

	if err := s.auth.Logout(r.Context(), token); err != nil {
		writeError(r.Context(), w, err, "token")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
