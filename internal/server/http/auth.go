package httpserver

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/godslighthouse/gsp-server/internal/errs"
)

type registerRequest struct {
	PhoneOrEmail string `json:"phone_or_email"`
	Password     string `json:"password"`
}

type passwordChangeRequest struct {
	UserIdentifier string `json:"user_identifier"`
	OldPassword    string `json:"old_password"`
	NewPassword    string `json:"new_password"`
}

type deleteAccountRequest struct {
	UserIdentifier string `json:"user_identifier"`
	Password       string `json:"password"`
}

type tokenResponse struct {
	Status         bool   `json:"status"`
	Message        string `json:"message,omitempty"`
	AccessToken    string `json:"access_token"`
	TokenType      string `json:"token_type"`
	UserIdentifier string `json:"user_identifier,omitempty"`
}

type statusResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// handleRegister creates a new account and issues a session token.
// The duplicate check rides on the store's unique constraint.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.PhoneOrEmail == "" || req.Password == "" {
		writeDetail(w, http.StatusBadRequest, "phone_or_email and password are required")
		return
	}
	access, err := s.auth.Register(r.Context(), req.PhoneOrEmail, req.Password)
	if err != nil {
		if errors.Is(err, errs.ErrAlreadyExists) {
			writeDetail(w, http.StatusBadRequest, "User already exists")
			return
		}
		s.log.Error("register", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Failed to register user")
		return
	}
	writeJSON(w, http.StatusCreated, tokenResponse{
		Status:      true,
		Message:     "User registered successfully",
		AccessToken: access,
		TokenType:   "bearer",
	})
}

// handleLogin authenticates and issues a session token. Unknown identifier
// and wrong password answer with identical detail text.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	access, err := s.auth.Login(r.Context(), req.PhoneOrEmail, req.Password)
	if err != nil {
		if errors.Is(err, errs.ErrUnauthorized) {
			writeDetail(w, http.StatusUnauthorized, "Incorrect phone/email or password")
			return
		}
		s.log.Error("login", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Failed to login")
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{
		Status:         true,
		Message:        "Login successful",
		AccessToken:    access,
		TokenType:      "bearer",
		UserIdentifier: req.PhoneOrEmail,
	})
}

// handleVerify reports whether the presented bearer token is still valid.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	subject, ok := s.bearerSubject(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":          true,
		"valid":           true,
		"user_identifier": subject,
	})
}

// handleRefresh issues a fresh token for the subject of a still-valid one.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	subject, ok := s.bearerSubject(w, r)
	if !ok {
		return
	}
	access, _, err := s.tokens.Issue(subject)
	if err != nil {
		s.log.Error("refresh", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Failed to refresh token")
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{
		Status:      true,
		Message:     "Token refreshed successfully",
		AccessToken: access,
		TokenType:   "bearer",
	})
}

// handleChangePassword verifies the old password and stores a new hash.
func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req passwordChangeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	err := s.auth.ChangePassword(r.Context(), req.UserIdentifier, req.OldPassword, req.NewPassword)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, statusResponse{Status: true, Message: "Password changed successfully"})
	case errors.Is(err, errs.ErrNotFound):
		writeDetail(w, http.StatusNotFound, "User not found")
	case errors.Is(err, errs.ErrUnauthorized):
		writeDetail(w, http.StatusUnauthorized, "Incorrect old password")
	default:
		s.log.Error("change password", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Failed to change password")
	}
}

// handleDeleteAccount verifies the password and purges every record for the
// identifier: user, progress, and notes.
func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	var req deleteAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	err := s.auth.DeleteAccount(r.Context(), req.UserIdentifier, req.Password)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, statusResponse{Status: true, Message: "Account deleted successfully"})
	case errors.Is(err, errs.ErrNotFound):
		writeDetail(w, http.StatusNotFound, "User not found")
	case errors.Is(err, errs.ErrUnauthorized):
		writeDetail(w, http.StatusUnauthorized, "Incorrect password")
	default:
		s.log.Error("delete account", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Failed to delete account")
	}
}
