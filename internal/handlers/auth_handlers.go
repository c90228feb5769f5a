package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"nova-suite/internal/auth"
)

// AuthHandler exposes the authentication status and the hosted login/logout
// redirect URLs
type AuthHandler struct {
	verifier *auth.Verifier
	logger   *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(verifier *auth.Verifier, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{verifier: verifier, logger: logger}
}

// Me returns the authentication status for the request's bearer token.
// Missing or invalid tokens yield an unauthenticated status, not an error
// GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.verifier.StatusFor(r))
}

// RedirectResponse carries a hosted auth page URL for the client to follow
type RedirectResponse struct {
	URL string `json:"url"`
}

// Login returns the hosted login page URL
// GET /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RedirectResponse{URL: h.verifier.LoginRedirectURL()})
}

// Logout returns the post-logout return URL
// POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, RedirectResponse{URL: h.verifier.LogoutReturnURL()})
}
