package handler

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"blog-api/internal/container"
	"blog-api/internal/middleware"
	"blog-api/pkg/errors"
)

const stateCookieName = "oauth_state"

// AuthHandler handles authentication related requests
type AuthHandler struct {
	container   *container.Container
	oauthConfig *oauth2.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(c *container.Container) *AuthHandler {
	cfg := c.GetConfig()

	return &AuthHandler{
		container: c,
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.OAuthRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// GoogleLogin handles POST /auth/google: exchanges a Google ID token for an
// internal session token
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	var req struct {
		IDToken string `json:"idToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.NewValidationError("Invalid request body", nil), logger)
		return
	}
	if req.IDToken == "" {
		writeError(w, errors.NewValidationError("idToken is required", nil), logger)
		return
	}

	result, err := h.container.GetAuthService().Login(r.Context(), req.IDToken)
	if err != nil {
		writeAppError(w, err, logger)
		return
	}

	writeJSON(w, http.StatusOK, result, logger)
}

// GoogleAuthRedirect handles GET /auth/google: starts the browser OAuth flow
func (h *AuthHandler) GoogleAuthRedirect(w http.ResponseWriter, r *http.Request) {
	state := newState()

	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})

	url := h.oauthConfig.AuthCodeURL(state)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// GoogleCallback handles GET /auth/google/callback: exchanges the code for
// tokens, logs the user in and hands the session token to the frontend
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()
	frontendURL := h.container.GetConfig().FrontendURL

	cookie, err := r.Cookie(stateCookieName)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		logger.Warn("OAuth callback with missing or mismatched state")
		http.Redirect(w, r, frontendURL+"/?error=invalid_state", http.StatusTemporaryRedirect)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, frontendURL+"/?error=no_code", http.StatusTemporaryRedirect)
		return
	}

	token, err := h.oauthConfig.Exchange(r.Context(), code)
	if err != nil {
		logger.WithError(err).Warn("OAuth code exchange failed")
		http.Redirect(w, r, frontendURL+"/?error=token_exchange_failed", http.StatusTemporaryRedirect)
		return
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		logger.Warn("OAuth exchange response missing id_token")
		http.Redirect(w, r, frontendURL+"/?error=no_id_token", http.StatusTemporaryRedirect)
		return
	}

	result, err := h.container.GetAuthService().Login(r.Context(), rawIDToken)
	if err != nil {
		logger.WithError(err).Warn("Login failed after OAuth callback")
		http.Redirect(w, r, frontendURL+"/?error=login_failed", http.StatusTemporaryRedirect)
		return
	}

	http.Redirect(w, r, frontendURL+"/?token="+result.JWT, http.StatusTemporaryRedirect)
}

// GetProfile handles GET /api/user/profile
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, errors.NewAuthenticationError("User not authenticated"), logger)
		return
	}

	response := map[string]interface{}{
		"success": true,
		"user":    user,
	}
	writeJSON(w, http.StatusOK, response, logger)
}

func newState() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "state"
	}
	return base64.RawURLEncoding.EncodeToString(buf)
}
