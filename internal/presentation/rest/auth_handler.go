package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/premialabs/premia/internal/application/dto"
	"github.com/premialabs/premia/internal/application/usecase"
	"github.com/premialabs/premia/internal/presentation/rest/middleware"
)

// AuthHandler serves registration, login, and logout.
type AuthHandler struct {
	register  *usecase.RegisterUser
	login     *usecase.AuthenticateUser
	cookieTTL time.Duration
	logger    *slog.Logger
}

// NewAuthHandler creates a new auth handler. cookieTTL bounds the session
// cookie lifetime and should match the token TTL.
func NewAuthHandler(
	register *usecase.RegisterUser,
	login *usecase.AuthenticateUser,
	cookieTTL time.Duration,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		register:  register,
		login:     login,
		cookieTTL: cookieTTL,
		logger:    logger,
	}
}

// RegisterRoutes registers auth endpoints on the provided ServeMux.
func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/auth/register", h.Register)
	mux.HandleFunc("POST /api/v1/auth/login", h.Login)
	mux.HandleFunc("POST /api/v1/auth/logout", h.Logout)
}

// Register creates a customer account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.register.Execute(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "user registered", "username", user.Username)
	writeJSON(w, http.StatusCreated, user)
}

// Login verifies credentials, sets the session cookie, and returns the token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.login.Execute(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    resp.Token,
		Path:     "/",
		MaxAge:   int(h.cookieTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, resp)
}

// Logout clears the session cookie.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	w.WriteHeader(http.StatusNoContent)
}
