package rest

import (
	"encoding/json"
	"net/http"

	"github.com/premialabs/premia/internal/application/dto"
	"github.com/premialabs/premia/internal/application/usecase"
	"github.com/premialabs/premia/internal/auth"
)

// ProfileHandler serves the caller's account.
type ProfileHandler struct {
	get    *usecase.GetUserProfile
	update *usecase.UpdateUserProfile
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(get *usecase.GetUserProfile, update *usecase.UpdateUserProfile) *ProfileHandler {
	return &ProfileHandler{
		get:    get,
		update: update,
	}
}

// RegisterRoutes registers profile endpoints on the provided ServeMux.
func (h *ProfileHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/profile", h.Get)
	mux.HandleFunc("PUT /api/v1/profile", h.Update)
}

// Get returns the caller's account plus quote count.
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing credentials")
		return
	}

	profile, err := h.get.Execute(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// Update changes the caller's email or password.
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing credentials")
		return
	}

	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UserID = claims.UserID

	user, err := h.update.Execute(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
