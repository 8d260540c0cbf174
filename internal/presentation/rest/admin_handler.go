package rest

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/premialabs/premia/internal/application/usecase"
	"github.com/premialabs/premia/internal/auth"
	"github.com/premialabs/premia/internal/presentation/rest/middleware"
)

// AdminHandler serves the admin dashboard, user management, CSV export,
// and model retraining.
type AdminHandler struct {
	stats      *usecase.GetAdminStats
	analytics  *usecase.GetAdminAnalytics
	listUsers  *usecase.ListUsers
	deleteUser *usecase.DeleteUser
	export     *usecase.ExportQuotes
	retrain    *usecase.RetrainModels
	logger     *slog.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(
	stats *usecase.GetAdminStats,
	analytics *usecase.GetAdminAnalytics,
	listUsers *usecase.ListUsers,
	deleteUser *usecase.DeleteUser,
	export *usecase.ExportQuotes,
	retrain *usecase.RetrainModels,
	logger *slog.Logger,
) *AdminHandler {
	return &AdminHandler{
		stats:      stats,
		analytics:  analytics,
		listUsers:  listUsers,
		deleteUser: deleteUser,
		export:     export,
		retrain:    retrain,
		logger:     logger,
	}
}

// RegisterRoutes registers admin endpoints on the provided ServeMux.
// Every route is wrapped in the admin role check.
func (h *AdminHandler) RegisterRoutes(mux *http.ServeMux) {
	admin := func(fn http.HandlerFunc) http.Handler {
		return middleware.RequireAdmin(fn)
	}

	mux.Handle("GET /api/v1/admin/stats", admin(h.Stats))
	mux.Handle("GET /api/v1/admin/analytics", admin(h.Analytics))
	mux.Handle("GET /api/v1/admin/users", admin(h.Users))
	mux.Handle("DELETE /api/v1/admin/users/{id}", admin(h.DeleteUser))
	mux.Handle("GET /api/v1/admin/export", admin(h.Export))
	mux.Handle("POST /api/v1/admin/retrain", admin(h.Retrain))
}

// Stats returns the dashboard headline numbers.
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	resp, err := h.stats.Execute(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Analytics returns the quote breakdowns.
func (h *AdminHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	resp, err := h.analytics.Execute(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Users lists accounts.
func (h *AdminHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.listUsers.Execute(r.Context(), queryInt(r, "limit"), queryInt(r, "offset"))
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// DeleteUser removes an account and its quotes.
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing credentials")
		return
	}

	targetID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	if err := h.deleteUser.Execute(r.Context(), claims.UserID, targetID); err != nil {
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "user deleted", "user_id", targetID)
	w.WriteHeader(http.StatusNoContent)
}

// Export streams every stored quote as a CSV attachment.
func (h *AdminHandler) Export(w http.ResponseWriter, r *http.Request) {
	filename := fmt.Sprintf("quotes_%s.csv", time.Now().UTC().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	if err := h.export.Execute(r.Context(), w); err != nil {
		// Headers are already sent, so the best we can do is log.
		h.logger.ErrorContext(r.Context(), "csv export failed", "error", err)
	}
}

// Retrain forces a fresh training run and returns the new report.
func (h *AdminHandler) Retrain(w http.ResponseWriter, r *http.Request) {
	report, err := h.retrain.Execute(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "models retrained", "best_model", report.BestModel)
	writeJSON(w, http.StatusOK, report)
}
