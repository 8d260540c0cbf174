package rest

import (
	"net/http"

	"github.com/premialabs/premia/internal/application/usecase"
)

// ModelHandler exposes the active model set and its metrics.
type ModelHandler struct {
	report *usecase.GetModelReport
}

// NewModelHandler creates a new model handler.
func NewModelHandler(report *usecase.GetModelReport) *ModelHandler {
	return &ModelHandler{report: report}
}

// RegisterRoutes registers model endpoints on the provided ServeMux.
func (h *ModelHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/models", h.Report)
}

// Report returns the engine state and per-model evaluation metrics.
func (h *ModelHandler) Report(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.report.Execute(r.Context()))
}
