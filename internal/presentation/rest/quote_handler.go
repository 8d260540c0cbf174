package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/premialabs/premia/internal/application/dto"
	"github.com/premialabs/premia/internal/application/usecase"
	"github.com/premialabs/premia/internal/auth"
)

// QuoteHandler serves premium quoting and quote history.
type QuoteHandler struct {
	quote   *usecase.RequestQuote
	history *usecase.GetQuoteHistory
	get     *usecase.GetQuote
	remove  *usecase.DeleteQuote
	logger  *slog.Logger
}

// NewQuoteHandler creates a new quote handler.
func NewQuoteHandler(
	quote *usecase.RequestQuote,
	history *usecase.GetQuoteHistory,
	get *usecase.GetQuote,
	remove *usecase.DeleteQuote,
	logger *slog.Logger,
) *QuoteHandler {
	return &QuoteHandler{
		quote:   quote,
		history: history,
		get:     get,
		remove:  remove,
		logger:  logger,
	}
}

// RegisterRoutes registers quote endpoints on the provided ServeMux.
func (h *QuoteHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/quotes", h.Create)
	mux.HandleFunc("GET /api/v1/quotes", h.History)
	mux.HandleFunc("GET /api/v1/quotes/{id}", h.Get)
	mux.HandleFunc("DELETE /api/v1/quotes/{id}", h.Delete)
}

// Create quotes a premium for the submitted risk profile and stores it.
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing credentials")
		return
	}

	var req dto.QuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.UserID = claims.UserID

	quote, err := h.quote.Execute(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}

	h.logger.InfoContext(r.Context(), "quote created",
		"quote_id", quote.ID,
		"best_model", quote.BestModel,
		"risk_level", quote.RiskLevel,
	)
	writeJSON(w, http.StatusCreated, quote)
}

// History lists the caller's stored quotes, newest first.
func (h *QuoteHandler) History(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing credentials")
		return
	}

	req := dto.QuoteHistoryRequest{
		UserID: claims.UserID,
		Limit:  queryInt(r, "limit"),
		Offset: queryInt(r, "offset"),
	}

	resp, err := h.history.Execute(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single quote. Admins may read any quote.
func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing credentials")
		return
	}

	quoteID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid quote id")
		return
	}

	quote, err := h.get.Execute(r.Context(), claims.UserID, quoteID, claims.IsAdmin())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

// Delete removes one of the caller's quotes. Admins may delete any quote.
func (h *QuoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing credentials")
		return
	}

	quoteID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid quote id")
		return
	}

	if err := h.remove.Execute(r.Context(), claims.UserID, quoteID, claims.IsAdmin()); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func queryInt(r *http.Request, key string) int {
	value, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return value
}
