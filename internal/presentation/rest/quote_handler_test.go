package rest

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/premialabs/premia/internal/application/dto"
	"github.com/premialabs/premia/internal/ml"
)

func TestCreateQuote(t *testing.T) {
	s := newTestServer(t)
	registered := s.register(t, "alice", "alice@example.com", "password1")
	token := s.login(t, "alice", "password1")

	rec := s.do(t, http.MethodPost, "/api/v1/quotes", token, validQuoteBody())
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var quote dto.QuoteResponse
	decodeBody(t, rec, &quote)
	if quote.Premium != "8457.12" {
		t.Fatalf("expected premium 8457.12, got %q", quote.Premium)
	}
	if quote.BestModel != "random_forest" {
		t.Fatalf("expected best model random_forest, got %q", quote.BestModel)
	}
	if quote.RiskLevel != "MEDIUM" {
		t.Fatalf("expected risk level MEDIUM, got %q", quote.RiskLevel)
	}
	if len(quote.PremiumsByModel) != 2 {
		t.Fatalf("expected 2 per-model premiums, got %d", len(quote.PremiumsByModel))
	}
	if quote.Age != 35 || quote.Gender != "female" || quote.Region != "northeast" {
		t.Fatalf("expected the submitted profile echoed back, got %+v", quote)
	}

	// The quote is attributed to the session owner, not the request body.
	stored, err := s.preds.FindByID(context.Background(), quote.ID)
	if err != nil || stored == nil {
		t.Fatalf("expected the quote to be stored, got %v", err)
	}
	if stored.UserID() != registered.ID {
		t.Fatalf("expected owner %s, got %s", registered.ID, stored.UserID())
	}
}

func TestCreateQuote_RequiresAuth(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/quotes", "", validQuoteBody())
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCreateQuote_InvalidBody(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice", "alice@example.com", "password1")
	token := s.login(t, "alice", "password1")

	rec := s.do(t, http.MethodPost, "/api/v1/quotes", token, "not an object")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCreateQuote_InvalidProfile(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice", "alice@example.com", "password1")
	token := s.login(t, "alice", "password1")

	body := validQuoteBody()
	body.Age = 17
	rec := s.do(t, http.MethodPost, "/api/v1/quotes", token, body)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCreateQuote_ModelsUnavailable(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice", "alice@example.com", "password1")
	token := s.login(t, "alice", "password1")

	s.est.estimateErr = &ml.ModelUnavailableError{State: ml.StateFailed}
	rec := s.do(t, http.MethodPost, "/api/v1/quotes", token, validQuoteBody())
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestQuoteHistory(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice", "alice@example.com", "password1")
	token := s.login(t, "alice", "password1")

	for i := 0; i < 3; i++ {
		rec := s.do(t, http.MethodPost, "/api/v1/quotes", token, validQuoteBody())
		if rec.Code != http.StatusCreated {
			t.Fatalf("quote %d: expected 201, got %d", i, rec.Code)
		}
	}

	rec := s.do(t, http.MethodGet, "/api/v1/quotes?limit=2", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var page dto.QuoteHistoryResponse
	decodeBody(t, rec, &page)
	if len(page.Quotes) != 2 {
		t.Fatalf("expected 2 quotes on the page, got %d", len(page.Quotes))
	}
	if page.Total != 3 {
		t.Fatalf("expected total 3, got %d", page.Total)
	}
}

func TestQuoteHistory_OnlyOwnQuotes(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice", "alice@example.com", "password1")
	s.register(t, "bob", "bob@example.com", "password1")
	aliceToken := s.login(t, "alice", "password1")
	bobToken := s.login(t, "bob", "password1")

	rec := s.do(t, http.MethodPost, "/api/v1/quotes", aliceToken, validQuoteBody())
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	rec = s.do(t, http.MethodGet, "/api/v1/quotes", bobToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var page dto.QuoteHistoryResponse
	decodeBody(t, rec, &page)
	if len(page.Quotes) != 0 || page.Total != 0 {
		t.Fatalf("expected an empty page for bob, got %+v", page)
	}
}

func TestGetQuote(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice", "alice@example.com", "password1")
	token := s.login(t, "alice", "password1")

	rec := s.do(t, http.MethodPost, "/api/v1/quotes", token, validQuoteBody())
	var created dto.QuoteResponse
	decodeBody(t, rec, &created)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/quotes/%s", created.ID), token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var quote dto.QuoteResponse
	decodeBody(t, rec, &quote)
	if quote.ID != created.ID || quote.Premium != created.Premium {
		t.Fatalf("expected the stored quote back, got %+v", quote)
	}
}

func TestGetQuote_ForeignQuoteForbidden(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice", "alice@example.com", "password1")
	s.register(t, "bob", "bob@example.com", "password1")
	aliceToken := s.login(t, "alice", "password1")
	bobToken := s.login(t, "bob", "password1")

	rec := s.do(t, http.MethodPost, "/api/v1/quotes", aliceToken, validQuoteBody())
	var quote dto.QuoteResponse
	decodeBody(t, rec, &quote)

	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/quotes/%s", quote.ID), bobToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	// Admins may read any quote.
	_, adminToken := s.adminToken(t)
	rec = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/quotes/%s", quote.ID), adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin read, got %d", rec.Code)
	}
}

func TestGetQuote_NotFound(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice", "alice@example.com", "password1")
	token := s.login(t, "alice", "password1")

	rec := s.do(t, http.MethodGet, "/api/v1/quotes/00000000-0000-0000-0000-000000000001", token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDeleteQuote(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice", "alice@example.com", "password1")
	token := s.login(t, "alice", "password1")

	rec := s.do(t, http.MethodPost, "/api/v1/quotes", token, validQuoteBody())
	var quote dto.QuoteResponse
	decodeBody(t, rec, &quote)

	rec = s.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/quotes/%s", quote.ID), token, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}

	// A second delete finds nothing.
	rec = s.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/quotes/%s", quote.ID), token, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestDeleteQuote_ForeignQuoteForbidden(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice", "alice@example.com", "password1")
	s.register(t, "bob", "bob@example.com", "password1")
	aliceToken := s.login(t, "alice", "password1")
	bobToken := s.login(t, "bob", "password1")

	rec := s.do(t, http.MethodPost, "/api/v1/quotes", aliceToken, validQuoteBody())
	var quote dto.QuoteResponse
	decodeBody(t, rec, &quote)

	rec = s.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/quotes/%s", quote.ID), bobToken, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	// Admins may delete any quote.
	_, adminToken := s.adminToken(t)
	rec = s.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/quotes/%s", quote.ID), adminToken, nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for admin delete, got %d", rec.Code)
	}
}

func TestDeleteQuote_InvalidID(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "alice", "alice@example.com", "password1")
	token := s.login(t, "alice", "password1")

	rec := s.do(t, http.MethodDelete, "/api/v1/quotes/not-a-uuid", token, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
