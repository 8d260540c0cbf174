package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestInitMetricsAndInstruments(t *testing.T) {
	provider, handler, err := InitMetrics(MetricsConfig{ServiceName: "premia"})
	if err != nil {
		t.Fatalf("InitMetrics failed: %v", err)
	}
	if provider == nil {
		t.Fatal("expected a meter provider")
	}
	if handler == nil {
		t.Fatal("expected a scrape handler")
	}
	defer provider.Shutdown(context.Background()) //nolint:errcheck

	instruments, err := NewInstruments(provider)
	if err != nil {
		t.Fatalf("NewInstruments failed: %v", err)
	}
	if instruments.Predictions == nil || instruments.TrainingRuns == nil ||
		instruments.TrainingDuration == nil || instruments.HTTPRequests == nil {
		t.Fatal("expected every instrument to be created")
	}

	// Recorded values show up on the scrape endpoint.
	instruments.Predictions.Add(context.Background(), 3)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from scrape endpoint, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "premia_predictions_total") {
		t.Fatal("expected the predictions counter on the scrape endpoint")
	}
}
