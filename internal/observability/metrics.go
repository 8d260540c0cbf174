package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MetricsConfig controls metrics setup.
type MetricsConfig struct {
	ServiceName string
}

// InitMetrics wires the OpenTelemetry meter provider to a Prometheus
// exporter and returns the provider plus the scrape handler.
func InitMetrics(cfg MetricsConfig) (*sdkmetric.MeterProvider, http.Handler, error) {
	exporter, err := promexporter.New()
	if err != nil {
		return nil, nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	return provider, promhttp.Handler(), nil
}

// Instruments bundles the service's meter instruments.
type Instruments struct {
	Predictions      metric.Int64Counter
	TrainingRuns     metric.Int64Counter
	TrainingDuration metric.Float64Histogram
	HTTPRequests     metric.Int64Counter
}

// NewInstruments registers the service instruments on the given provider.
func NewInstruments(provider *sdkmetric.MeterProvider) (*Instruments, error) {
	meter := provider.Meter("premia")

	predictions, err := meter.Int64Counter("premia_predictions_total",
		metric.WithDescription("Premium predictions served"))
	if err != nil {
		return nil, fmt.Errorf("creating predictions counter: %w", err)
	}

	trainingRuns, err := meter.Int64Counter("premia_training_runs_total",
		metric.WithDescription("Model training runs completed"))
	if err != nil {
		return nil, fmt.Errorf("creating training runs counter: %w", err)
	}

	trainingDuration, err := meter.Float64Histogram("premia_training_duration_seconds",
		metric.WithDescription("Wall time of model training runs"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, fmt.Errorf("creating training duration histogram: %w", err)
	}

	httpRequests, err := meter.Int64Counter("premia_http_requests_total",
		metric.WithDescription("HTTP requests handled"))
	if err != nil {
		return nil, fmt.Errorf("creating http requests counter: %w", err)
	}

	return &Instruments{
		Predictions:      predictions,
		TrainingRuns:     trainingRuns,
		TrainingDuration: trainingDuration,
		HTTPRequests:     httpRequests,
	}, nil
}
