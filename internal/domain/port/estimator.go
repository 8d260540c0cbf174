package port

import (
	"context"
	"time"

	"github.com/premialabs/premia/internal/domain/valueobject"
)

// EstimateResult carries every model's quote for one risk profile.
type EstimateResult struct {
	// Premiums maps model name to its quoted annual premium, rounded to
	// 2 decimal places.
	Premiums map[string]float64
	// BestModel is the model with the highest held-out R2.
	BestModel string
	// BestPremium is BestModel's quote.
	BestPremium float64
}

// ModelMetrics are the held-out evaluation metrics of one model.
type ModelMetrics struct {
	MAE        float64 `json:"mae"`
	MSE        float64 `json:"mse"`
	RMSE       float64 `json:"rmse"`
	MAPE       float64 `json:"mape"`
	R2         float64 `json:"r2"`
	AdjustedR2 float64 `json:"adjusted_r2"`
}

// ModelReport describes the active model set.
type ModelReport struct {
	State     string                  `json:"state"`
	BestModel string                  `json:"best_model"`
	TrainedAt time.Time               `json:"trained_at"`
	Models    map[string]ModelMetrics `json:"models"`
}

// PremiumEstimator defines the port to the prediction engine.
type PremiumEstimator interface {
	// EnsureReady loads or trains the models; it is safe to call concurrently.
	EnsureReady(ctx context.Context) error

	// Estimate quotes a premium per model for the profile.
	Estimate(ctx context.Context, profile valueobject.RiskProfile) (EstimateResult, error)

	// Ready reports whether the engine can serve quotes.
	Ready() bool

	// Retrain forces a fresh training run.
	Retrain(ctx context.Context) error

	// Report returns the state and metrics of the active model set.
	Report() ModelReport
}
