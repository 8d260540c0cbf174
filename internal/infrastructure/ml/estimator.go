package ml

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/premialabs/premia/internal/domain/port"
	"github.com/premialabs/premia/internal/domain/valueobject"
	"github.com/premialabs/premia/internal/ml"
	"github.com/premialabs/premia/internal/observability"
)

var tracer = otel.Tracer("premia/infrastructure/ml")

// Estimator adapts the prediction engine to port.PremiumEstimator and
// records service metrics around it.
type Estimator struct {
	engine      *ml.Engine
	instruments *observability.Instruments
}

// NewEstimator creates the adapter. instruments may be nil in tests.
func NewEstimator(engine *ml.Engine, instruments *observability.Instruments) *Estimator {
	return &Estimator{
		engine:      engine,
		instruments: instruments,
	}
}

// EnsureReady loads or trains the models. Concurrent callers share one
// in-flight attempt.
func (e *Estimator) EnsureReady(ctx context.Context) error {
	return e.engine.Initialize(ctx)
}

// Estimate quotes a premium per model for the profile.
func (e *Estimator) Estimate(ctx context.Context, profile valueobject.RiskProfile) (port.EstimateResult, error) {
	ctx, span := tracer.Start(ctx, "Estimator.Estimate", trace.WithAttributes(
		attribute.String("region", profile.Region().String()),
	))
	defer span.End()

	out, err := e.engine.Predict(ctx, ml.PredictionInput{
		Age:      profile.Age(),
		Gender:   profile.Gender().String(),
		BMI:      profile.BMI(),
		Children: profile.Children(),
		Smoker:   profile.Smoker().String(),
		Region:   profile.Region().String(),
	})
	if err != nil {
		return port.EstimateResult{}, err
	}

	if e.instruments != nil {
		e.instruments.Predictions.Add(ctx, 1,
			metric.WithAttributes(attribute.String("best_model", out.Best)))
	}

	return port.EstimateResult{
		Premiums:    out.Premiums,
		BestModel:   out.Best,
		BestPremium: out.BestPremium,
	}, nil
}

// Ready reports whether the engine can serve quotes.
func (e *Estimator) Ready() bool {
	return e.engine.Ready()
}

// Retrain forces a fresh training run and records its duration.
func (e *Estimator) Retrain(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "Estimator.Retrain")
	defer span.End()

	start := time.Now()
	if err := e.engine.Retrain(ctx); err != nil {
		return err
	}

	if e.instruments != nil {
		e.instruments.TrainingRuns.Add(ctx, 1)
		e.instruments.TrainingDuration.Record(ctx, time.Since(start).Seconds())
	}
	return nil
}

// Report returns the state and metrics of the active model set.
func (e *Estimator) Report() port.ModelReport {
	engineMetrics := e.engine.ModelMetrics()
	models := make(map[string]port.ModelMetrics, len(engineMetrics))
	for name, m := range engineMetrics {
		models[name] = port.ModelMetrics{
			MAE:        m.MAE,
			MSE:        m.MSE,
			RMSE:       m.RMSE,
			MAPE:       m.MAPE,
			R2:         m.R2,
			AdjustedR2: m.AdjustedR2,
		}
	}

	return port.ModelReport{
		State:     e.engine.State().String(),
		BestModel: e.engine.BestModel(),
		TrainedAt: e.engine.TrainedAt(),
		Models:    models,
	}
}
