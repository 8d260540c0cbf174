package ml

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/premialabs/premia/internal/ml/artifact"
	"github.com/premialabs/premia/internal/ml/feature"
	"github.com/premialabs/premia/internal/ml/regress"
)

// State is the lifecycle state of the engine.
type State int

const (
	StateUninitialized State = iota
	StateReady
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "uninitialized"
	}
}

// ModelUnavailableError is returned when a prediction is requested while the
// engine is not ready.
type ModelUnavailableError struct {
	State State
}

func (e *ModelUnavailableError) Error() string {
	return fmt.Sprintf("ml: models unavailable, engine state %s", e.State)
}

// PredictionInput is one raw feature row before encoding.
type PredictionInput struct {
	Age      int
	Gender   string
	BMI      float64
	Children int
	Smoker   string
	Region   string
}

// PredictionOutput carries every model's premium for one input, rounded to
// 2 decimal places.
type PredictionOutput struct {
	Premiums    map[string]float64
	Best        string
	BestPremium float64
}

const flightKey = "train"

// Engine serves predictions from an immutable artifact set.
//
// Lifecycle: Uninitialized until the first Initialize, which loads the
// persisted bundles if all of them are present and falls back to a fresh
// training run otherwise. A successful attempt moves the engine to Ready;
// a failed training run moves it to Failed, where it stays until an explicit
// Retrain. Concurrent initialization attempts collapse into a single flight.
type Engine struct {
	store   *artifact.Store
	trainer *Trainer
	configs []ModelConfig
	logger  *slog.Logger

	group singleflight.Group

	mu       sync.RWMutex
	state    State
	bundles  map[string]*artifact.Bundle
	encoders map[string]*feature.LabelEncoder
	scaler   *feature.StandardScaler
	best     string
	lastErr  error
}

// NewEngine builds an engine in the Uninitialized state.
func NewEngine(store *artifact.Store, trainer *Trainer, configs []ModelConfig, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{
		store:   store,
		trainer: trainer,
		configs: configs,
		logger:  logger,
		state:   StateUninitialized,
	}
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// Ready reports whether predictions can be served.
func (e *Engine) Ready() bool {
	return e.State() == StateReady
}

// LastError returns the error that moved the engine to Failed, if any.
func (e *Engine) LastError() error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.lastErr
}

// Initialize loads persisted artifacts if a complete set exists, otherwise
// trains from scratch. Concurrent callers share one in-flight attempt.
func (e *Engine) Initialize(ctx context.Context) error {
	if e.Ready() {
		return nil
	}
	_, err, _ := e.group.Do(flightKey, func() (interface{}, error) {
		if e.Ready() {
			return nil, nil
		}
		return nil, e.loadOrTrain(ctx)
	})
	return err
}

func (e *Engine) loadOrTrain(ctx context.Context) error {
	names := Names(e.configs)

	bundles, err := e.store.LoadAll(names)
	if err == nil {
		if ierr := e.install(bundles); ierr == nil {
			e.logger.InfoContext(ctx, "premium models loaded from artifacts",
				slog.Int("models", len(bundles)),
				slog.String("dir", e.store.Dir()),
			)
			return nil
		} else {
			err = ierr
		}
	}

	e.logger.InfoContext(ctx, "artifacts unavailable, training from scratch",
		slog.String("reason", err.Error()),
	)

	result, terr := e.trainer.Train(ctx)
	if terr != nil {
		e.fail(terr)
		return terr
	}
	if ierr := e.install(result.Bundles); ierr != nil {
		e.fail(ierr)
		return ierr
	}

	e.logger.InfoContext(ctx, "premium models trained",
		slog.String("best_model", result.BestModel),
		slog.Int("rows", result.Rows),
		slog.Duration("duration", result.Duration),
	)
	return nil
}

// Retrain forces a fresh training run and swaps the active artifact set in
// atomically. It shares the single flight with Initialize, so a retrain can
// never interleave with an in-progress initialization.
func (e *Engine) Retrain(ctx context.Context) error {
	_, err, _ := e.group.Do(flightKey, func() (interface{}, error) {
		result, terr := e.trainer.Train(ctx)
		if terr != nil {
			e.fail(terr)
			return nil, terr
		}
		if ierr := e.install(result.Bundles); ierr != nil {
			e.fail(ierr)
			return nil, ierr
		}
		e.logger.InfoContext(ctx, "premium models retrained",
			slog.String("best_model", result.BestModel),
			slog.Duration("duration", result.Duration),
		)
		return nil, nil
	})
	return err
}

// Predict runs every model against the input. An Uninitialized engine makes
// one lazy Initialize attempt; a Failed engine rejects immediately.
func (e *Engine) Predict(ctx context.Context, in PredictionInput) (*PredictionOutput, error) {
	e.mu.RLock()
	state := e.state
	bundles := e.bundles
	encoders := e.encoders
	scaler := e.scaler
	best := e.best
	e.mu.RUnlock()

	switch state {
	case StateReady:
	case StateFailed:
		return nil, &ModelUnavailableError{State: state}
	default:
		if err := e.Initialize(ctx); err != nil {
			return nil, &ModelUnavailableError{State: e.State()}
		}
		e.mu.RLock()
		bundles = e.bundles
		encoders = e.encoders
		scaler = e.scaler
		best = e.best
		e.mu.RUnlock()
	}

	// Every bundle carries the encoders and scaler fitted in the same
	// training run, so the input is transformed once for all models.
	row, err := encodeInput(in, encoders)
	if err != nil {
		return nil, err
	}
	scaled, err := scaler.TransformRow(row)
	if err != nil {
		return nil, fmt.Errorf("ml: scale input: %w", err)
	}

	premiums := make(map[string]float64, len(bundles))
	for name, b := range bundles {
		pred, err := b.Model.Predict(scaled)
		if err != nil {
			return nil, fmt.Errorf("ml: %s predict: %w", name, err)
		}
		premiums[name] = round2(pred)
	}

	out := &PredictionOutput{Premiums: premiums, Best: best}
	if v, ok := premiums[best]; ok {
		out.BestPremium = v
	}
	return out, nil
}

// ModelMetrics returns the held-out metrics of the active artifact set.
func (e *Engine) ModelMetrics() map[string]regress.Metrics {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make(map[string]regress.Metrics, len(e.bundles))
	for name, b := range e.bundles {
		out[name] = b.Metrics
	}
	return out
}

// BestModel returns the name of the model with the highest held-out R2.
func (e *Engine) BestModel() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.best
}

// TrainedAt returns when the active artifact set was trained.
func (e *Engine) TrainedAt() time.Time {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, b := range e.bundles {
		return b.TrainedAt
	}
	return time.Time{}
}

func (e *Engine) install(bundles map[string]*artifact.Bundle) error {
	best := ""
	bestR2 := math.Inf(-1)
	for _, name := range Names(e.configs) {
		b, ok := bundles[name]
		if !ok || b == nil {
			return fmt.Errorf("ml: bundle set is missing model %s", name)
		}
		if len(b.FeatureNames) != feature.NumFeatures {
			return fmt.Errorf("ml: bundle %s has %d features, want %d", name, len(b.FeatureNames), feature.NumFeatures)
		}
		if b.Metrics.R2 > bestR2 {
			bestR2 = b.Metrics.R2
			best = name
		}
	}

	primary := bundles[Names(e.configs)[0]]

	e.mu.Lock()
	e.bundles = bundles
	e.encoders = primary.LabelEncoders
	e.scaler = primary.Scaler
	e.best = best
	e.state = StateReady
	e.lastErr = nil
	e.mu.Unlock()
	return nil
}

func (e *Engine) fail(err error) {
	e.mu.Lock()
	e.state = StateFailed
	e.lastErr = err
	e.mu.Unlock()
}

func encodeInput(in PredictionInput, encoders map[string]*feature.LabelEncoder) ([]float64, error) {
	gender, err := encoders[feature.ColumnGender].Transform(in.Gender)
	if err != nil {
		return nil, err
	}
	smoker, err := encoders[feature.ColumnSmoker].Transform(in.Smoker)
	if err != nil {
		return nil, err
	}
	region, err := encoders[feature.ColumnRegion].Transform(in.Region)
	if err != nil {
		return nil, err
	}
	return []float64{
		float64(in.Age),
		float64(gender),
		in.BMI,
		float64(in.Children),
		float64(smoker),
		float64(region),
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
