package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/premialabs/premia/internal/domain/event"
	"github.com/premialabs/premia/internal/domain/port"
)

// RetrainModels is the use case for forcing a fresh training run.
type RetrainModels struct {
	estimator   port.PremiumEstimator
	publisher   port.EventPublisher
	datasetRows int
}

// NewRetrainModels creates a new RetrainModels use case.
func NewRetrainModels(estimator port.PremiumEstimator, publisher port.EventPublisher, datasetRows int) *RetrainModels {
	return &RetrainModels{
		estimator:   estimator,
		publisher:   publisher,
		datasetRows: datasetRows,
	}
}

// Execute retrains every model, swaps in the new artifact set, and
// publishes a training-completed event. It returns the fresh report.
func (uc *RetrainModels) Execute(ctx context.Context) (port.ModelReport, error) {
	start := time.Now()
	if err := uc.estimator.Retrain(ctx); err != nil {
		return port.ModelReport{}, fmt.Errorf("failed to retrain models: %w", err)
	}

	report := uc.estimator.Report()

	evt := event.NewModelTrainingCompleted(report.BestModel, len(report.Models), uc.datasetRows, time.Since(start))
	if err := uc.publisher.Publish(ctx, evt); err != nil {
		return port.ModelReport{}, fmt.Errorf("failed to publish events: %w", err)
	}

	return report, nil
}
