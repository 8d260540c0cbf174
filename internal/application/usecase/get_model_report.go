package usecase

import (
	"context"

	"github.com/premialabs/premia/internal/domain/port"
)

// GetModelReport is the use case for inspecting the active model set.
type GetModelReport struct {
	estimator port.PremiumEstimator
}

// NewGetModelReport creates a new GetModelReport use case.
func NewGetModelReport(estimator port.PremiumEstimator) *GetModelReport {
	return &GetModelReport{estimator: estimator}
}

// Execute returns the engine state and per-model metrics.
func (uc *GetModelReport) Execute(_ context.Context) port.ModelReport {
	return uc.estimator.Report()
}
