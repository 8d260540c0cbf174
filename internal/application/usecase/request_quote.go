package usecase

import (
	"context"
	"fmt"

	"github.com/premialabs/premia/internal/application/dto"
	"github.com/premialabs/premia/internal/domain/model"
	"github.com/premialabs/premia/internal/domain/port"
	"github.com/premialabs/premia/internal/domain/valueobject"
)

// RequestQuote is the use case for quoting a premium and storing the result.
type RequestQuote struct {
	predictions port.PredictionRepository
	estimator   port.PremiumEstimator
	publisher   port.EventPublisher
}

// NewRequestQuote creates a new RequestQuote use case.
func NewRequestQuote(
	predictions port.PredictionRepository,
	estimator port.PremiumEstimator,
	publisher port.EventPublisher,
) *RequestQuote {
	return &RequestQuote{
		predictions: predictions,
		estimator:   estimator,
		publisher:   publisher,
	}
}

// Execute validates the risk profile, quotes it against every model,
// persists the prediction, and publishes events.
func (uc *RequestQuote) Execute(ctx context.Context, req dto.QuoteRequest) (dto.QuoteResponse, error) {
	// 1. Build the validated risk profile.
	gender, err := valueobject.GenderFromString(req.Gender)
	if err != nil {
		return dto.QuoteResponse{}, err
	}
	smoker, err := valueobject.SmokerStatusFromString(req.Smoker)
	if err != nil {
		return dto.QuoteResponse{}, err
	}
	region, err := valueobject.RegionFromString(req.Region)
	if err != nil {
		return dto.QuoteResponse{}, err
	}
	profile, err := valueobject.NewRiskProfile(req.Age, gender, req.BMI, req.Children, smoker, region)
	if err != nil {
		return dto.QuoteResponse{}, err
	}

	// 2. Quote against every trained model.
	estimate, err := uc.estimator.Estimate(ctx, profile)
	if err != nil {
		return dto.QuoteResponse{}, err
	}

	// 3. Create and persist the prediction aggregate.
	prediction, err := model.NewPrediction(req.UserID, profile, estimate.Premiums, estimate.BestModel)
	if err != nil {
		return dto.QuoteResponse{}, fmt.Errorf("failed to create prediction: %w", err)
	}

	if err := uc.predictions.Save(ctx, prediction); err != nil {
		return dto.QuoteResponse{}, fmt.Errorf("failed to save prediction: %w", err)
	}

	// 4. Publish domain events.
	events := prediction.DomainEvents()
	if len(events) > 0 {
		if err := uc.publisher.Publish(ctx, events...); err != nil {
			return dto.QuoteResponse{}, fmt.Errorf("failed to publish events: %w", err)
		}
	}

	return dto.QuoteFromModel(prediction), nil
}
