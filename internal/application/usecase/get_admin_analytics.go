package usecase

import (
	"context"
	"fmt"

	"github.com/premialabs/premia/internal/application/dto"
	"github.com/premialabs/premia/internal/domain/port"
)

const topUserLimit = 5

// GetAdminAnalytics is the use case for the admin analytics breakdown.
type GetAdminAnalytics struct {
	predictions port.PredictionRepository
}

// NewGetAdminAnalytics creates a new GetAdminAnalytics use case.
func NewGetAdminAnalytics(predictions port.PredictionRepository) *GetAdminAnalytics {
	return &GetAdminAnalytics{predictions: predictions}
}

// Execute aggregates quotes by premium band, age group, region, and
// smoker status, and lists the most active users.
func (uc *GetAdminAnalytics) Execute(ctx context.Context) (dto.AnalyticsResponse, error) {
	premiumRanges, err := uc.predictions.PremiumRangeCounts(ctx)
	if err != nil {
		return dto.AnalyticsResponse{}, fmt.Errorf("failed to bucket premiums: %w", err)
	}

	ageGroups, err := uc.predictions.AgeGroupCounts(ctx)
	if err != nil {
		return dto.AnalyticsResponse{}, fmt.Errorf("failed to bucket ages: %w", err)
	}

	regions, err := uc.predictions.RegionCounts(ctx)
	if err != nil {
		return dto.AnalyticsResponse{}, fmt.Errorf("failed to bucket regions: %w", err)
	}

	smokers, err := uc.predictions.SmokerCounts(ctx)
	if err != nil {
		return dto.AnalyticsResponse{}, fmt.Errorf("failed to bucket smoker status: %w", err)
	}

	topUsers, err := uc.predictions.TopUsers(ctx, topUserLimit)
	if err != nil {
		return dto.AnalyticsResponse{}, fmt.Errorf("failed to list top users: %w", err)
	}

	top := make([]dto.TopUserEntry, 0, len(topUsers))
	for _, entry := range topUsers {
		top = append(top, dto.TopUserEntry{
			UserID:   entry.UserID,
			Username: entry.Username,
			Quotes:   entry.Predictions,
		})
	}

	return dto.AnalyticsResponse{
		PremiumRanges: premiumRanges,
		AgeGroups:     ageGroups,
		Regions:       regions,
		SmokerSplit:   smokers,
		TopUsers:      top,
	}, nil
}
