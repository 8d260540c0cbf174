package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/premialabs/premia/internal/application/dto"
	"github.com/premialabs/premia/internal/domain/port"
)

const recentWindow = 7 * 24 * time.Hour

// GetAdminStats is the use case for the admin dashboard headline numbers.
type GetAdminStats struct {
	users       port.UserRepository
	predictions port.PredictionRepository
}

// NewGetAdminStats creates a new GetAdminStats use case.
func NewGetAdminStats(users port.UserRepository, predictions port.PredictionRepository) *GetAdminStats {
	return &GetAdminStats{
		users:       users,
		predictions: predictions,
	}
}

// Execute collects account and quote counts plus the average premium.
func (uc *GetAdminStats) Execute(ctx context.Context) (dto.AdminStatsResponse, error) {
	customers, err := uc.users.CountCustomers(ctx)
	if err != nil {
		return dto.AdminStatsResponse{}, fmt.Errorf("failed to count customers: %w", err)
	}

	admins, err := uc.users.CountAdmins(ctx)
	if err != nil {
		return dto.AdminStatsResponse{}, fmt.Errorf("failed to count admins: %w", err)
	}

	total, err := uc.predictions.Count(ctx)
	if err != nil {
		return dto.AdminStatsResponse{}, fmt.Errorf("failed to count quotes: %w", err)
	}

	recent, err := uc.predictions.CountSince(ctx, time.Now().Add(-recentWindow))
	if err != nil {
		return dto.AdminStatsResponse{}, fmt.Errorf("failed to count recent quotes: %w", err)
	}

	average, err := uc.predictions.AveragePremium(ctx)
	if err != nil {
		return dto.AdminStatsResponse{}, fmt.Errorf("failed to average premiums: %w", err)
	}

	return dto.AdminStatsResponse{
		TotalCustomers:  customers,
		TotalAdmins:     admins,
		TotalQuotes:     total,
		QuotesLast7Days: recent,
		AveragePremium:  math.Round(average*100) / 100,
	}, nil
}
