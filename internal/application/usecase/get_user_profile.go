package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/premialabs/premia/internal/application/dto"
	"github.com/premialabs/premia/internal/domain/port"
)

// GetUserProfile is the use case for viewing an account.
type GetUserProfile struct {
	users       port.UserRepository
	predictions port.PredictionRepository
}

// NewGetUserProfile creates a new GetUserProfile use case.
func NewGetUserProfile(users port.UserRepository, predictions port.PredictionRepository) *GetUserProfile {
	return &GetUserProfile{
		users:       users,
		predictions: predictions,
	}
}

// Execute returns the account plus its quote count.
func (uc *GetUserProfile) Execute(ctx context.Context, userID uuid.UUID) (dto.ProfileResponse, error) {
	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return dto.ProfileResponse{}, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return dto.ProfileResponse{}, fmt.Errorf("user %s: %w", userID, ErrNotFound)
	}

	count, err := uc.predictions.CountByUser(ctx, userID)
	if err != nil {
		return dto.ProfileResponse{}, fmt.Errorf("failed to count quotes: %w", err)
	}

	return dto.ProfileResponse{
		User:       dto.UserFromModel(user),
		QuoteCount: count,
	}, nil
}
