package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/premialabs/premia/internal/application/dto"
	"github.com/premialabs/premia/internal/domain/port"
)

// GetQuote is the use case for fetching a single stored quote.
type GetQuote struct {
	predictions port.PredictionRepository
}

// NewGetQuote creates a new GetQuote use case.
func NewGetQuote(predictions port.PredictionRepository) *GetQuote {
	return &GetQuote{predictions: predictions}
}

// Execute returns the quote. Customers may only read their own quotes;
// admins may read any.
func (uc *GetQuote) Execute(ctx context.Context, requesterID, quoteID uuid.UUID, isAdmin bool) (dto.QuoteResponse, error) {
	prediction, err := uc.predictions.FindByID(ctx, quoteID)
	if err != nil {
		return dto.QuoteResponse{}, fmt.Errorf("failed to find quote: %w", err)
	}
	if prediction == nil {
		return dto.QuoteResponse{}, fmt.Errorf("quote %s: %w", quoteID, ErrNotFound)
	}
	if prediction.UserID() != requesterID && !isAdmin {
		return dto.QuoteResponse{}, ErrForbidden
	}

	return dto.QuoteFromModel(prediction), nil
}
