package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/premialabs/premia/internal/domain/port"
)

// DeleteQuote is the use case for removing a stored quote.
type DeleteQuote struct {
	predictions port.PredictionRepository
}

// NewDeleteQuote creates a new DeleteQuote use case.
func NewDeleteQuote(predictions port.PredictionRepository) *DeleteQuote {
	return &DeleteQuote{predictions: predictions}
}

// Execute deletes the quote. Customers may only delete their own quotes;
// admins may delete any.
func (uc *DeleteQuote) Execute(ctx context.Context, requesterID, quoteID uuid.UUID, isAdmin bool) error {
	prediction, err := uc.predictions.FindByID(ctx, quoteID)
	if err != nil {
		return fmt.Errorf("failed to find quote: %w", err)
	}
	if prediction == nil {
		return fmt.Errorf("quote %s: %w", quoteID, ErrNotFound)
	}
	if prediction.UserID() != requesterID && !isAdmin {
		return ErrForbidden
	}

	if err := uc.predictions.Delete(ctx, quoteID); err != nil {
		return fmt.Errorf("failed to delete quote: %w", err)
	}
	return nil
}
