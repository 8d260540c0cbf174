package usecase

import (
	"context"
	"fmt"

	"github.com/premialabs/premia/internal/application/dto"
	"github.com/premialabs/premia/internal/domain/port"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// GetQuoteHistory is the use case for listing a user's stored quotes.
type GetQuoteHistory struct {
	predictions port.PredictionRepository
}

// NewGetQuoteHistory creates a new GetQuoteHistory use case.
func NewGetQuoteHistory(predictions port.PredictionRepository) *GetQuoteHistory {
	return &GetQuoteHistory{predictions: predictions}
}

// Execute returns a page of the user's quotes, newest first.
func (uc *GetQuoteHistory) Execute(ctx context.Context, req dto.QuoteHistoryRequest) (dto.QuoteHistoryResponse, error) {
	limit := clampPageSize(req.Limit)
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	predictions, err := uc.predictions.FindByUser(ctx, req.UserID, limit, offset)
	if err != nil {
		return dto.QuoteHistoryResponse{}, fmt.Errorf("failed to list quotes: %w", err)
	}

	total, err := uc.predictions.CountByUser(ctx, req.UserID)
	if err != nil {
		return dto.QuoteHistoryResponse{}, fmt.Errorf("failed to count quotes: %w", err)
	}

	quotes := make([]dto.QuoteResponse, 0, len(predictions))
	for _, p := range predictions {
		quotes = append(quotes, dto.QuoteFromModel(p))
	}

	return dto.QuoteHistoryResponse{
		Quotes: quotes,
		Total:  total,
	}, nil
}

func clampPageSize(limit int) int {
	if limit <= 0 {
		return defaultPageSize
	}
	if limit > maxPageSize {
		return maxPageSize
	}
	return limit
}
