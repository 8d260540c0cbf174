package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/premialabs/premia/internal/domain/model"
)

// QuoteRequest is the input DTO for the RequestQuote use case.
type QuoteRequest struct {
	UserID   uuid.UUID `json:"-"`
	Age      int       `json:"age"`
	Gender   string    `json:"gender"`
	BMI      float64   `json:"bmi"`
	Children int       `json:"children"`
	Smoker   string    `json:"smoker"`
	Region   string    `json:"region"`
}

// QuoteResponse is the outward representation of a stored quote.
type QuoteResponse struct {
	ID              uuid.UUID          `json:"id"`
	Age             int                `json:"age"`
	Gender          string             `json:"gender"`
	BMI             float64            `json:"bmi"`
	Children        int                `json:"children"`
	Smoker          string             `json:"smoker"`
	Region          string             `json:"region"`
	Premium         string             `json:"premium"`
	PremiumsByModel map[string]float64 `json:"premiums_by_model"`
	BestModel       string             `json:"best_model"`
	RiskLevel       string             `json:"risk_level"`
	CreatedAt       time.Time          `json:"created_at"`
}

// QuoteHistoryRequest is the input DTO for the GetQuoteHistory use case.
type QuoteHistoryRequest struct {
	UserID uuid.UUID `json:"-"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

// QuoteHistoryResponse is a page of quotes plus the total count.
type QuoteHistoryResponse struct {
	Quotes []QuoteResponse `json:"quotes"`
	Total  int64           `json:"total"`
}

// QuoteFromModel maps a prediction aggregate to the response DTO.
func QuoteFromModel(p *model.Prediction) QuoteResponse {
	profile := p.Profile()
	return QuoteResponse{
		ID:              p.ID(),
		Age:             profile.Age(),
		Gender:          profile.Gender().String(),
		BMI:             profile.BMI(),
		Children:        profile.Children(),
		Smoker:          profile.Smoker().String(),
		Region:          profile.Region().String(),
		Premium:         p.Premium().String(),
		PremiumsByModel: p.PerModel(),
		BestModel:       p.BestModel(),
		RiskLevel:       p.RiskLevel().String(),
		CreatedAt:       p.CreatedAt(),
	}
}
