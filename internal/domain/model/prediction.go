package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/premialabs/premia/internal/domain/event"
	"github.com/premialabs/premia/internal/domain/valueobject"
)

// HighPremiumThreshold is the annual premium at which a quote is flagged for
// review, in whole currency units.
const HighPremiumThreshold = 20000

// Prediction is one stored premium quote for a user: the rating profile, the
// per-model premiums, and the best model's quote classified by risk level.
type Prediction struct {
	id        uuid.UUID
	userID    uuid.UUID
	profile   valueobject.RiskProfile
	premium   valueobject.Premium
	perModel  map[string]float64
	bestModel string
	riskLevel valueobject.RiskLevel
	createdAt time.Time

	domainEvents []event.DomainEvent
}

// NewPrediction validates the quoting output and creates the aggregate,
// emitting PredictionCompleted and, for very high quotes, HighPremiumDetected.
func NewPrediction(userID uuid.UUID, profile valueobject.RiskProfile, perModel map[string]float64, bestModel string) (*Prediction, error) {
	if userID == uuid.Nil {
		return nil, &valueobject.ValidationError{Field: "user_id", Reason: "user ID is required"}
	}
	if len(perModel) == 0 {
		return nil, &valueobject.ValidationError{Field: "premiums", Reason: "at least one model premium is required"}
	}
	best, ok := perModel[bestModel]
	if !ok {
		return nil, &valueobject.ValidationError{Field: "best_model", Reason: "best model has no premium"}
	}

	premium, err := valueobject.NewPremiumFromFloat(best)
	if err != nil {
		return nil, err
	}

	p := &Prediction{
		id:        uuid.New(),
		userID:    userID,
		profile:   profile,
		premium:   premium,
		perModel:  copyPremiums(perModel),
		bestModel: bestModel,
		riskLevel: valueobject.RiskLevelFromPremium(premium),
		createdAt: time.Now().UTC(),
	}

	p.domainEvents = append(p.domainEvents, event.NewPredictionCompleted(
		p.id, p.userID, p.bestModel, p.premium.String(), p.riskLevel.String(),
	))
	if p.premium.GreaterThanOrEqual(HighPremiumThreshold) {
		p.domainEvents = append(p.domainEvents, event.NewHighPremiumDetected(
			p.id, p.userID, p.premium.String(),
		))
	}
	return p, nil
}

// ReconstructPrediction rebuilds a Prediction from persisted data (no
// validation, no events).
func ReconstructPrediction(
	id, userID uuid.UUID,
	profile valueobject.RiskProfile,
	premium valueobject.Premium,
	perModel map[string]float64,
	bestModel string,
	riskLevel valueobject.RiskLevel,
	createdAt time.Time,
) *Prediction {
	return &Prediction{
		id:        id,
		userID:    userID,
		profile:   profile,
		premium:   premium,
		perModel:  copyPremiums(perModel),
		bestModel: bestModel,
		riskLevel: riskLevel,
		createdAt: createdAt,
	}
}

// ID returns the prediction ID.
func (p *Prediction) ID() uuid.UUID {
	return p.id
}

// UserID returns the owning user's ID.
func (p *Prediction) UserID() uuid.UUID {
	return p.userID
}

// Profile returns the rating attributes the quote was computed from.
func (p *Prediction) Profile() valueobject.RiskProfile {
	return p.profile
}

// Premium returns the best model's quote.
func (p *Prediction) Premium() valueobject.Premium {
	return p.premium
}

// PerModel returns a copy of the per-model premiums.
func (p *Prediction) PerModel() map[string]float64 {
	return copyPremiums(p.perModel)
}

// BestModel returns the name of the model behind Premium.
func (p *Prediction) BestModel() string {
	return p.bestModel
}

// RiskLevel returns the risk classification of the quote.
func (p *Prediction) RiskLevel() valueobject.RiskLevel {
	return p.riskLevel
}

// CreatedAt returns when the quote was produced.
func (p *Prediction) CreatedAt() time.Time {
	return p.createdAt
}

// DomainEvents returns all accumulated domain events and clears them.
func (p *Prediction) DomainEvents() []event.DomainEvent {
	events := p.domainEvents
	p.domainEvents = nil
	return events
}

func copyPremiums(in map[string]float64) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
