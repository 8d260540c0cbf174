package event

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is the interface all domain events implement.
type DomainEvent interface {
	EventType() string
	OccurredAt() time.Time
	AggregateID() uuid.UUID
}

// Event type identifiers.
const (
	EventTypeUserRegistered         = "premia.user.registered"
	EventTypePredictionCompleted    = "premia.prediction.completed"
	EventTypeHighPremiumDetected    = "premia.high_premium.detected"
	EventTypeModelTrainingCompleted = "premia.model_training.completed"
)

// UserRegistered is emitted when a new account is created.
type UserRegistered struct {
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	Timestamp time.Time `json:"timestamp"`
}

// NewUserRegistered constructs the event with the current time.
func NewUserRegistered(userID uuid.UUID, username string) UserRegistered {
	return UserRegistered{UserID: userID, Username: username, Timestamp: time.Now().UTC()}
}

func (e UserRegistered) EventType() string      { return EventTypeUserRegistered }
func (e UserRegistered) OccurredAt() time.Time  { return e.Timestamp }
func (e UserRegistered) AggregateID() uuid.UUID { return e.UserID }

// PredictionCompleted is emitted when a premium quote has been produced and
// stored for a user.
type PredictionCompleted struct {
	PredictionID uuid.UUID `json:"prediction_id"`
	UserID       uuid.UUID `json:"user_id"`
	BestModel    string    `json:"best_model"`
	Premium      string    `json:"premium"`
	RiskLevel    string    `json:"risk_level"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewPredictionCompleted constructs the event with the current time.
func NewPredictionCompleted(predictionID, userID uuid.UUID, bestModel, premium, riskLevel string) PredictionCompleted {
	return PredictionCompleted{
		PredictionID: predictionID,
		UserID:       userID,
		BestModel:    bestModel,
		Premium:      premium,
		RiskLevel:    riskLevel,
		Timestamp:    time.Now().UTC(),
	}
}

func (e PredictionCompleted) EventType() string      { return EventTypePredictionCompleted }
func (e PredictionCompleted) OccurredAt() time.Time  { return e.Timestamp }
func (e PredictionCompleted) AggregateID() uuid.UUID { return e.PredictionID }

// HighPremiumDetected is emitted when a quote crosses the very-high-risk
// premium threshold, for downstream review queues.
type HighPremiumDetected struct {
	PredictionID uuid.UUID `json:"prediction_id"`
	UserID       uuid.UUID `json:"user_id"`
	Premium      string    `json:"premium"`
	Timestamp    time.Time `json:"timestamp"`
}

// NewHighPremiumDetected constructs the event with the current time.
func NewHighPremiumDetected(predictionID, userID uuid.UUID, premium string) HighPremiumDetected {
	return HighPremiumDetected{
		PredictionID: predictionID,
		UserID:       userID,
		Premium:      premium,
		Timestamp:    time.Now().UTC(),
	}
}

func (e HighPremiumDetected) EventType() string      { return EventTypeHighPremiumDetected }
func (e HighPremiumDetected) OccurredAt() time.Time  { return e.Timestamp }
func (e HighPremiumDetected) AggregateID() uuid.UUID { return e.PredictionID }

// ModelTrainingCompleted is emitted after a training run finishes and the
// artifact set has been swapped in.
type ModelTrainingCompleted struct {
	RunID      uuid.UUID `json:"run_id"`
	BestModel  string    `json:"best_model"`
	Models     int       `json:"models"`
	Rows       int       `json:"rows"`
	DurationMS int64     `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewModelTrainingCompleted constructs the event with a fresh run ID.
func NewModelTrainingCompleted(bestModel string, models, rows int, duration time.Duration) ModelTrainingCompleted {
	return ModelTrainingCompleted{
		RunID:      uuid.New(),
		BestModel:  bestModel,
		Models:     models,
		Rows:       rows,
		DurationMS: duration.Milliseconds(),
		Timestamp:  time.Now().UTC(),
	}
}

func (e ModelTrainingCompleted) EventType() string      { return EventTypeModelTrainingCompleted }
func (e ModelTrainingCompleted) OccurredAt() time.Time  { return e.Timestamp }
func (e ModelTrainingCompleted) AggregateID() uuid.UUID { return e.RunID }
