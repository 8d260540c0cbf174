package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/premialabs/premia/internal/domain/model"
)

// UserRepository defines the persistence port for user accounts.
type UserRepository interface {
	// Save persists a new or updated user.
	Save(ctx context.Context, user *model.User) error

	// FindByID retrieves a user by ID. Returns (nil, nil) when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// FindByUsername retrieves a user by login name. Returns (nil, nil) when absent.
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// FindByEmail retrieves a user by email. Returns (nil, nil) when absent.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// List returns users ordered by creation time, newest first.
	List(ctx context.Context, limit, offset int) ([]*model.User, error)

	// Delete removes a user.
	Delete(ctx context.Context, id uuid.UUID) error

	// CountCustomers returns the number of non-admin users.
	CountCustomers(ctx context.Context) (int64, error)

	// CountAdmins returns the number of admin users.
	CountAdmins(ctx context.Context) (int64, error)
}

// UserPredictionCount pairs a user with their prediction count, for the
// top-users analytics view.
type UserPredictionCount struct {
	UserID      uuid.UUID
	Username    string
	Predictions int64
}

// PredictionRepository defines the persistence port for stored quotes and
// the aggregate queries behind the admin analytics views.
type PredictionRepository interface {
	// Save persists a prediction.
	Save(ctx context.Context, prediction *model.Prediction) error

	// FindByID retrieves a prediction by ID. Returns (nil, nil) when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Prediction, error)

	// FindByUser returns a user's predictions, newest first.
	FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.Prediction, error)

	// CountByUser returns the number of predictions a user has made.
	CountByUser(ctx context.Context, userID uuid.UUID) (int64, error)

	// ListAll returns predictions across all users, newest first.
	ListAll(ctx context.Context, limit, offset int) ([]*model.Prediction, error)

	// Delete removes a prediction.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByUser removes all of a user's predictions.
	DeleteByUser(ctx context.Context, userID uuid.UUID) error

	// Count returns the total number of predictions.
	Count(ctx context.Context) (int64, error)

	// CountSince returns the number of predictions created at or after t.
	CountSince(ctx context.Context, t time.Time) (int64, error)

	// AveragePremium returns the mean quoted premium, 0 when no rows exist.
	AveragePremium(ctx context.Context) (float64, error)

	// PremiumRangeCounts buckets predictions by premium band.
	PremiumRangeCounts(ctx context.Context) (map[string]int64, error)

	// AgeGroupCounts buckets predictions by applicant age group.
	AgeGroupCounts(ctx context.Context) (map[string]int64, error)

	// RegionCounts groups predictions by rating region.
	RegionCounts(ctx context.Context) (map[string]int64, error)

	// SmokerCounts groups predictions by smoking status.
	SmokerCounts(ctx context.Context) (map[string]int64, error)

	// TopUsers returns the users with the most predictions.
	TopUsers(ctx context.Context, limit int) ([]UserPredictionCount, error)
}
