package usecase_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/premialabs/premia/internal/domain/event"
	"github.com/premialabs/premia/internal/domain/model"
	"github.com/premialabs/premia/internal/domain/port"
	"github.com/premialabs/premia/internal/domain/valueobject"
)

// mockUserRepository records saves and delegates lookups to optional func
// fields. Unset funcs behave like an empty repository.
type mockUserRepository struct {
	savedUser *model.User
	deletedID uuid.UUID

	saveFunc           func(ctx context.Context, user *model.User) error
	findByIDFunc       func(ctx context.Context, id uuid.UUID) (*model.User, error)
	findByUsernameFunc func(ctx context.Context, username string) (*model.User, error)
	findByEmailFunc    func(ctx context.Context, email string) (*model.User, error)
	listFunc           func(ctx context.Context, limit, offset int) ([]*model.User, error)
	deleteFunc         func(ctx context.Context, id uuid.UUID) error
	countCustomersFunc func(ctx context.Context) (int64, error)
	countAdminsFunc    func(ctx context.Context) (int64, error)
}

func (m *mockUserRepository) Save(ctx context.Context, user *model.User) error {
	m.savedUser = user
	if m.saveFunc != nil {
		return m.saveFunc(ctx, user)
	}
	return nil
}

func (m *mockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return nil, nil
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepository) List(ctx context.Context, limit, offset int) ([]*model.User, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.deletedID = id
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockUserRepository) CountCustomers(ctx context.Context) (int64, error) {
	if m.countCustomersFunc != nil {
		return m.countCustomersFunc(ctx)
	}
	return 0, nil
}

func (m *mockUserRepository) CountAdmins(ctx context.Context) (int64, error) {
	if m.countAdminsFunc != nil {
		return m.countAdminsFunc(ctx)
	}
	return 0, nil
}

// mockPredictionRepository mirrors mockUserRepository for quotes.
type mockPredictionRepository struct {
	savedPrediction *model.Prediction
	deletedID       uuid.UUID

	saveFunc               func(ctx context.Context, prediction *model.Prediction) error
	findByIDFunc           func(ctx context.Context, id uuid.UUID) (*model.Prediction, error)
	findByUserFunc         func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.Prediction, error)
	countByUserFunc        func(ctx context.Context, userID uuid.UUID) (int64, error)
	listAllFunc            func(ctx context.Context, limit, offset int) ([]*model.Prediction, error)
	deleteFunc             func(ctx context.Context, id uuid.UUID) error
	deleteByUserFunc       func(ctx context.Context, userID uuid.UUID) error
	countFunc              func(ctx context.Context) (int64, error)
	countSinceFunc         func(ctx context.Context, t time.Time) (int64, error)
	averagePremiumFunc     func(ctx context.Context) (float64, error)
	premiumRangeCountsFunc func(ctx context.Context) (map[string]int64, error)
	ageGroupCountsFunc     func(ctx context.Context) (map[string]int64, error)
	regionCountsFunc       func(ctx context.Context) (map[string]int64, error)
	smokerCountsFunc       func(ctx context.Context) (map[string]int64, error)
	topUsersFunc           func(ctx context.Context, limit int) ([]port.UserPredictionCount, error)
}

func (m *mockPredictionRepository) Save(ctx context.Context, prediction *model.Prediction) error {
	m.savedPrediction = prediction
	if m.saveFunc != nil {
		return m.saveFunc(ctx, prediction)
	}
	return nil
}

func (m *mockPredictionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Prediction, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockPredictionRepository) FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.Prediction, error) {
	if m.findByUserFunc != nil {
		return m.findByUserFunc(ctx, userID, limit, offset)
	}
	return nil, nil
}

func (m *mockPredictionRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	if m.countByUserFunc != nil {
		return m.countByUserFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockPredictionRepository) ListAll(ctx context.Context, limit, offset int) ([]*model.Prediction, error) {
	if m.listAllFunc != nil {
		return m.listAllFunc(ctx, limit, offset)
	}
	return nil, nil
}

func (m *mockPredictionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	m.deletedID = id
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockPredictionRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	if m.deleteByUserFunc != nil {
		return m.deleteByUserFunc(ctx, userID)
	}
	return nil
}

func (m *mockPredictionRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockPredictionRepository) CountSince(ctx context.Context, t time.Time) (int64, error) {
	if m.countSinceFunc != nil {
		return m.countSinceFunc(ctx, t)
	}
	return 0, nil
}

func (m *mockPredictionRepository) AveragePremium(ctx context.Context) (float64, error) {
	if m.averagePremiumFunc != nil {
		return m.averagePremiumFunc(ctx)
	}
	return 0, nil
}

func (m *mockPredictionRepository) PremiumRangeCounts(ctx context.Context) (map[string]int64, error) {
	if m.premiumRangeCountsFunc != nil {
		return m.premiumRangeCountsFunc(ctx)
	}
	return map[string]int64{}, nil
}

func (m *mockPredictionRepository) AgeGroupCounts(ctx context.Context) (map[string]int64, error) {
	if m.ageGroupCountsFunc != nil {
		return m.ageGroupCountsFunc(ctx)
	}
	return map[string]int64{}, nil
}

func (m *mockPredictionRepository) RegionCounts(ctx context.Context) (map[string]int64, error) {
	if m.regionCountsFunc != nil {
		return m.regionCountsFunc(ctx)
	}
	return map[string]int64{}, nil
}

func (m *mockPredictionRepository) SmokerCounts(ctx context.Context) (map[string]int64, error) {
	if m.smokerCountsFunc != nil {
		return m.smokerCountsFunc(ctx)
	}
	return map[string]int64{}, nil
}

func (m *mockPredictionRepository) TopUsers(ctx context.Context, limit int) ([]port.UserPredictionCount, error) {
	if m.topUsersFunc != nil {
		return m.topUsersFunc(ctx, limit)
	}
	return nil, nil
}

// mockEventPublisher records everything published.
type mockEventPublisher struct {
	publishedEvents []event.DomainEvent
	publishFunc     func(ctx context.Context, events ...event.DomainEvent) error
}

func (m *mockEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	m.publishedEvents = append(m.publishedEvents, events...)
	if m.publishFunc != nil {
		return m.publishFunc(ctx, events...)
	}
	return nil
}

// mockEstimator returns a canned estimate and counts retrains.
type mockEstimator struct {
	result       port.EstimateResult
	report       port.ModelReport
	ready        bool
	retrainCalls int

	estimateFunc func(ctx context.Context, profile valueobject.RiskProfile) (port.EstimateResult, error)
	retrainFunc  func(ctx context.Context) error
}

func (m *mockEstimator) EnsureReady(context.Context) error {
	return nil
}

func (m *mockEstimator) Estimate(ctx context.Context, profile valueobject.RiskProfile) (port.EstimateResult, error) {
	if m.estimateFunc != nil {
		return m.estimateFunc(ctx, profile)
	}
	return m.result, nil
}

func (m *mockEstimator) Ready() bool {
	return m.ready
}

func (m *mockEstimator) Retrain(ctx context.Context) error {
	m.retrainCalls++
	if m.retrainFunc != nil {
		return m.retrainFunc(ctx)
	}
	return nil
}

func (m *mockEstimator) Report() port.ModelReport {
	return m.report
}
