package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/premialabs/premia/internal/application/dto"
	"github.com/premialabs/premia/internal/application/usecase"
	"github.com/premialabs/premia/internal/auth"
	"github.com/premialabs/premia/internal/domain/model"
	"github.com/premialabs/premia/internal/domain/port"
	"github.com/premialabs/premia/internal/domain/valueobject"
	"github.com/premialabs/premia/internal/infrastructure/kafka"
	"github.com/premialabs/premia/internal/presentation/rest/middleware"
)

// memUserRepo is an in-memory port.UserRepository.
type memUserRepo struct {
	mu    sync.Mutex
	users []*model.User
}

func (r *memUserRepo) Save(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID() == user.ID() {
			r.users[i] = user
			return nil
		}
	}
	// Prepend so List returns newest first.
	r.users = append([]*model.User{user}, r.users...)
	return nil
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID() == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username() == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email() == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) List(_ context.Context, limit, offset int) ([]*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if offset >= len(r.users) {
		return nil, nil
	}
	end := offset + limit
	if end > len(r.users) {
		end = len(r.users)
	}
	return r.users[offset:end], nil
}

func (r *memUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID() == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memUserRepo) CountCustomers(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if !u.IsAdmin() {
			n++
		}
	}
	return n, nil
}

func (r *memUserRepo) CountAdmins(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.users {
		if u.IsAdmin() {
			n++
		}
	}
	return n, nil
}

// memPredictionRepo is an in-memory port.PredictionRepository. The
// analytics aggregates return canned values set by the test.
type memPredictionRepo struct {
	mu           sync.Mutex
	preds        []*model.Prediction
	rangeCounts  map[string]int64
	ageCounts    map[string]int64
	regionCounts map[string]int64
	smokerCounts map[string]int64
	topUsers     []port.UserPredictionCount
}

func (r *memPredictionRepo) Save(_ context.Context, prediction *model.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.preds = append([]*model.Prediction{prediction}, r.preds...)
	return nil
}

func (r *memPredictionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.preds {
		if p.ID() == id {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memPredictionRepo) FindByUser(_ context.Context, userID uuid.UUID, limit, offset int) ([]*model.Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var mine []*model.Prediction
	for _, p := range r.preds {
		if p.UserID() == userID {
			mine = append(mine, p)
		}
	}
	if offset >= len(mine) {
		return nil, nil
	}
	end := offset + limit
	if end > len(mine) {
		end = len(mine)
	}
	return mine[offset:end], nil
}

func (r *memPredictionRepo) CountByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.preds {
		if p.UserID() == userID {
			n++
		}
	}
	return n, nil
}

func (r *memPredictionRepo) ListAll(_ context.Context, limit, offset int) ([]*model.Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if offset >= len(r.preds) {
		return nil, nil
	}
	end := offset + limit
	if end > len(r.preds) {
		end = len(r.preds)
	}
	return r.preds[offset:end], nil
}

func (r *memPredictionRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.preds {
		if p.ID() == id {
			r.preds = append(r.preds[:i], r.preds[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memPredictionRepo) DeleteByUser(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.preds[:0]
	for _, p := range r.preds {
		if p.UserID() != userID {
			kept = append(kept, p)
		}
	}
	r.preds = kept
	return nil
}

func (r *memPredictionRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.preds)), nil
}

func (r *memPredictionRepo) CountSince(_ context.Context, t time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, p := range r.preds {
		if !p.CreatedAt().Before(t) {
			n++
		}
	}
	return n, nil
}

func (r *memPredictionRepo) AveragePremium(_ context.Context) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.preds) == 0 {
		return 0, nil
	}
	var sum float64
	for _, p := range r.preds {
		sum += p.Premium().Float64()
	}
	return sum / float64(len(r.preds)), nil
}

func (r *memPredictionRepo) PremiumRangeCounts(_ context.Context) (map[string]int64, error) {
	return r.rangeCounts, nil
}

func (r *memPredictionRepo) AgeGroupCounts(_ context.Context) (map[string]int64, error) {
	return r.ageCounts, nil
}

func (r *memPredictionRepo) RegionCounts(_ context.Context) (map[string]int64, error) {
	return r.regionCounts, nil
}

func (r *memPredictionRepo) SmokerCounts(_ context.Context) (map[string]int64, error) {
	return r.smokerCounts, nil
}

func (r *memPredictionRepo) TopUsers(_ context.Context, _ int) ([]port.UserPredictionCount, error) {
	return r.topUsers, nil
}

// fakeEstimator is a canned port.PremiumEstimator.
type fakeEstimator struct {
	mu          sync.Mutex
	ready       bool
	premiums    map[string]float64
	best        string
	estimateErr error
	retrainErr  error
	retrains    int
	report      port.ModelReport
}

func (e *fakeEstimator) EnsureReady(context.Context) error { return nil }

func (e *fakeEstimator) Estimate(_ context.Context, _ valueobject.RiskProfile) (port.EstimateResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.estimateErr != nil {
		return port.EstimateResult{}, e.estimateErr
	}
	premiums := make(map[string]float64, len(e.premiums))
	for k, v := range e.premiums {
		premiums[k] = v
	}
	return port.EstimateResult{
		Premiums:    premiums,
		BestModel:   e.best,
		BestPremium: e.premiums[e.best],
	}, nil
}

func (e *fakeEstimator) Ready() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ready
}

func (e *fakeEstimator) Retrain(context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.retrainErr != nil {
		return e.retrainErr
	}
	e.retrains++
	return nil
}

func (e *fakeEstimator) Report() port.ModelReport {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.report
}

// fakePinger is a DBPinger whose result the test controls.
type fakePinger struct {
	err error
}

func (p *fakePinger) Ping(context.Context) error { return p.err }

// testServer wires the full HTTP surface over in-memory fakes, mirroring
// the production middleware chain.
type testServer struct {
	handler http.Handler
	tokens  *auth.Service
	users   *memUserRepo
	preds   *memPredictionRepo
	est     *fakeEstimator
	pinger  *fakePinger
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)

	tokens, err := auth.NewService(auth.Config{
		Secret:     "test-secret-key",
		Issuer:     "test",
		Expiration: 1 * time.Hour,
	})
	if err != nil {
		t.Fatalf("failed to create token service: %v", err)
	}

	users := &memUserRepo{}
	preds := &memPredictionRepo{}
	est := &fakeEstimator{
		ready: true,
		premiums: map[string]float64{
			"linear_regression": 8120.33,
			"random_forest":     8457.12,
		},
		best: "random_forest",
		report: port.ModelReport{
			State:     "ready",
			BestModel: "random_forest",
			TrainedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			Models: map[string]port.ModelMetrics{
				"random_forest": {MAE: 1200.5, R2: 0.91, AdjustedR2: 0.90},
			},
		},
	}
	pinger := &fakePinger{}
	publisher := kafka.NewNoopPublisher(logger)

	registerUC := usecase.NewRegisterUser(users, publisher)
	loginUC := usecase.NewAuthenticateUser(users, tokens)
	quoteUC := usecase.NewRequestQuote(preds, est, publisher)
	historyUC := usecase.NewGetQuoteHistory(preds)
	getQuoteUC := usecase.NewGetQuote(preds)
	profileUC := usecase.NewGetUserProfile(users, preds)
	updateProfileUC := usecase.NewUpdateUserProfile(users)
	deleteQuoteUC := usecase.NewDeleteQuote(preds)
	statsUC := usecase.NewGetAdminStats(users, preds)
	analyticsUC := usecase.NewGetAdminAnalytics(preds)
	listUsersUC := usecase.NewListUsers(users)
	deleteUserUC := usecase.NewDeleteUser(users)
	exportUC := usecase.NewExportQuotes(users, preds)
	retrainUC := usecase.NewRetrainModels(est, publisher, 1000)
	reportUC := usecase.NewGetModelReport(est)

	mux := http.NewServeMux()
	NewHealthHandler(pinger, est, logger).RegisterRoutes(mux)
	NewAuthHandler(registerUC, loginUC, 1*time.Hour, logger).RegisterRoutes(mux)
	NewQuoteHandler(quoteUC, historyUC, getQuoteUC, deleteQuoteUC, logger).RegisterRoutes(mux)
	NewProfileHandler(profileUC, updateProfileUC).RegisterRoutes(mux)
	NewModelHandler(reportUC).RegisterRoutes(mux)
	NewAdminHandler(statsUC, analyticsUC, listUsersUC, deleteUserUC, exportUC, retrainUC, logger).RegisterRoutes(mux)

	var handler http.Handler = mux
	handler = middleware.AuthMiddleware(tokens, []string{
		"/healthz",
		"/readyz",
		"/api/v1/auth/register",
		"/api/v1/auth/login",
	})(handler)

	return &testServer{
		handler: handler,
		tokens:  tokens,
		users:   users,
		preds:   preds,
		est:     est,
		pinger:  pinger,
	}
}

// do issues a request through the full middleware chain. An empty token
// leaves the request unauthenticated.
func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

// register creates an account through the API and returns its response.
func (s *testServer) register(t *testing.T, username, email, password string) dto.UserResponse {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/v1/auth/register", "", dto.RegisterUserRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d: %s", username, rec.Code, rec.Body.String())
	}
	var user dto.UserResponse
	decodeBody(t, rec, &user)
	return user
}

// login authenticates through the API and returns the session token.
func (s *testServer) login(t *testing.T, username, password string) string {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/v1/auth/login", "", dto.LoginRequest{
		Username: username,
		Password: password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d: %s", username, rec.Code, rec.Body.String())
	}
	var resp dto.AuthResponse
	decodeBody(t, rec, &resp)
	return resp.Token
}

// adminToken seeds an admin account directly and mints its token.
func (s *testServer) adminToken(t *testing.T) (uuid.UUID, string) {
	t.Helper()

	hash, err := auth.HashPassword("admin-password")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	admin, err := model.NewUser("root", "root@example.com", hash)
	if err != nil {
		t.Fatalf("failed to create admin account: %v", err)
	}
	admin.PromoteToAdmin()
	admin.DomainEvents()
	if err := s.users.Save(context.Background(), admin); err != nil {
		t.Fatalf("failed to save admin account: %v", err)
	}

	token, err := s.tokens.GenerateToken(admin.ID(), admin.Username(), auth.RolesFor(true))
	if err != nil {
		t.Fatalf("failed to generate admin token: %v", err)
	}
	return admin.ID(), token
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(rec.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func validQuoteBody() dto.QuoteRequest {
	return dto.QuoteRequest{
		Age:      35,
		Gender:   "female",
		BMI:      27.5,
		Children: 1,
		Smoker:   "no",
		Region:   "northeast",
	}
}
