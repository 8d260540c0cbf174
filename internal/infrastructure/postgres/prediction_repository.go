package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/premialabs/premia/internal/domain/model"
	"github.com/premialabs/premia/internal/domain/port"
	"github.com/premialabs/premia/internal/domain/valueobject"
)

// PredictionRepository implements port.PredictionRepository using PostgreSQL.
type PredictionRepository struct {
	pool *pgxpool.Pool
}

// NewPredictionRepository creates a new PostgreSQL-backed prediction repository.
func NewPredictionRepository(pool *pgxpool.Pool) *PredictionRepository {
	return &PredictionRepository{pool: pool}
}

const predictionColumns = `id, user_id, age, gender, bmi, children, smoker, region,
	premium, per_model, best_model, risk_level, created_at`

// Save persists a prediction. Predictions are immutable once written.
func (r *PredictionRepository) Save(ctx context.Context, prediction *model.Prediction) error {
	perModel, err := json.Marshal(prediction.PerModel())
	if err != nil {
		return fmt.Errorf("failed to marshal per-model premiums: %w", err)
	}

	query := `
		INSERT INTO predictions (
			id, user_id, age, gender, bmi, children, smoker, region,
			premium, per_model, best_model, risk_level, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (id) DO NOTHING
	`

	profile := prediction.Profile()
	_, err = r.pool.Exec(ctx, query,
		prediction.ID(),
		prediction.UserID(),
		profile.Age(),
		profile.Gender().String(),
		profile.BMI(),
		profile.Children(),
		profile.Smoker().String(),
		profile.Region().String(),
		prediction.Premium().Amount(),
		perModel,
		prediction.BestModel(),
		prediction.RiskLevel().String(),
		prediction.CreatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to save prediction: %w", err)
	}
	return nil
}

// FindByID retrieves a prediction by ID. Returns (nil, nil) when absent.
func (r *PredictionRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Prediction, error) {
	query := `SELECT ` + predictionColumns + ` FROM predictions WHERE id = $1`
	return scanPrediction(r.pool.QueryRow(ctx, query, id))
}

// FindByUser retrieves a user's predictions, newest first.
func (r *PredictionRepository) FindByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.Prediction, error) {
	query := `SELECT ` + predictionColumns + `
		FROM predictions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	return r.queryPredictions(ctx, query, userID, limit, offset)
}

// CountByUser returns the number of predictions stored for a user.
func (r *PredictionRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM predictions WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count predictions for user: %w", err)
	}
	return count, nil
}

// ListAll retrieves predictions across all users, newest first.
func (r *PredictionRepository) ListAll(ctx context.Context, limit, offset int) ([]*model.Prediction, error) {
	query := `SELECT ` + predictionColumns + `
		FROM predictions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	return r.queryPredictions(ctx, query, limit, offset)
}

// Delete removes a single prediction.
func (r *PredictionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM predictions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete prediction: %w", err)
	}
	return nil
}

// DeleteByUser removes all predictions stored for a user.
func (r *PredictionRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return deletePredictionsByUser(ctx, r.pool, userID)
}

// Count returns the total number of predictions.
func (r *PredictionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM predictions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count predictions: %w", err)
	}
	return count, nil
}

// CountSince returns the number of predictions created at or after t.
func (r *PredictionRepository) CountSince(ctx context.Context, t time.Time) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM predictions WHERE created_at >= $1`, t).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count recent predictions: %w", err)
	}
	return count, nil
}

// AveragePremium returns the mean premium across all predictions, or zero
// when none exist.
func (r *PredictionRepository) AveragePremium(ctx context.Context) (float64, error) {
	var avg float64
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(AVG(premium), 0)::float8 FROM predictions`).Scan(&avg)
	if err != nil {
		return 0, fmt.Errorf("failed to average premiums: %w", err)
	}
	return avg, nil
}

// PremiumRangeCounts groups predictions into premium bands.
func (r *PredictionRepository) PremiumRangeCounts(ctx context.Context) (map[string]int64, error) {
	query := `
		SELECT CASE
			WHEN premium < 5000 THEN '0-5000'
			WHEN premium < 10000 THEN '5000-10000'
			WHEN premium < 15000 THEN '10000-15000'
			WHEN premium < 20000 THEN '15000-20000'
			ELSE '20000+'
		END AS bucket, COUNT(*)
		FROM predictions
		GROUP BY bucket
	`
	return r.countsByBucket(ctx, query)
}

// AgeGroupCounts groups predictions into age bands.
func (r *PredictionRepository) AgeGroupCounts(ctx context.Context) (map[string]int64, error) {
	query := `
		SELECT CASE
			WHEN age < 25 THEN '18-24'
			WHEN age < 35 THEN '25-34'
			WHEN age < 45 THEN '35-44'
			WHEN age < 55 THEN '45-54'
			ELSE '55+'
		END AS bucket, COUNT(*)
		FROM predictions
		GROUP BY bucket
	`
	return r.countsByBucket(ctx, query)
}

// RegionCounts groups predictions by region.
func (r *PredictionRepository) RegionCounts(ctx context.Context) (map[string]int64, error) {
	return r.countsByBucket(ctx, `SELECT region, COUNT(*) FROM predictions GROUP BY region`)
}

// SmokerCounts groups predictions by smoker status.
func (r *PredictionRepository) SmokerCounts(ctx context.Context) (map[string]int64, error) {
	return r.countsByBucket(ctx, `SELECT smoker, COUNT(*) FROM predictions GROUP BY smoker`)
}

// TopUsers returns the users with the most predictions, descending.
func (r *PredictionRepository) TopUsers(ctx context.Context, limit int) ([]port.UserPredictionCount, error) {
	query := `
		SELECT u.id, u.username, COUNT(p.id) AS predictions
		FROM users u
		JOIN predictions p ON p.user_id = u.id
		GROUP BY u.id, u.username
		ORDER BY predictions DESC, u.username
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query top users: %w", err)
	}
	defer rows.Close()

	top := make([]port.UserPredictionCount, 0)
	for rows.Next() {
		var entry port.UserPredictionCount
		if err := rows.Scan(&entry.UserID, &entry.Username, &entry.Predictions); err != nil {
			return nil, fmt.Errorf("failed to scan top user: %w", err)
		}
		top = append(top, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate top users: %w", err)
	}

	return top, nil
}

func (r *PredictionRepository) queryPredictions(ctx context.Context, query string, args ...any) ([]*model.Prediction, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query predictions: %w", err)
	}
	defer rows.Close()

	predictions := make([]*model.Prediction, 0)
	for rows.Next() {
		prediction, err := scanPrediction(rows)
		if err != nil {
			return nil, err
		}
		predictions = append(predictions, prediction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate predictions: %w", err)
	}

	return predictions, nil
}

func (r *PredictionRepository) countsByBucket(ctx context.Context, query string) (map[string]int64, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query bucket counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var (
			bucket string
			count  int64
		)
		if err := rows.Scan(&bucket, &count); err != nil {
			return nil, fmt.Errorf("failed to scan bucket count: %w", err)
		}
		counts[bucket] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bucket counts: %w", err)
	}

	return counts, nil
}

func deletePredictionsByUser(ctx context.Context, q Querier, userID uuid.UUID) error {
	if _, err := q.Exec(ctx, `DELETE FROM predictions WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to delete predictions for user: %w", err)
	}
	return nil
}

func scanPrediction(row pgx.Row) (*model.Prediction, error) {
	var (
		id           uuid.UUID
		userID       uuid.UUID
		age          int
		genderStr    string
		bmi          float64
		children     int
		smokerStr    string
		regionStr    string
		premiumDec   decimal.Decimal
		perModelRaw  []byte
		bestModel    string
		riskLevelStr string
		createdAt    time.Time
	)

	err := row.Scan(
		&id, &userID, &age, &genderStr, &bmi, &children, &smokerStr, &regionStr,
		&premiumDec, &perModelRaw, &bestModel, &riskLevelStr, &createdAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan prediction: %w", err)
	}

	gender, err := valueobject.GenderFromString(genderStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse gender: %w", err)
	}
	smoker, err := valueobject.SmokerStatusFromString(smokerStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse smoker status: %w", err)
	}
	region, err := valueobject.RegionFromString(regionStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse region: %w", err)
	}

	profile, err := valueobject.NewRiskProfile(age, gender, bmi, children, smoker, region)
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild risk profile: %w", err)
	}

	premium, err := valueobject.NewPremiumFromDecimal(premiumDec)
	if err != nil {
		return nil, fmt.Errorf("failed to parse premium: %w", err)
	}

	riskLevel, err := valueobject.RiskLevelFromString(riskLevelStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse risk level: %w", err)
	}

	var perModel map[string]float64
	if err := json.Unmarshal(perModelRaw, &perModel); err != nil {
		return nil, fmt.Errorf("failed to unmarshal per-model premiums: %w", err)
	}

	return model.ReconstructPrediction(id, userID, profile, premium, perModel, bestModel, riskLevel, createdAt), nil
}
