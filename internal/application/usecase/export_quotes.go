package usecase

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/premialabs/premia/internal/domain/port"
)

const exportPageSize = 500

// ExportQuotes is the use case for the admin CSV export.
type ExportQuotes struct {
	users       port.UserRepository
	predictions port.PredictionRepository
}

// NewExportQuotes creates a new ExportQuotes use case.
func NewExportQuotes(users port.UserRepository, predictions port.PredictionRepository) *ExportQuotes {
	return &ExportQuotes{
		users:       users,
		predictions: predictions,
	}
}

// Execute streams every stored quote to w as CSV, newest first.
func (uc *ExportQuotes) Execute(ctx context.Context, w io.Writer) error {
	cw := csv.NewWriter(w)

	header := []string{
		"quote_id", "username", "age", "gender", "bmi", "children",
		"smoker", "region", "premium", "best_model", "risk_level", "created_at",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	usernames := make(map[uuid.UUID]string)
	for offset := 0; ; offset += exportPageSize {
		batch, err := uc.predictions.ListAll(ctx, exportPageSize, offset)
		if err != nil {
			return fmt.Errorf("failed to list quotes: %w", err)
		}
		if len(batch) == 0 {
			break
		}

		for _, p := range batch {
			username, err := uc.lookupUsername(ctx, usernames, p.UserID())
			if err != nil {
				return err
			}

			profile := p.Profile()
			record := []string{
				p.ID().String(),
				username,
				strconv.Itoa(profile.Age()),
				profile.Gender().String(),
				strconv.FormatFloat(profile.BMI(), 'f', -1, 64),
				strconv.Itoa(profile.Children()),
				profile.Smoker().String(),
				profile.Region().String(),
				p.Premium().String(),
				p.BestModel(),
				p.RiskLevel().String(),
				p.CreatedAt().UTC().Format(time.RFC3339),
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write csv record: %w", err)
			}
		}

		if len(batch) < exportPageSize {
			break
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func (uc *ExportQuotes) lookupUsername(ctx context.Context, cache map[uuid.UUID]string, userID uuid.UUID) (string, error) {
	if username, ok := cache[userID]; ok {
		return username, nil
	}

	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	var username string
	if user != nil {
		username = user.Username()
	}
	cache[userID] = username
	return username, nil
}
