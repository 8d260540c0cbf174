package ml

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/premialabs/premia/internal/ml/artifact"
	"github.com/premialabs/premia/internal/ml/dataset"
	"github.com/premialabs/premia/internal/ml/feature"
	"github.com/premialabs/premia/internal/ml/regress"
)

const testFraction = 0.2

// TrainingResult is the outcome of one full training run.
type TrainingResult struct {
	Bundles   map[string]*artifact.Bundle
	BestModel string
	Rows      int
	Duration  time.Duration
}

// Trainer runs the full pipeline: generate the corpus, fit the codec, split
// 80/20, scale, fit every configured model, evaluate on the held-out split,
// and persist one bundle per model.
type Trainer struct {
	datasetCfg   dataset.Config
	configs      []ModelConfig
	store        *artifact.Store
	snapshotPath string
	logger       *slog.Logger
}

// NewTrainer builds a trainer. A nil store skips persistence; an empty
// snapshot path skips the CSV snapshot.
func NewTrainer(datasetCfg dataset.Config, configs []ModelConfig, store *artifact.Store, snapshotPath string, logger *slog.Logger) *Trainer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Trainer{
		datasetCfg:   datasetCfg.WithDefaults(),
		configs:      configs,
		store:        store,
		snapshotPath: snapshotPath,
		logger:       logger,
	}
}

// Train executes the pipeline. The context is checked between model fits so
// shutdown does not wait on the remaining models.
func (t *Trainer) Train(ctx context.Context) (*TrainingResult, error) {
	if len(t.configs) == 0 {
		return nil, errors.New("ml: no model configs to train")
	}
	start := time.Now()

	table, err := dataset.NewGenerator(t.datasetCfg).Generate()
	if err != nil {
		return nil, fmt.Errorf("ml: generate corpus: %w", err)
	}
	if t.snapshotPath != "" {
		if err := table.WriteCSV(t.snapshotPath); err != nil {
			return nil, fmt.Errorf("ml: persist training snapshot: %w", err)
		}
	}

	// Encoders fit on the full corpus; the scaler fits on the training split only.
	encoders := map[string]*feature.LabelEncoder{
		feature.ColumnGender: feature.FitLabelEncoder(feature.ColumnGender, table.Genders()),
		feature.ColumnSmoker: feature.FitLabelEncoder(feature.ColumnSmoker, table.Smokers()),
		feature.ColumnRegion: feature.FitLabelEncoder(feature.ColumnRegion, table.RegionColumn()),
	}

	X, err := encodeTable(table, encoders)
	if err != nil {
		return nil, fmt.Errorf("ml: encode corpus: %w", err)
	}
	y := table.Premiums()

	XTrain, XTest, yTrain, yTest, err := regress.TrainTestSplit(X, y, testFraction, t.datasetCfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("ml: split corpus: %w", err)
	}

	scaler := feature.NewStandardScaler()
	XTrainScaled, err := scaler.FitTransform(XTrain)
	if err != nil {
		return nil, fmt.Errorf("ml: scale training split: %w", err)
	}
	XTestScaled, err := scaler.Transform(XTest)
	if err != nil {
		return nil, fmt.Errorf("ml: scale test split: %w", err)
	}

	trainedAt := time.Now().UTC()
	bundles := make(map[string]*artifact.Bundle, len(t.configs))
	bestName := ""
	bestR2 := math.Inf(-1)

	for _, cfg := range t.configs {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		model := cfg.New()
		if err := model.Fit(XTrainScaled, yTrain); err != nil {
			return nil, fmt.Errorf("ml: fit %s: %w", cfg.Name, err)
		}
		preds, err := model.PredictBatch(XTestScaled)
		if err != nil {
			return nil, fmt.Errorf("ml: evaluate %s: %w", cfg.Name, err)
		}
		metrics, err := regress.Evaluate(yTest, preds, feature.NumFeatures)
		if err != nil {
			return nil, fmt.Errorf("ml: evaluate %s: %w", cfg.Name, err)
		}

		t.logger.InfoContext(ctx, "model evaluated",
			slog.String("model", cfg.Name),
			slog.Float64("r2", metrics.R2),
			slog.Float64("rmse", metrics.RMSE),
			slog.Float64("mape", metrics.MAPE),
		)

		bundles[cfg.Name] = &artifact.Bundle{
			ModelName:     cfg.Name,
			Model:         model,
			Scaler:        scaler,
			LabelEncoders: encoders,
			Metrics:       metrics,
			FeatureNames:  feature.Names,
			TrainedAt:     trainedAt,
		}
		if metrics.R2 > bestR2 {
			bestR2 = metrics.R2
			bestName = cfg.Name
		}
	}

	if t.store != nil {
		for _, name := range Names(t.configs) {
			if err := t.store.Save(bundles[name]); err != nil {
				return nil, err
			}
		}
	}

	return &TrainingResult{
		Bundles:   bundles,
		BestModel: bestName,
		Rows:      table.Len(),
		Duration:  time.Since(start),
	}, nil
}

func encodeTable(table *dataset.Table, encoders map[string]*feature.LabelEncoder) ([][]float64, error) {
	X := make([][]float64, table.Len())
	for i, r := range table.Records {
		gender, err := encoders[feature.ColumnGender].Transform(r.Gender)
		if err != nil {
			return nil, err
		}
		smoker, err := encoders[feature.ColumnSmoker].Transform(r.Smoker)
		if err != nil {
			return nil, err
		}
		region, err := encoders[feature.ColumnRegion].Transform(r.Region)
		if err != nil {
			return nil, err
		}
		X[i] = []float64{
			float64(r.Age),
			float64(gender),
			r.BMI,
			float64(r.Children),
			float64(smoker),
			float64(region),
		}
	}
	return X, nil
}
