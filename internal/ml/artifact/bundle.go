// Package artifact persists trained model state. Each bundle is an immutable,
// self-contained unit: the fitted model plus the exact scaler and label
// encoders it was trained with, so a loaded bundle can never mix codec and
// model from different training runs.
package artifact

import (
	"encoding/gob"
	"time"

	"github.com/premialabs/premia/internal/ml/feature"
	"github.com/premialabs/premia/internal/ml/regress"
)

func init() {
	gob.Register(&regress.LinearRegression{})
	gob.Register(&regress.RegressionTree{})
	gob.Register(&regress.RandomForest{})
	gob.Register(&regress.GradientBoost{})
}

// Bundle is the persisted unit for one trained model.
type Bundle struct {
	ModelName     string
	Model         regress.Regressor
	Scaler        *feature.StandardScaler
	LabelEncoders map[string]*feature.LabelEncoder
	Metrics       regress.Metrics
	FeatureNames  []string
	TrainedAt     time.Time
}
