package predictor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/sozercan/npk-predictor/apimodels"
	"github.com/sozercan/npk-predictor/internal/form"
	"github.com/sozercan/npk-predictor/internal/model"
)

type Predictor struct {
	model model.Model
}

func New(m model.Model) *Predictor {
	return &Predictor{model: m}
}

// ModelName reports the name of the loaded artifact.
func (p *Predictor) ModelName() string {
	return p.model.Name()
}

// Predict clamps req and makes exactly one inference call with its feature
// vector. Inference errors are returned unchanged apart from wrapping.
func (p *Predictor) Predict(ctx context.Context, req form.Request) (*apimodels.PredictionResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	req = req.Clamp()
	features := req.Vector()

	slog.Debug("Starting prediction", "id", id, "features", features)
	start := time.Now()

	value, err := p.model.Predict(features)
	if err != nil {
		slog.Error("Prediction failed", "id", id, "error", err)
		return nil, fmt.Errorf("prediction failed: %w", err)
	}

	duration := time.Since(start)
	formatted := form.FormatResult(value)
	slog.Info("Prediction completed", "id", id, "prediction", formatted, "duration", duration)

	return &apimodels.PredictionResponse{
		Prediction: value,
		Formatted:  formatted,
		Message:    "Predicted NPK Ratio: " + formatted,
		Inputs:     req,
		Metadata: apimodels.PredictionMetadata{
			ID:       id,
			Duration: duration.String(),
			Model:    p.model.Name(),
		},
	}, nil
}
