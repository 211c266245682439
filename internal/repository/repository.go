package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"foresight/internal/models"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("not found")

type ListPredictionsParams struct {
	Category *string
	Status   *string
	Limit    int
	Offset   int
}

type OutcomeCount struct {
	Outcome string `json:"outcome"`
	Count   int64  `json:"count"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Count    int64  `json:"count"`
}

// PredictorAccuracyRow aggregates one predictor's record. Accuracy is
// correct/verified; WeightedAccuracy counts partially_correct as half a hit.
// Both are zero when the predictor has no verified predictions.
type PredictorAccuracyRow struct {
	PredictorName    string          `json:"predictor_name"`
	Total            int64           `json:"total"`
	Verified         int64           `json:"verified"`
	Correct          int64           `json:"correct"`
	PartiallyCorrect int64           `json:"partially_correct"`
	Accuracy         decimal.Decimal `json:"accuracy"`
	WeightedAccuracy decimal.Decimal `json:"weighted_accuracy"`
}

type StatusCounts struct {
	Total    int64 `json:"total"`
	Verified int64 `json:"verified"`
	Pending  int64 `json:"pending"`
	Overdue  int64 `json:"overdue"`
}

type Repository interface {
	InsertPrediction(ctx context.Context, item *models.Prediction) error
	GetPredictionByID(ctx context.Context, id uint64) (*models.Prediction, error)
	ListPredictions(ctx context.Context, params ListPredictionsParams) ([]models.Prediction, error)
	CountPredictions(ctx context.Context, params ListPredictionsParams) (int64, error)

	InsertVerification(ctx context.Context, item *models.Verification) error
	HasVerification(ctx context.Context, predictionID uint64) (bool, error)

	ListTags(ctx context.Context) ([]models.Tag, error)

	CountByOutcome(ctx context.Context) ([]OutcomeCount, error)
	CountByCategory(ctx context.Context) ([]CategoryCount, error)
	PredictorAccuracy(ctx context.Context) ([]PredictorAccuracyRow, error)
	StatusCounts(ctx context.Context, now time.Time) (StatusCounts, error)
}
