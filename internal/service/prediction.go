package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"foresight/internal/config"
	"foresight/internal/models"
	"foresight/internal/repository"
	"foresight/internal/validate"
)

// ErrAlreadyVerified marks a second verification attempt on a prediction.
var ErrAlreadyVerified = errors.New("prediction already verified")

// PredictionView is a prediction with its derived display status attached.
type PredictionView struct {
	models.Prediction
	Status string `json:"status"`
}

type ListParams struct {
	Category string
	Status   string
	Limit    int
	Offset   int
}

type PredictionService struct {
	Repo   repository.Repository
	Limits config.ValidationConfig
	Logger *zap.Logger

	// Now is swappable for tests; defaults to time.Now.
	Now func() time.Time
}

func (s *PredictionService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Create validates and stores a submission. The raw payload is kept as a
// jsonb audit column. Validation failures come back as a message list;
// nothing is written unless every rule passes.
func (s *PredictionService) Create(ctx context.Context, req validate.PredictionRequest) (*PredictionView, []string, error) {
	item, msgs := validate.Prediction(req, s.now(), s.Limits)
	if len(msgs) > 0 {
		return nil, msgs, nil
	}

	if raw, err := json.Marshal(req); err == nil {
		item.RawJSON = datatypes.JSON(raw)
	}

	if err := s.Repo.InsertPrediction(ctx, item); err != nil {
		return nil, nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("prediction created",
			zap.Uint64("id", item.ID),
			zap.String("category", item.Category),
		)
	}
	return &PredictionView{Prediction: *item, Status: item.Status(s.now())}, nil, nil
}

// Get returns one prediction with its verification and derived status.
func (s *PredictionService) Get(ctx context.Context, id uint64) (*PredictionView, error) {
	item, err := s.Repo.GetPredictionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &PredictionView{Prediction: *item, Status: item.Status(s.now())}, nil
}

// List returns predictions newest first with the optional category and
// derived-status filters, plus the total matching count for pagination.
func (s *PredictionService) List(ctx context.Context, params ListParams) ([]PredictionView, int64, error) {
	repoParams := repository.ListPredictionsParams{
		Limit:  params.Limit,
		Offset: params.Offset,
	}
	if params.Category != "" {
		repoParams.Category = &params.Category
	}
	if params.Status != "" {
		repoParams.Status = &params.Status
	}

	items, err := s.Repo.ListPredictions(ctx, repoParams)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.Repo.CountPredictions(ctx, repoParams)
	if err != nil {
		return nil, 0, err
	}

	now := s.now()
	views := make([]PredictionView, 0, len(items))
	for i := range items {
		views = append(views, PredictionView{Prediction: items[i], Status: items[i].Status(now)})
	}
	return views, total, nil
}

// Verify attaches the outcome to an existing, unverified prediction. The
// existence check is application-level; a concurrent duplicate slipping
// through is an accepted gap of the single-row design.
func (s *PredictionService) Verify(ctx context.Context, predictionID uint64, req validate.VerificationRequest) (*models.Verification, []string, error) {
	if _, err := s.Repo.GetPredictionByID(ctx, predictionID); err != nil {
		return nil, nil, err
	}

	exists, err := s.Repo.HasVerification(ctx, predictionID)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, ErrAlreadyVerified
	}

	item, msgs := validate.Verification(req, s.now(), s.Limits)
	if len(msgs) > 0 {
		return nil, msgs, nil
	}
	item.PredictionID = predictionID

	if err := s.Repo.InsertVerification(ctx, item); err != nil {
		return nil, nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("verification recorded",
			zap.Uint64("prediction_id", predictionID),
			zap.String("outcome", item.Outcome),
		)
	}
	return item, nil, nil
}
