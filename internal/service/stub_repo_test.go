package service

import (
	"context"
	"time"

	"foresight/internal/models"
	"foresight/internal/repository"
)

// stubRepo is an in-memory Repository for service tests.
type stubRepo struct {
	predictions   map[uint64]*models.Prediction
	verifications map[uint64]*models.Verification
	nextID        uint64

	outcomeCounts  []repository.OutcomeCount
	categoryCounts []repository.CategoryCount
	predictorRows  []repository.PredictorAccuracyRow
	statusCounts   repository.StatusCounts
	statsCalls     int
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		predictions:   map[uint64]*models.Prediction{},
		verifications: map[uint64]*models.Verification{},
	}
}

func (r *stubRepo) InsertPrediction(_ context.Context, item *models.Prediction) error {
	r.nextID++
	item.ID = r.nextID
	copied := *item
	r.predictions[item.ID] = &copied
	return nil
}

func (r *stubRepo) GetPredictionByID(_ context.Context, id uint64) (*models.Prediction, error) {
	item, ok := r.predictions[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *item
	if v, ok := r.verifications[id]; ok {
		verif := *v
		copied.Verification = &verif
	}
	return &copied, nil
}

func (r *stubRepo) ListPredictions(_ context.Context, params repository.ListPredictionsParams) ([]models.Prediction, error) {
	var out []models.Prediction
	for _, item := range r.predictions {
		if params.Category != nil && item.Category != *params.Category {
			continue
		}
		copied := *item
		if v, ok := r.verifications[item.ID]; ok {
			verif := *v
			copied.Verification = &verif
		}
		out = append(out, copied)
	}
	return out, nil
}

func (r *stubRepo) CountPredictions(ctx context.Context, params repository.ListPredictionsParams) (int64, error) {
	items, err := r.ListPredictions(ctx, params)
	return int64(len(items)), err
}

func (r *stubRepo) InsertVerification(_ context.Context, item *models.Verification) error {
	r.nextID++
	item.ID = r.nextID
	copied := *item
	r.verifications[item.PredictionID] = &copied
	return nil
}

func (r *stubRepo) HasVerification(_ context.Context, predictionID uint64) (bool, error) {
	_, ok := r.verifications[predictionID]
	return ok, nil
}

func (r *stubRepo) ListTags(_ context.Context) ([]models.Tag, error) {
	return nil, nil
}

func (r *stubRepo) CountByOutcome(_ context.Context) ([]repository.OutcomeCount, error) {
	r.statsCalls++
	return r.outcomeCounts, nil
}

func (r *stubRepo) CountByCategory(_ context.Context) ([]repository.CategoryCount, error) {
	return r.categoryCounts, nil
}

func (r *stubRepo) PredictorAccuracy(_ context.Context) ([]repository.PredictorAccuracyRow, error) {
	return r.predictorRows, nil
}

func (r *stubRepo) StatusCounts(_ context.Context, _ time.Time) (repository.StatusCounts, error) {
	return r.statusCounts, nil
}
