package gormrepository

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"foresight/internal/models"
	"foresight/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

const verificationExists = "EXISTS (SELECT 1 FROM verifications v WHERE v.prediction_id = predictions.id)"

func (s *Store) InsertPrediction(ctx context.Context, item *models.Prediction) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetPredictionByID(ctx context.Context, id uint64) (*models.Prediction, error) {
	if s == nil || s.db == nil {
		return nil, repository.ErrNotFound
	}
	var item models.Prediction
	err := s.db.WithContext(ctx).
		Preload("Verification").
		Preload("Tags").
		First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListPredictions(ctx context.Context, params repository.ListPredictionsParams) ([]models.Prediction, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.applyPredictionFilters(ctx, params)
	limit := normalizeLimit(params.Limit, 50)
	offset := normalizeOffset(params.Offset)
	var items []models.Prediction
	err := query.
		Preload("Verification").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountPredictions(ctx context.Context, params repository.ListPredictionsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	if err := s.applyPredictionFilters(ctx, params).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) applyPredictionFilters(ctx context.Context, params repository.ListPredictionsParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Prediction{})
	if params.Category != nil && *params.Category != "" {
		query = query.Where("category = ?", *params.Category)
	}
	if params.Status != nil && *params.Status != "" {
		today := truncateToDay(time.Now())
		switch *params.Status {
		case models.StatusVerified:
			query = query.Where(verificationExists)
		case models.StatusOverdue:
			query = query.Where("NOT "+verificationExists).
				Where("target_date IS NOT NULL AND target_date < ?", today)
		case models.StatusPending:
			query = query.Where("NOT "+verificationExists).
				Where("target_date IS NULL OR target_date >= ?", today)
		}
	}
	return query
}

func (s *Store) InsertVerification(ctx context.Context, item *models.Verification) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) HasVerification(ctx context.Context, predictionID uint64) (bool, error) {
	if s == nil || s.db == nil {
		return false, nil
	}
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Verification{}).
		Where("prediction_id = ?", predictionID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) ListTags(ctx context.Context) ([]models.Tag, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var items []models.Tag
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountByOutcome(ctx context.Context) ([]repository.OutcomeCount, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var rows []repository.OutcomeCount
	err := s.db.WithContext(ctx).
		Model(&models.Verification{}).
		Select("outcome, COUNT(*) AS count").
		Group("outcome").
		Order("outcome ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) CountByCategory(ctx context.Context) ([]repository.CategoryCount, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var rows []repository.CategoryCount
	err := s.db.WithContext(ctx).
		Model(&models.Prediction{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Order("category ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type predictorCountsRow struct {
	PredictorName    string
	Total            int64
	Verified         int64
	Correct          int64
	PartiallyCorrect int64
}

func (s *Store) PredictorAccuracy(ctx context.Context) ([]repository.PredictorAccuracyRow, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var counts []predictorCountsRow
	err := s.db.WithContext(ctx).
		Model(&models.Prediction{}).
		Select(`predictions.predictor_name,
			COUNT(*) AS total,
			COUNT(v.id) AS verified,
			COUNT(*) FILTER (WHERE v.outcome = ?) AS correct,
			COUNT(*) FILTER (WHERE v.outcome = ?) AS partially_correct`,
			models.OutcomeCorrect, models.OutcomePartiallyCorrect).
		Joins("LEFT JOIN verifications v ON v.prediction_id = predictions.id").
		Group("predictions.predictor_name").
		Order("predictions.predictor_name ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	rows := make([]repository.PredictorAccuracyRow, 0, len(counts))
	for _, c := range counts {
		row := repository.PredictorAccuracyRow{
			PredictorName:    c.PredictorName,
			Total:            c.Total,
			Verified:         c.Verified,
			Correct:          c.Correct,
			PartiallyCorrect: c.PartiallyCorrect,
		}
		row.Accuracy, row.WeightedAccuracy = accuracyRates(c.Verified, c.Correct, c.PartiallyCorrect)
		rows = append(rows, row)
	}
	return rows, nil
}

func accuracyRates(verified, correct, partial int64) (accuracy, weighted decimal.Decimal) {
	if verified <= 0 {
		return decimal.Zero, decimal.Zero
	}
	den := decimal.NewFromInt(verified)
	accuracy = decimal.NewFromInt(correct).Div(den).Round(4)
	weightedHits := decimal.NewFromInt(correct).
		Add(decimal.NewFromInt(partial).Mul(decimal.NewFromFloat(0.5)))
	weighted = weightedHits.Div(den).Round(4)
	return accuracy, weighted
}

func (s *Store) StatusCounts(ctx context.Context, now time.Time) (repository.StatusCounts, error) {
	var out repository.StatusCounts
	if s == nil || s.db == nil {
		return out, nil
	}
	today := truncateToDay(now)
	err := s.db.WithContext(ctx).
		Model(&models.Prediction{}).
		Select(`COUNT(*) AS total,
			COUNT(*) FILTER (WHERE `+verificationExists+`) AS verified,
			COUNT(*) FILTER (WHERE NOT `+verificationExists+` AND target_date IS NOT NULL AND target_date < ?) AS overdue,
			COUNT(*) FILTER (WHERE NOT `+verificationExists+` AND (target_date IS NULL OR target_date >= ?)) AS pending`,
			today, today).
		Scan(&out).Error
	if err != nil {
		return repository.StatusCounts{}, err
	}
	return out, nil
}

func normalizeLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > 200 {
		return 200
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
