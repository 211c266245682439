package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"foresight/internal/cache"
	"foresight/internal/config"
	"foresight/internal/repository"
)

const statsCacheKey = "stats:overview"

// StatsOverview is the aggregate accuracy report served by /api/stats.
type StatsOverview struct {
	Totals      repository.StatusCounts           `json:"totals"`
	ByOutcome   []repository.OutcomeCount         `json:"by_outcome"`
	ByCategory  []repository.CategoryCount        `json:"by_category"`
	Predictors  []repository.PredictorAccuracyRow `json:"predictors"`
	GeneratedAt time.Time                         `json:"generated_at"`
}

type StatsService struct {
	Repo   repository.Repository
	Cache  *cache.Cache
	Config config.StatsCacheConfig
	Logger *zap.Logger

	Now func() time.Time
}

func (s *StatsService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *StatsService) cacheEnabled() bool {
	return s.Config.Enabled && s.Cache.Available()
}

// Overview serves the cached report when fresh, falling back to a live
// aggregation. Cache failures degrade to the database silently.
func (s *StatsService) Overview(ctx context.Context) (StatsOverview, error) {
	if s.cacheEnabled() {
		var cached StatsOverview
		hit, err := s.Cache.Get(ctx, statsCacheKey, &cached)
		if err != nil && s.Logger != nil {
			s.Logger.Warn("stats cache read failed", zap.Error(err))
		}
		if hit {
			return cached, nil
		}
	}
	return s.Refresh(ctx)
}

// Refresh recomputes the report and re-primes the cache. Also wired to a
// cron job so readers mostly hit warm data.
func (s *StatsService) Refresh(ctx context.Context) (StatsOverview, error) {
	now := s.now()

	totals, err := s.Repo.StatusCounts(ctx, now)
	if err != nil {
		return StatsOverview{}, err
	}
	byOutcome, err := s.Repo.CountByOutcome(ctx)
	if err != nil {
		return StatsOverview{}, err
	}
	byCategory, err := s.Repo.CountByCategory(ctx)
	if err != nil {
		return StatsOverview{}, err
	}
	predictors, err := s.Repo.PredictorAccuracy(ctx)
	if err != nil {
		return StatsOverview{}, err
	}

	overview := StatsOverview{
		Totals:      totals,
		ByOutcome:   byOutcome,
		ByCategory:  byCategory,
		Predictors:  predictors,
		GeneratedAt: now.UTC(),
	}

	if s.cacheEnabled() {
		if err := s.Cache.Set(ctx, statsCacheKey, overview, s.Config.TTL); err != nil && s.Logger != nil {
			s.Logger.Warn("stats cache write failed", zap.Error(err))
		}
	}
	return overview, nil
}
