package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ruangkarya/ruangkarya-api/internal/observability"
	"github.com/ruangkarya/ruangkarya-api/internal/repository"
)

// ProgressService is the single read path for a project's displayed progress.
// Project list and detail hydration both go through DisplayedProgress; the
// lookup must not be re-implemented at call sites.
type ProgressService interface {
	// DisplayedProgress returns the completion criterion's raw 0-10 score from
	// the first evaluation record found for the project, or 0 when none exists.
	// The value is not a percentage and must never be scaled by callers.
	DisplayedProgress(ctx context.Context, projectID uint) (float64, error)
	// Invalidate drops the cached value for a project, called after a save.
	Invalidate(ctx context.Context, projectID uint)
}

type progressService struct {
	repo     repository.EvaluationRepository
	cache    *redis.Client
	cacheTTL time.Duration
	logger   zerolog.Logger
}

// NewProgressService constructs the progress read path. The cache client may
// be nil; lookups then always hit the repository.
func NewProgressService(repo repository.EvaluationRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) ProgressService {
	return &progressService{
		repo:     repo,
		cache:    cache,
		cacheTTL: ttl,
		logger:   logger.With().Str("component", "progress_service").Logger(),
	}
}

func progressCacheKey(projectID uint) string {
	return fmt.Sprintf("progress:project:%d", projectID)
}

func (s *progressService) DisplayedProgress(ctx context.Context, projectID uint) (float64, error) {
	start := time.Now()
	defer func() {
		observability.ProgressLookupLatency().Observe(time.Since(start).Seconds())
	}()

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, progressCacheKey(projectID)).Result()
		if err == nil {
			if progress, parseErr := strconv.ParseFloat(cached, 64); parseErr == nil {
				observability.ProgressLookups().WithLabelValues("cache").Inc()
				return progress, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Uint("project_id", projectID).Msg("failed to read progress cache")
		}
	}

	evaluations, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		observability.ProgressLookups().WithLabelValues("error").Inc()
		return 0, fmt.Errorf("%w: %w", ErrEvaluationLoad, err)
	}

	// The first record found is treated as "the" evaluation; with multiple
	// evaluators the result is backend query order.
	progress := 0.0
	if len(evaluations) > 0 {
		progress = evaluations[0].CompletionScore()
	}

	observability.ProgressLookups().WithLabelValues("store").Inc()

	if s.cache != nil {
		value := strconv.FormatFloat(progress, 'f', -1, 64)
		if err := s.cache.Set(ctx, progressCacheKey(projectID), value, s.cacheTTL).Err(); err != nil {
			s.logger.Warn().Err(err).Uint("project_id", projectID).Msg("failed to store progress cache")
		}
	}

	return progress, nil
}

func (s *progressService) Invalidate(ctx context.Context, projectID uint) {
	if s.cache == nil {
		return
	}

	if err := s.cache.Del(ctx, progressCacheKey(projectID)).Err(); err != nil {
		s.logger.Warn().Err(err).Uint("project_id", projectID).Msg("failed to invalidate progress cache")
	}
}
