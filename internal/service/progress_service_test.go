package service

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/ruangkarya/ruangkarya-api/internal/models"
)

func TestProgressServiceDefaultsToZero(t *testing.T) {
	repo := &fakeEvaluationRepo{}
	svc := NewProgressService(repo, nil, time.Minute, testLogger())

	progress, err := svc.DisplayedProgress(context.Background(), 7)
	require.NoError(t, err)
	require.Zero(t, progress)
}

func TestProgressServiceReturnsCompletionScore(t *testing.T) {
	stored := models.NewEvaluationDraft(7, 3)
	stored.ID = 1
	require.NoError(t, stored.SetCriterionScore(0, 6.5, nil))
	repo := &fakeEvaluationRepo{evaluations: []models.Evaluation{stored}, nextID: 1}
	svc := NewProgressService(repo, nil, time.Minute, testLogger())

	progress, err := svc.DisplayedProgress(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 6.5, progress)
}

func TestProgressServiceWrapsRepositoryError(t *testing.T) {
	repo := &fakeEvaluationRepo{listErr: context.DeadlineExceeded}
	svc := NewProgressService(repo, nil, time.Minute, testLogger())

	_, err := svc.DisplayedProgress(context.Background(), 7)
	require.ErrorIs(t, err, ErrEvaluationLoad)
}

func TestProgressServiceCachesLookups(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer redisClient.Close()

	stored := models.NewEvaluationDraft(7, 3)
	stored.ID = 1
	require.NoError(t, stored.SetCriterionScore(0, 8, nil))
	repo := &fakeEvaluationRepo{evaluations: []models.Evaluation{stored}, nextID: 1}
	svc := NewProgressService(repo, redisClient, time.Minute, testLogger())

	progress, err := svc.DisplayedProgress(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 8.0, progress)

	// Second lookup is served from the cache even after the store changes.
	repo.evaluations[0].Criteria[0].Score = 2
	cached, err := svc.DisplayedProgress(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 8.0, cached)

	svc.Invalidate(context.Background(), 7)
	fresh, err := svc.DisplayedProgress(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 2.0, fresh)
}

func TestProgressServiceSaveInvalidatesCache(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	defer server.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer redisClient.Close()

	repo := &fakeEvaluationRepo{}
	progress := NewProgressService(repo, redisClient, time.Minute, testLogger())
	svc := newEvaluationServiceWithProgress(repo, progress)

	// Prime the cache with the empty-project default.
	initial, err := progress.DisplayedProgress(context.Background(), 7)
	require.NoError(t, err)
	require.Zero(t, initial)

	draft := models.NewEvaluationDraft(7, 3)
	require.NoError(t, draft.SetCriterionScore(0, 9, nil))
	_, err = svc.Save(context.Background(), draft)
	require.NoError(t, err)

	updated, err := progress.DisplayedProgress(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 9.0, updated)
}
