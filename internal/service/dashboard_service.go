package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/ruangkarya/ruangkarya-api/internal/dto"
	"github.com/ruangkarya/ruangkarya-api/internal/models"
	"github.com/ruangkarya/ruangkarya-api/internal/repository"
)

// DashboardService produces the aggregated figures for a teacher's home
// screen. Results are cached in Redis for a short TTL; the figures may lag a
// recent evaluation save by up to that TTL.
type DashboardService interface {
	GetDashboard(ctx context.Context, teacherID uint) (dto.DashboardResponse, error)
}

type dashboardService struct {
	projects    repository.ProjectRepository
	tasks       repository.TaskRepository
	evaluations repository.EvaluationRepository
	progress    ProgressService
	cache       *redis.Client
	cacheTTL    time.Duration
	logger      zerolog.Logger
}

// NewDashboardService builds the dashboard aggregator.
func NewDashboardService(projects repository.ProjectRepository, tasks repository.TaskRepository, evaluations repository.EvaluationRepository, progress ProgressService, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) DashboardService {
	return &dashboardService{
		projects:    projects,
		tasks:       tasks,
		evaluations: evaluations,
		progress:    progress,
		cache:       cache,
		cacheTTL:    ttl,
		logger:      logger.With().Str("component", "dashboard_service").Logger(),
	}
}

func (s *dashboardService) GetDashboard(ctx context.Context, teacherID uint) (dto.DashboardResponse, error) {
	cacheKey := fmt.Sprintf("dashboard:teacher:%d", teacherID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.DashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("teacher_id", teacherID).Msg("dashboard cache hit")
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	filter := repository.ProjectFilter{TeacherID: &teacherID}
	projects, _, err := s.projects.List(ctx, filter)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	response := s.buildResponse(ctx, projects)

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return response, nil
}

func (s *dashboardService) buildResponse(ctx context.Context, projects []models.Project) dto.DashboardResponse {
	response := dto.DashboardResponse{TotalProjects: len(projects)}

	var progressSum, ratingSum float64
	for _, project := range projects {
		switch project.Status {
		case models.ProjectStatusActive:
			response.ActiveProjects++
		case models.ProjectStatusCompleted:
			response.CompletedProjects++
		}

		progress, err := s.progress.DisplayedProgress(ctx, project.ID)
		if err != nil {
			progress = project.Progress
		}
		progressSum += progress

		evaluations, err := s.evaluations.ListByProject(ctx, project.ID)
		if err == nil && len(evaluations) > 0 {
			response.EvaluatedProjects++
			ratingSum += evaluations[0].ProjectRating()
		}

		status := models.TaskStatusTodo
		tasks, err := s.tasks.List(ctx, repository.TaskFilter{ProjectID: &project.ID, Status: &status})
		if err == nil {
			response.OpenTasks += len(tasks)
		}
	}

	if len(projects) > 0 {
		response.AverageProgress = progressSum / float64(len(projects))
	}
	if response.EvaluatedProjects > 0 {
		response.AverageRating = ratingSum / float64(response.EvaluatedProjects)
	}

	return response
}
