package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/ruangkarya/ruangkarya-api/internal/dto"
	"github.com/ruangkarya/ruangkarya-api/internal/models"
	"github.com/ruangkarya/ruangkarya-api/internal/repository"
)

// ErrTaskNotFound indicates the task was not located.
var ErrTaskNotFound = errors.New("task not found")

// TaskService exposes task CRUD inside a project.
type TaskService interface {
	List(ctx context.Context, projectID uint, filter repository.TaskFilter) ([]dto.TaskResponse, error)
	Create(ctx context.Context, projectID uint, payload dto.TaskCreateRequest) (dto.TaskResponse, error)
	Update(ctx context.Context, id uint, payload dto.TaskUpdateRequest) (dto.TaskResponse, error)
	Delete(ctx context.Context, id uint) error
}

type taskService struct {
	repo      repository.TaskRepository
	projects  repository.ProjectRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewTaskService constructs the task service.
func NewTaskService(repo repository.TaskRepository, projects repository.ProjectRepository, validate *validator.Validate, logger zerolog.Logger) TaskService {
	return &taskService{
		repo:      repo,
		projects:  projects,
		validator: validate,
		logger:    logger.With().Str("component", "task_service").Logger(),
	}
}

func (s *taskService) List(ctx context.Context, projectID uint, filter repository.TaskFilter) ([]dto.TaskResponse, error) {
	filter.ProjectID = &projectID

	tasks, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return dto.NewTaskResponseSlice(tasks), nil
}

func (s *taskService) Create(ctx context.Context, projectID uint, payload dto.TaskCreateRequest) (dto.TaskResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TaskResponse{}, err
	}

	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TaskResponse{}, ErrProjectNotFound
		}
		return dto.TaskResponse{}, err
	}

	task := models.Task{
		ProjectID:   projectID,
		Title:       payload.Title,
		Description: payload.Description,
		Status:      models.TaskStatusTodo,
		AssigneeID:  payload.AssigneeID,
		DueAt:       payload.DueAt,
	}

	if err := s.repo.Create(ctx, &task); err != nil {
		return dto.TaskResponse{}, err
	}

	return dto.NewTaskResponse(task), nil
}

func (s *taskService) Update(ctx context.Context, id uint, payload dto.TaskUpdateRequest) (dto.TaskResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.TaskResponse{}, err
	}

	task, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.TaskResponse{}, ErrTaskNotFound
		}
		return dto.TaskResponse{}, err
	}

	if payload.Title != nil {
		task.Title = *payload.Title
	}
	if payload.Description != nil {
		task.Description = *payload.Description
	}
	if payload.Status != nil {
		task.Status = *payload.Status
	}
	if payload.AssigneeID != nil {
		task.AssigneeID = payload.AssigneeID
	}
	if payload.DueAt != nil {
		task.DueAt = payload.DueAt
	}

	if err := s.repo.Update(ctx, &task); err != nil {
		return dto.TaskResponse{}, err
	}

	return dto.NewTaskResponse(task), nil
}

func (s *taskService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	return s.repo.Delete(ctx, id)
}
