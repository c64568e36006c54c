package service

import (
	"context"
	"errors"
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/ruangkarya/ruangkarya-api/internal/dto"
	"github.com/ruangkarya/ruangkarya-api/internal/models"
	"github.com/ruangkarya/ruangkarya-api/internal/repository"
)

// ErrProjectNotFound indicates the project was not located.
var ErrProjectNotFound = errors.New("project not found")

// ProjectService exposes project CRUD and team membership operations.
type ProjectService interface {
	List(ctx context.Context, filter repository.ProjectFilter) (dto.ProjectListResponse, error)
	Get(ctx context.Context, id uint) (dto.ProjectResponse, error)
	Create(ctx context.Context, teacherID uint, payload dto.ProjectCreateRequest) (dto.ProjectResponse, error)
	Update(ctx context.Context, id uint, payload dto.ProjectUpdateRequest) (dto.ProjectResponse, error)
	Delete(ctx context.Context, id uint) error
	Members(ctx context.Context, projectID uint) ([]dto.ProjectMemberResponse, error)
	AddMember(ctx context.Context, projectID uint, payload dto.ProjectMemberRequest) (dto.ProjectMemberResponse, error)
	RemoveMember(ctx context.Context, projectID, studentID uint) error
}

type projectService struct {
	repo      repository.ProjectRepository
	progress  ProgressService
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewProjectService constructs the project service.
func NewProjectService(repo repository.ProjectRepository, progress ProgressService, validate *validator.Validate, logger zerolog.Logger) ProjectService {
	return &projectService{
		repo:      repo,
		progress:  progress,
		validator: validate,
		logger:    logger.With().Str("component", "project_service").Logger(),
	}
}

func (s *projectService) List(ctx context.Context, filter repository.ProjectFilter) (dto.ProjectListResponse, error) {
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	projects, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.ProjectListResponse{}, err
	}

	items := make([]dto.ProjectResponse, 0, len(projects))
	for _, project := range projects {
		items = append(items, s.hydrate(ctx, project))
	}

	pagination := dto.PaginationMeta{
		Page:       filter.Page,
		PageSize:   filter.PageSize,
		TotalItems: total,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.PageSize))),
	}

	return dto.ProjectListResponse{Items: items, Pagination: pagination}, nil
}

func (s *projectService) Get(ctx context.Context, id uint) (dto.ProjectResponse, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProjectResponse{}, ErrProjectNotFound
		}
		return dto.ProjectResponse{}, err
	}

	return s.hydrate(ctx, project), nil
}

// hydrate refreshes the displayed progress from the evaluation records through
// the shared progress read path. Lookup failures are best-effort: the stored
// project column, which is synced on every evaluation save, is used instead.
func (s *projectService) hydrate(ctx context.Context, project models.Project) dto.ProjectResponse {
	response := dto.NewProjectResponse(project)

	progress, err := s.progress.DisplayedProgress(ctx, project.ID)
	if err != nil {
		s.logger.Warn().Err(err).Uint("project_id", project.ID).Msg("progress hydration failed, using stored value")
		return response
	}

	response.Progress = progress
	return response
}

func (s *projectService) Create(ctx context.Context, teacherID uint, payload dto.ProjectCreateRequest) (dto.ProjectResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProjectResponse{}, err
	}

	project := models.Project{
		Title:       payload.Title,
		Description: payload.Description,
		Subject:     payload.Subject,
		Status:      models.ProjectStatusDraft,
		TeacherID:   teacherID,
		CoverURL:    payload.CoverURL,
		Deadline:    payload.Deadline,
	}

	if err := s.repo.Create(ctx, &project); err != nil {
		return dto.ProjectResponse{}, err
	}

	s.logger.Info().Uint("project_id", project.ID).Uint("teacher_id", teacherID).Msg("project created")

	return dto.NewProjectResponse(project), nil
}

func (s *projectService) Update(ctx context.Context, id uint, payload dto.ProjectUpdateRequest) (dto.ProjectResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProjectResponse{}, err
	}

	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProjectResponse{}, ErrProjectNotFound
		}
		return dto.ProjectResponse{}, err
	}

	if payload.Title != nil {
		project.Title = *payload.Title
	}
	if payload.Description != nil {
		project.Description = *payload.Description
	}
	if payload.Subject != nil {
		project.Subject = *payload.Subject
	}
	if payload.Status != nil {
		project.Status = *payload.Status
	}
	if payload.Deadline != nil {
		project.Deadline = payload.Deadline
	}
	if payload.CoverURL != nil {
		project.CoverURL = *payload.CoverURL
	}

	if err := s.repo.Update(ctx, &project); err != nil {
		return dto.ProjectResponse{}, err
	}

	return s.hydrate(ctx, project), nil
}

func (s *projectService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return err
	}

	return s.repo.Delete(ctx, id)
}

func (s *projectService) Members(ctx context.Context, projectID uint) ([]dto.ProjectMemberResponse, error) {
	members, err := s.repo.ListMembers(ctx, projectID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ProjectMemberResponse, 0, len(members))
	for _, member := range members {
		out = append(out, dto.NewProjectMemberResponse(member))
	}

	return out, nil
}

func (s *projectService) AddMember(ctx context.Context, projectID uint, payload dto.ProjectMemberRequest) (dto.ProjectMemberResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ProjectMemberResponse{}, err
	}

	if _, err := s.repo.GetByID(ctx, projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ProjectMemberResponse{}, ErrProjectNotFound
		}
		return dto.ProjectMemberResponse{}, err
	}

	member := models.ProjectMember{
		ProjectID: projectID,
		StudentID: payload.StudentID,
		RoleLabel: payload.RoleLabel,
	}

	if err := s.repo.AddMember(ctx, &member); err != nil {
		return dto.ProjectMemberResponse{}, err
	}

	return dto.NewProjectMemberResponse(member), nil
}

func (s *projectService) RemoveMember(ctx context.Context, projectID, studentID uint) error {
	return s.repo.RemoveMember(ctx, projectID, studentID)
}
