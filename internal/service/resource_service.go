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

// ErrResourceNotFound indicates the learning resource was not located.
var ErrResourceNotFound = errors.New("resource not found")

// ResourceService exposes learning-resource listing and the CMS write path.
type ResourceService interface {
	List(ctx context.Context, subject, search string) ([]dto.ResourceResponse, error)
	Create(ctx context.Context, payload dto.ResourceRequest) (dto.ResourceResponse, error)
	Update(ctx context.Context, id uint, payload dto.ResourceRequest) (dto.ResourceResponse, error)
	Delete(ctx context.Context, id uint) error
}

type resourceService struct {
	repo      repository.ResourceRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewResourceService constructs the resource service.
func NewResourceService(repo repository.ResourceRepository, validate *validator.Validate, logger zerolog.Logger) ResourceService {
	return &resourceService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "resource_service").Logger(),
	}
}

func (s *resourceService) List(ctx context.Context, subject, search string) ([]dto.ResourceResponse, error) {
	resources, err := s.repo.List(ctx, subject, search)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ResourceResponse, 0, len(resources))
	for _, resource := range resources {
		out = append(out, dto.NewResourceResponse(resource))
	}

	return out, nil
}

func (s *resourceService) Create(ctx context.Context, payload dto.ResourceRequest) (dto.ResourceResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ResourceResponse{}, err
	}

	resource := models.LearningResource{
		Title:   payload.Title,
		Summary: payload.Summary,
		Kind:    payload.Kind,
		URL:     payload.URL,
		Subject: payload.Subject,
	}

	if err := s.repo.Create(ctx, &resource); err != nil {
		return dto.ResourceResponse{}, err
	}

	return dto.NewResourceResponse(resource), nil
}

func (s *resourceService) Update(ctx context.Context, id uint, payload dto.ResourceRequest) (dto.ResourceResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ResourceResponse{}, err
	}

	resource, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ResourceResponse{}, ErrResourceNotFound
		}
		return dto.ResourceResponse{}, err
	}

	resource.Title = payload.Title
	resource.Summary = payload.Summary
	resource.Kind = payload.Kind
	resource.URL = payload.URL
	resource.Subject = payload.Subject

	if err := s.repo.Update(ctx, &resource); err != nil {
		return dto.ResourceResponse{}, err
	}

	return dto.NewResourceResponse(resource), nil
}

func (s *resourceService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrResourceNotFound
		}
		return err
	}

	return s.repo.Delete(ctx, id)
}
