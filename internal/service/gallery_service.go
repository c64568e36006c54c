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

// ErrGalleryItemNotFound indicates the gallery entry was not located.
var ErrGalleryItemNotFound = errors.New("gallery item not found")

// GalleryService exposes the public gallery listing and the CMS write path.
type GalleryService interface {
	List(ctx context.Context, tags []string, search string, page, pageSize int) (dto.GalleryListResponse, error)
	Create(ctx context.Context, payload dto.GalleryItemRequest) (dto.GalleryItemResponse, error)
	Update(ctx context.Context, id uint, payload dto.GalleryItemRequest) (dto.GalleryItemResponse, error)
	Delete(ctx context.Context, id uint) error
}

type galleryService struct {
	repo      repository.GalleryRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewGalleryService constructs the gallery service.
func NewGalleryService(repo repository.GalleryRepository, validate *validator.Validate, logger zerolog.Logger) GalleryService {
	return &galleryService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "gallery_service").Logger(),
	}
}

func (s *galleryService) List(ctx context.Context, tags []string, search string, page, pageSize int) (dto.GalleryListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 20
	}

	filter := repository.GalleryFilter{Tags: tags, Search: search, Page: page, PageSize: pageSize}
	items, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return dto.GalleryListResponse{}, err
	}

	responses := make([]dto.GalleryItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, dto.NewGalleryItemResponse(item))
	}

	return dto.GalleryListResponse{
		Items: responses,
		Pagination: dto.PaginationMeta{
			Page:       page,
			PageSize:   pageSize,
			TotalItems: total,
			TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
		},
	}, nil
}

func (s *galleryService) Create(ctx context.Context, payload dto.GalleryItemRequest) (dto.GalleryItemResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.GalleryItemResponse{}, err
	}

	item := models.GalleryItem{
		Title:     payload.Title,
		Caption:   payload.Caption,
		ImageURL:  payload.ImageURL,
		ProjectID: payload.ProjectID,
		Tags:      payload.Tags,
	}

	if err := s.repo.Create(ctx, &item); err != nil {
		return dto.GalleryItemResponse{}, err
	}

	return dto.NewGalleryItemResponse(item), nil
}

func (s *galleryService) Update(ctx context.Context, id uint, payload dto.GalleryItemRequest) (dto.GalleryItemResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.GalleryItemResponse{}, err
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.GalleryItemResponse{}, ErrGalleryItemNotFound
		}
		return dto.GalleryItemResponse{}, err
	}

	item.Title = payload.Title
	item.Caption = payload.Caption
	item.ImageURL = payload.ImageURL
	item.ProjectID = payload.ProjectID
	item.Tags = payload.Tags

	if err := s.repo.Update(ctx, &item); err != nil {
		return dto.GalleryItemResponse{}, err
	}

	return dto.NewGalleryItemResponse(item), nil
}

func (s *galleryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrGalleryItemNotFound
		}
		return err
	}

	return s.repo.Delete(ctx, id)
}
