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

// ErrStoreItemNotFound indicates the store entry was not located.
var ErrStoreItemNotFound = errors.New("store item not found")

// StoreService exposes the school store listing and the CMS write path.
type StoreService interface {
	List(ctx context.Context, onlyAvailable bool) ([]dto.StoreItemResponse, error)
	Create(ctx context.Context, payload dto.StoreItemRequest) (dto.StoreItemResponse, error)
	Update(ctx context.Context, id uint, payload dto.StoreItemRequest) (dto.StoreItemResponse, error)
	Delete(ctx context.Context, id uint) error
}

type storeService struct {
	repo      repository.StoreRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewStoreService constructs the store service.
func NewStoreService(repo repository.StoreRepository, validate *validator.Validate, logger zerolog.Logger) StoreService {
	return &storeService{
		repo:      repo,
		validator: validate,
		logger:    logger.With().Str("component", "store_service").Logger(),
	}
}

func (s *storeService) List(ctx context.Context, onlyAvailable bool) ([]dto.StoreItemResponse, error) {
	items, err := s.repo.List(ctx, onlyAvailable)
	if err != nil {
		return nil, err
	}

	out := make([]dto.StoreItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, dto.NewStoreItemResponse(item))
	}

	return out, nil
}

func (s *storeService) Create(ctx context.Context, payload dto.StoreItemRequest) (dto.StoreItemResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StoreItemResponse{}, err
	}

	available := true
	if payload.Available != nil {
		available = *payload.Available
	}

	item := models.StoreItem{
		Name:        payload.Name,
		Description: payload.Description,
		PriceCents:  payload.PriceCents,
		ImageURL:    payload.ImageURL,
		Stock:       payload.Stock,
		Available:   available,
	}

	if err := s.repo.Create(ctx, &item); err != nil {
		return dto.StoreItemResponse{}, err
	}

	return dto.NewStoreItemResponse(item), nil
}

func (s *storeService) Update(ctx context.Context, id uint, payload dto.StoreItemRequest) (dto.StoreItemResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StoreItemResponse{}, err
	}

	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StoreItemResponse{}, ErrStoreItemNotFound
		}
		return dto.StoreItemResponse{}, err
	}

	item.Name = payload.Name
	item.Description = payload.Description
	item.PriceCents = payload.PriceCents
	item.ImageURL = payload.ImageURL
	item.Stock = payload.Stock
	if payload.Available != nil {
		item.Available = *payload.Available
	}

	if err := s.repo.Update(ctx, &item); err != nil {
		return dto.StoreItemResponse{}, err
	}

	return dto.NewStoreItemResponse(item), nil
}

func (s *storeService) Delete(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStoreItemNotFound
		}
		return err
	}

	return s.repo.Delete(ctx, id)
}
