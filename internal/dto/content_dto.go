package dto

import (
	"time"

	"github.com/ruangkarya/ruangkarya-api/internal/models"
)

// GalleryItemRequest creates or updates a gallery entry in the CMS.
type GalleryItemRequest struct {
	Title     string   `json:"title" validate:"required,min=1,max=255"`
	Caption   string   `json:"caption" validate:"omitempty,max=4000"`
	ImageURL  string   `json:"image_url" validate:"required,url,max=512"`
	ProjectID *uint    `json:"project_id" validate:"omitempty,gt=0"`
	Tags      []string `json:"tags" validate:"omitempty,max=10,dive,min=1,max=64"`
}

// GalleryItemResponse serializes a gallery entry.
type GalleryItemResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Caption   string    `json:"caption"`
	ImageURL  string    `json:"image_url"`
	ProjectID *uint     `json:"project_id"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
}

// GalleryListResponse wraps a gallery page with pagination metadata.
type GalleryListResponse struct {
	Items      []GalleryItemResponse `json:"items"`
	Pagination PaginationMeta        `json:"pagination"`
}

// NewGalleryItemResponse converts a GalleryItem model into a DTO.
func NewGalleryItemResponse(model models.GalleryItem) GalleryItemResponse {
	return GalleryItemResponse{
		ID:        model.ID,
		Title:     model.Title,
		Caption:   model.Caption,
		ImageURL:  model.ImageURL,
		ProjectID: model.ProjectID,
		Tags:      append([]string(nil), model.Tags...),
		CreatedAt: model.CreatedAt,
	}
}

// ResourceRequest creates or updates a learning resource in the CMS.
type ResourceRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=255"`
	Summary string `json:"summary" validate:"omitempty,max=4000"`
	Kind    string `json:"kind" validate:"required,oneof=article video file link"`
	URL     string `json:"url" validate:"required,url,max=512"`
	Subject string `json:"subject" validate:"omitempty,max=128"`
}

// ResourceResponse serializes a learning resource.
type ResourceResponse struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Kind      string    `json:"kind"`
	URL       string    `json:"url"`
	Subject   string    `json:"subject"`
	CreatedAt time.Time `json:"created_at"`
}

// NewResourceResponse converts a LearningResource model into a DTO.
func NewResourceResponse(model models.LearningResource) ResourceResponse {
	return ResourceResponse{
		ID:        model.ID,
		Title:     model.Title,
		Summary:   model.Summary,
		Kind:      model.Kind,
		URL:       model.URL,
		Subject:   model.Subject,
		CreatedAt: model.CreatedAt,
	}
}

// StoreItemRequest creates or updates a store entry in the CMS.
type StoreItemRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"omitempty,max=4000"`
	PriceCents  int64  `json:"price_cents" validate:"gte=0"`
	ImageURL    string `json:"image_url" validate:"omitempty,url,max=512"`
	Stock       int    `json:"stock" validate:"gte=0"`
	Available   *bool  `json:"available"`
}

// StoreItemResponse serializes a store entry.
type StoreItemResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `json:"price_cents"`
	ImageURL    string    `json:"image_url"`
	Stock       int       `json:"stock"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewStoreItemResponse converts a StoreItem model into a DTO.
func NewStoreItemResponse(model models.StoreItem) StoreItemResponse {
	return StoreItemResponse{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		PriceCents:  model.PriceCents,
		ImageURL:    model.ImageURL,
		Stock:       model.Stock,
		Available:   model.Available,
		CreatedAt:   model.CreatedAt,
	}
}
