package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ruangkarya/ruangkarya-api/internal/models"
)

// GalleryFilter allows narrowing gallery queries.
type GalleryFilter struct {
	Tags     []string
	Search   string
	Page     int
	PageSize int
}

// GalleryRepository defines data operations for gallery items.
type GalleryRepository interface {
	List(ctx context.Context, filter GalleryFilter) ([]models.GalleryItem, int64, error)
	GetByID(ctx context.Context, id uint) (models.GalleryItem, error)
	Create(ctx context.Context, item *models.GalleryItem) error
	Update(ctx context.Context, item *models.GalleryItem) error
	Delete(ctx context.Context, id uint) error
}

type galleryRepository struct {
	db *gorm.DB
}

// NewGalleryRepository instantiates the repository.
func NewGalleryRepository(db *gorm.DB) GalleryRepository {
	return &galleryRepository{db: db}
}

func (r *galleryRepository) List(ctx context.Context, filter GalleryFilter) ([]models.GalleryItem, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.GalleryItem{})

	for _, tag := range filter.Tags {
		query = query.Where("tags LIKE ?", "%|"+tag+"|%")
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR caption LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.PageSize > 0 {
		page := filter.Page
		if page <= 0 {
			page = 1
		}
		query = query.Offset((page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var items []models.GalleryItem
	if err := query.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

func (r *galleryRepository) GetByID(ctx context.Context, id uint) (models.GalleryItem, error) {
	var item models.GalleryItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return models.GalleryItem{}, err
	}

	return item, nil
}

func (r *galleryRepository) Create(ctx context.Context, item *models.GalleryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *galleryRepository) Update(ctx context.Context, item *models.GalleryItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *galleryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.GalleryItem{}, id).Error
}

// ResourceRepository defines data operations for learning resources.
type ResourceRepository interface {
	List(ctx context.Context, subject, search string) ([]models.LearningResource, error)
	GetByID(ctx context.Context, id uint) (models.LearningResource, error)
	Create(ctx context.Context, resource *models.LearningResource) error
	Update(ctx context.Context, resource *models.LearningResource) error
	Delete(ctx context.Context, id uint) error
}

type resourceRepository struct {
	db *gorm.DB
}

// NewResourceRepository instantiates the repository.
func NewResourceRepository(db *gorm.DB) ResourceRepository {
	return &resourceRepository{db: db}
}

func (r *resourceRepository) List(ctx context.Context, subject, search string) ([]models.LearningResource, error) {
	query := r.db.WithContext(ctx).Model(&models.LearningResource{})

	if subject != "" {
		query = query.Where("subject = ?", subject)
	}

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("title LIKE ? OR summary LIKE ?", pattern, pattern)
	}

	var resources []models.LearningResource
	if err := query.Order("created_at DESC").Find(&resources).Error; err != nil {
		return nil, err
	}

	return resources, nil
}

func (r *resourceRepository) GetByID(ctx context.Context, id uint) (models.LearningResource, error) {
	var resource models.LearningResource
	if err := r.db.WithContext(ctx).First(&resource, id).Error; err != nil {
		return models.LearningResource{}, err
	}

	return resource, nil
}

func (r *resourceRepository) Create(ctx context.Context, resource *models.LearningResource) error {
	return r.db.WithContext(ctx).Create(resource).Error
}

func (r *resourceRepository) Update(ctx context.Context, resource *models.LearningResource) error {
	return r.db.WithContext(ctx).Save(resource).Error
}

func (r *resourceRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.LearningResource{}, id).Error
}

// StoreRepository defines data operations for store items.
type StoreRepository interface {
	List(ctx context.Context, onlyAvailable bool) ([]models.StoreItem, error)
	GetByID(ctx context.Context, id uint) (models.StoreItem, error)
	Create(ctx context.Context, item *models.StoreItem) error
	Update(ctx context.Context, item *models.StoreItem) error
	Delete(ctx context.Context, id uint) error
}

type storeRepository struct {
	db *gorm.DB
}

// NewStoreRepository instantiates the repository.
func NewStoreRepository(db *gorm.DB) StoreRepository {
	return &storeRepository{db: db}
}

func (r *storeRepository) List(ctx context.Context, onlyAvailable bool) ([]models.StoreItem, error) {
	query := r.db.WithContext(ctx).Model(&models.StoreItem{})
	if onlyAvailable {
		query = query.Where("available = ?", true)
	}

	var items []models.StoreItem
	if err := query.Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}

	return items, nil
}

func (r *storeRepository) GetByID(ctx context.Context, id uint) (models.StoreItem, error) {
	var item models.StoreItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return models.StoreItem{}, err
	}

	return item, nil
}

func (r *storeRepository) Create(ctx context.Context, item *models.StoreItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *storeRepository) Update(ctx context.Context, item *models.StoreItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *storeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.StoreItem{}, id).Error
}
