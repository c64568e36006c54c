package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// GalleryItem is a published photo of finished project work, managed through
// the admin CMS.
type GalleryItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Caption   string    `gorm:"type:text" json:"caption"`
	ImageURL  string    `gorm:"size:512;not null" json:"image_url"`
	ProjectID *uint     `gorm:"index" json:"project_id"`
	TagsRaw   string    `gorm:"column:tags;type:text" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Tags      []string  `gorm:"-" json:"tags"`
}

// BeforeSave normalises tag data before persisting.
func (g *GalleryItem) BeforeSave(tx *gorm.DB) error {
	g.TagsRaw = encodeTags(g.Tags)
	return nil
}

// AfterFind hydrates the tag list after retrieval.
func (g *GalleryItem) AfterFind(tx *gorm.DB) error {
	g.Tags = decodeTags(g.TagsRaw)
	return nil
}

// LearningResource is a CMS-managed study material: an article, video or file
// linked from the resources section.
type LearningResource struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Summary   string    `gorm:"type:text" json:"summary"`
	Kind      string    `gorm:"size:32;not null;default:article" json:"kind"`
	URL       string    `gorm:"size:512;not null" json:"url"`
	Subject   string    `gorm:"size:128;index" json:"subject"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoreItem is a CMS-managed entry of the school store: craft kits and
// materials students can order for their projects.
type StoreItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	PriceCents  int64     `gorm:"not null" json:"price_cents"`
	ImageURL    string    `gorm:"size:512" json:"image_url"`
	Stock       int       `gorm:"not null;default:0" json:"stock"`
	Available   bool      `gorm:"not null;default:true" json:"available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func encodeTags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		trimmed := strings.TrimSpace(strings.ToLower(tag))
		if trimmed == "" {
			continue
		}
		cleaned = append(cleaned, trimmed)
	}
	if len(cleaned) == 0 {
		return ""
	}
	return "|" + strings.Join(cleaned, "|") + "|"
}

func decodeTags(raw string) []string {
	raw = strings.Trim(raw, "|")
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, "|")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		tags = append(tags, trimmed)
	}
	return tags
}
