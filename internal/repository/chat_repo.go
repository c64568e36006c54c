package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ruangkarya/ruangkarya-api/internal/models"
)

// ChatRepository defines data operations for project chat history.
type ChatRepository interface {
	History(ctx context.Context, projectID uint, limit int) ([]models.ChatMessage, error)
	Append(ctx context.Context, message *models.ChatMessage) error
}

type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository instantiates the repository.
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

func (r *chatRepository) History(ctx context.Context, projectID uint, limit int) ([]models.ChatMessage, error) {
	if limit <= 0 {
		limit = 50
	}

	var messages []models.ChatMessage
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, err
	}

	// Oldest first for rendering.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

func (r *chatRepository) Append(ctx context.Context, message *models.ChatMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}
