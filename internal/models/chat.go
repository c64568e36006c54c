package models

import "time"

// ChatMessage is a single message posted in a project's chat room. Rooms are
// keyed by project id; MessageID is a uuid assigned at send time so messages
// can be deduplicated across fan-out paths.
type ChatMessage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	MessageID string    `gorm:"size:64;uniqueIndex" json:"message_id"`
	ProjectID uint      `gorm:"not null;index" json:"project_id"`
	SenderID  uint      `gorm:"not null;index" json:"sender_id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`
}
