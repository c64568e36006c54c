package dto

import (
	"time"

	"github.com/ruangkarya/ruangkarya-api/internal/models"
)

// ChatSendRequest represents the payload sent over the websocket to post a
// message into a project room.
type ChatSendRequest struct {
	Body string `json:"body" validate:"required,min=1,max=4000"`
}

// ChatHistoryQuery represents query filters for retrieving chat history.
type ChatHistoryQuery struct {
	ProjectID uint `query:"project_id" validate:"required,gt=0"`
	Limit     int  `query:"limit" validate:"omitempty,min=1,max=100"`
}

// ChatMessageResponse is the serialized representation of a chat message.
type ChatMessageResponse struct {
	ID        uint      `json:"id"`
	MessageID string    `json:"message_id"`
	ProjectID uint      `json:"project_id"`
	SenderID  uint      `json:"sender_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// NewChatMessageResponse converts a model into a DTO.
func NewChatMessageResponse(message models.ChatMessage) ChatMessageResponse {
	return ChatMessageResponse{
		ID:        message.ID,
		MessageID: message.MessageID,
		ProjectID: message.ProjectID,
		SenderID:  message.SenderID,
		Body:      message.Body,
		CreatedAt: message.CreatedAt,
	}
}

// NewChatMessageResponseSlice converts a slice of models into DTOs.
func NewChatMessageResponseSlice(messages []models.ChatMessage) []ChatMessageResponse {
	out := make([]ChatMessageResponse, 0, len(messages))
	for _, message := range messages {
		out = append(out, NewChatMessageResponse(message))
	}
	return out
}
