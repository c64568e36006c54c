package dto

import (
	"time"

	"github.com/ruangkarya/ruangkarya-api/internal/models"
)

// UserCreateRequest registers a new account through the admin CMS.
type UserCreateRequest struct {
	Name   string `json:"name" validate:"required,min=1,max=255"`
	Email  string `json:"email" validate:"required,email,max=255"`
	Role   string `json:"role" validate:"required,oneof=admin teacher student"`
	School string `json:"school" validate:"omitempty,max=255"`
}

// UserUpdateRequest describes a partial account update.
type UserUpdateRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=255"`
	Role      *string `json:"role" validate:"omitempty,oneof=admin teacher student"`
	School    *string `json:"school" validate:"omitempty,max=255"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url,max=512"`
}

// UserResponse serializes an account.
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	School    string    `json:"school"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

// UserListResponse wraps a user page with pagination metadata.
type UserListResponse struct {
	Items      []UserResponse `json:"items"`
	Pagination PaginationMeta `json:"pagination"`
}

// NewUserResponse converts a User model into a DTO.
func NewUserResponse(model models.User) UserResponse {
	return UserResponse{
		ID:        model.ID,
		Name:      model.Name,
		Email:     model.Email,
		Role:      model.Role,
		School:    model.School,
		AvatarURL: model.AvatarURL,
		CreatedAt: model.CreatedAt,
	}
}
