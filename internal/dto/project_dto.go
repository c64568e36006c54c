package dto

import (
	"time"

	"github.com/ruangkarya/ruangkarya-api/internal/models"
)

// ProjectCreateRequest describes the payload for creating a project.
type ProjectCreateRequest struct {
	Title       string     `json:"title" validate:"required,min=3,max=255"`
	Description string     `json:"description" validate:"omitempty,max=8000"`
	Subject     string     `json:"subject" validate:"omitempty,max=128"`
	Deadline    *time.Time `json:"deadline"`
	CoverURL    string     `json:"cover_url" validate:"omitempty,url,max=512"`
}

// ProjectUpdateRequest describes a partial project update.
type ProjectUpdateRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=3,max=255"`
	Description *string    `json:"description" validate:"omitempty,max=8000"`
	Subject     *string    `json:"subject" validate:"omitempty,max=128"`
	Status      *string    `json:"status" validate:"omitempty,oneof=draft active completed"`
	Deadline    *time.Time `json:"deadline"`
	CoverURL    *string    `json:"cover_url" validate:"omitempty,url,max=512"`
}

// ProjectMemberRequest assigns a student to a project team.
type ProjectMemberRequest struct {
	StudentID uint   `json:"student_id" validate:"required,gt=0"`
	RoleLabel string `json:"role_label" validate:"omitempty,max=64"`
}

// TeacherLite summarizes the owning teacher in project responses.
type TeacherLite struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ProjectResponse is returned to API clients when viewing projects. Progress
// is the completion criterion's raw 0-10 score; Rating is on a 0-5 scale.
type ProjectResponse struct {
	ID          uint        `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Subject     string      `json:"subject"`
	Status      string      `json:"status"`
	TeacherID   uint        `json:"teacher_id"`
	Teacher     TeacherLite `json:"teacher"`
	CoverURL    string      `json:"cover_url"`
	Deadline    *time.Time  `json:"deadline"`
	Progress    float64     `json:"progress"`
	Rating      float64     `json:"rating"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// ProjectListResponse wraps a project page with pagination metadata.
type ProjectListResponse struct {
	Items      []ProjectResponse `json:"items"`
	Pagination PaginationMeta    `json:"pagination"`
}

// ProjectMemberResponse serializes a team membership row.
type ProjectMemberResponse struct {
	ID        uint   `json:"id"`
	ProjectID uint   `json:"project_id"`
	StudentID uint   `json:"student_id"`
	Name      string `json:"name"`
	RoleLabel string `json:"role_label"`
}

// NewProjectResponse converts a Project model into a DTO.
func NewProjectResponse(model models.Project) ProjectResponse {
	return ProjectResponse{
		ID:          model.ID,
		Title:       model.Title,
		Description: model.Description,
		Subject:     model.Subject,
		Status:      model.Status,
		TeacherID:   model.TeacherID,
		Teacher:     TeacherLite{ID: model.Teacher.ID, Name: model.Teacher.Name},
		CoverURL:    model.CoverURL,
		Deadline:    model.Deadline,
		Progress:    model.Progress,
		Rating:      model.Rating,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

// NewProjectMemberResponse converts a ProjectMember model into a DTO.
func NewProjectMemberResponse(model models.ProjectMember) ProjectMemberResponse {
	return ProjectMemberResponse{
		ID:        model.ID,
		ProjectID: model.ProjectID,
		StudentID: model.StudentID,
		Name:      model.Student.Name,
		RoleLabel: model.RoleLabel,
	}
}
