package models

import "time"

// Project statuses.
const (
	ProjectStatusDraft     = "draft"
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
)

// Project is a piece of school work owned by a teacher and carried out by a
// team of students. Progress is the completion criterion's raw 0-10 score from
// the latest stored evaluation, not a percentage. Rating is percentage/20 on a
// 0-5 scale. Both are refreshed on every evaluation save.
type Project struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Subject     string    `gorm:"size:128" json:"subject"`
	Status      string    `gorm:"size:32;not null;default:draft" json:"status"`
	TeacherID   uint      `gorm:"not null;index" json:"teacher_id"`
	CoverURL    string    `gorm:"size:512" json:"cover_url"`
	Deadline    *time.Time `json:"deadline"`
	Progress    float64   `gorm:"not null;default:0" json:"progress"`
	Rating      float64   `gorm:"not null;default:0" json:"rating"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Teacher     User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"teacher"`
}

// ProjectMember assigns a student to a project team.
type ProjectMember struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProjectID uint      `gorm:"not null;index:idx_project_member,unique" json:"project_id"`
	StudentID uint      `gorm:"not null;index:idx_project_member,unique" json:"student_id"`
	RoleLabel string    `gorm:"size:64" json:"role_label"`
	CreatedAt time.Time `json:"created_at"`
	Student   User      `gorm:"foreignKey:StudentID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"student"`
}
