package dto

import (
	"time"

	"github.com/ruangkarya/ruangkarya-api/internal/models"
)

// EvaluationScoreInput updates one rubric criterion inside a draft save.
type EvaluationScoreInput struct {
	Index    int     `json:"index" validate:"gte=0,lte=4"`
	Score    float64 `json:"score"`
	Comments *string `json:"comments" validate:"omitempty,max=2000"`
}

// EvaluationSaveRequest carries the teacher's draft mutations applied before a
// save: per-criterion scores/comments plus the overall feedback.
type EvaluationSaveRequest struct {
	Scores   []EvaluationScoreInput `json:"scores" validate:"omitempty,max=5,dive"`
	Feedback *string                `json:"feedback" validate:"omitempty,max=8000"`
}

// CriterionResponse serializes one rubric entry.
type CriterionResponse struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	MaxScore float64 `json:"max_score"`
	Weight   float64 `json:"weight"`
	Comments string  `json:"comments"`
}

// EvaluationResponse is returned to API clients when viewing an evaluation.
type EvaluationResponse struct {
	ID            uint                `json:"id"`
	ProjectID     uint                `json:"project_id"`
	TeacherID     uint                `json:"teacher_id"`
	Criteria      []CriterionResponse `json:"criteria"`
	TotalScore    float64             `json:"total_score"`
	MaxTotalScore float64             `json:"max_total_score"`
	Percentage    int                 `json:"percentage"`
	Feedback      string              `json:"feedback"`
	Saved         bool                `json:"saved"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// NewEvaluationResponse converts an Evaluation model into a DTO.
func NewEvaluationResponse(model models.Evaluation) EvaluationResponse {
	criteria := make([]CriterionResponse, 0, len(model.Criteria))
	for _, criterion := range model.Criteria {
		criteria = append(criteria, CriterionResponse{
			Name:     criterion.Name,
			Score:    criterion.Score,
			MaxScore: criterion.MaxScore,
			Weight:   criterion.Weight,
			Comments: criterion.Comments,
		})
	}

	return EvaluationResponse{
		ID:            model.ID,
		ProjectID:     model.ProjectID,
		TeacherID:     model.TeacherID,
		Criteria:      criteria,
		TotalScore:    model.TotalScore,
		MaxTotalScore: model.MaxTotalScore,
		Percentage:    model.Percentage,
		Feedback:      model.Feedback,
		Saved:         model.IsSaved(),
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}
