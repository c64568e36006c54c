package models

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

// ErrCriterionOutOfRange indicates a criterion index outside the rubric.
var ErrCriterionOutOfRange = errors.New("criterion index out of range")

// Evaluation is a teacher's scored rubric for one project. At most one record
// per (project, teacher) pair is authoritative. An Evaluation with a zero ID is
// an unsaved draft; the ID is assigned on first save and never changes after.
type Evaluation struct {
	ID            uint                            `gorm:"primaryKey" json:"id"`
	ProjectID     uint                            `gorm:"not null;index" json:"project_id"`
	TeacherID     uint                            `gorm:"not null;index" json:"teacher_id"`
	Criteria      datatypes.JSONSlice[Criterion]  `json:"criteria"`
	TotalScore    float64                         `json:"total_score"`
	MaxTotalScore float64                         `json:"max_total_score"`
	Percentage    int                             `json:"percentage"`
	Feedback      string                          `gorm:"type:text" json:"feedback"`
	CreatedAt     time.Time                       `json:"created_at"`
	UpdatedAt     time.Time                       `json:"updated_at"`
}

// NewEvaluationDraft builds an unsaved evaluation seeded with the default
// rubric, zero scores and empty feedback.
func NewEvaluationDraft(projectID, teacherID uint) Evaluation {
	criteria := DefaultCriteria()

	return Evaluation{
		ProjectID:     projectID,
		TeacherID:     teacherID,
		Criteria:      datatypes.NewJSONSlice(criteria),
		MaxTotalScore: RubricMaxTotal(criteria),
	}
}

// IsSaved reports whether the evaluation corresponds to a persisted record.
func (e Evaluation) IsSaved() bool {
	return e.ID != 0
}

// SetCriterionScore updates one criterion. The score is clamped into
// [0, maxScore] before storing; a nil comments pointer preserves the existing
// comments. Aggregates are recomputed before returning, so the
// (criteria, total, percentage) triple is always consistent.
func (e *Evaluation) SetCriterionScore(index int, score float64, comments *string) error {
	if index < 0 || index >= len(e.Criteria) {
		return ErrCriterionOutOfRange
	}

	e.Criteria[index].Score = ClampScore(score, e.Criteria[index].MaxScore)
	if comments != nil {
		e.Criteria[index].Comments = *comments
	}

	e.Recalculate()

	return nil
}

// SetFeedback replaces the overall feedback verbatim. Criteria and aggregates
// are untouched.
func (e *Evaluation) SetFeedback(text string) {
	e.Feedback = text
}

// Recalculate refreshes TotalScore and Percentage from the criteria list.
func (e *Evaluation) Recalculate() {
	aggregate := AggregateCriteria(e.Criteria)
	e.TotalScore = aggregate.WeightedTotal
	e.Percentage = aggregate.Percentage
}

// CompletionScore returns the raw score of the completion criterion, the first
// rubric entry. It is a 0-10 value, not a percentage.
func (e Evaluation) CompletionScore() float64 {
	if len(e.Criteria) == 0 {
		return 0
	}
	return ClampScore(e.Criteria[0].Score, e.Criteria[0].MaxScore)
}

// ProjectRating maps the 0-100 percentage onto the 0-5 rating scale.
func (e Evaluation) ProjectRating() float64 {
	return float64(e.Percentage) / 20
}
