package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ruangkarya/ruangkarya-api/internal/models"
)

// EvaluationRepository defines data operations for project evaluations.
type EvaluationRepository interface {
	ListByProject(ctx context.Context, projectID uint) ([]models.Evaluation, error)
	GetByID(ctx context.Context, id uint) (models.Evaluation, error)
	// SaveWithProject persists the evaluation (insert when ID is zero, update
	// otherwise) and refreshes the project's progress and rating columns in the
	// same transaction, so a failed project sync never leaves a half-applied
	// save behind.
	SaveWithProject(ctx context.Context, evaluation *models.Evaluation, progress, rating float64) error
}

type evaluationRepository struct {
	db *gorm.DB
}

// NewEvaluationRepository instantiates the repository.
func NewEvaluationRepository(db *gorm.DB) EvaluationRepository {
	return &evaluationRepository{db: db}
}

func (r *evaluationRepository) ListByProject(ctx context.Context, projectID uint) ([]models.Evaluation, error) {
	var evaluations []models.Evaluation
	if err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Find(&evaluations).Error; err != nil {
		return nil, err
	}

	return evaluations, nil
}

func (r *evaluationRepository) GetByID(ctx context.Context, id uint) (models.Evaluation, error) {
	var evaluation models.Evaluation
	if err := r.db.WithContext(ctx).First(&evaluation, id).Error; err != nil {
		return models.Evaluation{}, err
	}

	return evaluation, nil
}

func (r *evaluationRepository) SaveWithProject(ctx context.Context, evaluation *models.Evaluation, progress, rating float64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if evaluation.ID == 0 {
			if err := tx.Create(evaluation).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Save(evaluation).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.Project{}).
			Where("id = ?", evaluation.ProjectID).
			Updates(map[string]interface{}{
				"progress": progress,
				"rating":   rating,
			}).Error
	})
}
