package repository

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/ruangkarya/ruangkarya-api/internal/models"
)

func setupEvaluationTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Project{}, &models.Evaluation{}))
	return db
}

func seedProject(t *testing.T, db *gorm.DB) models.Project {
	t.Helper()
	teacher := models.User{Name: "Bu Sari", Email: "sari@example.com", Role: models.RoleTeacher}
	require.NoError(t, db.Create(&teacher).Error)

	project := models.Project{Title: "Hydroponic Garden", Status: models.ProjectStatusActive, TeacherID: teacher.ID}
	require.NoError(t, db.Create(&project).Error)
	return project
}

func TestEvaluationRepositorySaveWithProjectCreates(t *testing.T) {
	db := setupEvaluationTestDB(t)
	repo := NewEvaluationRepository(db)
	project := seedProject(t, db)

	draft := models.NewEvaluationDraft(project.ID, project.TeacherID)
	require.NoError(t, draft.SetCriterionScore(0, 6.5, nil))

	require.NoError(t, repo.SaveWithProject(context.Background(), &draft, 6.5, 3.25))
	require.NotZero(t, draft.ID)

	var stored models.Project
	require.NoError(t, db.First(&stored, project.ID).Error)
	require.Equal(t, 6.5, stored.Progress)
	require.Equal(t, 3.25, stored.Rating)

	loaded, err := repo.GetByID(context.Background(), draft.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Criteria, 5)
	require.Equal(t, 6.5, loaded.Criteria[0].Score)
}

func TestEvaluationRepositorySaveWithProjectUpdatesInPlace(t *testing.T) {
	db := setupEvaluationTestDB(t)
	repo := NewEvaluationRepository(db)
	project := seedProject(t, db)

	draft := models.NewEvaluationDraft(project.ID, project.TeacherID)
	require.NoError(t, repo.SaveWithProject(context.Background(), &draft, 0, 0))
	firstID := draft.ID

	require.NoError(t, draft.SetCriterionScore(0, 9, nil))
	require.NoError(t, repo.SaveWithProject(context.Background(), &draft, 9, 4.5))
	require.Equal(t, firstID, draft.ID)

	var count int64
	require.NoError(t, db.Model(&models.Evaluation{}).Where("project_id = ?", project.ID).Count(&count).Error)
	require.Equal(t, int64(1), count)

	var stored models.Project
	require.NoError(t, db.First(&stored, project.ID).Error)
	require.Equal(t, 9.0, stored.Progress)
	require.Equal(t, 4.5, stored.Rating)
}

func TestEvaluationRepositoryListByProject(t *testing.T) {
	db := setupEvaluationTestDB(t)
	repo := NewEvaluationRepository(db)
	project := seedProject(t, db)

	mine := models.NewEvaluationDraft(project.ID, project.TeacherID)
	require.NoError(t, repo.SaveWithProject(context.Background(), &mine, 0, 0))

	other := models.NewEvaluationDraft(project.ID, project.TeacherID+1)
	require.NoError(t, repo.SaveWithProject(context.Background(), &other, 0, 0))

	unrelated := models.NewEvaluationDraft(project.ID+100, project.TeacherID)
	require.NoError(t, db.Create(&unrelated).Error)

	evaluations, err := repo.ListByProject(context.Background(), project.ID)
	require.NoError(t, err)
	require.Len(t, evaluations, 2)
	for _, evaluation := range evaluations {
		require.Equal(t, project.ID, evaluation.ProjectID)
	}
}
