package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ruangkarya/ruangkarya-api/internal/dto"
	"github.com/ruangkarya/ruangkarya-api/internal/models"
	"github.com/ruangkarya/ruangkarya-api/internal/repository"
)

type fakeProjectRepo struct {
	projects map[uint]models.Project
	members  []models.ProjectMember
	nextID   uint
}

func newFakeProjectRepo(projects ...models.Project) *fakeProjectRepo {
	repo := &fakeProjectRepo{projects: make(map[uint]models.Project)}
	for _, project := range projects {
		repo.projects[project.ID] = project
		if project.ID > repo.nextID {
			repo.nextID = project.ID
		}
	}
	return repo
}

func (f *fakeProjectRepo) List(ctx context.Context, filter repository.ProjectFilter) ([]models.Project, int64, error) {
	out := make([]models.Project, 0, len(f.projects))
	for _, project := range f.projects {
		if filter.TeacherID != nil && project.TeacherID != *filter.TeacherID {
			continue
		}
		out = append(out, project)
	}
	return out, int64(len(out)), nil
}

func (f *fakeProjectRepo) GetByID(ctx context.Context, id uint) (models.Project, error) {
	project, ok := f.projects[id]
	if !ok {
		return models.Project{}, gorm.ErrRecordNotFound
	}
	return project, nil
}

func (f *fakeProjectRepo) Create(ctx context.Context, project *models.Project) error {
	f.nextID++
	project.ID = f.nextID
	f.projects[project.ID] = *project
	return nil
}

func (f *fakeProjectRepo) Update(ctx context.Context, project *models.Project) error {
	f.projects[project.ID] = *project
	return nil
}

func (f *fakeProjectRepo) Delete(ctx context.Context, id uint) error {
	delete(f.projects, id)
	return nil
}

func (f *fakeProjectRepo) ListMembers(ctx context.Context, projectID uint) ([]models.ProjectMember, error) {
	out := make([]models.ProjectMember, 0)
	for _, member := range f.members {
		if member.ProjectID == projectID {
			out = append(out, member)
		}
	}
	return out, nil
}

func (f *fakeProjectRepo) AddMember(ctx context.Context, member *models.ProjectMember) error {
	member.ID = uint(len(f.members) + 1)
	f.members = append(f.members, *member)
	return nil
}

func (f *fakeProjectRepo) RemoveMember(ctx context.Context, projectID, studentID uint) error {
	kept := f.members[:0]
	for _, member := range f.members {
		if member.ProjectID == projectID && member.StudentID == studentID {
			continue
		}
		kept = append(kept, member)
	}
	f.members = kept
	return nil
}

type stubProgress struct {
	values map[uint]float64
	err    error
}

func (s *stubProgress) DisplayedProgress(ctx context.Context, projectID uint) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.values[projectID], nil
}

func (s *stubProgress) Invalidate(ctx context.Context, projectID uint) {}

func TestProjectServiceGetHydratesProgress(t *testing.T) {
	repo := newFakeProjectRepo(models.Project{ID: 4, Title: "Mural", TeacherID: 2, Progress: 1})
	progress := &stubProgress{values: map[uint]float64{4: 6.5}}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewProjectService(repo, progress, validate, testLogger())

	response, err := svc.Get(context.Background(), 4)
	require.NoError(t, err)
	require.Equal(t, 6.5, response.Progress)
}

func TestProjectServiceGetFallsBackToStoredProgress(t *testing.T) {
	repo := newFakeProjectRepo(models.Project{ID: 4, Title: "Mural", TeacherID: 2, Progress: 5.5})
	progress := &stubProgress{err: errors.New("redis down")}
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewProjectService(repo, progress, validate, testLogger())

	response, err := svc.Get(context.Background(), 4)
	require.NoError(t, err)
	require.Equal(t, 5.5, response.Progress)
}

func TestProjectServiceGetNotFound(t *testing.T) {
	repo := newFakeProjectRepo()
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewProjectService(repo, &stubProgress{}, validate, testLogger())

	_, err := svc.Get(context.Background(), 99)
	require.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectServiceCreateStartsAsDraft(t *testing.T) {
	repo := newFakeProjectRepo()
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewProjectService(repo, &stubProgress{}, validate, testLogger())

	response, err := svc.Create(context.Background(), 2, dto.ProjectCreateRequest{
		Title:   "Recycling Campaign",
		Subject: "Science",
	})
	require.NoError(t, err)
	require.NotZero(t, response.ID)
	require.Equal(t, models.ProjectStatusDraft, response.Status)
	require.Equal(t, uint(2), response.TeacherID)
}

func TestProjectServiceUpdateAppliesPartialPatch(t *testing.T) {
	repo := newFakeProjectRepo(models.Project{ID: 4, Title: "Mural", Subject: "Art", TeacherID: 2, Status: models.ProjectStatusDraft})
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewProjectService(repo, &stubProgress{}, validate, testLogger())

	status := models.ProjectStatusActive
	response, err := svc.Update(context.Background(), 4, dto.ProjectUpdateRequest{Status: &status})
	require.NoError(t, err)
	require.Equal(t, models.ProjectStatusActive, response.Status)
	require.Equal(t, "Mural", response.Title)
}

func TestProjectServiceMembers(t *testing.T) {
	repo := newFakeProjectRepo(models.Project{ID: 4, Title: "Mural", TeacherID: 2})
	validate := validator.New(validator.WithRequiredStructEnabled())
	svc := NewProjectService(repo, &stubProgress{}, validate, testLogger())

	added, err := svc.AddMember(context.Background(), 4, dto.ProjectMemberRequest{StudentID: 11, RoleLabel: "lead"})
	require.NoError(t, err)
	require.Equal(t, uint(11), added.StudentID)

	members, err := svc.Members(context.Background(), 4)
	require.NoError(t, err)
	require.Len(t, members, 1)

	require.NoError(t, svc.RemoveMember(context.Background(), 4, 11))
	members, err = svc.Members(context.Background(), 4)
	require.NoError(t, err)
	require.Empty(t, members)
}
