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

func setupContentTestDB(t *testing.T, entities ...interface{}) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(entities...))
	return db
}

func TestGalleryRepositoryTagsRoundTrip(t *testing.T) {
	db := setupContentTestDB(t, &models.GalleryItem{})
	repo := NewGalleryRepository(db)

	item := models.GalleryItem{
		Title:    "Robotics Demo",
		ImageURL: "https://cdn.example.com/robot.jpg",
		Tags:     []string{"robotics", "stem"},
	}
	require.NoError(t, repo.Create(context.Background(), &item))

	loaded, err := repo.GetByID(context.Background(), item.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"robotics", "stem"}, loaded.Tags)
}

func TestGalleryRepositoryListFiltersByTag(t *testing.T) {
	db := setupContentTestDB(t, &models.GalleryItem{})
	repo := NewGalleryRepository(db)

	tagged := models.GalleryItem{Title: "Mural", ImageURL: "https://cdn.example.com/mural.jpg", Tags: []string{"art"}}
	other := models.GalleryItem{Title: "Garden", ImageURL: "https://cdn.example.com/garden.jpg", Tags: []string{"science"}}
	require.NoError(t, repo.Create(context.Background(), &tagged))
	require.NoError(t, repo.Create(context.Background(), &other))

	items, total, err := repo.List(context.Background(), GalleryFilter{Tags: []string{"art"}})
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	require.Equal(t, "Mural", items[0].Title)
}

func TestGalleryRepositoryListSearchAndPagination(t *testing.T) {
	db := setupContentTestDB(t, &models.GalleryItem{})
	repo := NewGalleryRepository(db)

	for i := 0; i < 3; i++ {
		item := models.GalleryItem{
			Title:    fmt.Sprintf("Science Fair %d", i),
			ImageURL: "https://cdn.example.com/fair.jpg",
		}
		require.NoError(t, repo.Create(context.Background(), &item))
	}
	unrelated := models.GalleryItem{Title: "Mural", ImageURL: "https://cdn.example.com/mural.jpg"}
	require.NoError(t, repo.Create(context.Background(), &unrelated))

	items, total, err := repo.List(context.Background(), GalleryFilter{Search: "Science", Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, items, 1)
}

func TestResourceRepositoryFiltersBySubject(t *testing.T) {
	db := setupContentTestDB(t, &models.LearningResource{})
	repo := NewResourceRepository(db)

	math := models.LearningResource{Title: "Fractions Explained", Kind: "video", URL: "https://example.com/v", Subject: "Math"}
	art := models.LearningResource{Title: "Color Theory", Kind: "article", URL: "https://example.com/a", Subject: "Art"}
	require.NoError(t, repo.Create(context.Background(), &math))
	require.NoError(t, repo.Create(context.Background(), &art))

	resources, err := repo.List(context.Background(), "Math", "")
	require.NoError(t, err)
	require.Len(t, resources, 1)
	require.Equal(t, "Fractions Explained", resources[0].Title)
}
