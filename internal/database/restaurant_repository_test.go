package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/salesboard/internal/models"
)

func createTestRestaurant(t *testing.T, repo *Repository, name string, createdAt time.Time) *models.Restaurant {
	t.Helper()
	s := &models.Restaurant{Name: name, CityID: "austin", CreatedBy: "u-am", CreatedAt: createdAt}
	require.NoError(t, repo.CreateRestaurant(context.Background(), s))
	return s
}

func TestCreateRestaurant_Defaults(t *testing.T) {
	t.Parallel()
	repo := setupTestDB(t)
	seedDirectory(t, repo)

	s := createTestRestaurant(t, repo, "Taco Joint #2", base)

	got, err := repo.GetRestaurant(context.Background(), s.ID)
	require.NoError(t, err)
	assert.Equal(t, "taco-joint-2", got.Slug)
	assert.Equal(t, models.StatusNew, got.Status)
	assert.Equal(t, models.DefaultBDRTargetPerWeek, got.BDRTargetPerWeek)
	assert.Equal(t, "Austin", got.CityName)
	assert.Equal(t, "Alex Morgan", got.CreatorName)
	assert.Empty(t, got.AssignedBDRs)
}

func TestListRestaurants_NewestFirstSkipsDeleted(t *testing.T) {
	t.Parallel()
	repo := setupTestDB(t)
	seedDirectory(t, repo)
	ctx := context.Background()

	old := createTestRestaurant(t, repo, "Old", base)
	mid := createTestRestaurant(t, repo, "Mid", base.Add(time.Hour))
	gone := createTestRestaurant(t, repo, "Gone", base.Add(2*time.Hour))
	require.NoError(t, repo.SoftDeleteRestaurant(ctx, gone.ID))
	assert.ErrorIs(t, repo.SoftDeleteRestaurant(ctx, gone.ID), models.ErrRestaurantNotFound)

	list, err := repo.ListRestaurants(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, mid.ID, list[0].ID)
	assert.Equal(t, old.ID, list[1].ID)

	_, err = repo.GetRestaurant(ctx, gone.ID)
	assert.ErrorIs(t, err, models.ErrRestaurantNotFound)
}

func TestUpdateRestaurant(t *testing.T) {
	t.Parallel()
	repo := setupTestDB(t)
	seedDirectory(t, repo)
	ctx := context.Background()

	s := createTestRestaurant(t, repo, "Pho Place", base)

	name := "Pho Place Downtown"
	status := models.Status("in progress")
	target := 6
	require.NoError(t, repo.UpdateRestaurant(ctx, s.ID, models.RestaurantPatch{
		Name: &name, Status: &status, BDRTargetPerWeek: &target,
	}))

	got, err := repo.GetRestaurant(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, name, got.Name)
	assert.Equal(t, "pho-place-downtown", got.Slug)
	assert.Equal(t, models.StatusOnProgress, got.Status)
	assert.Equal(t, 6, got.BDRTargetPerWeek)

	err = repo.UpdateRestaurant(ctx, "missing", models.RestaurantPatch{Name: &name})
	assert.ErrorIs(t, err, models.ErrRestaurantNotFound)
}

func TestRestaurantAssignments(t *testing.T) {
	t.Parallel()
	repo := setupTestDB(t)
	seedDirectory(t, repo)
	ctx := context.Background()

	s := createTestRestaurant(t, repo, "Curry House", base)

	require.NoError(t, repo.AssignRestaurantBDR(ctx, s.ID, "u-bdr"))
	require.NoError(t, repo.AssignRestaurantBDR(ctx, s.ID, "u-bdr"), "assigning twice is a no-op")
	assert.ErrorIs(t, repo.AssignRestaurantBDR(ctx, s.ID, "ghost"), models.ErrProfileNotFound)
	assert.ErrorIs(t, repo.AssignRestaurantBDR(ctx, "missing", "u-bdr"), models.ErrRestaurantNotFound)

	got, err := repo.GetRestaurant(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, []models.BDR{{ID: "u-bdr", Name: "Blake Diaz"}}, got.AssignedBDRs)

	require.NoError(t, repo.UnassignRestaurantBDR(ctx, s.ID, "u-bdr"))
	assert.ErrorIs(t, repo.UnassignRestaurantBDR(ctx, s.ID, "u-bdr"), models.ErrNotAssigned)
}

func TestRestaurantCommentsLifecycle(t *testing.T) {
	t.Parallel()
	repo := setupTestDB(t)
	seedDirectory(t, repo)
	ctx := context.Background()

	s := createTestRestaurant(t, repo, "Bagel Bar", base)

	c := &models.Comment{
		RestaurantID: s.ID,
		UserID:       "u-am",
		Content:      "@Blake Diaz menu is in",
		Mentions:     []models.Mention{{UserID: "u-bdr"}},
	}
	require.NoError(t, repo.CreateRestaurantComment(ctx, c))

	flat, err := repo.ListRestaurantComments(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, flat, 1)
	assert.Equal(t, s.ID, flat[0].RestaurantID)
	assert.Empty(t, flat[0].RequestID)
	assert.Equal(t, []models.Mention{{UserID: "u-bdr", UserName: "Blake Diaz"}}, flat[0].Mentions)

	c.Content = "@Casey Admin menu is in"
	c.Mentions = []models.Mention{{UserID: "u-admin"}}
	require.NoError(t, repo.EditRestaurantComment(ctx, c))

	flat, err = repo.ListRestaurantComments(ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, flat, 1)
	assert.True(t, flat[0].IsEdited)
	assert.Equal(t, "@Casey Admin menu is in", flat[0].Content)
	assert.Equal(t, []models.Mention{{UserID: "u-admin", UserName: "Casey Admin"}}, flat[0].Mentions)

	got, err := repo.GetRestaurant(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.CommentsCount)

	require.NoError(t, repo.SoftDeleteRestaurantComment(ctx, c.ID))
	assert.ErrorIs(t, repo.EditRestaurantComment(ctx, c), models.ErrCommentNotFound)

	_, err = repo.GetComment(ctx, c.ID)
	assert.ErrorIs(t, err, models.ErrCommentNotFound, "request comments live in their own table")
}
