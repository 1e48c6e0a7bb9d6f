package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/salesboard/internal/models"
)

var base = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func TestCreateAndGetRequest(t *testing.T) {
	t.Parallel()
	repo := setupTestDB(t)
	seedDirectory(t, repo)
	ctx := context.Background()

	volume := 120
	due := base.Add(72 * time.Hour)
	req := &models.Request{
		Title:        "Team dinner",
		Description:  "Private room for 12",
		RequestType:  models.RequestTypeEvent,
		Status:       "In Progress",
		CityID:       "austin",
		RequesterID:  "u-am",
		CreatedBy:    "u-am",
		Volume:       &volume,
		NeedAnswerBy: &due,
	}
	require.NoError(t, repo.CreateRequest(ctx, req))
	assert.NotEmpty(t, req.ID)
	assert.Equal(t, models.StatusOnProgress, req.Status)

	got, err := repo.GetRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, "Team dinner", got.Title)
	assert.Equal(t, models.RequestTypeEvent, got.RequestType)
	assert.Equal(t, models.StatusOnProgress, got.Status)
	assert.Equal(t, "Austin, TX", got.CityLabel())
	assert.Equal(t, "Alex Morgan", got.RequesterName)
	assert.Equal(t, "Alex Morgan", got.CreatorName)
	require.NotNil(t, got.Volume)
	assert.Equal(t, 120, *got.Volume)
	require.NotNil(t, got.NeedAnswerBy)
	assert.True(t, due.Equal(*got.NeedAnswerBy))
	assert.Nil(t, got.DeliveryDate)
	assert.Empty(t, got.AssignedBDRs)
}

func TestGetRequest_NotFound(t *testing.T) {
	t.Parallel()
	repo := setupTestDB(t)

	_, err := repo.GetRequest(context.Background(), "missing")
	assert.True(t, errors.Is(err, models.ErrRequestNotFound))
}

func TestListRequests_NewestFirstAndScoped(t *testing.T) {
	t.Parallel()
	repo := setupTestDB(t)
	seedDirectory(t, repo)
	ctx := context.Background()

	old := createTestRequest(t, repo, "Old", base)
	mid := createTestRequest(t, repo, "Mid", base.Add(time.Hour))
	newest := &models.Request{
		Title: "Admin only", RequestType: models.RequestTypeCuisine, CityID: "austin",
		CreatedBy: "u-admin", RequesterID: "u-admin", CreatedAt: base.Add(2 * time.Hour),
	}
	require.NoError(t, repo.CreateRequest(ctx, newest))

	all, err := repo.ListRequests(ctx, RequestScope{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{newest.ID, mid.ID, old.ID}, []string{all[0].ID, all[1].ID, all[2].ID})

	mine, err := repo.ListRequests(ctx, RequestScope{UserID: "u-am"})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	bdr, err := repo.ListRequests(ctx, RequestScope{UserID: "u-bdr"})
	require.NoError(t, err)
	assert.Empty(t, bdr)

	require.NoError(t, repo.AssignBDR(ctx, newest.ID, "u-bdr"))
	bdr, err = repo.ListRequests(ctx, RequestScope{UserID: "u-bdr"})
	require.NoError(t, err)
	require.Len(t, bdr, 1)
	assert.Equal(t, []models.BDR{{ID: "u-bdr", Name: "Blake Diaz"}}, bdr[0].AssignedBDRs)
}

func TestListRequests_NormalizesStoredStatus(t *testing.T) {
	t.Parallel()
	repo := setupTestDB(t)
	seedDirectory(t, repo)
	ctx := context.Background()

	req := createTestRequest(t, repo, "Legacy", base)
	_, err := repo.DB().ExecContext(ctx, `UPDATE requests SET status = 'archived' WHERE id = ?`, req.ID)
	require.NoError(t, err)

	list, err := repo.ListRequests(ctx, RequestScope{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, models.StatusNew, list[0].Status)
}

func TestUpdateRequest_PartialFields(t *testing.T) {
	t.Parallel()
	repo := setupTestDB(t)
	seedDirectory(t, repo)
	ctx := context.Background()

	req := createTestRequest(t, repo, "Before", base)
	title := "After"
	company := "Globex"
	status := models.StatusOnHold
	require.NoError(t, repo.UpdateRequest(ctx, req.ID, models.RequestPatch{Title: &title, Company: &company, Status: &status}))

	got, err := repo.GetRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Title)
	assert.Equal(t, "Globex", got.Company)
	assert.Equal(t, models.StatusOnHold, got.Status)
	assert.Equal(t, models.RequestTypeRestaurant, got.RequestType, "untouched fields keep their value")
	assert.True(t, got.UpdatedAt.After(got.CreatedAt))

	err = repo.UpdateRequest(ctx, "missing", models.RequestPatch{Title: &title})
	assert.True(t, errors.Is(err, models.ErrRequestNotFound))
}

func TestUpdateRequestStatus(t *testing.T) {
	t.Parallel()
	repo := setupTestDB(t)
	seedDirectory(t, repo)
	ctx := context.Background()

	req := createTestRequest(t, repo, "Move me", base)
	require.NoError(t, repo.UpdateRequestStatus(ctx, req.ID, models.StatusDone))

	got, err := repo.GetRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, got.Status)

	err = repo.UpdateRequestStatus(ctx, "missing", models.StatusDone)
	assert.True(t, errors.Is(err, models.ErrRequestNotFound))
}

func TestAssignAndUnassignBDR(t *testing.T) {
	t.Parallel()
	repo := setupTestDB(t)
	seedDirectory(t, repo)
	ctx := context.Background()

	req := createTestRequest(t, repo, "Assign", base)

	require.NoError(t, repo.AssignBDR(ctx, req.ID, "u-bdr"))
	assert.ErrorIs(t, repo.AssignBDR(ctx, req.ID, "u-bdr"), models.ErrAlreadyAssigned)
	assert.ErrorIs(t, repo.AssignBDR(ctx, "missing", "u-bdr"), models.ErrRequestNotFound)
	assert.ErrorIs(t, repo.AssignBDR(ctx, req.ID, "nobody"), models.ErrProfileNotFound)

	got, err := repo.GetRequest(ctx, req.ID)
	require.NoError(t, err)
	assert.True(t, got.IsAssignedTo("u-bdr"))

	require.NoError(t, repo.UnassignBDR(ctx, req.ID, "u-bdr"))
	assert.ErrorIs(t, repo.UnassignBDR(ctx, req.ID, "u-bdr"), models.ErrNotAssigned)
}
