package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/salesboard/internal/app"
	"github.com/thenoetrevino/salesboard/internal/database"
	"github.com/thenoetrevino/salesboard/internal/models"
	requestservice "github.com/thenoetrevino/salesboard/internal/services/request"
)

// Seeded directory entries
const (
	UserAM    = "u-am"
	UserBDR   = "u-bdr"
	UserAdmin = "u-admin"
	CityID    = "austin"
)

// SetupTestRepo opens an in-memory SQLite store with the full schema
func SetupTestRepo(t *testing.T) *database.Repository {
	t.Helper()
	repo, err := database.Open(context.Background(), database.Options{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err, "failed to create test database")
	return repo
}

// SeedDirectory adds an account manager, a BDR, an admin and one city
func SeedDirectory(t *testing.T, repo database.DataStore) {
	t.Helper()
	ctx := context.Background()

	for _, m := range []models.TeamMember{
		{ID: UserAM, DisplayName: "Alex Morgan"},
		{ID: UserBDR, DisplayName: "Blake Diaz"},
		{ID: UserAdmin, DisplayName: "Casey Admin"},
	} {
		require.NoError(t, repo.UpsertProfile(ctx, m))
	}
	require.NoError(t, repo.GrantRole(ctx, UserAdmin, database.RoleAdmin))
	require.NoError(t, repo.UpsertCity(ctx, models.City{ID: CityID, Name: "Austin", StateCode: "TX"}))
}

// CreateTestRequest files a request as UserAM in status and returns its ID
func CreateTestRequest(t *testing.T, a *app.App, title string, status models.Status) string {
	t.Helper()
	req, err := a.RequestService.Create(context.Background(), requestservice.CreateRequest{
		Title:       title,
		RequestType: models.RequestTypeEvent,
		Status:      status,
		CityID:      CityID,
		CreatedBy:   UserAM,
	})
	require.NoError(t, err)
	return req.ID
}
