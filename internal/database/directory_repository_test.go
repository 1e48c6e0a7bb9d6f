package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/salesboard/internal/models"
)

func TestDirectory(t *testing.T) {
	t.Parallel()
	repo := setupTestDB(t)
	seedDirectory(t, repo)
	ctx := context.Background()

	members, err := repo.ListTeamMembers(ctx)
	require.NoError(t, err)
	require.Len(t, members, 3)
	assert.Equal(t, "Alex Morgan", members[0].DisplayName)

	require.NoError(t, repo.UpsertProfile(ctx, models.TeamMember{ID: "u-am", DisplayName: "Alex M."}))
	p, err := repo.GetProfile(ctx, "u-am")
	require.NoError(t, err)
	assert.Equal(t, "Alex M.", p.DisplayName)

	_, err = repo.GetProfile(ctx, "nobody")
	assert.ErrorIs(t, err, models.ErrProfileNotFound)

	admin, err := repo.IsAdmin(ctx, "u-admin")
	require.NoError(t, err)
	assert.True(t, admin)

	admin, err = repo.IsAdmin(ctx, "u-am")
	require.NoError(t, err)
	assert.False(t, admin)

	require.NoError(t, repo.GrantRole(ctx, "u-admin", RoleAdmin), "granting twice is a no-op")

	require.NoError(t, repo.UpsertCity(ctx, models.City{ID: "boise", Name: "Boise", StateCode: "ID"}))
	cities, err := repo.ListCities(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.City{
		{ID: "austin", Name: "Austin", StateCode: "TX"},
		{ID: "boise", Name: "Boise", StateCode: "ID"},
	}, cities)
}
