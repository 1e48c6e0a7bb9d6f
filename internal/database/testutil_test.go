package database

import (
	"context"
	"testing"
	"time"

	"github.com/thenoetrevino/salesboard/internal/models"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB opens an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(context.Background(), Options{Driver: "sqlite", DSN: ":memory:", ConnectTimeout: time.Second})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

// seedDirectory inserts the people and city most tests reference
func seedDirectory(t *testing.T, repo *Repository) {
	t.Helper()
	ctx := context.Background()

	profiles := []models.TeamMember{
		{ID: "u-am", DisplayName: "Alex Morgan", Email: "alex@example.com"},
		{ID: "u-bdr", DisplayName: "Blake Diaz", Email: "blake@example.com"},
		{ID: "u-admin", DisplayName: "Casey Admin", Email: "casey@example.com"},
	}
	for _, p := range profiles {
		if err := repo.UpsertProfile(ctx, p); err != nil {
			t.Fatalf("Failed to seed profile %s: %v", p.ID, err)
		}
	}
	if err := repo.GrantRole(ctx, "u-admin", RoleAdmin); err != nil {
		t.Fatalf("Failed to seed role: %v", err)
	}
	if err := repo.UpsertCity(ctx, models.City{ID: "austin", Name: "Austin", StateCode: "TX"}); err != nil {
		t.Fatalf("Failed to seed city: %v", err)
	}
}

// createTestRequest inserts a request created by u-am
func createTestRequest(t *testing.T, repo *Repository, title string, createdAt time.Time) *models.Request {
	t.Helper()
	req := &models.Request{
		Title:       title,
		RequestType: models.RequestTypeRestaurant,
		CityID:      "austin",
		RequesterID: "u-am",
		CreatedBy:   "u-am",
		Company:     "Acme",
		CreatedAt:   createdAt,
	}
	if err := repo.CreateRequest(context.Background(), req); err != nil {
		t.Fatalf("Failed to create request %q: %v", title, err)
	}
	return req
}
