package cli

import (
	"testing"

	"github.com/thenoetrevino/salesboard/internal/app"
	"github.com/thenoetrevino/salesboard/internal/cli"
	"github.com/thenoetrevino/salesboard/internal/config"
	"github.com/thenoetrevino/salesboard/internal/events"
	"github.com/thenoetrevino/salesboard/internal/models"
	"github.com/thenoetrevino/salesboard/internal/testutil"
)

// SetupCLITest returns a CLI over a seeded in-memory store acting as
// testutil.UserAM. cfg may be nil.
func SetupCLITest(t *testing.T, cfg *config.Config) *cli.CLI {
	t.Helper()

	if cfg == nil {
		cfg = config.Default()
	}
	cfg.Identity.UserID = testutil.UserAM

	repo := testutil.SetupTestRepo(t)
	testutil.SeedDirectory(t, repo)

	bus := events.NewBus(16)
	c := cli.New(app.New(repo, app.WithEventPublisher(bus)), bus, cfg)
	t.Cleanup(func() {
		_ = c.Close()
	})
	return c
}

// CreateTestRequest wraps testutil.CreateTestRequest for CLI tests
func CreateTestRequest(t *testing.T, c *cli.CLI, title string, status models.Status) string {
	t.Helper()
	return testutil.CreateTestRequest(t, c.App, title, status)
}
