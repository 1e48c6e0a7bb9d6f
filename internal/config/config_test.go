package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/salesboard/internal/models"
	"github.com/thenoetrevino/salesboard/internal/user"
)

func TestDefaultKeyMappings(t *testing.T) {
	defaults := DefaultKeyMappings()

	assert.Equal(t, "q", defaults.Quit)
	assert.Equal(t, " ", defaults.PickUp)
	assert.Equal(t, "enter", defaults.Drop)
	assert.Equal(t, "r", defaults.Reload)
}

func TestLoadConfigWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, models.DefaultStaleAfterDays, cfg.Report.StaleAfterDays)
	assert.Equal(t, "q", cfg.KeyMappings.Quit)
	assert.False(t, cfg.Board.EnforceTransitions)
}

func TestLoadConfigWithFile(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tempDir)

	configDir := filepath.Join(tempDir, "salesboard")
	require.NoError(t, os.MkdirAll(configDir, 0o755))

	configContent := `database:
  driver: postgres
  dsn: postgres://sales@localhost/sales
board:
  columns: [done, "On Progress"]
  enforce_transitions: true
key_mappings:
  quit: "x"
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://sales@localhost/sales", cfg.Database.DSN)
	assert.True(t, cfg.Board.EnforceTransitions)
	assert.Equal(t, "x", cfg.KeyMappings.Quit)
	// unset keys still get defaults
	assert.Equal(t, "enter", cfg.KeyMappings.Drop)
	assert.Equal(t, 30, cfg.Database.ConnectTimeoutSeconds)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("SALESBOARD_SERVER_ADDR", "127.0.0.1:9999")
	t.Setenv("SALESBOARD_REMOTE_BASE_URL", "http://board.internal")
	t.Setenv("SALESBOARD_BOARD_ENFORCE_TRANSITIONS", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr)
	assert.Equal(t, "http://board.internal", cfg.Remote.BaseURL)
	assert.True(t, cfg.Board.EnforceTransitions)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database: [unclosed"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Remote.BaseURL = "http://localhost:8080"
	cfg.Report.StaleAfterDays = 7
	require.NoError(t, cfg.Save(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", loaded.Remote.BaseURL)
	assert.Equal(t, 7, loaded.Report.StaleAfterDays)
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/xdg/salesboard/config.yaml", path)
}

func TestBoardColumns(t *testing.T) {
	tests := []struct {
		name    string
		columns []string
		want    []models.Status
	}{
		{"defaults", nil, models.BoardStatuses},
		{"subset in order", []string{"done", "new"}, []models.Status{models.StatusDone, models.StatusNew}},
		{"unknown and repeats skipped", []string{"archived", "On Hold", "on_hold"}, []models.Status{models.StatusOnHold}},
		{"all unknown", []string{"archived"}, models.BoardStatuses},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Board.Columns = tt.columns
			assert.Equal(t, tt.want, cfg.BoardColumns())
		})
	}
}

func TestIdentityDefaultsToLoginName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("identity:\n  user_id: \"\"\n  admin: true\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, user.Username(), cfg.Identity.UserID)
	assert.True(t, cfg.Viewer().IsSuperAdmin)
}
