package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/thenoetrevino/salesboard/internal/app"
	"github.com/thenoetrevino/salesboard/internal/config"
	"github.com/thenoetrevino/salesboard/internal/database"
	"github.com/thenoetrevino/salesboard/internal/events"
	"github.com/thenoetrevino/salesboard/internal/kanban"
	"github.com/thenoetrevino/salesboard/internal/models"
	"github.com/thenoetrevino/salesboard/internal/remote"
	"github.com/thenoetrevino/salesboard/internal/user"
)

// ErrNotInitialized is returned when a command runs without a CLI session
var ErrNotInitialized = errors.New("cli not initialized")

// CLI represents the CLI application context
type CLI struct {
	App    *app.App // Application container with services
	Config *config.Config
	Viewer models.Viewer
	Bus    *events.Bus
}

// New wraps an already opened app
func New(a *app.App, bus *events.Bus, cfg *config.Config) *CLI {
	if cfg == nil {
		cfg = config.Default()
	}
	return &CLI{App: a, Config: cfg, Viewer: cfg.Viewer(), Bus: bus}
}

// NewCLI opens the configured database and makes sure the local identity
// has a profile, so requests it creates satisfy their foreign keys
func NewCLI(ctx context.Context, cfg *config.Config) (*CLI, error) {
	repo, err := database.Open(ctx, database.Options{
		Driver:         cfg.Database.Driver,
		DSN:            cfg.Database.DSN,
		ConnectTimeout: time.Duration(cfg.Database.ConnectTimeoutSeconds) * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := ensureIdentity(ctx, repo, cfg.Viewer()); err != nil {
		_ = repo.Close()
		return nil, err
	}

	bus := events.NewBus(0)
	return New(app.New(repo, app.WithEventPublisher(bus)), bus, cfg), nil
}

func ensureIdentity(ctx context.Context, repo *database.Repository, viewer models.Viewer) error {
	if viewer.UserID == "" {
		return nil
	}
	_, err := repo.GetProfile(ctx, viewer.UserID)
	if errors.Is(err, models.ErrProfileNotFound) {
		err = repo.UpsertProfile(ctx, models.TeamMember{ID: viewer.UserID, DisplayName: user.DisplayName(viewer.UserID)})
	}
	if err != nil {
		return fmt.Errorf("failed to prepare profile %s: %w", viewer.UserID, err)
	}
	if viewer.IsSuperAdmin {
		return repo.GrantRole(ctx, viewer.UserID, database.RoleAdmin)
	}
	return nil
}

// BoardSource is where the board reads and writes: the configured server
// when remote.base_url is set, the local store otherwise
func (c *CLI) BoardSource() (kanban.Remote, error) {
	if c.Config.Remote.BaseURL == "" {
		return c.App.BoardSource(c.Viewer), nil
	}
	return c.RemoteClient()
}

// RemoteClient builds a client for the configured server
func (c *CLI) RemoteClient() (*remote.Client, error) {
	return remote.New(c.Config.Remote.BaseURL, c.Config.Remote.Token,
		remote.WithTimeout(time.Duration(c.Config.Remote.TimeoutSeconds)*time.Second))
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if c.Bus != nil {
		c.Bus.Close()
	}
	return c.App.Close()
}

type sessionKey struct{}

// session opens the CLI on first use so commands that never touch the
// store (config, token) do not create a database
type session struct {
	mu    sync.Mutex
	cfg   *config.Config
	path  string
	cli   *CLI
	err   error
	owned bool
}

// WithSession prepares ctx for GetCLIFromContext
func WithSession(ctx context.Context) context.Context {
	return context.WithValue(ctx, sessionKey{}, &session{})
}

// WithCLI attaches an open CLI; the caller keeps ownership of it
func WithCLI(ctx context.Context, c *CLI) context.Context {
	return context.WithValue(ctx, sessionKey{}, &session{cfg: c.Config, cli: c})
}

func sessionFrom(ctx context.Context) *session {
	s, _ := ctx.Value(sessionKey{}).(*session)
	return s
}

// SetConfig records the loaded configuration and the file it came from
func SetConfig(ctx context.Context, cfg *config.Config, path string) {
	if s := sessionFrom(ctx); s != nil {
		s.mu.Lock()
		s.cfg, s.path = cfg, path
		s.mu.Unlock()
	}
}

// ConfigPathFromContext returns the config file path given on the command
// line, or "" for the default location
func ConfigPathFromContext(ctx context.Context) string {
	if s := sessionFrom(ctx); s != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		return s.path
	}
	return ""
}

// ConfigFromContext returns the session configuration or the defaults
func ConfigFromContext(ctx context.Context) *config.Config {
	if s := sessionFrom(ctx); s != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.cfg != nil {
			return s.cfg
		}
	}
	return config.Default()
}

// GetCLIFromContext returns the session's CLI, opening it on first call
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	s := sessionFrom(ctx)
	if s == nil {
		return nil, ErrNotInitialized
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cli == nil && s.err == nil {
		cfg := s.cfg
		if cfg == nil {
			cfg = config.Default()
		}
		s.cli, s.err = NewCLI(ctx, cfg)
		s.owned = s.cli != nil
	}
	return s.cli, s.err
}

// CloseSession closes a CLI opened by GetCLIFromContext
func CloseSession(ctx context.Context) {
	s := sessionFrom(ctx)
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.owned && s.cli != nil {
		if err := s.cli.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
		s.cli, s.owned = nil, false
	}
}
