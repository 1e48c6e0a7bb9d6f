// Package config loads salesboard settings from a YAML file with
// SALESBOARD_* environment overrides
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thenoetrevino/salesboard/internal/models"
	"github.com/thenoetrevino/salesboard/internal/user"
)

// EnvPrefix is prepended to every environment override, e.g.
// SALESBOARD_DATABASE_DSN for database.dsn
const EnvPrefix = "SALESBOARD"

// Config represents the application configuration
type Config struct {
	Database    DatabaseConfig  `yaml:"database" mapstructure:"database"`
	Server      ServerConfig    `yaml:"server" mapstructure:"server"`
	Remote      RemoteConfig    `yaml:"remote" mapstructure:"remote"`
	Identity    IdentityConfig  `yaml:"identity" mapstructure:"identity"`
	Board       BoardConfig     `yaml:"board" mapstructure:"board"`
	Logging     LoggingConfig   `yaml:"logging" mapstructure:"logging"`
	Telemetry   TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
	Report      ReportConfig    `yaml:"report" mapstructure:"report"`
	KeyMappings KeyMappings     `yaml:"key_mappings" mapstructure:"key_mappings"`
}

// DatabaseConfig selects the store
type DatabaseConfig struct {
	Driver                string `yaml:"driver" mapstructure:"driver"` // sqlite or postgres
	DSN                   string `yaml:"dsn" mapstructure:"dsn"`       // empty sqlite dsn = ~/.salesboard/salesboard.db
	ConnectTimeoutSeconds int    `yaml:"connect_timeout_seconds" mapstructure:"connect_timeout_seconds"`
}

// ServerConfig drives `salesboard serve`
type ServerConfig struct {
	Addr           string  `yaml:"addr" mapstructure:"addr"`
	JWTSecret      string  `yaml:"jwt_secret" mapstructure:"jwt_secret"`
	RateLimitRPS   float64 `yaml:"rate_limit_rps" mapstructure:"rate_limit_rps"`
	RateLimitBurst int     `yaml:"rate_limit_burst" mapstructure:"rate_limit_burst"`
}

// RemoteConfig points the board and CLI at a running server.
// An empty BaseURL means work against the local database.
type RemoteConfig struct {
	BaseURL        string `yaml:"base_url" mapstructure:"base_url"`
	Token          string `yaml:"token" mapstructure:"token"`
	TimeoutSeconds int    `yaml:"timeout_seconds" mapstructure:"timeout_seconds"`
}

// IdentityConfig is who the local user is when no token is involved
type IdentityConfig struct {
	UserID string `yaml:"user_id" mapstructure:"user_id"`
	Admin  bool   `yaml:"admin" mapstructure:"admin"`
}

// BoardConfig controls the kanban view
type BoardConfig struct {
	Columns            []string `yaml:"columns" mapstructure:"columns"`
	EnforceTransitions bool     `yaml:"enforce_transitions" mapstructure:"enforce_transitions"`
}

// LoggingConfig controls the log file
type LoggingConfig struct {
	Path  string `yaml:"path" mapstructure:"path"` // empty = ~/.salesboard/logs/salesboard.log
	Level string `yaml:"level" mapstructure:"level"`
}

// TelemetryConfig toggles OpenTelemetry metrics
type TelemetryConfig struct {
	Enabled bool `yaml:"enabled" mapstructure:"enabled"`
	Stdout  bool `yaml:"stdout" mapstructure:"stdout"`
}

// ReportConfig tunes the status report
type ReportConfig struct {
	StaleAfterDays int `yaml:"stale_after_days" mapstructure:"stale_after_days"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Driver: "sqlite", ConnectTimeoutSeconds: 30},
		Server:   ServerConfig{Addr: ":8080", RateLimitRPS: 10, RateLimitBurst: 20},
		Remote:   RemoteConfig{TimeoutSeconds: 10},
		Identity: IdentityConfig{UserID: user.Username()},
		Board: BoardConfig{
			Columns: []string{"new", "on progress", "on hold", "done"},
		},
		Logging:     LoggingConfig{Level: "info"},
		Report:      ReportConfig{StaleAfterDays: models.DefaultStaleAfterDays},
		KeyMappings: DefaultKeyMappings(),
	}
}

// setDefaults registers every key so AutomaticEnv can override it
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("database.driver", d.Database.Driver)
	v.SetDefault("database.dsn", d.Database.DSN)
	v.SetDefault("database.connect_timeout_seconds", d.Database.ConnectTimeoutSeconds)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.jwt_secret", d.Server.JWTSecret)
	v.SetDefault("server.rate_limit_rps", d.Server.RateLimitRPS)
	v.SetDefault("server.rate_limit_burst", d.Server.RateLimitBurst)
	v.SetDefault("remote.base_url", d.Remote.BaseURL)
	v.SetDefault("remote.token", d.Remote.Token)
	v.SetDefault("remote.timeout_seconds", d.Remote.TimeoutSeconds)
	v.SetDefault("identity.user_id", d.Identity.UserID)
	v.SetDefault("identity.admin", d.Identity.Admin)
	v.SetDefault("board.columns", d.Board.Columns)
	v.SetDefault("board.enforce_transitions", d.Board.EnforceTransitions)
	v.SetDefault("logging.path", d.Logging.Path)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("telemetry.enabled", d.Telemetry.Enabled)
	v.SetDefault("telemetry.stdout", d.Telemetry.Stdout)
	v.SetDefault("report.stale_after_days", d.Report.StaleAfterDays)
}

// Load reads the config at path, or at DefaultPath when path is empty.
// A missing file yields the defaults; environment overrides always apply.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat config: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the config to path, or to DefaultPath when path is empty
func (c *Config) Save(path string) error {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	// Create config directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// DefaultPath returns the path to the config file
func DefaultPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "salesboard", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "salesboard", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	d := Default()
	if c.Database.Driver == "" {
		c.Database.Driver = d.Database.Driver
	}
	if c.Database.ConnectTimeoutSeconds <= 0 {
		c.Database.ConnectTimeoutSeconds = d.Database.ConnectTimeoutSeconds
	}
	if c.Server.Addr == "" {
		c.Server.Addr = d.Server.Addr
	}
	if c.Server.RateLimitRPS <= 0 {
		c.Server.RateLimitRPS = d.Server.RateLimitRPS
	}
	if c.Server.RateLimitBurst <= 0 {
		c.Server.RateLimitBurst = d.Server.RateLimitBurst
	}
	if c.Remote.TimeoutSeconds <= 0 {
		c.Remote.TimeoutSeconds = d.Remote.TimeoutSeconds
	}
	if c.Identity.UserID == "" {
		c.Identity.UserID = d.Identity.UserID
	}
	if c.Logging.Level == "" {
		c.Logging.Level = d.Logging.Level
	}
	if c.Report.StaleAfterDays <= 0 {
		c.Report.StaleAfterDays = d.Report.StaleAfterDays
	}
	c.KeyMappings.applyDefaults()
}

// BoardColumns parses the configured column order. Unknown or repeated
// names are skipped; an empty result falls back to every status.
func (c *Config) BoardColumns() []models.Status {
	seen := make(map[models.Status]bool)
	var cols []models.Status
	for _, raw := range c.Board.Columns {
		s, ok := models.ParseStatus(raw)
		if !ok || seen[s] {
			continue
		}
		seen[s] = true
		cols = append(cols, s)
	}
	if len(cols) == 0 {
		return append([]models.Status(nil), models.BoardStatuses...)
	}
	return cols
}

// Viewer is the identity used for local, token-less access
func (c *Config) Viewer() models.Viewer {
	return models.Viewer{UserID: c.Identity.UserID, IsSuperAdmin: c.Identity.Admin}
}
