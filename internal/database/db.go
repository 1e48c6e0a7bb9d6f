// Package database handles the connection to the request store. SQLite is the
// local default; Postgres backs the shared deployment.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect selects placeholder style and column types
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// ErrUnknownDriver is returned by Open for drivers other than sqlite and postgres
var ErrUnknownDriver = errors.New("unknown database driver")

// ParseDialect maps a config driver name to a Dialect
func ParseDialect(driver string) (Dialect, error) {
	switch driver {
	case "", "sqlite", "sqlite3":
		return DialectSQLite, nil
	case "postgres", "postgresql", "pq":
		return DialectPostgres, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}

// Options controls Open
type Options struct {
	Driver string
	DSN    string
	// ConnectTimeout bounds how long Open keeps retrying the first ping
	ConnectTimeout time.Duration
}

const defaultConnectTimeout = 30 * time.Second

// DefaultSQLitePath returns ~/.salesboard/salesboard.db, creating the directory
func DefaultSQLitePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".salesboard")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}
	return filepath.Join(dir, "salesboard.db"), nil
}

func newConnectBackoff(maxElapsed time.Duration) backoff.BackOff {
	// BackOff implementations are stateful; always return a fresh instance.
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = maxElapsed
	return bo
}

// Open connects to the configured database, retrying the first ping with
// exponential backoff, and runs migrations. The caller owns Close.
func Open(ctx context.Context, opts Options) (*Repository, error) {
	dialect, err := ParseDialect(opts.Driver)
	if err != nil {
		return nil, err
	}

	dsn := opts.DSN
	if dsn == "" {
		if dialect == DialectPostgres {
			return nil, fmt.Errorf("postgres requires a dsn")
		}
		if dsn, err = DefaultSQLitePath(); err != nil {
			return nil, err
		}
	}

	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}

	var db *sql.DB
	attempt := 0
	err = backoff.Retry(func() error {
		attempt++
		conn, openErr := sql.Open(string(dialect), dsn)
		if openErr != nil {
			return backoff.Permanent(fmt.Errorf("failed to open database: %w", openErr))
		}
		if dialect == DialectSQLite {
			// SQLite benefits from a single writer connection
			conn.SetMaxOpenConns(1)
			conn.SetMaxIdleConns(1)
		}
		if pingErr := conn.PingContext(ctx); pingErr != nil {
			closeDB(conn)
			slog.Warn("database ping failed", "driver", dialect, "attempt", attempt, "error", pingErr)
			return fmt.Errorf("database ping failed: %w", pingErr)
		}
		db = conn
		return nil
	}, backoff.WithContext(newConnectBackoff(timeout), ctx))
	if err != nil {
		return nil, err
	}

	if dialect == DialectSQLite {
		if err := applyPragmas(ctx, db); err != nil {
			closeDB(db)
			return nil, err
		}
	}

	if err := runMigrations(ctx, db, dialect); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	slog.Info("database ready", "driver", dialect)
	return NewRepository(db, dialect), nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		// required for CASCADE deletions
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		// SQLite will retry for this duration
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			slog.Error("failed to apply pragma", "pragma", p, "error", err)
			return fmt.Errorf("failed to apply %q: %w", p, err)
		}
	}
	return nil
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		slog.Error("error closing db", "error", err)
	}
}
