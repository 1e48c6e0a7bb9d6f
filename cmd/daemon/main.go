// Command daemon runs the salesboard API without the interactive CLI, for
// service managers such as systemd
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/thenoetrevino/salesboard/cmd"
	"github.com/thenoetrevino/salesboard/internal/cli"
	"github.com/thenoetrevino/salesboard/internal/config"
	"github.com/thenoetrevino/salesboard/internal/logging"
	"github.com/thenoetrevino/salesboard/internal/telemetry"
)

func main() {
	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	cfg, err := config.Load(os.Getenv("SALESBOARD_CONFIG"))
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(cli.ExitGeneral)
	}
	if err := logging.Init(cfg.Logging.Path, cfg.Logging.Level); err != nil {
		slog.Error("failed to initialize logging", "error", err)
		os.Exit(cli.ExitGeneral)
	}
	if err := telemetry.Init(telemetry.Settings{Enabled: cfg.Telemetry.Enabled, Stdout: cfg.Telemetry.Stdout}); err != nil {
		slog.Error("failed to initialize telemetry", "error", err)
		os.Exit(cli.ExitGeneral)
	}
	defer telemetry.Shutdown(context.Background())

	c, err := cli.NewCLI(ctx, cfg)
	if err != nil {
		slog.Error("failed to open store", "error", err)
		os.Exit(cli.ExitGeneral)
	}

	slog.Info("salesboard daemon starting", "addr", cfg.Server.Addr, "pid", os.Getpid())

	// Blocks until shutdown
	serveErr := cmd.Serve(ctx, c)
	if err := c.Close(); err != nil {
		slog.Error("failed to close store", "error", err)
	}
	if serveErr != nil {
		slog.Error("daemon error", "error", serveErr)
		os.Exit(cli.ExitCodeFor(serveErr))
	}

	slog.Info("salesboard daemon shutting down gracefully")
}
