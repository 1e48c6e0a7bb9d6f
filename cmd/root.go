package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/salesboard/internal/cli"
	"github.com/thenoetrevino/salesboard/internal/cli/comment"
	"github.com/thenoetrevino/salesboard/internal/cli/directory"
	"github.com/thenoetrevino/salesboard/internal/cli/report"
	"github.com/thenoetrevino/salesboard/internal/cli/request"
	"github.com/thenoetrevino/salesboard/internal/cli/restaurant"
	"github.com/thenoetrevino/salesboard/internal/cli/setup"
	"github.com/thenoetrevino/salesboard/internal/config"
	"github.com/thenoetrevino/salesboard/internal/logging"
	"github.com/thenoetrevino/salesboard/internal/telemetry"
)

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "salesboard",
		Short: "Salesboard - a terminal kanban board for sales requests",
		Long: `Salesboard tracks restaurant, event and cuisine requests on a kanban board
whose columns are request statuses.

Run without arguments to open the board. Set remote.base_url to work
against a server started with 'salesboard serve'.`,
		Args:              cobra.NoArgs,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupSession,
		RunE:              runBoard,
	}

	root.PersistentFlags().String("config", "", "Config file (default $XDG_CONFIG_HOME/salesboard/config.yaml)")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", cli.ErrUsage, err)
	})

	root.AddCommand(request.RequestCmd())
	root.AddCommand(comment.CommentCmd())
	root.AddCommand(restaurant.RestaurantCmd())
	root.AddCommand(report.ReportCmd())
	root.AddCommand(directory.CityCmd())
	root.AddCommand(directory.MemberCmd())
	root.AddCommand(setup.ConfigCmd())
	root.AddCommand(setup.TokenCmd())
	root.AddCommand(ServeCmd())

	return root
}

// setupSession loads the config and starts logging and telemetry before
// any command runs
func setupSession(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := logging.Init(cfg.Logging.Path, cfg.Logging.Level); err != nil {
		return err
	}
	if err := telemetry.Init(telemetry.Settings{
		Enabled: cfg.Telemetry.Enabled,
		Stdout:  cfg.Telemetry.Stdout,
	}); err != nil {
		return err
	}
	cli.SetConfig(cmd.Context(), cfg, path)
	return nil
}

// Execute runs the CLI and returns the process exit code
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx = cli.WithSession(ctx)
	defer telemetry.Shutdown(context.Background())
	defer cli.CloseSession(ctx)

	err := NewRootCmd().ExecuteContext(ctx)
	if err == nil {
		return cli.ExitSuccess
	}

	var exitErr *cli.ExitError
	if !errors.As(err, &exitErr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return cli.ExitCodeFor(err)
}
