package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/thenoetrevino/salesboard/internal/api"
	"github.com/thenoetrevino/salesboard/internal/cli"
)

const busStatsEvery = time.Minute

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Run the JSON API the board and CLI talk to when remote.base_url is set.
Clients authenticate with bearer tokens signed with server.jwt_secret
(see 'salesboard token').`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
	cmd.Flags().String("addr", "", "Listen address (default server.addr)")
	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	c, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return err
	}
	addr, _ := cmd.Flags().GetString("addr")
	if addr != "" {
		c.Config.Server.Addr = addr
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "salesboard api listening on %s\n", c.Config.Server.Addr)
	return Serve(ctx, c)
}

// Serve runs the API over c until ctx ends
func Serve(ctx context.Context, c *cli.CLI) error {
	cfg := c.Config
	if cfg.Server.JWTSecret == "" {
		return fmt.Errorf("%w: server.jwt_secret is required", cli.ErrUsage)
	}

	srv := api.NewServer(c.App, api.Options{
		Addr:           cfg.Server.Addr,
		JWTSecret:      cfg.Server.JWTSecret,
		RateLimitRPS:   cfg.Server.RateLimitRPS,
		RateLimitBurst: cfg.Server.RateLimitBurst,
		StaleAfterDays: cfg.Report.StaleAfterDays,
		Events:         c.Bus,
		Logger:         slog.Default().With("component", "api"),
	})

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	g.Go(func() error {
		ticker := time.NewTicker(busStatsEvery)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				stats := c.Bus.Stats()
				slog.Info("event bus", "subscribers", stats.Subscribers,
					"published", stats.Published, "dropped", stats.Dropped)
			}
		}
	})
	return g.Wait()
}
