package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/salesboard/internal/board"
	"github.com/thenoetrevino/salesboard/internal/cli"
	"github.com/thenoetrevino/salesboard/internal/kanban"
	"github.com/thenoetrevino/salesboard/internal/tui"
)

// runBoard opens the kanban board. Against a server, moves go over HTTP and
// changes made by others arrive on the event stream.
func runBoard(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	c, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return err
	}

	var (
		source kanban.Remote
		watch  tui.WatchFunc
	)
	if c.Config.Remote.BaseURL != "" {
		client, err := c.RemoteClient()
		if err != nil {
			return err
		}
		source = client
		watch = client.Watch
	} else {
		source = c.App.BoardSource(c.Viewer)
	}

	sink := tui.Sink()
	opts := []kanban.Option{
		kanban.WithNotifier(sink),
		kanban.WithLogger(slog.Default().With("component", "board")),
	}
	if c.Config.Board.EnforceTransitions {
		opts = append(opts, kanban.WithTransitionGuard())
	}
	coord := kanban.NewCoordinator(source, board.New(c.Config.BoardColumns()), opts...)

	model := tui.New(ctx, coord, sink, tui.Options{
		Keys:  c.Config.KeyMappings,
		Watch: watch,
	})
	return tui.Run(ctx, model)
}
