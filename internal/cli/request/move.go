package request

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/salesboard/internal/cli"
)

// MoveCmd returns the request move subcommand
func MoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move <request-id> <status>",
		Short: "Move a request to another column",
		Long: `Move a request to another column the way the board does: the card moves
at once and the change is then confirmed with the store. If the store
refuses, the board is reloaded and the command fails.

With board.enforce_transitions set, moves the workflow forbids are rejected.

Examples:
  salesboard request move 3f2a "on progress"
  salesboard request move 3f2a done --before 9c1d
`,
		Args: cobra.ExactArgs(2),
		RunE: runMove,
	}

	cmd.Flags().String("before", "", "Place the card before this request ID")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	beforeID, _ := cmd.Flags().GetString("before")

	status, err := cli.ParseStatus(args[1])
	if err != nil {
		return formatter.Fail(err, "Valid statuses are: "+cli.StatusNames())
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}
	source, err := cliInstance.BoardSource()
	if err != nil {
		return formatter.Fail(err, "Check remote.base_url in your config")
	}

	result, err := cli.MoveRequest(ctx, source, cliInstance.Config, args[0], status, beforeID)
	if err != nil {
		return formatter.Fail(err, "")
	}

	return formatter.Success(result, []string{result.Request.ID}, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Moved '%s' to %s\n", result.Request.Title, result.Request.Status.Label())
	})
}
