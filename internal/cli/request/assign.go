package request

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/salesboard/internal/cli"
)

type assignment struct {
	RequestID string `json:"request_id"`
	UserID    string `json:"user_id"`
}

// AssignCmd returns the request assign subcommand
func AssignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign <request-id> <user-id>",
		Short: "Assign a BDR to a request",
		Args:  cobra.ExactArgs(2),
		RunE:  runAssign,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

// UnassignCmd returns the request unassign subcommand
func UnassignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unassign <request-id> <user-id>",
		Short: "Remove a BDR from a request",
		Args:  cobra.ExactArgs(2),
		RunE:  runUnassign,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runAssign(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}
	if err := cliInstance.App.RequestService.AssignBDR(ctx, args[0], args[1]); err != nil {
		return formatter.Fail(err, "Use 'salesboard member list' to see profile IDs")
	}

	a := assignment{RequestID: args[0], UserID: args[1]}
	return formatter.Success(a, []string{a.RequestID}, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Assigned %s to request %s\n", a.UserID, a.RequestID)
	})
}

func runUnassign(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}
	if err := cliInstance.App.RequestService.UnassignBDR(ctx, args[0], args[1]); err != nil {
		return formatter.Fail(err, "")
	}

	a := assignment{RequestID: args[0], UserID: args[1]}
	return formatter.Success(a, []string{a.RequestID}, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Removed %s from request %s\n", a.UserID, a.RequestID)
	})
}
