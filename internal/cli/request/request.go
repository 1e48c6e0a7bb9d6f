// Package request holds the `salesboard request` commands
package request

import (
	"github.com/spf13/cobra"
)

// RequestCmd returns the request parent command
func RequestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "request",
		Aliases: []string{"req"},
		Short:   "Manage requests",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(MoveCmd())
	cmd.AddCommand(StatusCmd())
	cmd.AddCommand(AssignCmd())
	cmd.AddCommand(UnassignCmd())

	return cmd
}
