package request

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/salesboard/internal/cli"
	"github.com/thenoetrevino/salesboard/internal/models"
	"github.com/thenoetrevino/salesboard/internal/workflow"
)

// StatusCmd returns the request status subcommand
func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <request-id> <status>",
		Short: "Change the status of a request along the workflow",
		Long: `Change the status of a request. Only transitions the workflow allows are
accepted; done is final.

Examples:
  salesboard request status 3f2a "on hold"
`,
		Args: cobra.ExactArgs(2),
		RunE: runStatus,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	status, err := cli.ParseStatus(args[1])
	if err != nil {
		return formatter.Fail(err, "Valid statuses are: "+cli.StatusNames())
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}

	req, err := cliInstance.App.RequestService.ChangeStatus(ctx, args[0], status)
	if err != nil {
		return formatter.Fail(err, allowedSuggestion(cliInstance, cmd, args[0]))
	}

	return formatter.Success(req, []string{req.ID}, func(w io.Writer) {
		fmt.Fprintf(w, "✓ '%s' is now %s\n", req.Title, req.Status.Label())
	})
}

func allowedSuggestion(c *cli.CLI, cmd *cobra.Command, id string) string {
	req, err := c.App.RequestService.Get(cmd.Context(), id)
	if err != nil {
		return ""
	}
	allowed := workflow.AllowedTransitions(req.Status)
	if len(allowed) == 0 {
		return fmt.Sprintf("%s is final", req.Status.Label())
	}
	return "From " + req.Status.Label() + " you can move to: " + labels(allowed)
}

func labels(statuses []models.Status) string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = s.Label()
	}
	return strings.Join(out, ", ")
}
