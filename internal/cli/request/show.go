package request

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/salesboard/internal/cli"
	"github.com/thenoetrevino/salesboard/internal/models"
)

// ShowCmd returns the request show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <request-id>",
		Short: "Show a request with its comments",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

type detail struct {
	Request            *models.Request   `json:"request"`
	AllowedTransitions []models.Status   `json:"allowed_transitions"`
	Comments           []*models.Comment `json:"comments"`
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}

	req, err := cliInstance.App.RequestService.Get(ctx, args[0])
	if err != nil {
		return formatter.Fail(err, "Use 'salesboard request list' to see available requests")
	}
	allowed, err := cliInstance.App.RequestService.AllowedTransitions(ctx, req.ID)
	if err != nil {
		return formatter.Fail(err, "")
	}
	threads, err := cliInstance.App.CommentService.List(ctx, cliInstance.Viewer, req.ID)
	if err != nil {
		return formatter.Fail(err, "")
	}

	d := detail{Request: req, AllowedTransitions: allowed, Comments: threads}
	return formatter.Success(d, []string{req.ID}, func(w io.Writer) {
		writeCard(w, *req, allowed, threads)
	})
}
