// Package report holds the `salesboard report` command
package report

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/salesboard/internal/board"
	"github.com/thenoetrevino/salesboard/internal/cli"
	"github.com/thenoetrevino/salesboard/internal/report"
)

// Now is the report clock
var Now = time.Now

// ReportCmd returns the report command
func ReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize the board: counts, overdue and stale requests",
		Long: `Summarize the requests you can see: totals per status and type, requests
past their answer date, and open requests older than the stale threshold.

With remote.base_url set the server builds the report.

Examples:
  salesboard report
  salesboard report --stale-days 7 --raw > report.md
`,
		Args: cobra.NoArgs,
		RunE: runReport,
	}

	cmd.Flags().Int("stale-days", 0, "Stale threshold in days (default report.stale_after_days)")
	cmd.Flags().Bool("raw", false, "Print markdown instead of rendering it")
	cmd.Flags().Int("width", 100, "Wrap width of the rendered report")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	staleDays, _ := cmd.Flags().GetInt("stale-days")
	raw, _ := cmd.Flags().GetBool("raw")
	width, _ := cmd.Flags().GetInt("width")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}
	if staleDays <= 0 {
		staleDays = cliInstance.Config.Report.StaleAfterDays
	}

	var (
		data     any
		markdown string
	)
	if cliInstance.Config.Remote.BaseURL != "" {
		client, err := cliInstance.RemoteClient()
		if err != nil {
			return formatter.Fail(err, "Check remote.base_url in your config")
		}
		if markdown, err = client.Report(ctx); err != nil {
			return formatter.Fail(err, "")
		}
		data = map[string]string{"markdown": markdown}
	} else {
		requests, err := cliInstance.App.RequestService.List(ctx, cliInstance.Viewer, board.Filter{})
		if err != nil {
			return formatter.Fail(err, "")
		}
		summary := report.Build(requests, Now(), staleDays)
		markdown = report.Markdown(summary)
		data = summary
	}

	out := markdown
	if !raw {
		if out, err = report.Render(markdown, width); err != nil {
			return formatter.Fail(err, "Use --raw to print the markdown")
		}
	}
	return formatter.Success(data, nil, func(w io.Writer) {
		fmt.Fprint(w, out)
	})
}
