package request

import (
	"io"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/salesboard/internal/api"
	"github.com/thenoetrevino/salesboard/internal/cli"
)

// ListCmd returns the request list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List requests you can see",
		Long: `List requests, newest first, optionally filtered and sorted.

Examples:
  # Everything you can see
  salesboard request list

  # Open events in a date range, oldest first
  salesboard request list --type event --status new,"on progress" \
    --from 2026-03-01 --to 2026-03-31 --sort created_at --asc

  # IDs only, for scripting
  salesboard request list --search acme --quiet
`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().StringP("search", "s", "", "Match title, company or requester")
	cmd.Flags().StringSlice("type", nil, "Request types: "+cli.TypeNames())
	cmd.Flags().StringSlice("status", nil, "Statuses: "+cli.StatusNames())
	cmd.Flags().String("from", "", "Created on or after (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "Created on or before (YYYY-MM-DD)")
	cmd.Flags().String("sort", "created_at", "Sort by created_at, updated_at, title, company or volume")
	cmd.Flags().Bool("asc", false, "Sort ascending")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	query := url.Values{}
	search, _ := cmd.Flags().GetString("search")
	types, _ := cmd.Flags().GetStringSlice("type")
	statuses, _ := cmd.Flags().GetStringSlice("status")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	sortBy, _ := cmd.Flags().GetString("sort")
	asc, _ := cmd.Flags().GetBool("asc")

	query.Set("q", search)
	query["type"] = types
	query["status"] = statuses
	query.Set("from", from)
	query.Set("to", to)
	query.Set("sort", sortBy)
	if asc {
		query.Set("dir", "asc")
	}

	filter, err := api.ParseFilter(query)
	if err != nil {
		return formatter.Fail(err, "Valid statuses are: "+cli.StatusNames())
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}

	requests, err := cliInstance.App.RequestService.List(ctx, cliInstance.Viewer, filter)
	if err != nil {
		return formatter.Fail(err, "")
	}

	return formatter.Success(requests, ids(requests), func(w io.Writer) {
		writeList(w, requests)
	})
}
