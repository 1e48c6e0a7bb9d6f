package request

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/salesboard/internal/cli"
	"github.com/thenoetrevino/salesboard/internal/models"
	requestservice "github.com/thenoetrevino/salesboard/internal/services/request"
)

// CreateCmd returns the request create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new request",
		Long: `Create a new request. It starts in the New column unless --status says otherwise.

Examples:
  # Minimal request
  salesboard request create --title "Taco night" --type event --city austin

  # Capture the new ID
  ID=$(salesboard request create --title "Best pho" --type cuisine --city austin --quiet)

  # On behalf of someone else, description from stdin
  echo "Team of 40" | salesboard request create --title "Offsite" --type event \
    --city austin --requester u-dana --volume 40 --need-answer-by 2026-04-01 --description -
`,
		Args: cobra.NoArgs,
		RunE: runCreate,
	}

	// Required flags
	cmd.Flags().String("title", "", "Request title (required)")
	cmd.Flags().String("type", "", "Request type: "+cli.TypeNames()+" (required)")
	cmd.Flags().String("city", "", "City ID (required)")
	for _, name := range []string{"title", "type", "city"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			slog.Error("failed to mark flag as required", "flag", name, "error", err)
		}
	}

	// Optional flags
	cmd.Flags().String("description", "", "Description (use - for stdin)")
	cmd.Flags().String("status", "", "Initial status: "+cli.StatusNames())
	cmd.Flags().String("requester", "", "Requester profile ID (defaults to you)")
	cmd.Flags().String("company", "", "Client company")
	cmd.Flags().Int("volume", 0, "Expected head count")
	cmd.Flags().String("need-answer-by", "", "Answer deadline (YYYY-MM-DD)")
	cmd.Flags().String("delivery-date", "", "Delivery date (YYYY-MM-DD)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	title, _ := cmd.Flags().GetString("title")
	rawType, _ := cmd.Flags().GetString("type")
	city, _ := cmd.Flags().GetString("city")
	description, _ := cmd.Flags().GetString("description")
	status, _ := cmd.Flags().GetString("status")
	requester, _ := cmd.Flags().GetString("requester")
	company, _ := cmd.Flags().GetString("company")
	answerBy, _ := cmd.Flags().GetString("need-answer-by")
	delivery, _ := cmd.Flags().GetString("delivery-date")

	requestType, err := cli.ParseRequestType(rawType)
	if err != nil {
		return formatter.Fail(err, "Valid types are: "+cli.TypeNames())
	}
	description, err = cli.ReadText(description, cmd.InOrStdin())
	if err != nil {
		return formatter.Fail(err, "")
	}

	in := requestservice.CreateRequest{
		Title:       title,
		Description: description,
		RequestType: requestType,
		Status:      models.Status(status),
		CityID:      city,
		RequesterID: requester,
		Company:     company,
	}
	if cmd.Flags().Changed("volume") {
		v, _ := cmd.Flags().GetInt("volume")
		in.Volume = &v
	}
	if in.NeedAnswerBy, err = cli.ParseDate(answerBy); err != nil {
		return formatter.Fail(err, "")
	}
	if in.DeliveryDate, err = cli.ParseDate(delivery); err != nil {
		return formatter.Fail(err, "")
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}
	in.CreatedBy = cliInstance.Viewer.UserID

	req, err := cliInstance.App.RequestService.Create(ctx, in)
	if err != nil {
		return formatter.Fail(err, "")
	}

	return formatter.Success(req, []string{req.ID}, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Request '%s' created (ID: %s)\n", req.Title, req.ID)
		fmt.Fprintf(w, "  Status: %s\n", req.Status.Label())
		fmt.Fprintf(w, "  City: %s\n", req.CityLabel())
	})
}
