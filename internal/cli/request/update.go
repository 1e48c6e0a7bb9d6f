package request

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/salesboard/internal/cli"
	"github.com/thenoetrevino/salesboard/internal/models"
)

// UpdateCmd returns the request update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <request-id>",
		Short: "Edit fields of a request",
		Long: `Edit fields of a request. Only the flags you pass are changed.

A --status given here is written as is, like the edit form. Use
'salesboard request status' to follow the workflow instead.

Examples:
  salesboard request update 3f2a --title "Taco night (40 ppl)" --volume 40
  salesboard request update 3f2a --description - < notes.txt
`,
		Args: cobra.ExactArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().String("title", "", "New title")
	cmd.Flags().String("description", "", "New description (use - for stdin)")
	cmd.Flags().String("type", "", "New request type: "+cli.TypeNames())
	cmd.Flags().String("status", "", "New status")
	cmd.Flags().String("city", "", "New city ID")
	cmd.Flags().String("requester", "", "New requester profile ID")
	cmd.Flags().String("company", "", "New company")
	cmd.Flags().Int("volume", 0, "New head count")
	cmd.Flags().String("need-answer-by", "", "New answer deadline (YYYY-MM-DD)")
	cmd.Flags().String("delivery-date", "", "New delivery date (YYYY-MM-DD)")
	cli.AddOutputFlags(cmd)

	return cmd
}

func stringFlag(cmd *cobra.Command, name string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

func buildPatch(cmd *cobra.Command) (models.RequestPatch, error) {
	patch := models.RequestPatch{
		Title:       stringFlag(cmd, "title"),
		CityID:      stringFlag(cmd, "city"),
		RequesterID: stringFlag(cmd, "requester"),
		Company:     stringFlag(cmd, "company"),
	}

	if d := stringFlag(cmd, "description"); d != nil {
		text, err := cli.ReadText(*d, cmd.InOrStdin())
		if err != nil {
			return patch, err
		}
		patch.Description = &text
	}
	if raw := stringFlag(cmd, "type"); raw != nil {
		t, err := cli.ParseRequestType(*raw)
		if err != nil {
			return patch, err
		}
		patch.RequestType = &t
	}
	if raw := stringFlag(cmd, "status"); raw != nil {
		s := models.Status(*raw)
		patch.Status = &s
	}
	if cmd.Flags().Changed("volume") {
		v, _ := cmd.Flags().GetInt("volume")
		patch.Volume = &v
	}
	for name, dst := range map[string]**time.Time{
		"need-answer-by": &patch.NeedAnswerBy,
		"delivery-date":  &patch.DeliveryDate,
	} {
		raw := stringFlag(cmd, name)
		if raw == nil {
			continue
		}
		t, err := cli.ParseDate(*raw)
		if err != nil {
			return patch, err
		}
		*dst = t
	}
	return patch, nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	patch, err := buildPatch(cmd)
	if err != nil {
		return formatter.Fail(err, "")
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}

	req, err := cliInstance.App.RequestService.Update(ctx, args[0], patch)
	if err != nil {
		return formatter.Fail(err, "Pass at least one field flag, e.g. --title")
	}

	return formatter.Success(req, []string{req.ID}, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Request '%s' updated\n", req.Title)
	})
}
