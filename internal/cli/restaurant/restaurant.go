// Package restaurant holds the `salesboard restaurant` commands
package restaurant

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/salesboard/internal/cli"
	"github.com/thenoetrevino/salesboard/internal/models"
	restaurantservice "github.com/thenoetrevino/salesboard/internal/services/restaurant"
)

// RestaurantCmd returns the restaurant parent command
func RestaurantCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "restaurant",
		Aliases: []string{"rest"},
		Short:   "Manage restaurants the BDR team onboards",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ShowCmd())
	cmd.AddCommand(CreateCmd())
	cmd.AddCommand(UpdateCmd())
	cmd.AddCommand(StatusCmd())
	cmd.AddCommand(DeleteCmd())
	cmd.AddCommand(AssignCmd())
	cmd.AddCommand(UnassignCmd())
	cmd.AddCommand(CommentCmd())

	return cmd
}

// ListCmd returns the restaurant list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List restaurants, newest first",
		Long: `List restaurants, newest first.

Examples:
  salesboard restaurant list --status new,"on progress" --city austin
  salesboard restaurant list --search taco --quiet
`,
		Args: cobra.NoArgs,
		RunE: runList,
	}

	cmd.Flags().StringP("search", "s", "", "Match name, description or city")
	cmd.Flags().StringSlice("status", nil, "Statuses: "+cli.StatusNames())
	cmd.Flags().String("city", "", "City ID")
	cli.AddOutputFlags(cmd)

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	search, _ := cmd.Flags().GetString("search")
	city, _ := cmd.Flags().GetString("city")
	raw, _ := cmd.Flags().GetStringSlice("status")

	filter := restaurantservice.Filter{Search: search, CityID: city}
	for _, r := range raw {
		status, err := cli.ParseStatus(r)
		if err != nil {
			return formatter.Fail(err, "Valid statuses are: "+cli.StatusNames())
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}

	restaurants, err := cliInstance.App.RestaurantService.List(ctx, filter)
	if err != nil {
		return formatter.Fail(err, "")
	}

	return formatter.Success(restaurants, ids(restaurants), func(w io.Writer) {
		writeList(w, restaurants)
	})
}

// ShowCmd returns the restaurant show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <restaurant-id>",
		Short: "Show a restaurant with its comments",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

type detail struct {
	Restaurant *models.Restaurant `json:"restaurant"`
	Comments   []*models.Comment  `json:"comments"`
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}

	r, err := cliInstance.App.RestaurantService.Get(ctx, args[0])
	if err != nil {
		return formatter.Fail(err, "Use 'salesboard restaurant list' to see available restaurants")
	}
	threads, err := cliInstance.App.RestaurantService.ListComments(ctx, r.ID)
	if err != nil {
		return formatter.Fail(err, "")
	}

	d := detail{Restaurant: r, Comments: threads}
	return formatter.Success(d, []string{r.ID}, func(w io.Writer) {
		writeCard(w, *r, threads)
	})
}

// CreateCmd returns the restaurant create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a restaurant",
		Long: `Add a restaurant in status new.

Examples:
  salesboard restaurant create --name "Taco Stand" --city austin
  salesboard restaurant create --name "Pho 88" --city austin --bdr u-bdr --target 6
`,
		Args: cobra.NoArgs,
		RunE: runCreate,
	}

	cmd.Flags().String("name", "", "Restaurant name (required)")
	cmd.Flags().String("city", "", "City ID (required)")
	cmd.Flags().String("description", "", "Description (use - for stdin)")
	cmd.Flags().Int("target", 0, fmt.Sprintf("BDR touches per week (default %d)", models.DefaultBDRTargetPerWeek))
	cmd.Flags().String("bdr", "", "Profile ID of the BDR to assign")
	for _, name := range []string{"name", "city"} {
		if err := cmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}
	cli.AddOutputFlags(cmd)

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	name, _ := cmd.Flags().GetString("name")
	city, _ := cmd.Flags().GetString("city")
	description, _ := cmd.Flags().GetString("description")
	target, _ := cmd.Flags().GetInt("target")
	bdr, _ := cmd.Flags().GetString("bdr")

	description, err := cli.ReadText(description, cmd.InOrStdin())
	if err != nil {
		return formatter.Fail(err, "")
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}

	r, err := cliInstance.App.RestaurantService.Create(ctx, restaurantservice.CreateRestaurant{
		Name:             name,
		Description:      description,
		CityID:           city,
		CreatedBy:        cliInstance.Viewer.UserID,
		BDRTargetPerWeek: target,
		AssignedBDRID:    bdr,
	})
	if err != nil {
		return formatter.Fail(err, "Use 'salesboard city list' to see city IDs")
	}

	return formatter.Success(r, []string{r.ID}, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Restaurant '%s' created (ID: %s)\n", r.Name, r.ID)
	})
}

// UpdateCmd returns the restaurant update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <restaurant-id>",
		Short: "Edit fields of a restaurant",
		Long: `Edit fields of a restaurant. Only the flags you pass are changed.

Examples:
  salesboard restaurant update 3f2a --name "Taco Stand East" --target 5
`,
		Args: cobra.ExactArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().String("name", "", "New name")
	cmd.Flags().String("description", "", "New description (use - for stdin)")
	cmd.Flags().String("status", "", "New status")
	cmd.Flags().String("city", "", "New city ID")
	cmd.Flags().Int("target", 0, "New BDR touches per week")
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

func buildPatch(cmd *cobra.Command) (models.RestaurantPatch, error) {
	patch := models.RestaurantPatch{
		Name:   stringFlag(cmd, "name"),
		CityID: stringFlag(cmd, "city"),
	}
	if d := stringFlag(cmd, "description"); d != nil {
		text, err := cli.ReadText(*d, cmd.InOrStdin())
		if err != nil {
			return patch, err
		}
		patch.Description = &text
	}
	if raw := stringFlag(cmd, "status"); raw != nil {
		s := models.Status(*raw)
		patch.Status = &s
	}
	if cmd.Flags().Changed("target") {
		v, _ := cmd.Flags().GetInt("target")
		patch.BDRTargetPerWeek = &v
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

	r, err := cliInstance.App.RestaurantService.Update(ctx, args[0], patch)
	if err != nil {
		return formatter.Fail(err, "Pass at least one field flag, e.g. --name")
	}

	return formatter.Success(r, []string{r.ID}, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Restaurant '%s' updated\n", r.Name)
	})
}

// StatusCmd returns the restaurant status subcommand
func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <restaurant-id> <status>",
		Short: "Move a restaurant to any status",
		Args:  cobra.ExactArgs(2),
		RunE:  runStatus,
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

	r, err := cliInstance.App.RestaurantService.SetStatus(ctx, args[0], status)
	if err != nil {
		return formatter.Fail(err, "")
	}

	return formatter.Success(r, []string{r.ID}, func(w io.Writer) {
		fmt.Fprintf(w, "✓ '%s' is now %s\n", r.Name, r.Status.Label())
	})
}

// DeleteCmd returns the restaurant delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <restaurant-id>",
		Short: "Remove a restaurant from every listing",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}
	if err := cliInstance.App.RestaurantService.Delete(ctx, args[0]); err != nil {
		return formatter.Fail(err, "")
	}

	return formatter.Success(map[string]string{"id": args[0]}, []string{args[0]}, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Restaurant %s deleted\n", args[0])
	})
}

type assignment struct {
	RestaurantID string `json:"restaurant_id"`
	UserID       string `json:"user_id"`
}

// AssignCmd returns the restaurant assign subcommand
func AssignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign <restaurant-id> <user-id>",
		Short: "Assign a BDR to a restaurant",
		Args:  cobra.ExactArgs(2),
		RunE:  runAssign,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

// UnassignCmd returns the restaurant unassign subcommand
func UnassignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "unassign <restaurant-id> <user-id>",
		Short: "Remove a BDR from a restaurant",
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
	if err := cliInstance.App.RestaurantService.AssignBDR(ctx, args[0], args[1]); err != nil {
		return formatter.Fail(err, "Use 'salesboard member list' to see profile IDs")
	}

	a := assignment{RestaurantID: args[0], UserID: args[1]}
	return formatter.Success(a, []string{a.RestaurantID}, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Assigned %s to restaurant %s\n", a.UserID, a.RestaurantID)
	})
}

func runUnassign(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}
	if err := cliInstance.App.RestaurantService.UnassignBDR(ctx, args[0], args[1]); err != nil {
		return formatter.Fail(err, "")
	}

	a := assignment{RestaurantID: args[0], UserID: args[1]}
	return formatter.Success(a, []string{a.RestaurantID}, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Removed %s from restaurant %s\n", a.UserID, a.RestaurantID)
	})
}
