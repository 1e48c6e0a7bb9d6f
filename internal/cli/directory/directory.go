// Package directory holds the commands that manage cities and team members
package directory

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/salesboard/internal/cli"
	"github.com/thenoetrevino/salesboard/internal/database"
	"github.com/thenoetrevino/salesboard/internal/models"
)

// CityCmd returns the city parent command
func CityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "city",
		Short: "Manage the cities requests are filed under",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List cities",
		Args:  cobra.NoArgs,
		RunE:  runCityList,
	}
	cli.AddOutputFlags(list)

	add := &cobra.Command{
		Use:   "add <city-id> <name>",
		Short: "Add or rename a city",
		Long: `Add or rename a city.

Examples:
  salesboard city add austin Austin --state TX
`,
		Args: cobra.ExactArgs(2),
		RunE: runCityAdd,
	}
	add.Flags().String("state", "", "Two letter state code")
	cli.AddOutputFlags(add)

	cmd.AddCommand(list, add)
	return cmd
}

// MemberCmd returns the member parent command
func MemberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage team member profiles",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List team members",
		Args:  cobra.NoArgs,
		RunE:  runMemberList,
	}
	cli.AddOutputFlags(list)

	add := &cobra.Command{
		Use:   "add <user-id> <display-name>",
		Short: "Add or rename a team member",
		Long: `Add or rename a team member. The display name is what @mentions match.

Examples:
  salesboard member add u-blake "Blake Diaz" --email blake@example.com
  salesboard member add u-casey "Casey Admin" --admin
`,
		Args: cobra.ExactArgs(2),
		RunE: runMemberAdd,
	}
	add.Flags().String("email", "", "Email address")
	add.Flags().Bool("admin", false, "Grant the admin role")
	cli.AddOutputFlags(add)

	cmd.AddCommand(list, add)
	return cmd
}

func runCityList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}
	cities, err := cliInstance.App.Repo().ListCities(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}

	ids := make([]string, len(cities))
	for i, c := range cities {
		ids[i] = c.ID
	}
	return formatter.Success(cities, ids, func(w io.Writer) {
		if len(cities) == 0 {
			fmt.Fprintln(w, "No cities. Add one with 'salesboard city add'")
			return
		}
		for _, c := range cities {
			label := models.Request{CityName: c.Name, CityState: c.StateCode}.CityLabel()
			fmt.Fprintf(w, "  %-16s %s\n", c.ID, label)
		}
	})
}

func runCityAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	state, _ := cmd.Flags().GetString("state")

	city := models.City{
		ID:        strings.TrimSpace(args[0]),
		Name:      strings.TrimSpace(args[1]),
		StateCode: strings.ToUpper(strings.TrimSpace(state)),
	}
	if city.ID == "" || city.Name == "" {
		return formatter.Fail(fmt.Errorf("%w: city id and name are required", cli.ErrUsage), "")
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}
	if err := cliInstance.App.Repo().UpsertCity(ctx, city); err != nil {
		return formatter.Fail(err, "")
	}

	slog.Info("city saved", "city_id", city.ID)
	return formatter.Success(city, []string{city.ID}, func(w io.Writer) {
		fmt.Fprintf(w, "✓ City %s saved\n", city.ID)
	})
}

func runMemberList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}
	members, err := cliInstance.App.Repo().ListTeamMembers(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}

	ids := make([]string, len(members))
	for i, m := range members {
		ids[i] = m.ID
	}
	return formatter.Success(members, ids, func(w io.Writer) {
		for _, m := range members {
			fmt.Fprintf(w, "  %-16s %s\n", m.ID, m.DisplayName)
		}
	})
}

func runMemberAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	email, _ := cmd.Flags().GetString("email")
	admin, _ := cmd.Flags().GetBool("admin")

	member := models.TeamMember{
		ID:          strings.TrimSpace(args[0]),
		DisplayName: strings.TrimSpace(args[1]),
		Email:       strings.TrimSpace(email),
	}
	if member.ID == "" || member.DisplayName == "" {
		return formatter.Fail(fmt.Errorf("%w: user id and display name are required", cli.ErrUsage), "")
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}
	repo := cliInstance.App.Repo()
	if err := repo.UpsertProfile(ctx, member); err != nil {
		return formatter.Fail(err, "")
	}
	if admin {
		if err := repo.GrantRole(ctx, member.ID, database.RoleAdmin); err != nil {
			return formatter.Fail(err, "")
		}
	}

	return formatter.Success(member, []string{member.ID}, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Member %s saved\n", member.DisplayName)
	})
}
