package restaurant

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/salesboard/internal/cli"
	"github.com/thenoetrevino/salesboard/internal/cli/request"
	"github.com/thenoetrevino/salesboard/internal/models"
	restaurantservice "github.com/thenoetrevino/salesboard/internal/services/restaurant"
)

// CommentCmd returns the restaurant comment command group
func CommentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Discuss restaurants",
	}

	list := &cobra.Command{
		Use:   "list <restaurant-id>",
		Short: "Show the comment threads of a restaurant",
		Args:  cobra.ExactArgs(1),
		RunE:  runCommentList,
	}
	cli.AddOutputFlags(list)

	add := &cobra.Command{
		Use:   "add <restaurant-id> <text>",
		Short: "Comment on a restaurant",
		Long: `Comment on a restaurant. Team members named with @Display Name are
recorded as mentions.

Examples:
  salesboard restaurant comment add 3f2a "@Blake Diaz owner is back Monday"
  salesboard restaurant comment add 3f2a "Called, left a voicemail" --reply-to 77be
`,
		Args: cobra.ExactArgs(2),
		RunE: runCommentAdd,
	}
	add.Flags().String("reply-to", "", "Parent comment ID")
	cli.AddOutputFlags(add)

	edit := &cobra.Command{
		Use:   "edit <comment-id> <text>",
		Short: "Rewrite one of your comments",
		Args:  cobra.ExactArgs(2),
		RunE:  runCommentEdit,
	}
	cli.AddOutputFlags(edit)

	del := &cobra.Command{
		Use:   "delete <comment-id>",
		Short: "Delete one of your comments",
		Args:  cobra.ExactArgs(1),
		RunE:  runCommentDelete,
	}
	cli.AddOutputFlags(del)

	cmd.AddCommand(list, add, edit, del)
	return cmd
}

func commentIDs(threads []*models.Comment) []string {
	var out []string
	for _, c := range threads {
		out = append(out, c.ID)
		out = append(out, commentIDs(c.Replies)...)
	}
	return out
}

func runCommentList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}
	threads, err := cliInstance.App.RestaurantService.ListComments(ctx, args[0])
	if err != nil {
		return formatter.Fail(err, "")
	}

	return formatter.Success(threads, commentIDs(threads), func(w io.Writer) {
		if len(threads) == 0 {
			fmt.Fprintln(w, "No comments")
			return
		}
		request.WriteThreads(w, threads, 0)
	})
}

func runCommentAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)
	parent, _ := cmd.Flags().GetString("reply-to")

	content, err := cli.ReadText(args[1], cmd.InOrStdin())
	if err != nil {
		return formatter.Fail(err, "")
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}
	c, err := cliInstance.App.RestaurantService.AddComment(ctx, cliInstance.Viewer, restaurantservice.AddComment{
		RestaurantID:    args[0],
		ParentCommentID: parent,
		Content:         content,
	})
	if err != nil {
		return formatter.Fail(err, "")
	}

	return formatter.Success(c, []string{c.ID}, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Comment added (ID: %s)\n", c.ID)
	})
}

func runCommentEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	content, err := cli.ReadText(args[1], cmd.InOrStdin())
	if err != nil {
		return formatter.Fail(err, "")
	}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}
	c, err := cliInstance.App.RestaurantService.EditComment(ctx, cliInstance.Viewer, args[0], content)
	if err != nil {
		return formatter.Fail(err, "Only the author can edit a comment")
	}

	return formatter.Success(c, []string{c.ID}, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Comment %s updated\n", c.ID)
	})
}

func runCommentDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}
	if err := cliInstance.App.RestaurantService.DeleteComment(ctx, cliInstance.Viewer, args[0]); err != nil {
		return formatter.Fail(err, "Only the author or an admin can delete a comment")
	}

	return formatter.Success(map[string]string{"id": args[0]}, []string{args[0]}, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Comment %s deleted\n", args[0])
	})
}
