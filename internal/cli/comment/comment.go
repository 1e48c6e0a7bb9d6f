// Package comment holds the `salesboard comment` commands
package comment

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/salesboard/internal/cli"
	"github.com/thenoetrevino/salesboard/internal/cli/request"
	"github.com/thenoetrevino/salesboard/internal/models"
	commentservice "github.com/thenoetrevino/salesboard/internal/services/comment"
)

// CommentCmd returns the comment parent command
func CommentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comment",
		Short: "Discuss requests",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(AddCmd())
	cmd.AddCommand(DeleteCmd())

	return cmd
}

// ListCmd returns the comment list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <request-id>",
		Short: "Show the comment threads of a request",
		Args:  cobra.ExactArgs(1),
		RunE:  runList,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

// AddCmd returns the comment add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <request-id> <text>",
		Short: "Comment on a request",
		Long: `Comment on a request. Team members named with @Display Name are
recorded as mentions.

Examples:
  salesboard comment add 3f2a "@Blake Diaz can you call the venue?"
  salesboard comment add 3f2a "Done, booked for 40" --reply-to 77be
  salesboard comment add 3f2a - < notes.txt
`,
		Args: cobra.ExactArgs(2),
		RunE: runAdd,
	}
	cmd.Flags().String("reply-to", "", "Parent comment ID")
	cli.AddOutputFlags(cmd)
	return cmd
}

// DeleteCmd returns the comment delete subcommand
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <comment-id>",
		Short: "Delete one of your comments",
		Args:  cobra.ExactArgs(1),
		RunE:  runDelete,
	}
	cli.AddOutputFlags(cmd)
	return cmd
}

func countThreads(threads []*models.Comment) []string {
	var ids []string
	var walk func([]*models.Comment)
	walk = func(cs []*models.Comment) {
		for _, c := range cs {
			ids = append(ids, c.ID)
			walk(c.Replies)
		}
	}
	walk(threads)
	return ids
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}
	threads, err := cliInstance.App.CommentService.List(ctx, cliInstance.Viewer, args[0])
	if err != nil {
		return formatter.Fail(err, "")
	}

	return formatter.Success(threads, countThreads(threads), func(w io.Writer) {
		if len(threads) == 0 {
			fmt.Fprintln(w, "No comments")
			return
		}
		request.WriteThreads(w, threads, 0)
	})
}

func runAdd(cmd *cobra.Command, args []string) error {
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
	c, err := cliInstance.App.CommentService.Create(ctx, cliInstance.Viewer, commentservice.CreateCommentRequest{
		RequestID:       args[0],
		ParentCommentID: parent,
		Content:         content,
	})
	if err != nil {
		return formatter.Fail(err, "")
	}

	return formatter.Success(c, []string{c.ID}, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Comment added (ID: %s)\n", c.ID)
		if len(c.Mentions) > 0 {
			names := make([]string, len(c.Mentions))
			for i, m := range c.Mentions {
				names[i] = m.UserName
			}
			fmt.Fprintf(w, "  Mentioned: %s\n", strings.Join(names, ", "))
		}
	})
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := cli.NewFormatter(cmd)

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return formatter.Fail(err, "")
	}
	if err := cliInstance.App.CommentService.Delete(ctx, cliInstance.Viewer, args[0]); err != nil {
		return formatter.Fail(err, "Only the author or an admin can delete a comment")
	}

	return formatter.Success(map[string]string{"id": args[0]}, []string{args[0]}, func(w io.Writer) {
		fmt.Fprintf(w, "✓ Comment %s deleted\n", args[0])
	})
}
