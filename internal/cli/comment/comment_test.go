package comment

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/salesboard/internal/cli"
	"github.com/thenoetrevino/salesboard/internal/models"
	commentservice "github.com/thenoetrevino/salesboard/internal/services/comment"
	"github.com/thenoetrevino/salesboard/internal/testutil"
	clitest "github.com/thenoetrevino/salesboard/internal/testutil/cli"
)

func TestAdd_ReportsMentions(t *testing.T) {
	c := clitest.SetupCLITest(t, nil)
	id := clitest.CreateTestRequest(t, c, "Taco night", models.StatusNew)

	out, err := clitest.ExecuteCLICommand(t, c, AddCmd(), []string{id, "@blake diaz can you call them?"})
	require.NoError(t, err)

	assert.Contains(t, out, "✓ Comment added")
	assert.Contains(t, out, "Mentioned: Blake Diaz")
}

func TestAdd_FromStdinJSON(t *testing.T) {
	c := clitest.SetupCLITest(t, nil)
	id := clitest.CreateTestRequest(t, c, "Taco night", models.StatusNew)

	out, err := clitest.ExecuteCLICommandWithInput(t, c, AddCmd(), []string{id, "-", "--json"}, "Booked for Friday\n")
	require.NoError(t, err)

	data := clitest.ParseData(t, out).(map[string]any)
	assert.Equal(t, "Booked for Friday", data["content"])
	assert.Empty(t, data["mentions"])
}

func TestAdd_ReplyAndList(t *testing.T) {
	c := clitest.SetupCLITest(t, nil)
	id := clitest.CreateTestRequest(t, c, "Taco night", models.StatusNew)

	parent, err := clitest.ExecuteCLICommand(t, c, AddCmd(), []string{id, "First", "--quiet"})
	require.NoError(t, err)
	parentID := strings.TrimSpace(parent)

	_, err = clitest.ExecuteCLICommand(t, c, AddCmd(), []string{id, "Reply", "--reply-to", parentID})
	require.NoError(t, err)

	out, err := clitest.ExecuteCLICommand(t, c, ListCmd(), []string{id, "--json"})
	require.NoError(t, err)

	threads := clitest.ParseData(t, out).([]any)
	require.Len(t, threads, 1)
	root := threads[0].(map[string]any)
	assert.Equal(t, "First", root["content"])
	replies := root["replies"].([]any)
	require.Len(t, replies, 1)
	assert.Equal(t, "Reply", replies[0].(map[string]any)["content"])

	out, err = clitest.ExecuteCLICommand(t, c, ListCmd(), []string{id, "--quiet"})
	require.NoError(t, err)
	assert.Len(t, strings.Fields(out), 2)
}

func TestList_Empty(t *testing.T) {
	c := clitest.SetupCLITest(t, nil)
	id := clitest.CreateTestRequest(t, c, "Taco night", models.StatusNew)

	out, err := clitest.ExecuteCLICommand(t, c, ListCmd(), []string{id})
	require.NoError(t, err)

	assert.Contains(t, out, "No comments")
}

func TestAdd_Errors(t *testing.T) {
	c := clitest.SetupCLITest(t, nil)
	id := clitest.CreateTestRequest(t, c, "Taco night", models.StatusNew)

	_, err := clitest.ExecuteCLICommand(t, c, AddCmd(), []string{id, "   "})
	assert.Equal(t, cli.ExitValidation, cli.ExitCodeFor(err))

	_, err = clitest.ExecuteCLICommand(t, c, AddCmd(), []string{"missing", "hello"})
	assert.Equal(t, cli.ExitNotFound, cli.ExitCodeFor(err))
}

func TestDelete(t *testing.T) {
	c := clitest.SetupCLITest(t, nil)
	id := clitest.CreateTestRequest(t, c, "Taco night", models.StatusNew)

	out, err := clitest.ExecuteCLICommand(t, c, AddCmd(), []string{id, "Typo", "--quiet"})
	require.NoError(t, err)
	commentID := strings.TrimSpace(out)

	out, err = clitest.ExecuteCLICommand(t, c, DeleteCmd(), []string{commentID})
	require.NoError(t, err)
	assert.Contains(t, out, "deleted")

	_, err = clitest.ExecuteCLICommand(t, c, DeleteCmd(), []string{commentID})
	assert.Equal(t, cli.ExitNotFound, cli.ExitCodeFor(err))
}

func TestDelete_SomeoneElsesComment(t *testing.T) {
	c := clitest.SetupCLITest(t, nil)
	id := clitest.CreateTestRequest(t, c, "Taco night", models.StatusNew)

	admin := models.Viewer{UserID: testutil.UserAdmin}
	theirs, err := c.App.CommentService.Create(context.Background(), admin, commentservice.CreateCommentRequest{
		RequestID: id,
		Content:   "Looks good",
	})
	require.NoError(t, err)

	out, err := clitest.ExecuteCLICommand(t, c, DeleteCmd(), []string{theirs.ID, "--json"})
	require.Error(t, err)
	assert.Equal(t, cli.ExitForbidden, cli.ExitCodeFor(err))
	assert.Equal(t, "FORBIDDEN", clitest.ParseError(t, out)["code"])
}
