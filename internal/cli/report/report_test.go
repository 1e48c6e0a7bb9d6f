package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/salesboard/internal/models"
	clitest "github.com/thenoetrevino/salesboard/internal/testutil/cli"
)

func freezeNow(t *testing.T, at time.Time) {
	t.Helper()
	prev := Now
	Now = func() time.Time { return at }
	t.Cleanup(func() { Now = prev })
}

func TestReport_RawMarkdown(t *testing.T) {
	c := clitest.SetupCLITest(t, nil)
	clitest.CreateTestRequest(t, c, "Taco night", models.StatusNew)
	clitest.CreateTestRequest(t, c, "Steakhouse", models.StatusDone)
	freezeNow(t, time.Now().Add(30*24*time.Hour))

	out, err := clitest.ExecuteCLICommand(t, c, ReportCmd(), []string{"--raw", "--stale-days", "7"})
	require.NoError(t, err)

	assert.Contains(t, out, "# Request board report")
	assert.Contains(t, out, "**2** requests in total.")
	assert.Contains(t, out, "| New | 1 |")
	assert.Contains(t, out, "| Done | 1 |")
	assert.Contains(t, out, "## Stale, older than 7 days (1)")
	assert.Contains(t, out, "Taco night")
	assert.NotContains(t, out, "Steakhouse**")
}

func TestReport_JSON(t *testing.T) {
	c := clitest.SetupCLITest(t, nil)
	clitest.CreateTestRequest(t, c, "Taco night", models.StatusOnHold)
	freezeNow(t, time.Now())

	out, err := clitest.ExecuteCLICommand(t, c, ReportCmd(), []string{"--json"})
	require.NoError(t, err)

	data := clitest.ParseData(t, out).(map[string]any)
	assert.EqualValues(t, 1, data["Total"])
	assert.EqualValues(t, models.DefaultStaleAfterDays, data["StaleAfterDays"])
	assert.Empty(t, data["Stale"])
}

func TestReport_Rendered(t *testing.T) {
	c := clitest.SetupCLITest(t, nil)
	clitest.CreateTestRequest(t, c, "Taco night", models.StatusNew)

	out, err := clitest.ExecuteCLICommand(t, c, ReportCmd(), []string{"--width", "80"})
	require.NoError(t, err)

	assert.Contains(t, out, "Request board report")
}
