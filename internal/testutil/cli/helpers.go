package cli

import (
	"testing"

	"github.com/thenoetrevino/salesboard/internal/testutil"
)

// ParseData parses a successful JSON response and returns its data field
func ParseData(t *testing.T, output string) any {
	t.Helper()

	result := testutil.ParseJSON(t, output)
	if ok, _ := result["success"].(bool); !ok {
		t.Fatalf("Expected success=true in JSON output, got: %s", output)
	}
	return result["data"]
}

// ParseError parses a failed JSON response and returns its error object
func ParseError(t *testing.T, output string) map[string]any {
	t.Helper()

	result := testutil.ParseJSON(t, output)
	if ok, _ := result["success"].(bool); ok {
		t.Fatalf("Expected success=false in JSON output, got: %s", output)
	}
	errData, _ := result["error"].(map[string]any)
	return errData
}
