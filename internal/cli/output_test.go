package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/salesboard/internal/models"
)

func newTestFormatter(jsonMode, quiet bool) (*OutputFormatter, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return &OutputFormatter{JSON: jsonMode, Quiet: quiet, Out: out, Err: errOut}, out, errOut
}

func TestSuccess_Modes(t *testing.T) {
	t.Parallel()

	data := map[string]string{"id": "r-1"}
	human := func(w io.Writer) { fmt.Fprintln(w, "created r-1") }

	t.Run("quiet prints ids", func(t *testing.T) {
		f, out, _ := newTestFormatter(false, true)
		require.NoError(t, f.Success(data, []string{"r-1", "r-2"}, human))
		assert.Equal(t, "r-1\nr-2\n", out.String())
	})

	t.Run("json wraps data", func(t *testing.T) {
		f, out, _ := newTestFormatter(true, false)
		require.NoError(t, f.Success(data, []string{"r-1"}, human))

		var got map[string]any
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.Equal(t, true, got["success"])
		assert.Equal(t, map[string]any{"id": "r-1"}, got["data"])
	})

	t.Run("quiet wins over json", func(t *testing.T) {
		f, out, _ := newTestFormatter(true, true)
		require.NoError(t, f.Success(data, []string{"r-1"}, human))
		assert.Equal(t, "r-1\n", out.String())
	})

	t.Run("human", func(t *testing.T) {
		f, out, _ := newTestFormatter(false, false)
		require.NoError(t, f.Success(data, nil, human))
		assert.Equal(t, "created r-1\n", out.String())
	})
}

func TestErrorWithSuggestion(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		f, out, errOut := newTestFormatter(true, false)
		require.NoError(t, f.ErrorWithSuggestion("NOT_FOUND", "request r-9 not found", "Run request list"))

		var got struct {
			Success bool              `json:"success"`
			Error   map[string]string `json:"error"`
		}
		require.NoError(t, json.Unmarshal(out.Bytes(), &got))
		assert.False(t, got.Success)
		assert.Equal(t, "NOT_FOUND", got.Error["code"])
		assert.Equal(t, "request r-9 not found", got.Error["message"])
		assert.Equal(t, "Run request list", got.Error["suggestion"])
		assert.Empty(t, errOut.String())
	})

	t.Run("json without suggestion", func(t *testing.T) {
		f, out, _ := newTestFormatter(true, false)
		require.NoError(t, f.Error("ERROR", "boom"))
		assert.NotContains(t, out.String(), "suggestion")
	})

	t.Run("human goes to stderr", func(t *testing.T) {
		f, out, errOut := newTestFormatter(false, false)
		require.NoError(t, f.ErrorWithSuggestion("ERROR", "boom", "try again"))
		assert.Empty(t, out.String())
		assert.Equal(t, "Error: boom\nSuggestion: try again\n", errOut.String())
	})
}

func TestFail(t *testing.T) {
	t.Parallel()

	t.Run("nil", func(t *testing.T) {
		f, _, _ := newTestFormatter(false, false)
		assert.NoError(t, f.Fail(nil, ""))
	})

	t.Run("wraps with exit code", func(t *testing.T) {
		f, out, _ := newTestFormatter(true, false)
		err := f.Fail(fmt.Errorf("request r-9: %w", models.ErrRequestNotFound), "")

		var exitErr *ExitError
		require.ErrorAs(t, err, &exitErr)
		assert.Equal(t, ExitNotFound, exitErr.Code)
		assert.ErrorIs(t, err, models.ErrRequestNotFound)
		assert.Contains(t, out.String(), `"code":"NOT_FOUND"`)
	})

	t.Run("already reported errors pass through", func(t *testing.T) {
		f, out, errOut := newTestFormatter(false, false)
		reported := &ExitError{Code: ExitConflict, Err: errors.New("clash")}

		err := f.Fail(reported, "")

		assert.Same(t, reported, err)
		assert.Empty(t, out.String())
		assert.Empty(t, errOut.String())
	})
}
