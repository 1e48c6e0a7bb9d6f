package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/salesboard/internal/kanban"
	"github.com/thenoetrevino/salesboard/internal/tui/components"
	"github.com/thenoetrevino/salesboard/internal/tui/notifications"
	"github.com/thenoetrevino/salesboard/internal/tui/theme"
)

const (
	defaultColumnWidth = 32
	minColumnWidth     = 24
	defaultBoardHeight = 30
	chromeHeight       = 3 // header, status line, help
)

var (
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Pending))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle))
)

// View implements tea.Model
func (m *Model) View() string {
	snap := m.coord.Snapshot()

	header := components.TitleStyle.Render("Salesboard") +
		statusStyle.Render(fmt.Sprintf("  %d requests", len(snap.Requests)))
	if m.reloading {
		header += "  " + m.spinner.View() + statusStyle.Render(" loading")
	}

	width := defaultColumnWidth
	if n := len(snap.Columns); n > 0 && m.width > 0 {
		width = max(m.width/n, minColumnWidth)
	}
	height := defaultBoardHeight
	if m.height > 0 {
		height = max(m.height-chromeHeight, components.CardHeight+4)
	}

	pending := make(map[string]bool, len(snap.Pending))
	for _, id := range snap.Pending {
		pending[id] = true
	}

	dragging := snap.Phase == kanban.PhaseDragging
	rendered := make([]string, len(snap.Columns))
	for i, col := range snap.Columns {
		props := components.ColumnProps{
			Width:     width,
			Height:    height,
			Selected:  !dragging && i == m.col,
			CursorRow: -1,
			DragID:    snap.DragID,
			DropAt:    -1,
			IsPending: func(id string) bool { return pending[id] },
			Spinner:   m.spinner.View(),
		}
		if !dragging && i == m.col {
			props.CursorRow = m.row
			props.ScrollOffset = max(m.row-(height-4)/components.CardHeight+1, 0)
		}
		if dragging && i == m.targetCol {
			props.DropAt = m.dropAt
		}
		rendered[i] = components.RenderColumn(col, props)
	}

	return strings.Join([]string{
		header,
		components.JoinColumns(rendered),
		m.statusLine(snap),
		m.help.View(m.keys),
	}, "\n")
}

// statusLine shows the newest notification, or what a drag would do
func (m *Model) statusLine(snap kanban.Snapshot) string {
	if n, ok := m.notes.Latest(); ok {
		return notifications.RenderInline(n.Severity, n.Message)
	}
	if snap.Phase == kanban.PhaseDragging {
		r, _ := m.coord.Find(snap.DragID)
		target := "?"
		if snap.Preview != nil {
			target = snap.Preview.Column.Label()
		}
		return statusStyle.Render(fmt.Sprintf("Moving %q to %s", r.Title, target))
	}
	if m.loaded && len(snap.Requests) == 0 {
		return statusStyle.Render("No requests")
	}
	return ""
}
