package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/salesboard/internal/board"
	"github.com/thenoetrevino/salesboard/internal/models"
)

// ColumnProps controls how a status column is drawn
type ColumnProps struct {
	Width  int
	Height int
	// Selected marks the column holding the cursor
	Selected bool
	// CursorRow is the selected card index, or -1
	CursorRow int
	// DragID is the request being dragged, if any
	DragID string
	// DropAt is where a drop would land among the column's other cards,
	// or -1 when this column is not the drop target
	DropAt    int
	IsPending func(id string) bool
	Spinner   string
	// ScrollOffset is the index of the first visible card
	ScrollOffset int
}

// CardHeight is the rendered height of one card including its border
const CardHeight = 5

// RenderColumn renders a column with its title and cards
//
//	{Status} ({count})
//	▲ more above
//	{cards}
//	▼ more below
func RenderColumn(col board.Column, p ColumnProps) string {
	style := ColumnStyle
	switch {
	case p.DropAt >= 0:
		style = DropColumnStyle
	case p.Selected:
		style = SelectedColumnStyle
	}
	inner := max(p.Width-style.GetHorizontalFrameSize(), 10)

	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("%s (%d)", col.Status.Label(), len(col.Items))))
	b.WriteString("\n")

	visible := max((p.Height-4)/CardHeight, 1)
	start := min(max(p.ScrollOffset, 0), max(len(col.Items)-1, 0))
	end := min(start+visible, len(col.Items))

	if start > 0 {
		b.WriteString(SubtleStyle.Render("▲ more above"))
	}
	b.WriteString("\n")

	if len(col.Items) == 0 && p.DropAt < 0 {
		b.WriteString(SubtleStyle.Italic(true).Render("No requests"))
	}

	marker := DropMarkerStyle.Render(strings.Repeat("─", max(inner-8, 1)) + " drop")
	// other counts cards that are not being dragged, matching DropAt
	other := 0
	for i, r := range col.Items {
		dragged := r.ID == p.DragID
		if !dragged && other == p.DropAt {
			b.WriteString(marker + "\n")
		}
		if !dragged {
			other++
		}
		if i < start || i >= end {
			continue
		}
		pending := p.IsPending != nil && p.IsPending(r.ID)
		b.WriteString(RenderCard(r, CardProps{
			Width:    inner,
			Selected: p.Selected && i == p.CursorRow,
			Dragged:  dragged,
			Pending:  pending,
			Spinner:  p.Spinner,
		}))
		b.WriteString("\n")
	}
	if p.DropAt >= 0 && p.DropAt >= other {
		b.WriteString(marker + "\n")
	}

	if end < len(col.Items) {
		b.WriteString(SubtleStyle.Render("▼ more below"))
	}

	s := style.Width(inner + style.GetHorizontalPadding())
	if p.Height > 0 {
		s = s.Height(max(p.Height-style.GetVerticalFrameSize(), 1))
	}
	return s.Render(strings.TrimRight(b.String(), "\n"))
}

// Others returns the items of col without id, in order
func Others(col board.Column, id string) []models.Request {
	out := make([]models.Request, 0, len(col.Items))
	for _, r := range col.Items {
		if r.ID != id {
			out = append(out, r)
		}
	}
	return out
}

// JoinColumns lays columns side by side
func JoinColumns(cols []string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}
