package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/salesboard/internal/models"
)

// CardProps controls how a request card is drawn
type CardProps struct {
	Width    int
	Selected bool
	Dragged  bool
	Pending  bool
	// Spinner is the current spinner frame for pending cards
	Spinner string
}

// RenderCard draws one request
//
//	{spinner} {Title}
//	{Company} · {City}
//	{TYPE} · {Requester}
func RenderCard(r models.Request, p CardProps) string {
	style := CardStyle
	switch {
	case p.Dragged:
		style = DraggedCardStyle
	case p.Selected:
		style = SelectedCardStyle
	}

	inner := max(p.Width-style.GetHorizontalFrameSize(), 8)

	title := r.Title
	if p.Pending {
		title = PendingStyle.Render(p.Spinner) + " " + title
	}

	meta := r.CityLabel()
	if r.Company != "" {
		meta = r.Company + " · " + meta
	}

	who := string(r.RequestType) + " · " + r.RequesterName
	if n := len(r.AssignedBDRs); n > 0 {
		who += fmt.Sprintf(" · %d BDR", n)
	}

	lines := []string{
		truncate(title, inner),
		SubtleStyle.Render(truncate(meta, inner)),
		SubtleStyle.Render(truncate(who, inner)),
	}
	return style.Width(inner + style.GetHorizontalPadding()).Render(strings.Join(lines, "\n"))
}

// truncate shortens s to width cells, marking the cut with an ellipsis
func truncate(s string, width int) string {
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
