// Package styles holds the lipgloss styles of human-readable CLI output
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/salesboard/internal/models"
	"github.com/thenoetrevino/salesboard/internal/tui/theme"
)

var (
	// Card styles
	CardWidth = 80
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.Highlight)).
			Padding(1, 2).
			Width(CardWidth)

	// Text styles
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Title))
	SubtitleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Subtle))
	LabelStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Highlight)) // "Type:", "City:"
	ValueStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Normal))
	SectionStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Highlight)).MarginTop(1)

	// Status styles
	SuccessStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.InfoFg)).
			Background(lipgloss.Color(theme.InfoBg)).
			Padding(0, 1)

	WarningStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.WarningFg)).
			Background(lipgloss.Color(theme.WarningBg)).
			Padding(0, 1)
)

var statusColors = map[models.Status]string{
	models.StatusNew:        "39",
	models.StatusOnProgress: "214",
	models.StatusOnHold:     "245",
	models.StatusDone:       "76",
}

// RenderStatusChip renders a status as "[Label]" in its column color
func RenderStatusChip(s models.Status) string {
	color, ok := statusColors[s]
	if !ok {
		color = theme.Subtle
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(color)).
		Bold(true).
		Render("[" + s.Label() + "]")
}

// Field renders "Label: value"
func Field(label, value string) string {
	return LabelStyle.Render(label+":") + " " + ValueStyle.Render(value)
}

// RenderCard wraps content in a styled card border
func RenderCard(content string) string {
	return CardStyle.Render(content)
}
