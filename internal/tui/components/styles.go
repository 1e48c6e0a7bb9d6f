// Package components renders the pieces of the board
package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/thenoetrevino/salesboard/internal/tui/theme"
)

var (
	// ColumnStyle frames a status column
	ColumnStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.ColumnBorder)).
			PaddingLeft(1).
			PaddingRight(1)

	// SelectedColumnStyle frames the column holding the cursor
	SelectedColumnStyle = ColumnStyle.
				BorderForeground(lipgloss.Color(theme.Highlight))

	// DropColumnStyle frames the column under a dragged card
	DropColumnStyle = ColumnStyle.
			BorderForeground(lipgloss.Color(theme.DropTarget))

	// CardStyle is a request card
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color(theme.CardBorder)).
			Padding(0, 1)

	// SelectedCardStyle is the card under the cursor
	SelectedCardStyle = CardStyle.
				Border(lipgloss.ThickBorder()).
				BorderForeground(lipgloss.Color(theme.SelectedBorder))

	// DraggedCardStyle is the card being moved
	DraggedCardStyle = CardStyle.
				Border(lipgloss.DoubleBorder()).
				BorderForeground(lipgloss.Color(theme.DropTarget)).
				Faint(true)

	// TitleStyle is used for column headings and the app header
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Title))

	// SubtleStyle is secondary text on cards
	SubtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Subtle))

	// PendingStyle colors the spinner on cards awaiting confirmation
	PendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Pending))

	// DropMarkerStyle is the insertion line shown while dragging
	DropMarkerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.DropTarget)).
			Bold(true)
)
