package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/thenoetrevino/salesboard/internal/config"
)

// KeyMap is the board's key bindings
type KeyMap struct {
	Left   key.Binding
	Right  key.Binding
	Up     key.Binding
	Down   key.Binding
	PickUp key.Binding
	Drop   key.Binding
	Cancel key.Binding
	Reload key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// displayKey renders the space key readably in help
func displayKey(k string) string {
	if k == " " {
		return "space"
	}
	return k
}

// NewKeyMap builds bindings from the configured keys. Arrow keys always
// navigate in addition to the configured ones.
func NewKeyMap(km config.KeyMappings) KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys(km.PrevColumn, "left"),
			key.WithHelp("←/"+km.PrevColumn, "column"),
		),
		Right: key.NewBinding(
			key.WithKeys(km.NextColumn, "right"),
			key.WithHelp("→/"+km.NextColumn, "column"),
		),
		Up: key.NewBinding(
			key.WithKeys(km.PrevCard, "up"),
			key.WithHelp("↑/"+km.PrevCard, "card"),
		),
		Down: key.NewBinding(
			key.WithKeys(km.NextCard, "down"),
			key.WithHelp("↓/"+km.NextCard, "card"),
		),
		PickUp: key.NewBinding(
			key.WithKeys(km.PickUp),
			key.WithHelp(displayKey(km.PickUp), "pick up"),
		),
		Drop: key.NewBinding(
			key.WithKeys(km.Drop),
			key.WithHelp(displayKey(km.Drop), "drop"),
		),
		Cancel: key.NewBinding(
			key.WithKeys(km.Cancel),
			key.WithHelp(km.Cancel, "cancel"),
		),
		Reload: key.NewBinding(
			key.WithKeys(km.Reload),
			key.WithHelp(km.Reload, "reload"),
		),
		Help: key.NewBinding(
			key.WithKeys(km.ShowHelp),
			key.WithHelp(km.ShowHelp, "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys(km.Quit, "ctrl+c"),
			key.WithHelp(km.Quit, "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PickUp, k.Drop, k.Cancel, k.Reload, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.PickUp, k.Drop, k.Cancel},
		{k.Reload, k.Help, k.Quit},
	}
}
