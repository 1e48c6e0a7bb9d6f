// Package theme holds the board palette
package theme

// ANSI 256 colors
const (
	Highlight      = "39"
	Subtle         = "242"
	Normal         = "252"
	Title          = "12"
	ColumnBorder   = "238"
	SelectedBorder = "213"
	DropTarget     = "76"
	CardBorder     = "240"
	CardBg         = "235"
	Pending        = "214"
	InfoFg         = "15"
	InfoBg         = "25"
	WarningFg      = "0"
	WarningBg      = "214"
	ErrorFg        = "15"
	ErrorBg        = "160"
)
