package notifications

import "github.com/thenoetrevino/salesboard/internal/kanban"

// Severity represents the severity level of a notification
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

// FromLevel maps a coordinator notification level
func FromLevel(l kanban.Level) Severity {
	switch l {
	case kanban.LevelWarning:
		return Warning
	case kanban.LevelError:
		return Error
	default:
		return Info
	}
}
