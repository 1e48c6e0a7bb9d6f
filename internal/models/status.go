package models

import "strings"

// Status is the lifecycle state of a request. The set is closed: every value
// that enters the system passes through NormalizeStatus first.
type Status string

const (
	StatusNew        Status = "new"
	StatusOnProgress Status = "on progress"
	StatusOnHold     Status = "on hold"
	StatusDone       Status = "done"
)

// DefaultStatus is what unknown or empty status values collapse to
const DefaultStatus = StatusNew

// BoardStatuses is the fixed display order of the kanban columns
var BoardStatuses = []Status{StatusNew, StatusOnProgress, StatusOnHold, StatusDone}

// statusAliases maps lower-cased legacy values found in older rows to the
// canonical status. Underscores and dashes are folded to spaces before lookup.
var statusAliases = map[string]Status{
	"new":         StatusNew,
	"open":        StatusNew,
	"pending":     StatusNew,
	"on progress": StatusOnProgress,
	"in progress": StatusOnProgress,
	"ongoing":     StatusOnProgress,
	"on hold":     StatusOnHold,
	"onhold":      StatusOnHold,
	"done":        StatusDone,
	"completed":   StatusDone,
	"closed":      StatusDone,
}

// NormalizeStatus converts a raw status string into a canonical Status.
// Anything unrecognized becomes DefaultStatus rather than an error.
func NormalizeStatus(raw string) Status {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer("_", " ", "-", " ").Replace(key)
	if s, ok := statusAliases[key]; ok {
		return s
	}
	return DefaultStatus
}

// ParseStatus is the strict variant used for user input: it accepts the same
// spellings as NormalizeStatus but reports whether the value was recognized.
func ParseStatus(raw string) (Status, bool) {
	key := strings.ToLower(strings.TrimSpace(raw))
	key = strings.NewReplacer("_", " ", "-", " ").Replace(key)
	s, ok := statusAliases[key]
	return s, ok
}

// Valid reports whether s is one of the canonical statuses
func (s Status) Valid() bool {
	for _, known := range BoardStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Label returns the column heading for the status
func (s Status) Label() string {
	switch s {
	case StatusNew:
		return "New"
	case StatusOnProgress:
		return "On Progress"
	case StatusOnHold:
		return "On Hold"
	case StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

func (s Status) String() string {
	return string(s)
}
