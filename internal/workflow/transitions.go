// Package workflow decides which status changes a request may make
package workflow

import "github.com/thenoetrevino/salesboard/internal/models"

// transitions is the whole policy. Adding a status means adding a row here.
// A status with an empty successor list is terminal.
var transitions = map[models.Status][]models.Status{
	models.StatusNew:        {models.StatusOnProgress, models.StatusOnHold, models.StatusDone},
	models.StatusOnProgress: {models.StatusNew, models.StatusOnHold, models.StatusDone},
	models.StatusOnHold:     {models.StatusNew, models.StatusOnProgress, models.StatusDone},
	models.StatusDone:       {},
}

// AllowedTransitions returns the statuses reachable from current.
// Unknown statuses are treated as terminal. The returned slice is a copy.
func AllowedTransitions(current models.Status) []models.Status {
	next, ok := transitions[current]
	if !ok {
		return []models.Status{}
	}
	out := make([]models.Status, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether a request in from may move to to.
// Staying in the same status is always allowed.
func CanTransition(from, to models.Status) bool {
	if from == to {
		return true
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no transition leaves s
func IsTerminal(s models.Status) bool {
	return len(transitions[s]) == 0
}
