package kanban

import "github.com/thenoetrevino/salesboard/internal/models"

// Event is an input to the coordinator's state machine
type Event interface {
	event()
}

// DragStart picks up a card
type DragStart struct {
	RequestID string
}

// DragOver tracks the candidate drop target for preview only
type DragOver struct {
	Column   models.Status
	BeforeID string
}

// DragLeave clears the preview target without ending the drag
type DragLeave struct{}

// DragEnd cancels the drag with no move
type DragEnd struct{}

// Drop releases the dragged card onto Column, before BeforeID when set
type Drop struct {
	Column   models.Status
	BeforeID string
}

// ConfirmSucceeded reports that the remote accepted a status write
type ConfirmSucceeded struct {
	RequestID string
	Status    models.Status
}

// ConfirmFailed reports that the remote rejected or never received a status write
type ConfirmFailed struct {
	RequestID string
	Status    models.Status
	Err       error
}

// ReloadRequested asks for the authoritative list to be fetched again
type ReloadRequested struct{}

// Reloaded carries the result of a bulk fetch
type Reloaded struct {
	Requests []models.Request
	Err      error
}

func (DragStart) event()        {}
func (DragOver) event()         {}
func (DragLeave) event()        {}
func (DragEnd) event()          {}
func (Drop) event()             {}
func (ConfirmSucceeded) event() {}
func (ConfirmFailed) event()    {}
func (ReloadRequested) event()  {}
func (Reloaded) event()         {}
