// Package board holds the client-side ordering of requests across status
// columns. The board is one flat sequence; a column is the subsequence of
// requests whose status matches the column key.
package board

import "github.com/thenoetrevino/salesboard/internal/models"

// Column is one status bucket with its items in board order
type Column struct {
	Status models.Status
	Items  []models.Request
}

// GroupByColumn partitions requests into one Column per entry of columns,
// preserving the relative order of the flat sequence. Requests whose status
// is not a column key are left out. The input is never modified.
func GroupByColumn(requests []models.Request, columns []models.Status) []Column {
	index := make(map[models.Status]int, len(columns))
	grouped := make([]Column, len(columns))
	for i, s := range columns {
		grouped[i] = Column{Status: s, Items: []models.Request{}}
		if _, dup := index[s]; !dup {
			index[s] = i
		}
	}

	for _, r := range requests {
		if i, ok := index[r.Status]; ok {
			grouped[i].Items = append(grouped[i].Items, r)
		}
	}
	return grouped
}

// MoveLocally returns a new sequence in which the request with id carries
// target status and sits at its new position:
//   - beforeID found: immediately before that request
//   - beforeID given but missing: at the end of the sequence
//   - beforeID empty: right after the last request already in target,
//     or at the end when the target column is empty
//
// An unknown id returns seq itself. seq is never modified.
func MoveLocally(seq []models.Request, id string, target models.Status, beforeID string) []models.Request {
	current := indexOf(seq, id)
	if current == -1 {
		return seq
	}

	remaining := make([]models.Request, 0, len(seq))
	remaining = append(remaining, seq[:current]...)
	remaining = append(remaining, seq[current+1:]...)

	moving := seq[current]
	moving.Status = target

	insertAt := len(remaining)
	if beforeID != "" {
		if i := indexOf(remaining, beforeID); i != -1 {
			insertAt = i
		}
	} else {
		for i, r := range remaining {
			if r.Status == target {
				insertAt = i + 1
			}
		}
	}

	out := make([]models.Request, 0, len(seq))
	out = append(out, remaining[:insertAt]...)
	out = append(out, moving)
	out = append(out, remaining[insertAt:]...)
	return out
}

func indexOf(seq []models.Request, id string) int {
	for i, r := range seq {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// Board owns the authoritative in-memory ordering for one view.
// Updates replace the sequence wholesale so earlier snapshots stay valid.
type Board struct {
	columns  []models.Status
	requests []models.Request
}

// New creates an empty board with the given column order.
// A nil or empty order falls back to models.BoardStatuses.
func New(columns []models.Status) *Board {
	if len(columns) == 0 {
		columns = models.BoardStatuses
	}
	cols := make([]models.Status, len(columns))
	copy(cols, columns)
	return &Board{columns: cols, requests: []models.Request{}}
}

// Replace swaps in a freshly loaded sequence, normalizing every status so the
// board never holds a value outside the closed set.
func (b *Board) Replace(requests []models.Request) {
	next := make([]models.Request, len(requests))
	for i, r := range requests {
		r.Status = models.NormalizeStatus(string(r.Status))
		next[i] = r
	}
	b.requests = next
}

// Move applies MoveLocally to the board and reports whether anything moved
func (b *Board) Move(id string, target models.Status, beforeID string) bool {
	if indexOf(b.requests, id) == -1 {
		return false
	}
	b.requests = MoveLocally(b.requests, id, target, beforeID)
	return true
}

// Find returns the request with id
func (b *Board) Find(id string) (models.Request, bool) {
	if i := indexOf(b.requests, id); i != -1 {
		return b.requests[i], true
	}
	return models.Request{}, false
}

// Requests returns the current sequence. Callers must not modify it.
func (b *Board) Requests() []models.Request {
	return b.requests
}

// Columns returns the column order
func (b *Board) Columns() []models.Status {
	return b.columns
}

// Grouped returns the board split into columns
func (b *Board) Grouped() []Column {
	return GroupByColumn(b.requests, b.columns)
}

// Len returns the number of requests on the board
func (b *Board) Len() int {
	return len(b.requests)
}
