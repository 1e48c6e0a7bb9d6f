package cli

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/thenoetrevino/salesboard/internal/board"
	"github.com/thenoetrevino/salesboard/internal/config"
	"github.com/thenoetrevino/salesboard/internal/kanban"
	"github.com/thenoetrevino/salesboard/internal/models"
)

var (
	// ErrMoveRejected is returned when the transition guard refuses a drop
	ErrMoveRejected = errors.New("move rejected")
	// ErrMoveFailed is returned when the store did not accept the move
	ErrMoveFailed = errors.New("move failed")
)

// MoveResult is the outcome of MoveRequest
type MoveResult struct {
	Request models.Request `json:"request"`
	State   string         `json:"state"`
}

type noteRecorder struct {
	mu    sync.Mutex
	notes []note
}

type note struct {
	level   kanban.Level
	message string
}

func (r *noteRecorder) Notify(level kanban.Level, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, note{level: level, message: message})
}

// last returns the newest message at or above level
func (r *noteRecorder) last(level kanban.Level) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := len(r.notes) - 1; i >= 0; i-- {
		if r.notes[i].level >= level {
			return r.notes[i].message, true
		}
	}
	return "", false
}

// MoveRequest performs one drag and drop the way the board does: load,
// pick up id, drop it on status before beforeID, then confirm with the
// store. A failed confirm reloads the board before the error is returned.
func MoveRequest(ctx context.Context, source kanban.Remote, cfg *config.Config, id string, status models.Status, beforeID string) (*MoveResult, error) {
	notes := &noteRecorder{}
	opts := []kanban.Option{kanban.WithNotifier(notes)}
	if cfg.Board.EnforceTransitions {
		opts = append(opts, kanban.WithTransitionGuard())
	}
	coord := kanban.NewCoordinator(source, board.New(cfg.BoardColumns()), opts...)

	coord.Run(ctx, coord.Load())
	if msg, failed := notes.last(kanban.LevelError); failed {
		return nil, errors.New(msg)
	}
	if _, ok := coord.Find(id); !ok {
		return nil, fmt.Errorf("request %s: %w", id, models.ErrRequestNotFound)
	}

	coord.Dispatch(kanban.DragStart{RequestID: id})
	coord.Dispatch(kanban.DragOver{Column: status, BeforeID: beforeID})
	coord.Run(ctx, coord.Dispatch(kanban.Drop{Column: status, BeforeID: beforeID}))

	state, moved := coord.MoveState(id)
	if !moved {
		msg, _ := notes.last(kanban.LevelWarning)
		return nil, fmt.Errorf("%w: %s", ErrMoveRejected, msg)
	}
	if state == kanban.MoveRolledBack {
		msg, _ := notes.last(kanban.LevelError)
		return nil, fmt.Errorf("%w: %s", ErrMoveFailed, msg)
	}

	r, _ := coord.Find(id)
	return &MoveResult{Request: r, State: state.String()}, nil
}
