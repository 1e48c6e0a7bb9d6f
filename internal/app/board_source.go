package app

import (
	"context"

	"github.com/thenoetrevino/salesboard/internal/board"
	"github.com/thenoetrevino/salesboard/internal/kanban"
	"github.com/thenoetrevino/salesboard/internal/models"
)

// boardSource serves the kanban coordinator straight from the local services
type boardSource struct {
	app    *App
	viewer models.Viewer
}

var _ kanban.Remote = (*boardSource)(nil)

// BoardSource returns a kanban.Remote that lists what viewer may see and
// writes status changes through the board path of the request service
func (a *App) BoardSource(viewer models.Viewer) kanban.Remote {
	return &boardSource{app: a, viewer: viewer}
}

func (s *boardSource) ListRequests(ctx context.Context) ([]models.Request, error) {
	return s.app.RequestService.List(ctx, s.viewer, board.Filter{})
}

func (s *boardSource) UpdateRequestStatus(ctx context.Context, id string, status models.Status) error {
	return s.app.RequestService.SetStatus(ctx, id, status)
}
