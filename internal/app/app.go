// Package app wires the data layer, the event bus and the services together.
package app

import (
	"log/slog"

	"github.com/thenoetrevino/salesboard/internal/database"
	"github.com/thenoetrevino/salesboard/internal/events"
	commentservice "github.com/thenoetrevino/salesboard/internal/services/comment"
	requestservice "github.com/thenoetrevino/salesboard/internal/services/request"
	restaurantservice "github.com/thenoetrevino/salesboard/internal/services/restaurant"
)

// App holds all application services and provides dependency injection.
type App struct {
	// Repository layer (direct database access)
	repo database.DataStore

	// Event system for live updates
	eventClient events.EventPublisher
	logger      *slog.Logger

	// Service layer (business logic)
	RequestService    requestservice.Service
	CommentService    commentservice.Service
	RestaurantService restaurantservice.Service
}

// New creates a new App with all services initialized.
func New(repo database.DataStore, opts ...Option) *App {
	s := &settings{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}

	return &App{
		repo:              repo,
		eventClient:       s.publisher,
		logger:            s.logger,
		RequestService:    requestservice.NewService(repo, s.publisher),
		CommentService:    commentservice.NewService(repo, s.publisher),
		RestaurantService: restaurantservice.NewService(repo, s.publisher),
	}
}

// Repo returns the underlying repository. The directory (people, roles,
// cities) has no service of its own and is read through here.
func (a *App) Repo() database.DataStore {
	return a.repo
}

// Events returns the publisher the services announce changes on, or nil
func (a *App) Events() events.EventPublisher {
	return a.eventClient
}

// Close releases the repository
func (a *App) Close() error {
	a.logger.Debug("closing app")
	return a.repo.Close()
}
