package app

import (
	"log/slog"

	"github.com/thenoetrevino/salesboard/internal/events"
)

// Option customizes New
type Option func(*settings)

type settings struct {
	publisher events.EventPublisher
	logger    *slog.Logger
}

// WithEventPublisher announces request and comment changes on pub.
// Without it the services stay silent and the board only refreshes on reload.
func WithEventPublisher(pub events.EventPublisher) Option {
	return func(s *settings) {
		s.publisher = pub
	}
}

// WithLogger replaces slog.Default
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}
