package kanban

import (
	"log/slog"

	"go.opentelemetry.io/otel/metric"
)

// Option configures a Coordinator
type Option func(*Coordinator)

// WithNotifier sets where notifications go. Defaults to discarding them.
func WithNotifier(n Notifier) Option {
	return func(c *Coordinator) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTransitionGuard rejects drops the workflow table does not allow.
// Without it any column accepts any card.
func WithTransitionGuard() Option {
	return func(c *Coordinator) {
		c.guard = true
	}
}

// WithMeter records move and reload counters on m
func WithMeter(m metric.Meter) Option {
	return func(c *Coordinator) {
		if m != nil {
			c.meter = m
		}
	}
}
