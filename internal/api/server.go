// Package api serves the request board and the restaurant list over HTTP.
// Every /api route needs a bearer JWT; errors are RFC 7807 problem documents.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"

	"github.com/thenoetrevino/salesboard/internal/app"
	"github.com/thenoetrevino/salesboard/internal/events"
	"github.com/thenoetrevino/salesboard/internal/telemetry"
)

const (
	maxBodyBytes      = 1 << 20
	shutdownTimeout   = 5 * time.Second
	heartbeatEvery    = 15 * time.Second
	readHeaderTimeout = 10 * time.Second
)

// Options configures a Server
type Options struct {
	Addr           string
	JWTSecret      string
	RateLimitRPS   float64
	RateLimitBurst int
	StaleAfterDays int

	// Events feeds GET /api/events; nil disables the stream
	Events events.EventSubscriber
	Logger *slog.Logger
	// Now is the report clock; defaults to time.Now
	Now func() time.Time
}

// Server exposes the app's services as a JSON API
type Server struct {
	app     *app.App
	opts    Options
	secret  []byte
	logger  *slog.Logger
	limiter *rateLimiter
	handler http.Handler
}

// NewServer builds the routes for a
func NewServer(a *app.App, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RateLimitRPS <= 0 {
		opts.RateLimitRPS = 10
	}

	s := &Server{
		app:     a,
		opts:    opts,
		secret:  []byte(opts.JWTSecret),
		logger:  opts.Logger,
		limiter: newRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("GET /api/requests", s.authed(s.handleListRequests))
	mux.HandleFunc("POST /api/requests", s.authed(s.handleCreateRequest))
	mux.HandleFunc("GET /api/requests/{id}", s.authed(s.handleGetRequest))
	mux.HandleFunc("PATCH /api/requests/{id}", s.authed(s.handleUpdateRequest))
	mux.HandleFunc("POST /api/requests/{id}/status", s.authed(s.handleChangeStatus))
	mux.HandleFunc("POST /api/requests/{id}/assignments", s.authed(s.handleAssign))
	mux.HandleFunc("DELETE /api/requests/{id}/assignments/{userID}", s.authed(s.handleUnassign))
	mux.HandleFunc("GET /api/requests/{id}/comments", s.authed(s.handleListComments))
	mux.HandleFunc("POST /api/requests/{id}/comments", s.authed(s.handleCreateComment))
	mux.HandleFunc("DELETE /api/comments/{id}", s.authed(s.handleDeleteComment))
	mux.HandleFunc("GET /api/restaurants", s.authed(s.handleListRestaurants))
	mux.HandleFunc("POST /api/restaurants", s.authed(s.handleCreateRestaurant))
	mux.HandleFunc("GET /api/restaurants/{id}", s.authed(s.handleGetRestaurant))
	mux.HandleFunc("PATCH /api/restaurants/{id}", s.authed(s.handleUpdateRestaurant))
	mux.HandleFunc("DELETE /api/restaurants/{id}", s.authed(s.handleDeleteRestaurant))
	mux.HandleFunc("POST /api/restaurants/{id}/assignments", s.authed(s.handleAssignRestaurant))
	mux.HandleFunc("DELETE /api/restaurants/{id}/assignments/{userID}", s.authed(s.handleUnassignRestaurant))
	mux.HandleFunc("GET /api/restaurants/{id}/comments", s.authed(s.handleListRestaurantComments))
	mux.HandleFunc("POST /api/restaurants/{id}/comments", s.authed(s.handleCreateRestaurantComment))
	mux.HandleFunc("PATCH /api/restaurants/{id}/comments/{commentID}", s.authed(s.handleEditRestaurantComment))
	mux.HandleFunc("DELETE /api/restaurants/{id}/comments/{commentID}", s.authed(s.handleDeleteRestaurantComment))
	mux.HandleFunc("GET /api/reports", s.authed(s.handleReport))
	mux.HandleFunc("GET /api/events", s.authed(s.handleEvents))

	counter, err := telemetry.Meter("github.com/thenoetrevino/salesboard/api").Int64Counter(
		"salesboard.api.requests",
		metric.WithDescription("HTTP requests by method, route and status code"),
	)
	if err != nil {
		s.logger.Warn("failed to create request counter", "error", err)
	}

	var h http.Handler = s.limiter.middleware(mux)
	if counter != nil {
		h = countRequests(counter, h)
	}
	s.handler = h
	return s
}

func (s *Server) authed(h http.HandlerFunc) http.HandlerFunc {
	return requireAuth(s.secret, h)
}

// Handler returns the root handler, for tests and embedding
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on opts.Addr until ctx ends, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("api listening", "addr", s.opts.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("api shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	g.Go(func() error {
		s.limiter.run(gctx)
		return nil
	})
	return g.Wait()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode response", "error", err)
	}
}

// decodeJSON reads a bounded JSON body into dst, writing a 400 on failure
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeProblem(w, r, http.StatusBadRequest, "Invalid JSON body: "+err.Error())
		return false
	}
	return true
}
