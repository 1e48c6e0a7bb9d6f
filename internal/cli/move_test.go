package cli

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/salesboard/internal/config"
	"github.com/thenoetrevino/salesboard/internal/models"
)

type stubSource struct {
	mu        sync.Mutex
	requests  []models.Request
	listErr   error
	updateErr error
	writes    []models.Status
}

func newStubSource() *stubSource {
	return &stubSource{requests: []models.Request{
		{ID: "a", Title: "Taco night", Status: models.StatusNew},
		{ID: "b", Title: "Best pho", Status: models.StatusNew},
		{ID: "c", Title: "Steakhouse", Status: models.StatusDone},
	}}
}

func (s *stubSource) ListRequests(ctx context.Context) ([]models.Request, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	return append([]models.Request(nil), s.requests...), nil
}

func (s *stubSource) UpdateRequestStatus(ctx context.Context, id string, status models.Status) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writes = append(s.writes, status)
	if s.updateErr != nil {
		return s.updateErr
	}
	for i := range s.requests {
		if s.requests[i].ID == id {
			s.requests[i].Status = status
		}
	}
	return nil
}

func TestMoveRequest_Confirms(t *testing.T) {
	t.Parallel()

	src := newStubSource()
	result, err := MoveRequest(context.Background(), src, config.Default(), "a", models.StatusOnHold, "")

	require.NoError(t, err)
	assert.Equal(t, "confirmed", result.State)
	assert.Equal(t, models.StatusOnHold, result.Request.Status)
	assert.Equal(t, []models.Status{models.StatusOnHold}, src.writes)
}

func TestMoveRequest_NotFound(t *testing.T) {
	t.Parallel()

	_, err := MoveRequest(context.Background(), newStubSource(), config.Default(), "zzz", models.StatusDone, "")

	assert.ErrorIs(t, err, models.ErrRequestNotFound)
	assert.Equal(t, ExitNotFound, ExitCodeFor(err))
}

func TestMoveRequest_LoadFailure(t *testing.T) {
	t.Parallel()

	src := newStubSource()
	src.listErr = errors.New("connection refused")

	_, err := MoveRequest(context.Background(), src, config.Default(), "a", models.StatusDone, "")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed to load requests")
}

func TestMoveRequest_StoreRefuses(t *testing.T) {
	t.Parallel()

	src := newStubSource()
	src.updateErr = errors.New("row locked")

	_, err := MoveRequest(context.Background(), src, config.Default(), "a", models.StatusDone, "")

	assert.ErrorIs(t, err, ErrMoveFailed)
}

func TestMoveRequest_Guard(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Board.EnforceTransitions = true
	src := newStubSource()

	_, err := MoveRequest(context.Background(), src, cfg, "c", models.StatusNew, "")

	assert.ErrorIs(t, err, ErrMoveRejected)
	assert.Equal(t, ExitValidation, ExitCodeFor(err))
	assert.Empty(t, src.writes)
}

func TestMoveRequest_UnguardedAllowsReopen(t *testing.T) {
	t.Parallel()

	src := newStubSource()
	result, err := MoveRequest(context.Background(), src, config.Default(), "c", models.StatusNew, "a")

	require.NoError(t, err)
	assert.Equal(t, models.StatusNew, result.Request.Status)
}
