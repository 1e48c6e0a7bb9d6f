package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thenoetrevino/salesboard/internal/models"
)

func TestAllowedTransitions_Done(t *testing.T) {
	assert.Empty(t, AllowedTransitions(models.StatusDone))
	assert.True(t, IsTerminal(models.StatusDone))
}

func TestAllowedTransitions_Unknown(t *testing.T) {
	got := AllowedTransitions(models.Status("archived"))
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.True(t, IsTerminal(models.Status("archived")))
}

func TestAllowedTransitions_Open(t *testing.T) {
	assert.ElementsMatch(t,
		[]models.Status{models.StatusOnProgress, models.StatusOnHold, models.StatusDone},
		AllowedTransitions(models.StatusNew))
	assert.ElementsMatch(t,
		[]models.Status{models.StatusNew, models.StatusOnHold, models.StatusDone},
		AllowedTransitions(models.StatusOnProgress))
	assert.ElementsMatch(t,
		[]models.Status{models.StatusNew, models.StatusOnProgress, models.StatusDone},
		AllowedTransitions(models.StatusOnHold))
}

func TestAllowedTransitions_ReturnsCopy(t *testing.T) {
	got := AllowedTransitions(models.StatusNew)
	got[0] = models.StatusDone

	assert.Equal(t, models.StatusOnProgress, AllowedTransitions(models.StatusNew)[0])
}

func TestAllowedTransitions_Deterministic(t *testing.T) {
	for _, s := range models.BoardStatuses {
		assert.Equal(t, AllowedTransitions(s), AllowedTransitions(s))
	}
}

func TestCanTransition_SameStatusAlwaysAllowed(t *testing.T) {
	for _, s := range append(models.BoardStatuses, models.Status("archived")) {
		assert.True(t, CanTransition(s, s), "same-status move for %q", s)
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to models.Status
		want     bool
	}{
		{models.StatusNew, models.StatusDone, true},
		{models.StatusOnHold, models.StatusOnProgress, true},
		{models.StatusDone, models.StatusNew, false},
		{models.StatusDone, models.StatusOnProgress, false},
		{models.Status("archived"), models.StatusNew, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CanTransition(tt.from, tt.to), "%q -> %q", tt.from, tt.to)
	}
}
