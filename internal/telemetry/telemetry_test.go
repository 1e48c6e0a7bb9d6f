package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_DisabledInstallsNoop(t *testing.T) {
	require.NoError(t, Init(Settings{}))

	counter, err := Meter("").Int64Counter("salesboard.test.count")
	require.NoError(t, err)
	counter.Add(context.Background(), 1)

	Shutdown(context.Background())
}

func TestInit_EnabledRegistersShutdown(t *testing.T) {
	require.NoError(t, Init(Settings{Enabled: true}))

	mu.Lock()
	assert.Len(t, shutdownFns, 1)
	mu.Unlock()

	Shutdown(context.Background())

	mu.Lock()
	assert.Empty(t, shutdownFns)
	mu.Unlock()

	require.NoError(t, Init(Settings{}))
}
