package injector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/lightcycle/internal/core/arena"
)

func TestInitializeArena(t *testing.T) {
	cfg := arena.DefaultConfig()
	cfg.Log.Level = "error"

	a, cleanup, err := InitializeArena(cfg)
	require.NoError(t, err)
	defer cleanup()

	assert.Len(t, a.Cycles(), len(cfg.Spawns))
	assert.NotNil(t, a.Bus())
	assert.Equal(t, 0.0, a.Now())
}

func TestInitializeArenaRejectsBadLogLevel(t *testing.T) {
	cfg := arena.DefaultConfig()
	cfg.Log.Level = "shouting"

	_, _, err := InitializeArena(cfg)
	assert.Error(t, err)
}
