package cycle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/lightcycle/internal/core/systems/physics"
	"github.com/zeusync/lightcycle/internal/core/walls"
)

func TestParseTurn(t *testing.T) {
	for in, want := range map[string]Turn{"left": TurnLeft, "L": TurnLeft, " Right ": TurnRight, "r": TurnRight} {
		got, err := ParseTurn(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseTurn("up")
	assert.ErrorIs(t, err, ErrInvalidTurn)

	var turn Turn
	require.NoError(t, turn.UnmarshalText([]byte("right")))
	assert.Equal(t, TurnRight, turn)
	text, err := TurnLeft.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "left", string(text))
}

func TestRequestTurnExecutesImmediately(t *testing.T) {
	store := newTestStore(t)
	rec := &recorder{}
	c := newTestCycle(t, store, 1, DefaultConfig(), east(0, 0), rec)
	c.Step(tick, tick)
	first := c.CurrentSegment()
	speed := c.Speed()

	require.NoError(t, c.RequestTurn(TurnLeft, tick))

	assert.Equal(t, physics.V(0, 1), c.Heading(), "left is counter-clockwise")
	assert.InDelta(t, speed*0.95, c.Speed(), 1e-9)
	assert.Empty(t, c.Pending())
	assert.Equal(t, 1, c.Stats().Turns)
	assert.Equal(t, 1, rec.count(EventTurned))

	sealed, ok := store.Get(first)
	require.True(t, ok)
	assert.True(t, sealed.Sealed)
	assert.Equal(t, c.Position(), sealed.End)

	fresh, ok := store.Get(c.CurrentSegment())
	require.True(t, ok)
	assert.Equal(t, c.Position(), fresh.Start)
	assert.Equal(t, fresh.Start, fresh.End)
	assert.Equal(t, tick, fresh.CreatedAt)

	require.NoError(t, c.RequestTurn(TurnRight, 1))
	assert.Equal(t, physics.V(1, 0), c.Heading())
}

func TestRequestTurnRejectsInvalidDirection(t *testing.T) {
	c := newTestCycle(t, newTestStore(t), 1, DefaultConfig(), east(0, 0), nil)
	assert.ErrorIs(t, c.RequestTurn(0, 0), ErrInvalidTurn)
	assert.ErrorIs(t, c.RequestTurn(2, 0), ErrInvalidTurn)
}

func TestTurnCancellation(t *testing.T) {
	c := newTestCycle(t, newTestStore(t), 1, DefaultConfig(), east(0, 0), nil)
	require.NoError(t, c.RequestTurn(TurnLeft, 0))
	heading := c.Heading()

	require.NoError(t, c.RequestTurn(TurnLeft, 0.02))
	assert.Equal(t, []Turn{TurnLeft}, c.Pending())
	require.NoError(t, c.RequestTurn(TurnRight, 0.03))
	assert.Empty(t, c.Pending(), "opposite request cancels the queued turn")

	c.Step(0.5, 0.05)
	assert.Equal(t, heading, c.Heading(), "no net heading change")
	assert.Equal(t, 1, c.Stats().Turns)
}

func TestTurnQueueSaturates(t *testing.T) {
	c := newTestCycle(t, newTestStore(t), 1, DefaultConfig(), east(0, 0), nil)
	require.NoError(t, c.RequestTurn(TurnLeft, 0))

	for i := 0; i < 5; i++ {
		require.NoError(t, c.RequestTurn(TurnLeft, 0.01))
	}
	assert.Equal(t, []Turn{TurnLeft, TurnLeft, TurnLeft}, c.Pending(), "bounded by turn_memory")
}

func TestOppositeTurnDelay(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TurnDelay = 0.1
	cfg.TurnDelayOpposite = 0.3
	c := newTestCycle(t, newTestStore(t), 1, cfg, east(0, 0), nil)
	require.NoError(t, c.RequestTurn(TurnLeft, 0))

	assert.True(t, c.CanTurn(TurnLeft, 0.15))
	assert.False(t, c.CanTurn(TurnRight, 0.15))
	assert.InDelta(t, 0.1, c.NextTurnTime(TurnLeft), 1e-12)
	assert.InDelta(t, 0.3, c.NextTurnTime(TurnRight), 1e-12)

	require.NoError(t, c.RequestTurn(TurnRight, 0.15))
	assert.Equal(t, []Turn{TurnRight}, c.Pending())

	c.Step(0.2, 0.05)
	assert.Equal(t, []Turn{TurnRight}, c.Pending())
	c.Step(0.3, 0.1)
	assert.Empty(t, c.Pending())
	assert.Equal(t, physics.V(1, 0), c.Heading())
}

// Left, left, right arrive inside the delay window of a previous left.
func TestScenarioQueuedTurns(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TurnDelay = 0.1
	cfg.TurnDelayOpposite = 0.1
	cfg.TurnMemory = 3
	rec := &recorder{}
	c := newTestCycle(t, newTestStore(t), 1, cfg, east(0, 0), rec)

	require.NoError(t, c.RequestTurn(TurnLeft, 0))
	require.NoError(t, c.RequestTurn(TurnLeft, 0.01))
	require.NoError(t, c.RequestTurn(TurnLeft, 0.01))
	require.NoError(t, c.RequestTurn(TurnRight, 0.01))
	assert.Equal(t, []Turn{TurnLeft}, c.Pending(), "the right cancels one queued left")

	c.Step(0.05, 0.05)
	assert.Equal(t, []Turn{TurnLeft}, c.Pending(), "delay not yet elapsed")

	report := c.Step(0.1, 0.05)
	assert.Equal(t, 1, report.Turns)
	assert.Empty(t, c.Pending())
	assert.Equal(t, physics.V(-1, 0), c.Heading(), "net two lefts")

	var turns []Turn
	for _, ev := range rec.events {
		if ev.Type == EventTurned {
			turns = append(turns, ev.Turn)
		}
	}
	assert.Equal(t, []Turn{TurnLeft, TurnLeft}, turns)
}

func TestDigSurcharge(t *testing.T) {
	store := newTestStore(t)
	store.Register(physics.V(30, -50), physics.V(30, 50), walls.KindTrail, 2, 0)

	cfg := testConfig()
	c := newTestCycle(t, store, 1, cfg, east(0, 0), nil)

	now := 0.0
	for !c.Grinding() {
		now += tick
		c.Step(now, tick)
		require.True(t, c.Alive())
		require.Less(t, now, 1.0)
	}
	// settle against the wall
	now += tick
	c.Step(now, tick)
	require.True(t, c.Grinding())
	dist := c.DistanceToWall()
	require.Less(t, dist, 5*cfg.Rubber.MinWallDistance)

	before := c.Rubber()
	require.NoError(t, c.RequestTurn(TurnLeft, now))
	assert.InDelta(t, before-3*(5-dist), c.Rubber(), 1e-9)
	assert.InDelta(t, dist, c.Snapshot().GapRight, 1e-12)
	assert.Equal(t, 0.0, c.Snapshot().GapLeft)
}
