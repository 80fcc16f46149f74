package walls

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/lightcycle/internal/core/observability/log"
	"github.com/zeusync/lightcycle/internal/core/systems/physics"
)

func TestRaycastClosedForm(t *testing.T) {
	s := newTestStore(t)
	wall := s.Register(physics.V(100, -50), physics.V(100, 50), KindBoundary, NoOwner, 0)

	tests := []struct {
		name   string
		origin physics.Vec2
		max    float64
		want   float64
		hit    bool
	}{
		{name: "straight ahead", origin: physics.V(0, 0), max: 1000, want: 100, hit: true},
		{name: "offset origin", origin: physics.V(37.5, 12), max: 1000, want: 62.5, hit: true},
		{name: "out of range", origin: physics.V(0, 0), max: 99, hit: false},
		{name: "passes beside", origin: physics.V(0, 60), max: 1000, hit: false},
		{name: "behind origin", origin: physics.V(150, 0), max: 1000, hit: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, ok := s.Raycast(forward(tt.origin, tt.max), Filter{})
			require.Equal(t, tt.hit, ok)
			if !tt.hit {
				return
			}
			assert.InDelta(t, tt.want, hit.Distance, 1e-9)
			assert.Equal(t, wall, hit.Segment.ID)
			assert.InDelta(t, 100.0, hit.Point.X, 1e-9)
		})
	}
}

func TestRaycastReturnsClosest(t *testing.T) {
	s := newTestStore(t)
	s.Register(physics.V(80, -10), physics.V(80, 10), KindTrail, 2, 0)
	near := s.Register(physics.V(30, -10), physics.V(30, 10), KindTrail, 3, 0)
	s.Register(physics.V(50, -10), physics.V(50, 10), KindBoundary, NoOwner, 0)

	hit, ok := s.Raycast(forward(physics.V(0, 0), 1000), Filter{})
	require.True(t, ok)
	assert.Equal(t, near, hit.Segment.ID)
	assert.InDelta(t, 30.0, hit.Distance, 1e-9)
}

func TestRaycastTieGoesToEarliestSegment(t *testing.T) {
	s := newTestStore(t)
	first := s.Register(physics.V(40, 0), physics.V(40, 10), KindTrail, 2, 0)
	s.Register(physics.V(40, -10), physics.V(40, 0), KindTrail, 3, 0)

	hit, ok := s.Raycast(forward(physics.V(0, 0), 1000), Filter{})
	require.True(t, ok)
	assert.Equal(t, first, hit.Segment.ID)
}

func TestRaycastSelfExclusionWindow(t *testing.T) {
	const grace = 0.3
	s := newTestStore(t)
	own := s.Register(physics.V(20, -5), physics.V(20, 5), KindTrail, 7, 1.0)

	cast := func(now float64, owner OwnerID) bool {
		_, ok := s.Raycast(forward(physics.V(0, 0), 100), Filter{
			ExcludeOwner: owner,
			GracePeriod:  grace,
			Now:          now,
		})
		return ok
	}

	assert.False(t, cast(1.0, 7), "excluded at creation")
	assert.False(t, cast(1.0+grace/2, 7), "excluded inside window")
	assert.True(t, cast(1.0+grace, 7), "included once the window closes")
	assert.True(t, cast(1.0, 8), "other cycles always see it")

	seg, _ := s.Get(own)
	assert.Equal(t, 1.0, seg.CreatedAt)
}

func TestRaycastKindMask(t *testing.T) {
	s := newTestStore(t)
	s.Register(physics.V(10, -5), physics.V(10, 5), KindBoundary, NoOwner, 0)
	trail := s.Register(physics.V(20, -5), physics.V(20, 5), KindTrail, 1, 0)

	hit, ok := s.Raycast(forward(physics.V(0, 0), 100), Filter{Kinds: MaskTrail})
	require.True(t, ok)
	assert.Equal(t, trail, hit.Segment.ID)

	hit, ok = s.Raycast(forward(physics.V(0, 0), 100), Filter{Kinds: MaskBoundary})
	require.True(t, ok)
	assert.Equal(t, KindBoundary, hit.Segment.Kind)
}

func TestRaycastDegenerateInputs(t *testing.T) {
	s := newTestStore(t)
	s.Register(physics.V(10, -5), physics.V(10, 5), KindTrail, 1, 0)
	s.Register(physics.V(5, 0), physics.V(5, 0), KindTrail, 1, 0)

	_, ok := s.Raycast(Ray{Origin: physics.V(0, 0), Direction: physics.Zero, MaxDistance: 100}, Filter{})
	assert.False(t, ok, "zero direction")

	_, ok = s.Raycast(Ray{Origin: physics.V(math.NaN(), 0), Direction: physics.V(1, 0), MaxDistance: 100}, Filter{})
	assert.False(t, ok, "nan origin")

	_, ok = s.Raycast(Ray{Origin: physics.V(0, 0), Direction: physics.V(1, 0), MaxDistance: math.NaN()}, Filter{})
	assert.False(t, ok, "nan range")

	hit, ok := s.Raycast(Ray{Origin: physics.V(0, 0), Direction: physics.V(2, 0), MaxDistance: 100}, Filter{})
	require.True(t, ok, "direction is normalised")
	assert.InDelta(t, 5.0, hit.Distance, 1e-9)
	assert.False(t, math.IsNaN(hit.Distance))
}

func TestRaycastSlidingAlongWall(t *testing.T) {
	s := newTestStore(t)
	id := s.Register(physics.V(60, 0), physics.V(200, 0), KindTrail, 1, 0)

	hit, ok := s.Raycast(forward(physics.V(0, 0), 100), Filter{})
	require.True(t, ok)
	assert.Equal(t, id, hit.Segment.ID)
	assert.InDelta(t, 60.0, hit.Distance, 1e-9)
}

func TestDistanceTo(t *testing.T) {
	s := newTestStore(t)
	assert.True(t, math.IsInf(s.DistanceTo(physics.V(0, 0), Filter{}), 1))

	s.Register(physics.V(10, -5), physics.V(10, 5), KindBoundary, NoOwner, 0)
	trail := s.Register(physics.V(0, 3), physics.V(5, 3), KindTrail, 1, 0)
	assert.InDelta(t, 3.0, s.DistanceTo(physics.V(0, 0), Filter{}), 1e-12)
	assert.InDelta(t, 10.0, s.DistanceTo(physics.V(0, 0), Filter{Kinds: MaskBoundary}), 1e-12)
	assert.InDelta(t, 10.0, s.DistanceTo(physics.V(0, 0), Filter{Skip: trail}), 1e-12)
	assert.InDelta(t, 10.0, s.DistanceTo(physics.V(0, 0), Filter{ExcludeOwner: 1, GracePeriod: 1, Now: 0.5}), 1e-12)
}

func TestRaycastScanCap(t *testing.T) {
	build := func(maxScan int) (*Store, []ID) {
		opts := DefaultOptions()
		opts.MaxScan = maxScan
		s, err := NewStore(opts, log.NewNop())
		require.NoError(t, err)
		ids := []ID{
			s.Register(physics.V(300, -50), physics.V(300, 50), KindBoundary, NoOwner, 0),
			s.Register(physics.V(200, -50), physics.V(200, 50), KindBoundary, NoOwner, 0),
			s.Register(physics.V(100, -50), physics.V(100, 50), KindBoundary, NoOwner, 0),
		}
		return s, ids
	}

	capped, ids := build(2)
	hit, ok := capped.Raycast(forward(physics.V(0, 0), 1000), Filter{})
	require.True(t, ok)
	assert.Equal(t, ids[1], hit.Segment.ID, "the closest wall lies past the cap")
	assert.InDelta(t, 200.0, hit.Distance, 1e-9)

	uncapped, ids := build(0)
	hit, ok = uncapped.Raycast(forward(physics.V(0, 0), 1000), Filter{})
	require.True(t, ok)
	assert.Equal(t, ids[2], hit.Segment.ID)
	assert.InDelta(t, 100.0, hit.Distance, 1e-9)

	bad := DefaultOptions()
	bad.MaxScan = -1
	_, err := NewStore(bad, log.NewNop())
	assert.ErrorIs(t, err, ErrInvalidOptions)
}
