package rubber

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name string
		in   Input
		want Outcome
	}{
		{
			name: "no wall ahead",
			in:   Input{Desired: 10, Rubber: 50, Vulnerable: true},
			want: Outcome{Travel: 10, Safe: math.Inf(1)},
		},
		{
			name: "wall beyond reach",
			in:   Input{Desired: 10, Hit: 11.5, HasHit: true, Rubber: 50, Vulnerable: true},
			want: Outcome{Travel: 10, Safe: math.Inf(1)},
		},
		{
			name: "partial with rubber",
			in:   Input{Desired: 10, Hit: 6, HasHit: true, Rubber: 50, Vulnerable: true},
			want: Outcome{Travel: 5, Consumed: 5 * 0.3, Grinding: true, Safe: 5},
		},
		{
			name: "partial without rubber closes the gap",
			in:   Input{Desired: 10, Hit: 6, HasHit: true, Vulnerable: true},
			want: Outcome{Travel: 5, Grinding: true, Safe: 5},
		},
		{
			name: "partial without rubber at the no-go edge kills",
			in:   Input{Desired: 10, Hit: 1, HasHit: true, Vulnerable: true},
			want: Outcome{Grinding: true, Killed: true, Safe: 0},
		},
		{
			name: "partial without rubber while invulnerable clamps",
			in:   Input{Desired: 10, Hit: 6, HasHit: true},
			want: Outcome{Travel: 5, Grinding: true, Safe: 5},
		},
		{
			name: "blocked with rubber stops",
			in:   Input{Desired: 10, Hit: 0.5, HasHit: true, Rubber: 50, Vulnerable: true},
			want: Outcome{Consumed: 0.5 * 2, Grinding: true, Safe: -0.5},
		},
		{
			name: "blocked without rubber kills",
			in:   Input{Desired: 10, Hit: 0.5, HasHit: true, Vulnerable: true},
			want: Outcome{Grinding: true, Killed: true, Safe: -0.5},
		},
		{
			name: "blocked in grace squeezes",
			in:   Input{Desired: 10, Hit: 0.05, HasHit: true, Rubber: 50, Vulnerable: true, InGrace: true},
			want: Outcome{Travel: 5, Consumed: 0.05 * 0.1, Grinding: true, Safe: 0.05 - 0.1},
		},
		{
			name: "blocked in grace without rubber survives",
			in:   Input{Desired: 10, Hit: 0.05, HasHit: true, Vulnerable: true, InGrace: true},
			want: Outcome{Travel: 3, Grinding: true, Safe: 0.05 - 0.1},
		},
		{
			name: "consumption capped by available rubber",
			in:   Input{Desired: 10, Hit: 2, HasHit: true, Rubber: 0.25, Vulnerable: true},
			want: Outcome{Travel: 1, Consumed: 0.25, Grinding: true, Safe: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(cfg, tt.in)
			assert.InDelta(t, tt.want.Travel, got.Travel, 1e-9)
			assert.InDelta(t, tt.want.Consumed, got.Consumed, 1e-9)
			assert.Equal(t, tt.want.Grinding, got.Grinding)
			assert.Equal(t, tt.want.Killed, got.Killed)
			if math.IsInf(tt.want.Safe, 1) {
				assert.True(t, math.IsInf(got.Safe, 1))
			} else {
				assert.InDelta(t, tt.want.Safe, got.Safe, 1e-9)
			}
		})
	}
}

func TestResolveGracePolicyOff(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GraceOverridesDeath = false

	got := Resolve(cfg, Input{Desired: 10, Hit: 0.05, HasHit: true, Vulnerable: true, InGrace: true})
	assert.True(t, got.Killed)

	got = Resolve(cfg, Input{Desired: 10, Hit: 3, HasHit: true, Vulnerable: true, InGrace: true})
	assert.False(t, got.Killed)
	assert.InDelta(t, 3-cfg.GraceMinDistance, got.Travel, 1e-9)

	got = Resolve(cfg, Input{Desired: 10, Hit: cfg.GraceMinDistance, HasHit: true, Vulnerable: true, InGrace: true})
	assert.True(t, got.Killed)
}

// A cycle without rubber keeps closing in step by step and only dies once it
// sits on the minimum wall distance.
func TestResolveApproachWithoutRubber(t *testing.T) {
	cfg := DefaultConfig()

	hit, steps := 25.0, 0
	for ; steps < 10; steps++ {
		got := Resolve(cfg, Input{Desired: 10, Hit: hit, HasHit: true, Vulnerable: true})
		if got.Killed {
			break
		}
		hit -= got.Travel
	}
	assert.Equal(t, 3, steps)
	assert.InDelta(t, cfg.MinWallDistance, hit, 1e-9)
}

func TestResolveNeverProducesInvalidNumbers(t *testing.T) {
	cfg := DefaultConfig()
	for _, in := range []Input{
		{Desired: math.NaN(), Hit: 5, HasHit: true, Rubber: 10},
		{Desired: math.Inf(1), Hit: 5, HasHit: true, Rubber: 10},
		{Desired: -4, Hit: 5, HasHit: true, Rubber: 10},
		{Desired: 10, Hit: math.NaN(), HasHit: true, Rubber: 10},
	} {
		got := Resolve(cfg, in)
		assert.False(t, math.IsNaN(got.Travel))
		assert.False(t, math.IsNaN(got.Consumed))
		assert.GreaterOrEqual(t, got.Travel, 0.0)
		assert.LessOrEqual(t, got.Consumed, in.Rubber)
	}
}

func TestDigCost(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 0.0, DigCost(cfg, false, 1))
	assert.Equal(t, 0.0, DigCost(cfg, true, 5))
	assert.InDelta(t, 3*(5-2), DigCost(cfg, true, 2), 1e-12)
	assert.InDelta(t, 15.0, DigCost(cfg, true, -1), 1e-12)
}

func TestRegenerateAndClamp(t *testing.T) {
	cfg := DefaultConfig()

	assert.InDelta(t, 51.0, Regenerate(cfg, 50, 0.1, false), 1e-12)
	assert.Equal(t, 50.0, Regenerate(cfg, 50, 0.1, true))
	assert.Equal(t, cfg.Max, Regenerate(cfg, cfg.Max-0.01, 1, false))

	assert.Equal(t, 0.0, Clamp(cfg, -3))
	assert.Equal(t, cfg.Max, Clamp(cfg, cfg.Max+3))
	assert.Equal(t, 0.0, Clamp(cfg, math.NaN()))
	assert.Equal(t, Clamp(cfg, Clamp(cfg, 400)), Clamp(cfg, 400))
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())

	cfg := DefaultConfig()
	cfg.GraceMinDistance = 2
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)

	cfg = DefaultConfig()
	cfg.GraceMoveFraction = 1.5
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}
