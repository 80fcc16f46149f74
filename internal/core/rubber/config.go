package rubber

import (
	"errors"
	"fmt"
)

var ErrInvalidConfig = errors.New("invalid rubber configuration")

// Config holds the tunables of the elastic motion resolver. Distances are in
// world units, times in seconds.
type Config struct {
	MinWallDistance  float64 `yaml:"min_wall_distance"`
	GraceMinDistance float64 `yaml:"grace_min_distance"`
	TurnGracePeriod  float64 `yaml:"turn_grace_period"`

	Max       float64 `yaml:"max"`
	RegenRate float64 `yaml:"regen_rate"` // units per second

	CostBlocked      float64 `yaml:"cost_blocked"`
	CostBlockedGrace float64 `yaml:"cost_blocked_grace"`
	CostPartial      float64 `yaml:"cost_partial"`
	CostPartialGrace float64 `yaml:"cost_partial_grace"`

	// Fractions of the desired travel allowed while inside the no-go zone
	// during the turn grace window.
	GraceMoveFraction         float64 `yaml:"grace_move_fraction"`
	GraceNoRubberMoveFraction float64 `yaml:"grace_no_rubber_move_fraction"`

	DigRangeFactor float64 `yaml:"dig_range_factor"`
	DigMultiplier  float64 `yaml:"dig_multiplier"`

	// GraceOverridesDeath lets a cycle inside the turn grace window survive an
	// approach that would otherwise kill it with empty rubber.
	GraceOverridesDeath bool `yaml:"grace_overrides_death"`
}

func DefaultConfig() Config {
	return Config{
		MinWallDistance:           1,
		GraceMinDistance:          0.1,
		TurnGracePeriod:           0.15,
		Max:                       100,
		RegenRate:                 10,
		CostBlocked:               2,
		CostBlockedGrace:          0.1,
		CostPartial:               0.3,
		CostPartialGrace:          0.1,
		GraceMoveFraction:         0.5,
		GraceNoRubberMoveFraction: 0.3,
		DigRangeFactor:            5,
		DigMultiplier:             3,
		GraceOverridesDeath:       true,
	}
}

func (c Config) Validate() error {
	switch {
	case c.MinWallDistance < 0 || c.GraceMinDistance < 0:
		return fmt.Errorf("%w: wall distances must not be negative", ErrInvalidConfig)
	case c.GraceMinDistance > c.MinWallDistance:
		return fmt.Errorf("%w: grace_min_distance exceeds min_wall_distance", ErrInvalidConfig)
	case c.TurnGracePeriod < 0:
		return fmt.Errorf("%w: turn_grace_period must not be negative", ErrInvalidConfig)
	case c.Max < 0 || c.RegenRate < 0:
		return fmt.Errorf("%w: max and regen_rate must not be negative", ErrInvalidConfig)
	case c.CostBlocked < 0 || c.CostBlockedGrace < 0 || c.CostPartial < 0 || c.CostPartialGrace < 0:
		return fmt.Errorf("%w: cost multipliers must not be negative", ErrInvalidConfig)
	case c.GraceMoveFraction < 0 || c.GraceMoveFraction > 1,
		c.GraceNoRubberMoveFraction < 0 || c.GraceNoRubberMoveFraction > 1:
		return fmt.Errorf("%w: grace move fractions must be within [0,1]", ErrInvalidConfig)
	case c.DigRangeFactor < 0 || c.DigMultiplier < 0:
		return fmt.Errorf("%w: dig constants must not be negative", ErrInvalidConfig)
	}
	return nil
}

// EffectiveMinDistance is the closest legal approach, relaxed inside the turn grace window.
func (c Config) EffectiveMinDistance(inGrace bool) float64 {
	if inGrace {
		return c.GraceMinDistance
	}
	return c.MinWallDistance
}
