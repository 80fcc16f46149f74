package cycle

import (
	"fmt"

	"github.com/zeusync/lightcycle/internal/core/rubber"
)

type Config struct {
	SpeedMin        float64 `yaml:"speed_min"`
	SpeedMax        float64 `yaml:"speed_max"`
	SpeedBase       float64 `yaml:"speed_base"`
	SpeedDecayBelow float64 `yaml:"speed_decay_below"` // 1/s, pulls slow cycles up to base
	SpeedDecayAbove float64 `yaml:"speed_decay_above"` // 1/s, pulls fast cycles down to base

	Windings          int     `yaml:"windings"`
	TurnDelay         float64 `yaml:"turn_delay"`          // same direction
	TurnDelayOpposite float64 `yaml:"turn_delay_opposite"` // reversing direction
	TurnMemory        int     `yaml:"turn_memory"`
	TurnSpeedFactor   float64 `yaml:"turn_speed_factor"`

	Rubber rubber.Config `yaml:"rubber"`
	Boost  BoostConfig   `yaml:"boost"`
	Brake  BrakeConfig   `yaml:"brake"`

	// MaxWallLength bounds the trail of one cycle. Negative means unbounded.
	MaxWallLength float64 `yaml:"max_wall_length"`
	// SelfGracePeriod is how long a fresh segment is invisible to its owner.
	SelfGracePeriod      float64 `yaml:"self_grace_period"`
	SpawnInvulnerability float64 `yaml:"spawn_invulnerability"`
	// LookAhead extends the forward raycast past the travel of one step.
	LookAhead float64 `yaml:"look_ahead"`

	Bounds Bounds `yaml:"-"`
}

type BoostConfig struct {
	Acceleration float64 `yaml:"acceleration"`
	Near         float64 `yaml:"near"`
	Offset       float64 `yaml:"offset"`
	Slingshot    float64 `yaml:"slingshot"`
}

type BrakeConfig struct {
	Deceleration float64 `yaml:"deceleration"`
	DrainRate    float64 `yaml:"drain_rate"` // reservoir per second while braking
	RegenRate    float64 `yaml:"regen_rate"` // reservoir per second while not braking
}

// Bounds is the hard playable box centred on the origin. A non-positive
// extent leaves the cycle unbounded.
type Bounds struct {
	HalfWidth       float64
	HalfHeight      float64
	EscapeTolerance float64
}

func (b Bounds) Enabled() bool { return b.HalfWidth > 0 && b.HalfHeight > 0 }

func DefaultConfig() Config {
	return Config{
		SpeedMin:             100,
		SpeedMax:             2000,
		SpeedBase:            800,
		SpeedDecayBelow:      5,
		SpeedDecayAbove:      0.1,
		Windings:             4,
		TurnDelay:            0.1,
		TurnDelayOpposite:    0.1,
		TurnMemory:           3,
		TurnSpeedFactor:      0.95,
		Rubber:               rubber.DefaultConfig(),
		Boost:                DefaultBoostConfig(),
		Brake:                DefaultBrakeConfig(),
		MaxWallLength:        -1,
		SelfGracePeriod:      0.3,
		SpawnInvulnerability: 2,
		LookAhead:            50,
	}
}

func DefaultBoostConfig() BoostConfig {
	return BoostConfig{
		Acceleration: 50000,
		Near:         400,
		Offset:       10,
		Slingshot:    2,
	}
}

func DefaultBrakeConfig() BrakeConfig {
	return BrakeConfig{
		Deceleration: 400,
		DrainRate:    0.5,
		RegenRate:    0.2,
	}
}

func (c Config) Validate() error {
	switch {
	case c.SpeedMin < 0:
		return fmt.Errorf("%w: speed_min must not be negative", ErrInvalidConfig)
	case c.SpeedMin > c.SpeedMax:
		return fmt.Errorf("%w: speed_min exceeds speed_max", ErrInvalidConfig)
	case c.SpeedBase < c.SpeedMin || c.SpeedBase > c.SpeedMax:
		return fmt.Errorf("%w: speed_base outside [speed_min, speed_max]", ErrInvalidConfig)
	case c.SpeedDecayBelow < 0 || c.SpeedDecayAbove < 0:
		return fmt.Errorf("%w: speed decay rates must not be negative", ErrInvalidConfig)
	case c.Windings < 2:
		return fmt.Errorf("%w: windings must be at least 2", ErrInvalidConfig)
	case c.TurnDelay < 0 || c.TurnDelayOpposite < 0:
		return fmt.Errorf("%w: turn delays must not be negative", ErrInvalidConfig)
	case c.TurnMemory < 0:
		return fmt.Errorf("%w: turn_memory must not be negative", ErrInvalidConfig)
	case c.TurnSpeedFactor <= 0 || c.TurnSpeedFactor > 1:
		return fmt.Errorf("%w: turn_speed_factor must be within (0,1]", ErrInvalidConfig)
	case c.Boost.Near < 0 || c.Boost.Offset <= 0 || c.Boost.Slingshot < 1:
		return fmt.Errorf("%w: boost near/offset/slingshot out of range", ErrInvalidConfig)
	case c.Brake.Deceleration < 0 || c.Brake.DrainRate < 0 || c.Brake.RegenRate < 0:
		return fmt.Errorf("%w: brake rates must not be negative", ErrInvalidConfig)
	case c.SelfGracePeriod < 0 || c.SpawnInvulnerability < 0 || c.LookAhead < 0:
		return fmt.Errorf("%w: grace, invulnerability and look_ahead must not be negative", ErrInvalidConfig)
	case c.Bounds.EscapeTolerance < 0:
		return fmt.Errorf("%w: escape tolerance must not be negative", ErrInvalidConfig)
	}
	if err := c.Rubber.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
