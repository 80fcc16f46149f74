package walls

import (
	"fmt"

	"github.com/zeusync/lightcycle/internal/core/systems/physics"
)

type Options struct {
	// Epsilon is the smallest hit distance counted as ahead of a ray origin.
	Epsilon float64 `yaml:"epsilon"`
	// ParallelEpsilon is the sine below which a ray and a segment are parallel.
	ParallelEpsilon float64 `yaml:"parallel_epsilon"`
	// CollinearTolerance is the perpendicular distance at which a parallel
	// segment is treated as lying on the ray.
	CollinearTolerance float64 `yaml:"collinear_tolerance"`
	// MaxScan caps the segments examined by a single raycast. Zero disables the cap.
	MaxScan int `yaml:"max_scan"`
}

func DefaultOptions() Options {
	d := physics.DefaultIntersectOptions()
	return Options{
		Epsilon:            d.Epsilon,
		ParallelEpsilon:    d.ParallelEpsilon,
		CollinearTolerance: d.CollinearTolerance,
		MaxScan:            1 << 16,
	}
}

func (o Options) Validate() error {
	switch {
	case o.Epsilon <= 0:
		return fmt.Errorf("%w: epsilon must be positive", ErrInvalidOptions)
	case o.ParallelEpsilon <= 0:
		return fmt.Errorf("%w: parallel_epsilon must be positive", ErrInvalidOptions)
	case o.CollinearTolerance < 0:
		return fmt.Errorf("%w: collinear_tolerance must not be negative", ErrInvalidOptions)
	case o.MaxScan < 0:
		return fmt.Errorf("%w: max_scan must not be negative", ErrInvalidOptions)
	}
	return nil
}

func (o Options) intersect() physics.IntersectOptions {
	return physics.IntersectOptions{
		Epsilon:            o.Epsilon,
		ParallelEpsilon:    o.ParallelEpsilon,
		CollinearTolerance: o.CollinearTolerance,
	}
}
