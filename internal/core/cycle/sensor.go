package cycle

import (
	"math"

	"github.com/zeusync/lightcycle/internal/core/systems/physics"
	"github.com/zeusync/lightcycle/internal/core/walls"
)

// Reading is one sensor ray result.
type Reading struct {
	Hit        bool     `msgpack:"hit"`
	Distance   float64  `msgpack:"distance"`
	IsOwnWall  bool     `msgpack:"own"`
	IsBoundary bool     `msgpack:"boundary"`
	Segment    walls.ID `msgpack:"segment"`
}

// Senses are the three rays an AI driver looks along plus the clearance
// around the cycle.
type Senses struct {
	Front   Reading `msgpack:"front"`
	Left    Reading `msgpack:"left"`
	Right   Reading `msgpack:"right"`
	Nearest float64 `msgpack:"nearest"`
}

// Cast queries the wall store the way the cycle itself would, ignoring its
// own freshest wall. A miss reports Distance equal to maxRange.
func (c *Cycle) Cast(origin, dir physics.Vec2, maxRange float64) Reading {
	hit, ok := c.store.Raycast(walls.Ray{
		Origin:      origin,
		Direction:   dir,
		MaxDistance: maxRange,
	}, c.sensorFilter())
	if !ok {
		return Reading{Distance: maxRange}
	}
	return Reading{
		Hit:        true,
		Distance:   hit.Distance,
		IsOwnWall:  hit.Segment.Owned(c.id),
		IsBoundary: hit.Segment.Kind == walls.KindBoundary,
		Segment:    hit.Segment.ID,
	}
}

// Sense casts forward, left and right from the cycle.
func (c *Cycle) Sense(maxRange float64) Senses {
	return sense(c, c.Cast, maxRange, func(p physics.Vec2) float64 {
		return c.store.DistanceTo(p, c.sensorFilter())
	})
}

// sensorFilter hides the growing segment and the owner's fresh walls.
func (c *Cycle) sensorFilter() walls.Filter {
	return walls.Filter{
		ExcludeOwner: c.id,
		GracePeriod:  c.cfg.SelfGracePeriod,
		Now:          c.clock,
		Skip:         c.current,
	}
}

func sense(body physics.Body, cast func(origin, dir physics.Vec2, maxRange float64) Reading, maxRange float64, clearance func(physics.Vec2) float64) Senses {
	pos, heading := body.Position(), body.Heading()
	s := Senses{
		Front: cast(pos, heading, maxRange),
		Left:  cast(pos, heading.Left(), maxRange),
		Right: cast(pos, heading.Right(), maxRange),
	}
	s.Nearest = math.Min(maxRange, clearance(pos))
	return s
}
