package cycle

import "github.com/zeusync/lightcycle/internal/core/walls"

// Snapshot is a read-only view of a cycle for presentation and replay.
type Snapshot struct {
	ID             walls.OwnerID `msgpack:"id"`
	Name           string        `msgpack:"name"`
	X              float64       `msgpack:"x"`
	Y              float64       `msgpack:"y"`
	HeadingX       float64       `msgpack:"hx"`
	HeadingY       float64       `msgpack:"hy"`
	Speed          float64       `msgpack:"speed"`
	Rubber         float64       `msgpack:"rubber"`
	RubberFraction float64       `msgpack:"rubber_fraction"`
	Brake          float64       `msgpack:"brake"`
	Alive          bool          `msgpack:"alive"`
	Grinding       bool          `msgpack:"grinding"`
	Braking        bool          `msgpack:"braking"`
	DistanceToWall float64       `msgpack:"distance_to_wall"`
	GapLeft        float64       `msgpack:"gap_left"`
	GapRight       float64       `msgpack:"gap_right"`
	Pending        []Turn        `msgpack:"pending"`
	Stats          Stats         `msgpack:"stats"`
}

func (c *Cycle) Snapshot() Snapshot {
	heading := c.Heading()
	fraction := 0.0
	if c.cfg.Rubber.Max > 0 {
		fraction = c.rubber / c.cfg.Rubber.Max
	}
	return Snapshot{
		ID:             c.id,
		Name:           c.name,
		X:              c.pos.X,
		Y:              c.pos.Y,
		HeadingX:       heading.X,
		HeadingY:       heading.Y,
		Speed:          c.speed,
		Rubber:         c.rubber,
		RubberFraction: fraction,
		Brake:          c.brake,
		Alive:          c.alive,
		Grinding:       c.grinding,
		Braking:        c.braking,
		DistanceToWall: c.distanceToWall,
		GapLeft:        c.gapLeft,
		GapRight:       c.gapRight,
		Pending:        c.pending.Values(),
		Stats:          c.stats,
	}
}
