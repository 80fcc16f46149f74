package cycle

import (
	"math"

	"github.com/zeusync/lightcycle/internal/core/observability/log"
	"github.com/zeusync/lightcycle/internal/core/rubber"
	"github.com/zeusync/lightcycle/internal/core/systems/physics"
	"github.com/zeusync/lightcycle/internal/core/walls"
)

// StepReport summarises one call to Step.
type StepReport struct {
	Turns    int
	Travel   float64
	Consumed float64
	Boost    float64
	Grinding bool
	Died     bool
	Evicted  int
}

// Step advances the cycle by dt seconds ending at now. The phases run in a
// fixed order: queued turns, rubber regeneration, wall boost, speed
// relaxation and braking, collision resolved movement, boundary clamp, trail
// update and eviction.
func (c *Cycle) Step(now, dt float64) StepReport {
	var report StepReport
	if !c.alive || !(dt > 0) {
		return report
	}
	c.clock = now

	if c.escaped(now) {
		report.Died = true
		return report
	}

	report.Turns = c.drain(now)

	c.rubber = rubber.Regenerate(c.cfg.Rubber, c.rubber, dt, c.grinding)

	if !c.grinding {
		report.Boost = c.boost(now, dt)
	}

	c.relaxSpeed(dt)

	outcome, hit, hitOK := c.resolveForward(now, dt)
	c.rubber = rubber.Clamp(c.cfg.Rubber, c.rubber-outcome.Consumed)
	c.grinding = outcome.Grinding
	report.Consumed = outcome.Consumed
	report.Grinding = outcome.Grinding
	if outcome.Killed {
		killer := walls.NoOwner
		kind := walls.KindBoundary
		if hitOK {
			killer, kind = hit.Segment.Owner, hit.Segment.Kind
		}
		c.die(now, CauseCollision, killer, kind)
		report.Died = true
		return report
	}

	c.pos = c.pos.Add(c.Heading().Scale(outcome.Travel))
	report.Travel = outcome.Travel
	if c.escaped(now) {
		report.Died = true
		return report
	}

	if err := c.store.UpdateEnd(c.current, c.pos); err != nil {
		c.logger.Error("failed to grow segment", log.Error(err))
	}
	c.stats.Distance += outcome.Travel

	report.Evicted = c.evict(now)
	return report
}

// escaped clamps the cycle back into bounds and kills it when it was further
// out than the escape tolerance.
func (c *Cycle) escaped(now float64) bool {
	b := c.cfg.Bounds
	if !b.Enabled() {
		return false
	}
	clamped, excess := physics.ClampToBox(c.pos, b.HalfWidth, b.HalfHeight)
	if excess == 0 {
		return false
	}
	if excess > b.EscapeTolerance {
		c.logger.Warn("cycle escaped arena bounds", log.Float64("excess", excess))
		c.die(now, CauseBoundaryEscape, walls.NoOwner, walls.KindBoundary)
		return true
	}
	c.logger.Debug("cycle clamped to arena bounds", log.Float64("excess", excess))
	c.pos = clamped
	return false
}

// boost adds speed from trail walls running alongside the cycle.
func (c *Cycle) boost(now, dt float64) float64 {
	cfg := c.cfg.Boost
	if cfg.Acceleration == 0 || cfg.Near <= 0 {
		return 0
	}
	heading := c.Heading()

	accel, sides := 0.0, 0
	for _, dir := range [2]physics.Vec2{heading.Left(), heading.Right()} {
		hit, ok := c.store.Raycast(walls.Ray{
			Origin:      c.pos,
			Direction:   dir,
			MaxDistance: cfg.Near,
		}, walls.Filter{
			ExcludeOwner: c.id,
			GracePeriod:  c.cfg.SelfGracePeriod,
			Now:          now,
			Kinds:        walls.MaskTrail,
		})
		if !ok {
			continue
		}
		accel += cfg.Acceleration * (1/(hit.Distance+cfg.Offset) - 1/(cfg.Near+cfg.Offset))
		sides++
	}
	if sides == 2 {
		accel *= cfg.Slingshot
	}
	if accel <= 0 {
		return 0
	}
	before := c.speed
	c.speed = math.Min(c.speed+accel*dt, c.cfg.SpeedMax)
	return c.speed - before
}

// relaxSpeed pulls the speed toward base and applies the brake.
func (c *Cycle) relaxSpeed(dt float64) {
	base := c.cfg.SpeedBase
	if c.speed > base {
		c.speed -= (c.speed - base) * math.Min(1, c.cfg.SpeedDecayAbove*dt)
	} else {
		c.speed += (base - c.speed) * math.Min(1, c.cfg.SpeedDecayBelow*dt)
	}

	brake := c.cfg.Brake
	if c.braking && c.brake > 0 {
		c.speed -= brake.Deceleration * dt
		c.brake = math.Max(0, c.brake-brake.DrainRate*dt)
	} else if !c.braking {
		c.brake = math.Min(1, c.brake+brake.RegenRate*dt)
	}
	c.clampSpeed()
}

// resolveForward casts ahead and lets the rubber resolver decide the move.
// The hard bounds act as an implicit wall.
func (c *Cycle) resolveForward(now, dt float64) (rubber.Outcome, walls.Hit, bool) {
	heading := c.Heading()
	desired := c.speed * dt
	inGrace := now-c.lastTurn < c.cfg.Rubber.TurnGracePeriod
	reach := desired + math.Max(c.cfg.LookAhead, c.cfg.Rubber.MinWallDistance)

	hit, ok := c.store.Raycast(walls.Ray{
		Origin:      c.pos,
		Direction:   heading,
		MaxDistance: reach,
	}, walls.Filter{
		ExcludeOwner: c.id,
		GracePeriod:  c.cfg.SelfGracePeriod,
		Now:          now,
	})

	dist := math.Inf(1)
	if ok {
		dist = hit.Distance
	}
	if b := c.cfg.Bounds; b.Enabled() {
		edge := physics.ExitDistance(physics.Ray{Origin: c.pos, Direction: heading}, b.HalfWidth, b.HalfHeight)
		if edge < dist && edge <= reach {
			dist = edge
			ok = false
		}
	}
	hasHit := !math.IsInf(dist, 1)
	c.distanceToWall = dist

	outcome := rubber.Resolve(c.cfg.Rubber, rubber.Input{
		Desired:    desired,
		Hit:        dist,
		HasHit:     hasHit,
		Rubber:     c.rubber,
		Vulnerable: c.Vulnerable(now),
		InGrace:    inGrace,
	})
	return outcome, hit, ok
}
