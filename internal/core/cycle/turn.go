package cycle

import (
	"fmt"
	"math"
	"strings"

	"github.com/zeusync/lightcycle/internal/core/observability/log"
	"github.com/zeusync/lightcycle/internal/core/rubber"
	"github.com/zeusync/lightcycle/internal/core/walls"
)

// Turn is a quarter turn request. Left is counter-clockwise.
type Turn int8

const (
	TurnLeft  Turn = 1
	TurnRight Turn = -1
)

func (t Turn) Valid() bool { return t == TurnLeft || t == TurnRight }

func (t Turn) Opposite() Turn { return -t }

func (t Turn) String() string {
	switch t {
	case TurnLeft:
		return "left"
	case TurnRight:
		return "right"
	default:
		return fmt.Sprintf("turn(%d)", int8(t))
	}
}

func ParseTurn(s string) (Turn, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return TurnLeft, nil
	case "right", "r":
		return TurnRight, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidTurn, s)
	}
}

func (t Turn) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTurn, int8(t))
	}
	return []byte(t.String()), nil
}

func (t *Turn) UnmarshalText(text []byte) error {
	parsed, err := ParseTurn(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// RequestTurn executes dir right away when the turn delays allow it and no
// earlier turn is waiting. Otherwise the request is queued: a request opposite
// to the newest queued turn cancels that turn, and a request that finds the
// queue full is dropped. Requests on a dead cycle are ignored.
func (c *Cycle) RequestTurn(dir Turn, now float64) error {
	if !dir.Valid() {
		return fmt.Errorf("request turn %d: %w", int8(dir), ErrInvalidTurn)
	}
	if !c.alive {
		return nil
	}
	c.clock = now

	if c.pending.IsEmpty() && c.CanTurn(dir, now) {
		c.execute(dir, now)
		return nil
	}
	if back, ok := c.pending.Back(); ok && back == dir.Opposite() {
		c.pending.PopBack()
		c.logger.Debug("queued turn cancelled", log.String("turn", back.String()))
		return nil
	}
	if !c.pending.PushBack(dir) {
		c.logger.Debug("turn queue saturated, request dropped",
			log.String("turn", dir.String()),
			log.Int("queued", c.pending.Len()),
		)
	}
	return nil
}

// CanTurn reports whether both turn delays have elapsed for dir.
func (c *Cycle) CanTurn(dir Turn, now float64) bool {
	same, opposite := c.lastLeft, c.lastRight
	if dir == TurnRight {
		same, opposite = c.lastRight, c.lastLeft
	}
	return now-same >= c.cfg.TurnDelay && now-opposite >= c.cfg.TurnDelayOpposite
}

// NextTurnTime is the earliest time at which dir may execute.
func (c *Cycle) NextTurnTime(dir Turn) float64 {
	same, opposite := c.lastLeft, c.lastRight
	if dir == TurnRight {
		same, opposite = c.lastRight, c.lastLeft
	}
	return math.Max(same+c.cfg.TurnDelay, opposite+c.cfg.TurnDelayOpposite)
}

// Pending lists the queued turns, oldest first.
func (c *Cycle) Pending() []Turn {
	return c.pending.Values()
}

// drain executes queued turns whose delay has elapsed, in order.
func (c *Cycle) drain(now float64) int {
	executed := 0
	for c.alive {
		dir, ok := c.pending.Front()
		if !ok || !c.CanTurn(dir, now) {
			break
		}
		c.pending.PopFront()
		c.execute(dir, now)
		executed++
	}
	return executed
}

// execute seals the growing segment, rotates the heading and starts a new
// segment at the current position.
func (c *Cycle) execute(dir Turn, now float64) {
	if cost := rubber.DigCost(c.cfg.Rubber, c.grinding, c.distanceToWall); cost > 0 {
		c.rubber = rubber.Clamp(c.cfg.Rubber, c.rubber-cost)
		if dir == TurnLeft {
			c.gapRight = c.distanceToWall
		} else {
			c.gapLeft = c.distanceToWall
		}
		c.logger.Debug("dig surcharge",
			log.String("turn", dir.String()),
			log.Float64("cost", cost),
			log.Float64("distance_to_wall", c.distanceToWall),
		)
	}

	if err := c.store.UpdateEnd(c.current, c.pos); err != nil {
		c.logger.Error("failed to close segment on turn", log.Error(err))
	}
	if err := c.store.Finalize(c.current); err != nil {
		c.logger.Error("failed to seal segment on turn", log.Error(err))
	}

	c.winding = c.axis.Turn(c.winding, int(dir))
	c.speed *= c.cfg.TurnSpeedFactor
	c.clampSpeed()

	c.current = c.store.Register(c.pos, c.pos, walls.KindTrail, c.id, now)
	c.trail = append(c.trail, c.current)

	c.lastTurn = now
	if dir == TurnLeft {
		c.lastLeft = now
	} else {
		c.lastRight = now
	}
	c.stats.Turns++

	c.emit(Event{Type: EventTurned, Time: now, Turn: dir, Segment: c.current})
}
