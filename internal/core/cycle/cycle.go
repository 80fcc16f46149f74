package cycle

import (
	"fmt"
	"math"

	"github.com/zeusync/lightcycle/internal/core/observability/log"
	"github.com/zeusync/lightcycle/internal/core/rubber"
	"github.com/zeusync/lightcycle/internal/core/systems/physics"
	"github.com/zeusync/lightcycle/internal/core/walls"
	"github.com/zeusync/lightcycle/pkg/sequence"
)

var _ physics.Body = (*Cycle)(nil)

// Spawn is where a cycle starts each life.
type Spawn struct {
	Position physics.Vec2
	Heading  physics.Vec2
}

type Stats struct {
	Distance float64 `msgpack:"distance"`
	Turns    int     `msgpack:"turns"`
	Deaths   int     `msgpack:"deaths"`
	Round    int     `msgpack:"round"`
}

// Cycle is the kinematic state of one lightcycle. It is mutated only through
// its own methods, which are not safe for concurrent use.
type Cycle struct {
	id       walls.OwnerID
	name     string
	cfg      Config
	axis     physics.Axis
	store    *walls.Store
	logger   log.Log
	listener Listener

	spawn Spawn
	clock float64

	pos      physics.Vec2
	winding  int
	speed    float64
	rubber   float64
	alive    bool
	grinding bool
	braking  bool
	brake    float64

	pending   *sequence.Ring[Turn]
	lastTurn  float64
	lastLeft  float64
	lastRight float64
	spawnTime float64

	distanceToWall float64
	gapLeft        float64
	gapRight       float64

	current walls.ID
	trail   []walls.ID // oldest first, current last

	stats Stats
}

type Option func(*Cycle)

func WithListener(l Listener) Option {
	return func(c *Cycle) { c.listener = l }
}

// New creates a dead cycle. Call Respawn to place it in the arena.
func New(id walls.OwnerID, name string, cfg Config, spawn Spawn, store *walls.Store, logger log.Log, opts ...Option) (*Cycle, error) {
	if id == walls.NoOwner {
		return nil, fmt.Errorf("%w: cycle id must be non-zero", ErrInvalidConfig)
	}
	if store == nil {
		return nil, fmt.Errorf("%w: wall store is required", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNop()
	}

	c := &Cycle{
		id:      id,
		name:    name,
		cfg:     cfg,
		axis:    physics.NewAxis(cfg.Windings),
		store:   store,
		logger:  logger.With(log.String("cycle", name), log.Uint32("cycle_id", uint32(id))),
		spawn:   spawn,
		pending: sequence.NewRing[Turn](cfg.TurnMemory),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.resetKinematics(math.Inf(-1))
	return c, nil
}

func (c *Cycle) ID() walls.OwnerID { return c.id }

func (c *Cycle) Name() string { return c.name }

func (c *Cycle) Config() Config { return c.cfg }

func (c *Cycle) Position() physics.Vec2 { return c.pos }

func (c *Cycle) Heading() physics.Vec2 { return c.axis.Direction(c.winding) }

func (c *Cycle) Speed() float64 { return c.speed }

func (c *Cycle) Rubber() float64 { return c.rubber }

func (c *Cycle) Alive() bool { return c.alive }

func (c *Cycle) Grinding() bool { return c.grinding }

func (c *Cycle) Braking() bool { return c.braking }

func (c *Cycle) Stats() Stats { return c.stats }

// DistanceToWall is the forward hit distance measured by the last step.
func (c *Cycle) DistanceToWall() float64 { return c.distanceToWall }

// CurrentSegment is the id of the growing segment, zero while dead.
func (c *Cycle) CurrentSegment() walls.ID { return c.current }

// Trail lists the live segment ids of this cycle, oldest first.
func (c *Cycle) Trail() []walls.ID {
	out := make([]walls.ID, len(c.trail))
	copy(out, c.trail)
	return out
}

// Vulnerable reports whether the cycle can be killed at now.
func (c *Cycle) Vulnerable(now float64) bool {
	return c.alive && now-c.spawnTime >= c.cfg.SpawnInvulnerability
}

// SetBraking toggles the brake input. Braking only has an effect while the
// brake reservoir is not empty.
func (c *Cycle) SetBraking(on bool) {
	c.braking = on
}

// SetRubber overrides the current rubber, clamped to the configured range.
func (c *Cycle) SetRubber(v float64) {
	c.rubber = rubber.Clamp(c.cfg.Rubber, v)
}

// Respawn clears any trail left from the previous life and starts a new one at
// the spawn point.
func (c *Cycle) Respawn(now float64) {
	if removed := c.store.RemoveAll(c.id); removed > 0 {
		c.logger.Debug("stale trail removed on respawn", log.Int("segments", removed))
	}
	c.resetKinematics(now)

	c.alive = true
	c.stats.Round++
	c.current = c.store.Register(c.pos, c.pos, walls.KindTrail, c.id, now)
	c.trail = append(c.trail[:0], c.current)

	c.logger.Info("cycle spawned",
		log.Int("round", c.stats.Round),
		log.Point("position", c.pos.X, c.pos.Y),
	)
	c.emit(Event{Type: EventSpawned, Time: now, Segment: c.current})
}

// Kill ends the current life. Killing a dead cycle does nothing.
func (c *Cycle) Kill(now float64, cause DeathCause, killer walls.OwnerID) {
	c.die(now, cause, killer, walls.Kind(0))
}

func (c *Cycle) die(now float64, cause DeathCause, killer walls.OwnerID, kind walls.Kind) {
	if !c.alive {
		return
	}
	c.clock = now
	if c.current != 0 {
		if err := c.store.UpdateEnd(c.current, c.pos); err != nil {
			c.logger.Warn("failed to close trail on death", log.Error(err))
		}
	}

	c.alive = false
	c.grinding = false
	c.braking = false
	c.pending.Clear()
	c.store.RemoveAll(c.id)
	c.trail = c.trail[:0]
	c.current = 0
	c.stats.Deaths++

	c.logger.Info("cycle died",
		log.String("cause", string(cause)),
		log.Uint32("killer", uint32(killer)),
		log.Bool("self_kill", killer == c.id),
		log.Point("position", c.pos.X, c.pos.Y),
	)
	c.emit(Event{
		Type:     EventDied,
		Time:     now,
		Cause:    cause,
		Killer:   killer,
		HitKind:  kind,
		SelfKill: killer == c.id,
	})
}

func (c *Cycle) resetKinematics(now float64) {
	c.clock = now
	c.pos = c.spawn.Position
	c.winding = c.axis.Winding(c.spawn.Heading)
	c.speed = c.cfg.SpeedBase
	c.rubber = c.cfg.Rubber.Max
	c.grinding = false
	c.braking = false
	c.brake = 1
	c.pending.Clear()
	c.lastTurn = math.Inf(-1)
	c.lastLeft = math.Inf(-1)
	c.lastRight = math.Inf(-1)
	c.spawnTime = now
	c.distanceToWall = math.Inf(1)
	c.gapLeft = 0
	c.gapRight = 0
	c.current = 0
	c.trail = c.trail[:0]
}

func (c *Cycle) emit(ev Event) {
	if c.listener == nil {
		return
	}
	ev.Cycle = c.id
	ev.Name = c.name
	ev.Position = c.pos
	c.listener(ev)
}

func (c *Cycle) clampSpeed() {
	c.speed = math.Max(c.cfg.SpeedMin, math.Min(c.cfg.SpeedMax, c.speed))
}
