package cycle

import (
	"github.com/zeusync/lightcycle/internal/core/systems/physics"
	"github.com/zeusync/lightcycle/internal/core/walls"
)

type EventType string

const (
	EventSpawned      EventType = "cycle.spawned"
	EventTurned       EventType = "cycle.turned"
	EventDied         EventType = "cycle.died"
	EventTrailEvicted EventType = "cycle.trail_evicted"
)

type DeathCause string

const (
	CauseCollision      DeathCause = "collision"
	CauseBoundaryEscape DeathCause = "boundary_escape"
	CauseExternal       DeathCause = "external"
)

// Event describes a lifecycle change of one cycle. Fields that do not apply to
// the event type are left zero.
type Event struct {
	Type     EventType
	Cycle    walls.OwnerID
	Name     string
	Time     float64
	Position physics.Vec2

	Turn    Turn
	Segment walls.ID
	Length  float64

	Cause    DeathCause
	Killer   walls.OwnerID
	HitKind  walls.Kind
	SelfKill bool
}

// Listener receives events synchronously from inside the step that caused them.
type Listener func(Event)
