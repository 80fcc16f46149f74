package walls

import (
	"fmt"

	"github.com/zeusync/lightcycle/internal/core/systems/physics"
)

// ID identifies a registered segment. IDs start at 1 and are never reused
// within a store.
type ID uint64

// OwnerID identifies the cycle that drew a segment. NoOwner marks walls that
// belong to nobody, such as the arena rim.
type OwnerID uint32

const NoOwner OwnerID = 0

type Kind uint8

const (
	KindBoundary Kind = iota + 1
	KindTrail
)

func (k Kind) String() string {
	switch k {
	case KindBoundary:
		return "boundary"
	case KindTrail:
		return "trail"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// KindMask selects segment kinds in a query. The zero mask selects every kind.
type KindMask uint8

const (
	MaskAll      KindMask = 0
	MaskBoundary KindMask = 1 << KindBoundary
	MaskTrail    KindMask = 1 << KindTrail
)

func (m KindMask) Has(k Kind) bool {
	return m == MaskAll || m&(1<<k) != 0
}

// Segment is a straight wall piece. Only End changes after registration and
// only until the segment is sealed.
type Segment struct {
	ID        ID
	Start     physics.Vec2
	End       physics.Vec2
	Kind      Kind
	Owner     OwnerID
	CreatedAt float64
	Sealed    bool
}

func (s Segment) Length() float64 { return physics.Distance(s.Start, s.End) }

// Owned reports whether the segment belongs to owner.
func (s Segment) Owned(owner OwnerID) bool {
	return owner != NoOwner && s.Owner == owner
}
