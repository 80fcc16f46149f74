package arena

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/zeusync/lightcycle/internal/core/cycle"
	"github.com/zeusync/lightcycle/internal/core/walls"
	"github.com/zeusync/lightcycle/pkg/generic"
)

// SegmentView is the presentation copy of a wall segment.
type SegmentView struct {
	ID        uint64  `msgpack:"id"`
	StartX    float64 `msgpack:"sx"`
	StartY    float64 `msgpack:"sy"`
	EndX      float64 `msgpack:"ex"`
	EndY      float64 `msgpack:"ey"`
	Kind      string  `msgpack:"kind"`
	Owner     uint32  `msgpack:"owner"`
	CreatedAt float64 `msgpack:"created_at"`
	Sealed    bool    `msgpack:"sealed"`
}

// Snapshot is a read-only view of the whole arena at one tick.
type Snapshot struct {
	RunID    string           `msgpack:"run_id"`
	Tick     uint64           `msgpack:"tick"`
	Time     float64          `msgpack:"time"`
	Cycles   []cycle.Snapshot `msgpack:"cycles"`
	Segments []SegmentView    `msgpack:"segments"`
}

func (a *Arena) Snapshot() Snapshot {
	snap := Snapshot{
		RunID:  a.runID,
		Tick:   a.tick,
		Time:   a.now,
		Cycles: make([]cycle.Snapshot, 0, len(a.cycles)),
	}
	for _, c := range a.cycles {
		snap.Cycles = append(snap.Cycles, c.Snapshot())
	}
	segs := a.store.Segments()
	snap.Segments = make([]SegmentView, 0, len(segs))
	for _, s := range segs {
		snap.Segments = append(snap.Segments, viewOf(s))
	}
	return snap
}

func viewOf(s walls.Segment) SegmentView {
	return SegmentView{
		ID:        uint64(s.ID),
		StartX:    s.Start.X,
		StartY:    s.Start.Y,
		EndX:      s.End.X,
		EndY:      s.End.Y,
		Kind:      s.Kind.String(),
		Owner:     uint32(s.Owner),
		CreatedAt: s.CreatedAt,
		Sealed:    s.Sealed,
	}
}

var digestBuffers = generic.NewResettingPool(
	func() *[]byte {
		b := make([]byte, 0, 4096)
		return &b
	},
	func(b *[]byte) *[]byte {
		*b = (*b)[:0]
		return b
	},
)

// Digest hashes the simulation state: clock, cycle kinematics and every live
// segment. Two runs with the same config and inputs produce the same digest.
// The run id is not part of the digest.
func (a *Arena) Digest() uint64 {
	buf := digestBuffers.Get()
	defer digestBuffers.Put(buf)

	b := *buf
	b = binary.LittleEndian.AppendUint64(b, a.tick)
	b = appendFloat(b, a.now)
	for _, c := range a.cycles {
		s := c.Snapshot()
		b = binary.LittleEndian.AppendUint32(b, uint32(s.ID))
		for _, f := range [...]float64{s.X, s.Y, s.HeadingX, s.HeadingY, s.Speed, s.Rubber, s.Brake, s.Stats.Distance} {
			b = appendFloat(b, f)
		}
		b = append(b, boolByte(s.Alive), boolByte(s.Grinding), byte(len(s.Pending)))
		b = binary.LittleEndian.AppendUint32(b, uint32(s.Stats.Turns))
		b = binary.LittleEndian.AppendUint32(b, uint32(s.Stats.Deaths))
	}
	for _, s := range a.store.Segments() {
		b = binary.LittleEndian.AppendUint64(b, uint64(s.ID))
		for _, f := range [...]float64{s.Start.X, s.Start.Y, s.End.X, s.End.Y, s.CreatedAt} {
			b = appendFloat(b, f)
		}
		b = append(b, byte(s.Kind), boolByte(s.Sealed))
		b = binary.LittleEndian.AppendUint32(b, uint32(s.Owner))
	}
	*buf = b
	return xxhash.Sum64(b)
}

func appendFloat(b []byte, f float64) []byte {
	return binary.LittleEndian.AppendUint64(b, math.Float64bits(f))
}

func boolByte(v bool) byte {
	if v {
		return 1
	}
	return 0
}
