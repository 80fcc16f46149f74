package walls

import (
	"fmt"
	"math"
	"sync"

	"github.com/zeusync/lightcycle/internal/core/observability/log"
	"github.com/zeusync/lightcycle/internal/core/systems/physics"
)

// Store holds every segment that can block movement. Segments are kept in
// registration order, which is also ascending ID order.
type Store struct {
	mu       sync.RWMutex
	opts     Options
	logger   log.Log
	nextID   ID
	segments []*Segment
	byID     map[ID]*Segment
}

func NewStore(opts Options, logger log.Log) (*Store, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNop()
	}
	return &Store{
		opts:   opts,
		logger: logger.With(log.String("component", "walls")),
		nextID: 1,
		byID:   make(map[ID]*Segment),
	}, nil
}

// Register appends a new segment. start may equal end.
func (s *Store) Register(start, end physics.Vec2, kind Kind, owner OwnerID, now float64) ID {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++

	seg := &Segment{
		ID:        id,
		Start:     start,
		End:       end,
		Kind:      kind,
		Owner:     owner,
		CreatedAt: now,
	}
	s.segments = append(s.segments, seg)
	s.byID[id] = seg

	s.logger.Debug("segment registered",
		log.Uint64("segment", uint64(id)),
		log.String("kind", kind.String()),
		log.Uint32("owner", uint32(owner)),
		log.Point("start", start.X, start.Y),
	)
	return id
}

// UpdateEnd moves the end point of a growing segment.
func (s *Store) UpdateEnd(id ID, end physics.Vec2) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seg, ok := s.byID[id]
	if !ok {
		s.logger.Error("update of unknown segment", log.Uint64("segment", uint64(id)))
		return fmt.Errorf("update end of %d: %w", id, ErrUnknownSegment)
	}
	if seg.Sealed {
		s.logger.Error("update of sealed segment", log.Uint64("segment", uint64(id)))
		return fmt.Errorf("update end of %d: %w", id, ErrSegmentSealed)
	}
	seg.End = end
	return nil
}

// Finalize seals a segment so its end can no longer move. Sealing twice is allowed.
func (s *Store) Finalize(id ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seg, ok := s.byID[id]
	if !ok {
		s.logger.Error("finalize of unknown segment", log.Uint64("segment", uint64(id)))
		return fmt.Errorf("finalize %d: %w", id, ErrUnknownSegment)
	}
	seg.Sealed = true
	return nil
}

func (s *Store) Remove(id ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		s.logger.Error("remove of unknown segment", log.Uint64("segment", uint64(id)))
		return fmt.Errorf("remove %d: %w", id, ErrUnknownSegment)
	}
	delete(s.byID, id)
	s.compact(func(seg *Segment) bool { return seg.ID == id })
	return nil
}

// RemoveAll deletes every segment drawn by owner and returns how many went.
// Unowned segments are never matched.
func (s *Store) RemoveAll(owner OwnerID) int {
	if owner == NoOwner {
		return 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := s.compact(func(seg *Segment) bool {
		if seg.Owner != owner {
			return false
		}
		delete(s.byID, seg.ID)
		return true
	})
	if removed > 0 {
		s.logger.Debug("trail cleared", log.Uint32("owner", uint32(owner)), log.Int("segments", removed))
	}
	return removed
}

// Clear drops every segment, rim included. IDs keep counting up.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.segments = nil
	s.byID = make(map[ID]*Segment)
}

func (s *Store) Get(id ID) (Segment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seg, ok := s.byID[id]
	if !ok {
		return Segment{}, false
	}
	return *seg, true
}

// Segments returns a copy of every live segment in registration order.
func (s *Store) Segments() []Segment {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Segment, len(s.segments))
	for i, seg := range s.segments {
		out[i] = *seg
	}
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.segments)
}

// compact drops the segments matching drop, keeping order. Caller holds the lock.
func (s *Store) compact(drop func(*Segment) bool) int {
	kept := s.segments[:0]
	removed := 0
	for _, seg := range s.segments {
		if drop(seg) {
			removed++
			continue
		}
		kept = append(kept, seg)
	}
	for i := len(kept); i < len(s.segments); i++ {
		s.segments[i] = nil
	}
	s.segments = kept
	return removed
}

// SpawnBoundary registers the closed rim of a half-width by half-height box
// centred on the origin and returns the four segment IDs.
func (s *Store) SpawnBoundary(halfWidth, halfHeight, now float64) ([]ID, error) {
	if !(halfWidth > 0) || !(halfHeight > 0) || math.IsInf(halfWidth, 0) || math.IsInf(halfHeight, 0) {
		return nil, fmt.Errorf("%w: boundary extents must be positive and finite", ErrInvalidOptions)
	}
	corners := [4]physics.Vec2{
		{X: -halfWidth, Y: -halfHeight},
		{X: halfWidth, Y: -halfHeight},
		{X: halfWidth, Y: halfHeight},
		{X: -halfWidth, Y: halfHeight},
	}
	ids := make([]ID, 0, len(corners))
	for i := range corners {
		id := s.Register(corners[i], corners[(i+1)%len(corners)], KindBoundary, NoOwner, now)
		ids = append(ids, id)
		_ = s.Finalize(id)
	}
	s.logger.Info("arena boundary spawned",
		log.Float64("half_width", halfWidth),
		log.Float64("half_height", halfHeight),
	)
	return ids, nil
}
