package walls

import (
	"math"

	"github.com/zeusync/lightcycle/internal/core/observability/log"
	"github.com/zeusync/lightcycle/internal/core/systems/physics"
)

type Ray struct {
	Origin      physics.Vec2
	Direction   physics.Vec2
	MaxDistance float64
}

// Filter narrows a query. Segments owned by ExcludeOwner that are younger
// than GracePeriod at Now are ignored, as is the segment Skip.
type Filter struct {
	ExcludeOwner OwnerID
	GracePeriod  float64
	Now          float64
	Kinds        KindMask
	Skip         ID
}

func (f Filter) admits(seg *Segment) bool {
	if !f.Kinds.Has(seg.Kind) || (f.Skip != 0 && seg.ID == f.Skip) {
		return false
	}
	return !(seg.Owned(f.ExcludeOwner) && f.Now-seg.CreatedAt < f.GracePeriod)
}

type Hit struct {
	Distance float64
	Point    physics.Vec2
	Segment  Segment
}

// Raycast returns the closest segment hit strictly ahead of the origin and
// within MaxDistance. Equal distances resolve to the earliest registered segment.
func (s *Store) Raycast(ray Ray, filter Filter) (Hit, bool) {
	dir := ray.Direction.Normalized()
	if dir == physics.Zero || !ray.Origin.IsFinite() || math.IsNaN(ray.MaxDistance) || ray.MaxDistance <= 0 {
		return Hit{}, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	r := physics.Ray{Origin: ray.Origin, Direction: dir}
	opts := s.opts.intersect()

	var (
		best  *Segment
		bestT = ray.MaxDistance
	)
	for i, seg := range s.segments {
		if s.opts.MaxScan > 0 && i >= s.opts.MaxScan {
			s.logger.Warn("raycast scan cap reached", log.Int("cap", s.opts.MaxScan))
			break
		}
		if !filter.admits(seg) {
			continue
		}
		t, ok := physics.IntersectSegment(r, seg.Start, seg.End, opts)
		if !ok || t >= bestT {
			continue
		}
		best, bestT = seg, t
	}
	if best == nil {
		return Hit{}, false
	}
	return Hit{
		Distance: bestT,
		Point:    r.Origin.Add(dir.Scale(bestT)),
		Segment:  *best,
	}, true
}

// DistanceTo is the shortest distance from p to any segment the filter admits.
// It reports +Inf when nothing is admitted.
func (s *Store) DistanceTo(p physics.Vec2, filter Filter) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	best := math.Inf(1)
	for _, seg := range s.segments {
		if !filter.admits(seg) {
			continue
		}
		best = math.Min(best, physics.DistanceToSegment(p, seg.Start, seg.End))
	}
	return best
}
