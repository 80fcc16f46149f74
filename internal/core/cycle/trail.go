package cycle

import (
	"github.com/zeusync/lightcycle/internal/core/observability/log"
	"github.com/zeusync/lightcycle/internal/core/walls"
	"github.com/zeusync/lightcycle/pkg/sequence"
)

// TrailLength sums the lengths of every live segment of this cycle.
func (c *Cycle) TrailLength() float64 {
	return sequence.Reduce(sequence.From(c.trail), 0.0, func(total float64, id walls.ID) float64 {
		if seg, ok := c.store.Get(id); ok {
			return total + seg.Length()
		}
		return total
	})
}

// evict drops whole segments from the old end of the trail while the trail is
// longer than MaxWallLength. The growing segment is never dropped.
func (c *Cycle) evict(now float64) int {
	limit := c.cfg.MaxWallLength
	if limit < 0 || len(c.trail) <= 1 {
		return 0
	}
	total := c.TrailLength()
	evicted := 0
	for total > limit && len(c.trail) > 1 {
		id := c.trail[0]
		seg, ok := c.store.Get(id)
		c.trail = c.trail[1:]
		if !ok {
			c.logger.Error("trail references missing segment", log.Uint64("segment", uint64(id)))
			continue
		}
		if err := c.store.Remove(id); err != nil {
			c.logger.Error("failed to evict segment", log.Error(err))
			continue
		}
		length := seg.Length()
		total -= length
		evicted++
		c.emit(Event{Type: EventTrailEvicted, Time: now, Segment: id, Length: length})
	}
	if evicted > 0 {
		c.logger.Debug("trail evicted",
			log.Int("segments", evicted),
			log.Float64("remaining", total),
		)
	}
	return evicted
}
