package arena

import (
	"context"

	"github.com/zeusync/lightcycle/internal/core/cycle"
	"github.com/zeusync/lightcycle/internal/core/walls"
	"github.com/zeusync/lightcycle/pkg/concurrent"
	"github.com/zeusync/lightcycle/pkg/sequence"
)

// SurveyReading is what one living cycle senses.
type SurveyReading struct {
	ID     walls.OwnerID `msgpack:"id"`
	Name   string        `msgpack:"name"`
	Senses cycle.Senses  `msgpack:"senses"`
}

// Survey casts the sensors of every living cycle in parallel. The casts only
// read the wall store, so Survey must not overlap with Tick.
func (a *Arena) Survey(ctx context.Context, maxRange float64, workers int) ([]SurveyReading, error) {
	alive := sequence.From(a.cycles).Filter((*cycle.Cycle).Alive)
	return concurrent.Map(ctx, alive, workers, func(_ context.Context, c *cycle.Cycle) (SurveyReading, error) {
		return SurveyReading{
			ID:     c.ID(),
			Name:   c.Name(),
			Senses: c.Sense(maxRange),
		}, nil
	})
}
