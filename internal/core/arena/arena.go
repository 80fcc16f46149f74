package arena

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zeusync/lightcycle/internal/core/cycle"
	"github.com/zeusync/lightcycle/internal/core/events/bus"
	"github.com/zeusync/lightcycle/internal/core/observability/log"
	"github.com/zeusync/lightcycle/internal/core/walls"
	"github.com/zeusync/lightcycle/pkg/sequence"
)

// Arena owns the wall store, the cycles and the simulation clock. Cycles step
// in spawn order every tick, so a cycle sees walls that earlier cycles drew in
// the same tick. An Arena is not safe for concurrent use.
type Arena struct {
	cfg    Config
	runID  string
	logger log.Log
	bus    bus.EventBus
	store  *walls.Store

	cycles  []*cycle.Cycle
	byID    map[walls.OwnerID]*cycle.Cycle
	byName  map[string]*cycle.Cycle
	scripts map[walls.OwnerID][]ScriptedTurn
	nextID  walls.OwnerID

	tick uint64
	now  float64
}

// CycleReport is the outcome of one cycle in one tick.
type CycleReport struct {
	ID     walls.OwnerID
	Name   string
	Step   cycle.StepReport
	Alive  bool
	Speed  float64
	Rubber float64
}

type TickReport struct {
	Tick   uint64
	Time   float64
	Cycles []CycleReport
	Deaths int
}

func New(cfg Config, logger log.Log, eventBus bus.EventBus) (*Arena, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.NewNop()
	}
	if eventBus == nil {
		eventBus = bus.New()
	}

	runID := uuid.NewString()
	logger = logger.With(log.String("run", runID))

	store, err := walls.NewStore(cfg.Walls, logger)
	if err != nil {
		return nil, fmt.Errorf("create wall store: %w", err)
	}
	if _, err = store.SpawnBoundary(cfg.HalfWidth, cfg.HalfHeight, 0); err != nil {
		return nil, fmt.Errorf("spawn boundary: %w", err)
	}

	a := &Arena{
		cfg:     cfg,
		runID:   runID,
		logger:  logger.With(log.String("component", "arena")),
		bus:     eventBus,
		store:   store,
		byID:    make(map[walls.OwnerID]*cycle.Cycle),
		byName:  make(map[string]*cycle.Cycle),
		scripts: make(map[walls.OwnerID][]ScriptedTurn),
		nextID:  1,
	}
	for _, sc := range cfg.Spawns {
		if _, err = a.Spawn(sc); err != nil {
			return nil, err
		}
	}
	return a, nil
}

// Spawn adds a cycle and places it at its spawn point right away.
func (a *Arena) Spawn(sc SpawnConfig) (*cycle.Cycle, error) {
	if err := a.cfg.validateSpawn(sc); err != nil {
		return nil, err
	}
	if _, dup := a.byName[sc.Name]; dup {
		return nil, fmt.Errorf("spawn %q: %w", sc.Name, ErrDuplicateName)
	}
	spawn, err := sc.Spawn()
	if err != nil {
		return nil, err
	}

	id := a.nextID
	c, err := cycle.New(id, sc.Name, a.cfg.CycleConfig(), spawn, a.store, a.logger,
		cycle.WithListener(a.publish))
	if err != nil {
		return nil, fmt.Errorf("spawn %q: %w", sc.Name, err)
	}
	a.nextID++

	a.cycles = append(a.cycles, c)
	a.byID[id] = c
	a.byName[sc.Name] = c
	if len(sc.Script) > 0 {
		a.scripts[id] = append([]ScriptedTurn(nil), sc.Script...)
	}
	c.Respawn(a.now)
	return c, nil
}

// Tick advances the clock by one dt and steps every cycle once.
func (a *Arena) Tick() TickReport {
	a.tick++
	a.now = float64(a.tick) * a.cfg.Dt

	report := TickReport{
		Tick:   a.tick,
		Time:   a.now,
		Cycles: make([]CycleReport, 0, len(a.cycles)),
	}
	for _, c := range a.cycles {
		a.applyScript(c)
		step := c.Step(a.now, a.cfg.Dt)
		if step.Died {
			report.Deaths++
		}
		report.Cycles = append(report.Cycles, CycleReport{
			ID:     c.ID(),
			Name:   c.Name(),
			Step:   step,
			Alive:  c.Alive(),
			Speed:  c.Speed(),
			Rubber: c.Rubber(),
		})
	}
	return report
}

// Run ticks until n ticks have passed, ctx is done or every cycle is dead.
// observe, when set, sees every tick report and may stop the run with an error.
func (a *Arena) Run(ctx context.Context, n int, observe func(TickReport) error) error {
	start := time.Now()
	defer func() {
		a.logger.Debug("run stopped",
			log.Uint64("tick", a.tick),
			log.Int("alive", a.Alive()),
			log.Duration("elapsed", time.Since(start)),
		)
	}()
	for i := 0; n < 0 || i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		report := a.Tick()
		if observe != nil {
			if err := observe(report); err != nil {
				return err
			}
		}
		if a.Alive() == 0 {
			a.logger.Info("all cycles dead, run finished", log.Uint64("tick", a.tick))
			return nil
		}
	}
	return nil
}

// RequestTurn forwards a turn request to a cycle at the current time.
func (a *Arena) RequestTurn(id walls.OwnerID, dir cycle.Turn) error {
	c, ok := a.byID[id]
	if !ok {
		return fmt.Errorf("request turn for %d: %w", id, ErrUnknownCycle)
	}
	return c.RequestTurn(dir, a.now)
}

func (a *Arena) Respawn(id walls.OwnerID) error {
	c, ok := a.byID[id]
	if !ok {
		return fmt.Errorf("respawn %d: %w", id, ErrUnknownCycle)
	}
	c.Respawn(a.now)
	return nil
}

func (a *Arena) Cycle(id walls.OwnerID) (*cycle.Cycle, bool) {
	c, ok := a.byID[id]
	return c, ok
}

func (a *Arena) CycleByName(name string) (*cycle.Cycle, bool) {
	c, ok := a.byName[name]
	return c, ok
}

// Cycles returns the cycles in step order.
func (a *Arena) Cycles() []*cycle.Cycle {
	return append([]*cycle.Cycle(nil), a.cycles...)
}

// Alive counts the living cycles.
func (a *Arena) Alive() int {
	return sequence.From(a.cycles).Filter((*cycle.Cycle).Alive).Count()
}

func (a *Arena) Walls() *walls.Store { return a.store }

func (a *Arena) Bus() bus.EventBus { return a.bus }

func (a *Arena) Config() Config { return a.cfg }

func (a *Arena) RunID() string { return a.runID }

func (a *Arena) Now() float64 { return a.now }

func (a *Arena) TickCount() uint64 { return a.tick }

// applyScript issues the scripted turns that are due for c.
func (a *Arena) applyScript(c *cycle.Cycle) {
	script := a.scripts[c.ID()]
	due := 0
	for due < len(script) && script[due].At <= a.now {
		if err := c.RequestTurn(script[due].Turn, a.now); err != nil {
			a.logger.Warn("scripted turn rejected", log.String("cycle", c.Name()), log.Error(err))
		}
		due++
	}
	if due > 0 {
		a.scripts[c.ID()] = script[due:]
	}
}

func (a *Arena) publish(ev cycle.Event) {
	err := a.bus.Publish(bus.Event{
		Type:   string(ev.Type),
		Source: a.runID,
		Tick:   a.tick,
		Time:   ev.Time,
		Data:   ev,
	})
	if err != nil {
		a.logger.Warn("event handler failed", log.String("event", string(ev.Type)), log.Error(err))
	}
}
