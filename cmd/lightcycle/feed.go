package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/zeusync/lightcycle/internal/core/arena"
	"github.com/zeusync/lightcycle/internal/core/cycle"
	"github.com/zeusync/lightcycle/internal/core/events/bus"
	"github.com/zeusync/lightcycle/internal/core/walls"
)

// killFeed collects the death events the arena publishes during a run.
type killFeed struct {
	arena  *arena.Arena
	lines  []string
	causes map[cycle.DeathCause]int
}

// watchKills subscribes a feed to the arena's death events. The returned stop
// cancels the subscription.
func watchKills(a *arena.Arena) (*killFeed, func(), error) {
	feed := &killFeed{arena: a, causes: make(map[cycle.DeathCause]int)}
	sub, err := a.Bus().Subscribe(string(cycle.EventDied), feed.record)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to subscribe to deaths: %w", err)
	}
	return feed, func() { _ = sub.Cancel() }, nil
}

func (f *killFeed) record(ev bus.Event) error {
	died, ok := ev.Data.(cycle.Event)
	if !ok {
		return fmt.Errorf("unexpected %s payload %T", ev.Type, ev.Data)
	}
	f.causes[died.Cause]++
	f.lines = append(f.lines, fmt.Sprintf("t=%.3fs %s %s at (%.1f, %.1f)",
		died.Time, died.Name, f.describe(died), died.Position.X, died.Position.Y))
	return nil
}

func (f *killFeed) describe(ev cycle.Event) string {
	switch {
	case ev.Cause != cycle.CauseCollision:
		return strings.ReplaceAll(string(ev.Cause), "_", " ")
	case ev.SelfKill:
		return "hit its own trail"
	case ev.Killer == walls.NoOwner:
		return "hit the " + ev.HitKind.String()
	}
	if killer, ok := f.arena.Cycle(ev.Killer); ok {
		return "hit the trail of " + killer.Name()
	}
	return fmt.Sprintf("hit the trail of cycle %d", ev.Killer)
}

func (f *killFeed) total() int {
	n := 0
	for _, c := range f.causes {
		n += c
	}
	return n
}

func (f *killFeed) print(w io.Writer) {
	causes := make([]string, 0, len(f.causes))
	for cause, n := range f.causes {
		causes = append(causes, fmt.Sprintf("%s=%d", cause, n))
	}
	sort.Strings(causes)

	fmt.Fprintf(w, "deaths: %d", f.total())
	if len(causes) > 0 {
		fmt.Fprintf(w, " (%s)", strings.Join(causes, ", "))
	}
	fmt.Fprintln(w)
	for _, line := range f.lines {
		fmt.Fprintf(w, "  %s\n", line)
	}
}
