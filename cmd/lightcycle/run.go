package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/zeusync/lightcycle/internal/core/arena"
	"github.com/zeusync/lightcycle/internal/core/replay"
	"github.com/zeusync/lightcycle/internal/injector"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a headless simulation",
		Long: `Run the arena for a number of ticks, or until every cycle is dead.

Examples:
  lightcycle run --ticks 6000
  lightcycle run --config arena.yaml --record run.replay
  lightcycle run --ticks -1 --log-level debug`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ticks, _ := cmd.Flags().GetInt("ticks")
			recordPath, _ := cmd.Flags().GetString("record")
			level, _ := cmd.Flags().GetString("log-level")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if level != "" {
				cfg.Log.Level = level
			}

			a, cleanup, err := injector.InitializeArena(cfg)
			if err != nil {
				return fmt.Errorf("failed to build arena: %w", err)
			}
			defer cleanup()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			feed, unwatch, err := watchKills(a)
			if err != nil {
				return err
			}
			defer unwatch()

			if recordPath == "" {
				if err := runArena(ctx, a, ticks, nil); err != nil {
					return err
				}
			} else if err := runRecorded(ctx, a, ticks, recordPath); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printSummary(out, a)
			feed.print(out)
			return nil
		},
	}

	cmd.Flags().Int("ticks", 1000, "Number of ticks to simulate (-1 runs until every cycle is dead)")
	cmd.Flags().String("record", "", "Write a replay of every tick to this file")
	cmd.Flags().String("log-level", "", "Override the configured log level")
	return cmd
}

// runArena runs until the tick budget is spent. An interrupt ends the run
// early without an error.
func runArena(ctx context.Context, a *arena.Arena, ticks int, observe func(arena.TickReport) error) error {
	err := a.Run(ctx, ticks, observe)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// runRecorded runs the arena into a replay file at path.
func runRecorded(ctx context.Context, a *arena.Arena, ticks int, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create replay file: %w", err)
	}
	return record(ctx, a, ticks, f)
}

// record runs the arena and writes a replay frame after every tick. w is
// closed before returning and a failed close is reported.
func record(ctx context.Context, a *arena.Arena, ticks int, w io.WriteCloser) error {
	rec, err := replay.NewRecorder(w, a.RunID())
	if err != nil {
		_ = w.Close()
		return err
	}
	runErr := runArena(ctx, a, ticks, func(arena.TickReport) error { return rec.Record(a.Snapshot()) })
	if err := rec.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if err := w.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to close replay: %w", err)
	}
	return runErr
}

func printSummary(w io.Writer, a *arena.Arena) {
	fmt.Fprintf(w, "run %s: %d ticks, t=%.3fs, digest %016x\n", a.RunID(), a.TickCount(), a.Now(), a.Digest())
	for _, c := range a.Cycles() {
		state := "alive"
		if !c.Alive() {
			state = "dead"
		}
		pos := c.Position()
		st := c.Stats()
		fmt.Fprintf(w, "  %-12s %-5s pos=(%.1f, %.1f) speed=%.1f rubber=%.2f distance=%.1f turns=%d deaths=%d trail=%.1f\n",
			c.Name(), state, pos.X, pos.Y, c.Speed(), c.Rubber(), st.Distance, st.Turns, st.Deaths, c.TrailLength())
	}
}
