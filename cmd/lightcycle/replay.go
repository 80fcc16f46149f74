package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zeusync/lightcycle/internal/core/replay"
)

func newReplayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "replay <file>",
		Short: "Summarize a recorded replay",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open replay: %w", err)
			}
			defer f.Close()

			rd, err := replay.NewReader(f)
			if err != nil {
				return err
			}
			frames, err := rd.ReadAll()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "run %s: %d frames\n", rd.Header().RunID, len(frames))
			if len(frames) == 0 {
				return nil
			}
			last := frames[len(frames)-1]
			fmt.Fprintf(out, "last tick %d at t=%.3fs, %d segments\n", last.Tick, last.Time, len(last.Segments))
			for _, c := range last.Cycles {
				fmt.Fprintf(out, "  %-12s alive=%t pos=(%.1f, %.1f) turns=%d deaths=%d\n",
					c.Name, c.Alive, c.X, c.Y, c.Stats.Turns, c.Stats.Deaths)
			}
			return nil
		},
	}
}
