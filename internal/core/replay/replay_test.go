package replay

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/zeusync/lightcycle/internal/core/arena"
	"github.com/zeusync/lightcycle/internal/core/cycle"
	"github.com/zeusync/lightcycle/internal/core/observability/log"
)

func newArena(t *testing.T) *arena.Arena {
	t.Helper()
	cfg := arena.DefaultConfig()
	cfg.Spawns[0].Script = []arena.ScriptedTurn{{At: 0.05, Turn: cycle.TurnLeft}}
	a, err := arena.New(cfg, log.NewNop(), nil)
	require.NoError(t, err)
	return a
}

func TestRecordAndReadBack(t *testing.T) {
	a := newArena(t)

	var buf bytes.Buffer
	rec, err := NewRecorder(&buf, a.RunID())
	require.NoError(t, err)

	var want []arena.Snapshot
	err = a.Run(context.Background(), 10, func(arena.TickReport) error {
		snap := a.Snapshot()
		want = append(want, snap)
		return rec.Record(snap)
	})
	require.NoError(t, err)
	assert.Equal(t, 10, rec.Frames())
	require.NoError(t, rec.Close())

	rd, err := NewReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, a.RunID(), rd.Header().RunID)
	assert.Equal(t, FormatVersion, rd.Header().Version)

	got, err := rd.ReadAll()
	require.NoError(t, err)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Tick, got[i].Tick)
		assert.Equal(t, want[i].Time, got[i].Time)
		assert.Equal(t, want[i].Segments, got[i].Segments)
		require.Len(t, got[i].Cycles, len(want[i].Cycles))
		for j := range want[i].Cycles {
			assert.Equal(t, want[i].Cycles[j].X, got[i].Cycles[j].X)
			assert.Equal(t, want[i].Cycles[j].Y, got[i].Cycles[j].Y)
			assert.Equal(t, want[i].Cycles[j].Stats, got[i].Cycles[j].Stats)
		}
	}
	assert.Equal(t, 1, got[9].Cycles[0].Stats.Turns)

	_, err = rd.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestRecorderRejectsForeignAndClosed(t *testing.T) {
	a := newArena(t)
	rec, err := NewRecorder(io.Discard, "other-run")
	require.NoError(t, err)

	assert.ErrorIs(t, rec.Record(a.Snapshot()), ErrForeignSnapshot)

	rec, err = NewRecorder(io.Discard, a.RunID())
	require.NoError(t, err)
	require.NoError(t, rec.Close())
	assert.ErrorIs(t, rec.Record(a.Snapshot()), ErrRecorderFinished)
}

func TestReaderChecksHeader(t *testing.T) {
	_, err := NewReader(bytes.NewReader(nil))
	assert.ErrorIs(t, err, ErrBadHeader)

	raw, err := msgpack.Marshal(Header{Magic: "something-else", Version: FormatVersion})
	require.NoError(t, err)
	_, err = NewReader(bytes.NewReader(raw))
	assert.ErrorIs(t, err, ErrBadHeader)

	raw, err = msgpack.Marshal(Header{Magic: magic, Version: FormatVersion + 1})
	require.NoError(t, err)
	_, err = NewReader(bytes.NewReader(raw))
	assert.ErrorIs(t, err, ErrVersionMismatch)
}
