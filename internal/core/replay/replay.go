// Package replay streams arena snapshots to and from a msgpack encoded log so
// a run can be rendered or inspected after the fact.
package replay

import (
	"errors"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/zeusync/lightcycle/internal/core/arena"
)

// FormatVersion is bumped whenever the stream layout changes.
const FormatVersion = 1

var (
	ErrBadHeader        = errors.New("replay: bad header")
	ErrVersionMismatch  = errors.New("replay: unsupported format version")
	ErrForeignSnapshot  = errors.New("replay: snapshot belongs to another run")
	ErrRecorderFinished = errors.New("replay: recorder closed")
)

// Header opens every stream.
type Header struct {
	Magic   string `msgpack:"magic"`
	Version int    `msgpack:"version"`
	RunID   string `msgpack:"run_id"`
}

const magic = "lightcycle-replay"

type Recorder struct {
	enc    *msgpack.Encoder
	runID  string
	frames int
	closed bool
}

// NewRecorder writes the stream header for runID to w.
func NewRecorder(w io.Writer, runID string) (*Recorder, error) {
	enc := msgpack.NewEncoder(w)
	if err := enc.Encode(Header{Magic: magic, Version: FormatVersion, RunID: runID}); err != nil {
		return nil, fmt.Errorf("write replay header: %w", err)
	}
	return &Recorder{enc: enc, runID: runID}, nil
}

// Record appends one snapshot. Snapshots from another run are rejected.
func (r *Recorder) Record(snap arena.Snapshot) error {
	if r.closed {
		return ErrRecorderFinished
	}
	if snap.RunID != r.runID {
		return fmt.Errorf("%w: %s", ErrForeignSnapshot, snap.RunID)
	}
	if err := r.enc.Encode(&snap); err != nil {
		return fmt.Errorf("record tick %d: %w", snap.Tick, err)
	}
	r.frames++
	return nil
}

// Frames is the number of snapshots recorded so far.
func (r *Recorder) Frames() int { return r.frames }

// Close stops the recorder. It does not close the underlying writer.
func (r *Recorder) Close() error {
	r.closed = true
	return nil
}

type Reader struct {
	dec    *msgpack.Decoder
	header Header
}

// NewReader reads and checks the stream header.
func NewReader(rd io.Reader) (*Reader, error) {
	dec := msgpack.NewDecoder(rd)

	var h Header
	if err := dec.Decode(&h); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBadHeader, err)
	}
	if h.Magic != magic {
		return nil, fmt.Errorf("%w: magic %q", ErrBadHeader, h.Magic)
	}
	if h.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrVersionMismatch, h.Version)
	}
	return &Reader{dec: dec, header: h}, nil
}

func (r *Reader) Header() Header { return r.header }

// Next decodes the following snapshot. It returns io.EOF at the clean end of
// the stream.
func (r *Reader) Next() (arena.Snapshot, error) {
	var snap arena.Snapshot
	if err := r.dec.Decode(&snap); err != nil {
		if errors.Is(err, io.EOF) {
			return arena.Snapshot{}, io.EOF
		}
		return arena.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	return snap, nil
}

// ReadAll drains the reader.
func (r *Reader) ReadAll() ([]arena.Snapshot, error) {
	var out []arena.Snapshot
	for {
		snap, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, snap)
	}
}
