package testutil

import (
	"context"
	"io"
	"sync"

	"github.com/atomicstack/runpop/internal/ui/frame"
	"github.com/atomicstack/runpop/internal/ui/state"
)

// ScriptedSource replays fixed event batches and reports io.EOF once they
// are exhausted.
type ScriptedSource struct {
	mu      sync.Mutex
	batches [][]state.Event
	calls   int
}

// NewScriptedSource returns a source that yields each batch in turn.
func NewScriptedSource(batches ...[]state.Event) *ScriptedSource {
	return &ScriptedSource{batches: batches}
}

// Next implements frame.Source.
func (s *ScriptedSource) Next(ctx context.Context) ([]state.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if len(s.batches) == 0 {
		return nil, io.EOF
	}
	batch := s.batches[0]
	s.batches = s.batches[1:]
	return batch, nil
}

// Calls returns how many times Next was invoked.
func (s *ScriptedSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// Recorder is a frame.Renderer that keeps every snapshot it receives.
type Recorder struct {
	mu        sync.Mutex
	rows      int
	snapshots []frame.Snapshot
	closed    bool
	RenderErr error
}

// NewRecorder returns a recorder reporting rows visible rows.
func NewRecorder(rows int) *Recorder {
	return &Recorder{rows: rows}
}

// Rows implements frame.Renderer.
func (r *Recorder) Rows() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rows
}

// SetRows changes the reported capacity.
func (r *Recorder) SetRows(rows int) {
	r.mu.Lock()
	r.rows = rows
	r.mu.Unlock()
}

// Render implements frame.Renderer.
func (r *Recorder) Render(s frame.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.RenderErr != nil {
		return r.RenderErr
	}
	r.snapshots = append(r.snapshots, s)
	return nil
}

// Close marks the recorder as released.
func (r *Recorder) Close() error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	return nil
}

// Snapshots returns the recorded frames.
func (r *Recorder) Snapshots() []frame.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]frame.Snapshot(nil), r.snapshots...)
}

// Last returns the most recent frame.
func (r *Recorder) Last() (frame.Snapshot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.snapshots) == 0 {
		return frame.Snapshot{}, false
	}
	return r.snapshots[len(r.snapshots)-1], true
}

// Closed reports whether Close was called.
func (r *Recorder) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
