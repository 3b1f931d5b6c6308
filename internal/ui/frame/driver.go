// Package frame runs the launcher's per-frame loop: drain input, update the
// selection session, refilter candidates and hand a snapshot to a renderer.
package frame

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/atomicstack/runpop/internal/logging"
	"github.com/atomicstack/runpop/internal/logging/events"
	"github.com/atomicstack/runpop/internal/ui/state"
)

// Source delivers input events. Next blocks until at least one event is
// available and returns every event pending at that moment, in arrival order.
// Returning io.EOF means no more input will arrive.
type Source interface {
	Next(ctx context.Context) ([]state.Event, error)
}

// Renderer draws snapshots. Rows reports how many candidate rows fit in the
// viewport right now. Renderers that also implement io.Closer are closed when
// the loop exits.
type Renderer interface {
	Rows() int
	Render(Snapshot) error
}

// Driver owns a session and is its only mutator.
type Driver struct {
	session *state.Session
	frame   uint64
}

// New creates a driver for session.
func New(session *state.Session) *Driver {
	if session == nil {
		session = state.NewSession(nil, nil)
	}
	return &Driver{session: session}
}

// Session exposes the driven session.
func (d *Driver) Session() *state.Session {
	return d.session
}

// Step feeds batch to the session and, unless the session ended, returns the
// snapshot for the next frame limited to rows candidates. Events after the
// one that ended the session are discarded.
func (d *Driver) Step(batch []state.Event, rows int) (Snapshot, bool) {
	for i, ev := range batch {
		if d.apply(ev) {
			if dropped := len(batch) - i - 1; dropped > 0 {
				events.Frame.Discard(dropped)
			}
			return Snapshot{}, true
		}
	}
	if d.session.Done() {
		return Snapshot{}, true
	}
	if rows < 0 {
		rows = 0
	}
	matches := d.session.Matches()
	visible := matches
	if len(visible) > rows {
		visible = visible[:rows]
	}
	d.frame++
	query := d.session.Query()
	snap := Snapshot{
		Frame:      d.frame,
		Query:      query,
		Cursor:     cursorFor(query),
		Candidates: state.CloneCandidates(visible),
		Total:      len(matches),
		Capacity:   rows,
	}
	events.Frame.Render(snap.Frame, snap.Query, len(snap.Candidates), snap.Total)
	return snap, false
}

func (d *Driver) apply(ev state.Event) bool {
	before := d.session.Query()
	done := d.session.Handle(ev)
	after := d.session.Query()
	switch {
	case done:
		outcome := d.session.Outcome()
		if value, ok := outcome.Confirmed(); ok {
			events.Session.Confirm(value, after)
		} else {
			events.Session.Cancel(ev.String(), after)
		}
	case ev.Kind == state.EventTextInput && before != after:
		events.Query.Append(ev.Text, after)
	case ev.Kind == state.EventKeyDown && ev.Key == state.KeyBackspace && before != after:
		events.Query.Backspace(after)
	}
	return done
}

// Run loops until the session ends. The first frame is rendered before any
// input is read. A cancelled context ends the loop with a Cancelled outcome
// and the context error; a source reporting io.EOF is treated as Quit.
func (d *Driver) Run(ctx context.Context, src Source, r Renderer) (outcome state.Outcome, err error) {
	if closer, ok := r.(io.Closer); ok {
		defer func() {
			if cerr := closer.Close(); cerr != nil {
				logging.Error(fmt.Errorf("close renderer: %w", cerr))
			}
		}()
	}
	var batch []state.Event
	for {
		snap, done := d.Step(batch, r.Rows())
		if done {
			return d.session.Outcome(), nil
		}
		if err := r.Render(snap); err != nil {
			return state.Outcome{Phase: state.Cancelled}, fmt.Errorf("render frame %d: %w", snap.Frame, err)
		}
		next, err := src.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				batch = append(next, state.Quit())
				continue
			}
			return state.Outcome{Phase: state.Cancelled}, err
		}
		batch = next
	}
}
