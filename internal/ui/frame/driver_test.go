package frame_test

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/atomicstack/runpop/internal/testutil"
	"github.com/atomicstack/runpop/internal/ui/frame"
	"github.com/atomicstack/runpop/internal/ui/state"
)

func newDriver(candidates ...string) *frame.Driver {
	return frame.New(state.NewSession(state.NewStore(candidates), state.FuzzyMatcher))
}

func TestRunRendersInitialFrameBeforeInput(t *testing.T) {
	d := newDriver("ls", "cat", "cargo")
	src := testutil.NewScriptedSource([]state.Event{state.KeyDown(state.KeyEscape)})
	rec := testutil.NewRecorder(10)

	outcome, err := d.Run(context.Background(), src, rec)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if outcome.Phase != state.Cancelled {
		t.Fatalf("expected cancelled, got %#v", outcome)
	}
	snaps := rec.Snapshots()
	if len(snaps) != 1 {
		t.Fatalf("expected only the initial frame, got %d", len(snaps))
	}
	if want := []string{"ls", "cat", "cargo"}; !reflect.DeepEqual(snaps[0].Candidates, want) {
		t.Fatalf("expected %#v, got %#v", want, snaps[0].Candidates)
	}
	if snaps[0].Frame != 1 || snaps[0].Total != 3 || snaps[0].Capacity != 10 {
		t.Fatalf("unexpected snapshot metadata %#v", snaps[0])
	}
	if !rec.Closed() {
		t.Fatal("expected renderer to be closed")
	}
}

func TestRunConfirmsAfterTyping(t *testing.T) {
	d := newDriver("ls", "cat", "cargo")
	src := testutil.NewScriptedSource(
		[]state.Event{state.TextInput("c")},
		[]state.Event{state.TextInput("a")},
		[]state.Event{state.KeyDown(state.KeyReturn)},
	)
	rec := testutil.NewRecorder(10)

	outcome, err := d.Run(context.Background(), src, rec)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if value, ok := outcome.Confirmed(); !ok || value != "cat" {
		t.Fatalf("expected Confirmed(cat), got %#v", outcome)
	}
	last, _ := rec.Last()
	if last.Query != "ca" {
		t.Fatalf("expected last frame query ca, got %q", last.Query)
	}
	if want := []string{"cat", "cargo"}; !reflect.DeepEqual(last.Candidates, want) {
		t.Fatalf("expected %#v, got %#v", want, last.Candidates)
	}
	if last.Cursor.Column != 2 {
		t.Fatalf("expected cursor column 2, got %d", last.Cursor.Column)
	}
}

func TestRunDiscardsEventsAfterTermination(t *testing.T) {
	d := newDriver("ls")
	src := testutil.NewScriptedSource(
		[]state.Event{state.TextInput("x"), state.Quit(), state.TextInput("y"), state.KeyDown(state.KeyReturn)},
	)
	rec := testutil.NewRecorder(5)

	outcome, err := d.Run(context.Background(), src, rec)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if outcome.Phase != state.Cancelled {
		t.Fatalf("expected cancelled, got %#v", outcome)
	}
	if d.Session().Query() != "x" {
		t.Fatalf("expected events after quit to be dropped, query %q", d.Session().Query())
	}
	if len(rec.Snapshots()) != 1 {
		t.Fatalf("expected no frame after termination, got %d", len(rec.Snapshots()))
	}
}

func TestRunTreatsExhaustedSourceAsQuit(t *testing.T) {
	d := newDriver("ls")
	src := testutil.NewScriptedSource([]state.Event{state.TextInput("l")})
	rec := testutil.NewRecorder(5)

	outcome, err := d.Run(context.Background(), src, rec)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if outcome.Phase != state.Cancelled {
		t.Fatalf("expected cancelled, got %#v", outcome)
	}
	if src.Calls() != 2 {
		t.Fatalf("expected two reads, got %d", src.Calls())
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	d := newDriver("ls")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rec := testutil.NewRecorder(5)

	outcome, err := d.Run(ctx, testutil.NewScriptedSource(), rec)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if outcome.Phase != state.Cancelled {
		t.Fatalf("expected cancelled outcome, got %#v", outcome)
	}
	if !rec.Closed() {
		t.Fatal("expected renderer to be closed")
	}
}

func TestRunReportsRenderErrors(t *testing.T) {
	d := newDriver("ls")
	rec := testutil.NewRecorder(5)
	rec.RenderErr = errors.New("boom")

	_, err := d.Run(context.Background(), testutil.NewScriptedSource(), rec)
	if err == nil || !errors.Is(err, rec.RenderErr) {
		t.Fatalf("expected wrapped render error, got %v", err)
	}
}

func TestStepTruncatesToRows(t *testing.T) {
	d := newDriver("ls", "cat", "cargo")
	snap, done := d.Step(nil, 2)
	if done {
		t.Fatal("expected session to continue")
	}
	if want := []string{"ls", "cat"}; !reflect.DeepEqual(snap.Candidates, want) {
		t.Fatalf("expected %#v, got %#v", want, snap.Candidates)
	}
	if snap.Total != 3 {
		t.Fatalf("expected total 3, got %d", snap.Total)
	}

	snap, _ = d.Step(nil, -4)
	if !snap.Empty() || snap.Capacity != 0 {
		t.Fatalf("expected empty view for negative rows, got %#v", snap)
	}
	if snap.Frame != 2 {
		t.Fatalf("expected frame counter 2, got %d", snap.Frame)
	}
}

func TestStepMultiCharacterInput(t *testing.T) {
	d := newDriver("firefox", "fish", "fd")
	snap, _ := d.Step([]state.Event{state.TextInput("fir"), state.TextInput("efox")}, 10)
	if snap.Query != "firefox" {
		t.Fatalf("expected pasted query, got %q", snap.Query)
	}
	if want := []string{"firefox"}; !reflect.DeepEqual(snap.Candidates, want) {
		t.Fatalf("expected %#v, got %#v", want, snap.Candidates)
	}
}

func TestStepWithInvalidUTF8Candidate(t *testing.T) {
	d := newDriver("caf\xe9", "cat")
	snap, done := d.Step([]state.Event{state.TextInput("ca")}, 10)
	if done {
		t.Fatal("expected session to keep running")
	}
	if want := []string{"cat", "caf\xe9"}; !reflect.DeepEqual(snap.Candidates, want) {
		t.Fatalf("expected %q, got %q", want, snap.Candidates)
	}
}

func TestStepBackspaceScenario(t *testing.T) {
	d := newDriver()
	snap, _ := d.Step([]state.Event{state.TextInput("abc"), state.KeyDown(state.KeyBackspace)}, 3)
	if snap.Query != "ab" {
		t.Fatalf("expected ab, got %q", snap.Query)
	}
	snap, _ = d.Step([]state.Event{
		state.KeyDown(state.KeyBackspace),
		state.KeyDown(state.KeyBackspace),
		state.KeyDown(state.KeyBackspace),
	}, 3)
	if snap.Query != "" {
		t.Fatalf("expected empty query, got %q", snap.Query)
	}
}

func TestStepSnapshotIsIndependentCopy(t *testing.T) {
	d := newDriver("ls", "cat")
	snap, _ := d.Step(nil, 5)
	snap.Candidates[0] = "changed"
	again, _ := d.Step(nil, 5)
	if again.Candidates[0] != "ls" {
		t.Fatalf("expected fresh candidates, got %#v", again.Candidates)
	}
}

func TestStepAfterTerminationReportsDone(t *testing.T) {
	d := newDriver("ls")
	if _, done := d.Step([]state.Event{state.KeyDown(state.KeyReturn)}, 5); !done {
		t.Fatal("expected done after return")
	}
	if _, done := d.Step(nil, 5); !done {
		t.Fatal("expected terminal session to stay done")
	}
	if value, _ := d.Session().Outcome().Confirmed(); value != "ls" {
		t.Fatalf("expected ls, got %q", value)
	}
}
