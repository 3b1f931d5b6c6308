package ui

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"

	"github.com/atomicstack/runpop/internal/ui/frame"
	"github.com/atomicstack/runpop/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
)

const eventBuffer = 64

// ErrBridgeClosed is returned by Render once the bridge has been released.
var ErrBridgeClosed = errors.New("ui: bridge closed")

// Bridge connects the Bubble Tea goroutine to the frame driver. The model
// pushes translated input events into it, and the driver pulls them through
// Next and publishes snapshots through Render.
type Bridge struct {
	events chan state.Event
	frames chan frame.Snapshot
	done   chan struct{}
	once   sync.Once
	rows   atomic.Int64
}

// NewBridge returns a bridge reporting rows candidate rows until the
// terminal size is known.
func NewBridge(rows int) *Bridge {
	b := &Bridge{
		events: make(chan state.Event, eventBuffer),
		frames: make(chan frame.Snapshot, 1),
		done:   make(chan struct{}),
	}
	b.SetRows(rows)
	return b
}

// Send queues ev for the driver. It returns false once the bridge is closed.
func (b *Bridge) Send(ev state.Event) bool {
	select {
	case <-b.done:
		return false
	default:
	}
	select {
	case b.events <- ev:
		return true
	case <-b.done:
		return false
	}
}

// Next blocks for the first pending event and then drains whatever else has
// arrived without blocking again.
func (b *Bridge) Next(ctx context.Context) ([]state.Event, error) {
	var batch []state.Event
	select {
	case ev := <-b.events:
		batch = append(batch, ev)
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-b.done:
		return nil, io.EOF
	}
	for {
		select {
		case ev := <-b.events:
			batch = append(batch, ev)
		default:
			return batch, nil
		}
	}
}

// Rows reports the current candidate capacity.
func (b *Bridge) Rows() int {
	return int(b.rows.Load())
}

// SetRows updates the candidate capacity.
func (b *Bridge) SetRows(rows int) {
	if rows < 0 {
		rows = 0
	}
	b.rows.Store(int64(rows))
}

// Render publishes snap, replacing any frame the model has not picked up
// yet. The driver is the only caller, so the send never blocks.
func (b *Bridge) Render(snap frame.Snapshot) error {
	select {
	case <-b.done:
		return ErrBridgeClosed
	default:
	}
	select {
	case <-b.frames:
	default:
	}
	select {
	case b.frames <- snap:
		return nil
	case <-b.done:
		return ErrBridgeClosed
	}
}

// Close releases the bridge. It is safe to call more than once.
func (b *Bridge) Close() error {
	b.once.Do(func() { close(b.done) })
	return nil
}

// Done is closed when the bridge is released.
func (b *Bridge) Done() <-chan struct{} {
	return b.done
}

type frameMsg struct {
	snapshot frame.Snapshot
}

type bridgeClosedMsg struct{}

func waitForFrame(b *Bridge) tea.Cmd {
	return func() tea.Msg {
		select {
		case snap := <-b.frames:
			return frameMsg{snapshot: snap}
		case <-b.done:
			return bridgeClosedMsg{}
		}
	}
}
