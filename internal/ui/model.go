package ui

import (
	"reflect"

	"github.com/atomicstack/runpop/internal/logging/events"
	"github.com/atomicstack/runpop/internal/theme"
	"github.com/atomicstack/runpop/internal/ui/frame"
	"github.com/atomicstack/runpop/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"
)

type msgHandler func(tea.Msg) tea.Cmd

// Options configures the terminal model.
type Options struct {
	Palette theme.Palette
	Metrics state.Metrics
}

// Model implements the Bubble Tea model for the launcher prompt. It never
// touches session state; it forwards input to the bridge and displays the
// snapshots the driver publishes.
type Model struct {
	bridge   *Bridge
	snapshot frame.Snapshot
	hasFrame bool
	width    int
	height   int
	metrics  state.Metrics
	margin   bool
	styles   *theme.Styles
	keys     KeyMap

	promptCursor      cursor.Model
	promptCursorDirty bool

	handlers map[reflect.Type]msgHandler
}

// NewModel builds a model fed by bridge.
func NewModel(bridge *Bridge, opts Options) *Model {
	m := &Model{
		bridge:  bridge,
		metrics: opts.Metrics,
		margin:  opts.Metrics.Padding > 0,
		styles:  theme.New(opts.Palette),
		keys:    DefaultKeyMap(),
	}
	c := cursor.New()
	c.Style = m.styles.Cursor.Copy()
	c.TextStyle = m.styles.Input.Copy()
	c.SetChar(" ")
	m.promptCursor = c
	if bridge != nil {
		bridge.SetRows(m.rowsFor(-1))
	}
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.bridge != nil {
		cmds = append(cmds, waitForFrame(m.bridge))
	}
	if cmd := m.promptCursor.Focus(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if cmd := m.updatePromptCursor(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(frameMsg{}):          m.handleFrameMsg,
		reflect.TypeOf(bridgeClosedMsg{}):   m.handleBridgeClosedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) handleFrameMsg(msg tea.Msg) tea.Cmd {
	fm, ok := msg.(frameMsg)
	if !ok {
		return nil
	}
	if !m.hasFrame || fm.snapshot.Query != m.snapshot.Query {
		m.promptCursorDirty = true
	}
	m.snapshot = fm.snapshot
	m.hasFrame = true
	if m.bridge != nil {
		return waitForFrame(m.bridge)
	}
	return nil
}

func (m *Model) handleBridgeClosedMsg(tea.Msg) tea.Cmd {
	return tea.Quit
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	m.width = resize.Width
	m.height = resize.Height
	rows := m.rowsFor(m.availableRows())
	events.Input.Resize(resize.Width, resize.Height, rows)
	if m.bridge != nil {
		m.bridge.SetRows(rows)
		m.bridge.Send(state.Other())
	}
	return nil
}

// availableRows is how many candidate lines fit below the prompt, or -1
// while the terminal size is unknown.
func (m *Model) availableRows() int {
	if m.height <= 0 {
		return -1
	}
	used := 1
	if m.margin {
		used += 2
	}
	if avail := m.height - used; avail > 0 {
		return avail
	}
	return 0
}

func (m *Model) rowsFor(limit int) int {
	return state.ClampRows(m.metrics.Rows(), limit)
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.promptCursorDirty {
		m.promptCursorDirty = false
		m.promptCursor.Blink = false
		if cmd := m.promptCursor.BlinkCmd(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Snapshot returns the frame currently on screen.
func (m *Model) Snapshot() (frame.Snapshot, bool) {
	return m.snapshot, m.hasFrame
}
