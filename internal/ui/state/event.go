package state

import "fmt"

// EventKind classifies input events delivered to a Session.
type EventKind int

const (
	EventOther EventKind = iota
	EventQuit
	EventKeyDown
	EventTextInput
)

// Key identifies the keys a Session reacts to.
type Key int

const (
	KeyOther Key = iota
	KeyEscape
	KeyBackspace
	KeyReturn
)

// Event is a backend-neutral input event.
type Event struct {
	Kind EventKind
	Key  Key
	Text string
}

// Quit is emitted when the window or terminal asks the launcher to close.
func Quit() Event {
	return Event{Kind: EventQuit}
}

// KeyDown is emitted for a key press.
func KeyDown(key Key) Event {
	return Event{Kind: EventKeyDown, Key: key}
}

// TextInput carries typed or pasted text.
func TextInput(text string) Event {
	return Event{Kind: EventTextInput, Text: text}
}

// Other is an event the session ignores, such as a resize. It still causes
// a new frame to be rendered.
func Other() Event {
	return Event{Kind: EventOther}
}

func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "escape"
	case KeyBackspace:
		return "backspace"
	case KeyReturn:
		return "return"
	default:
		return "other"
	}
}

func (e Event) String() string {
	switch e.Kind {
	case EventQuit:
		return "quit"
	case EventKeyDown:
		return "keydown(" + e.Key.String() + ")"
	case EventTextInput:
		return fmt.Sprintf("text(%q)", e.Text)
	default:
		return "other"
	}
}
