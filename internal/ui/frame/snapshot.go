package frame

import "github.com/mattn/go-runewidth"

// CursorHint locates the text cursor on the query line. Column is measured in
// terminal cells from the start of the query text.
type CursorHint struct {
	Row    int
	Column int
}

// Snapshot is everything a renderer needs to draw one frame.
type Snapshot struct {
	Frame      uint64
	Query      string
	Cursor     CursorHint
	Candidates []string
	Total      int
	Capacity   int
}

// Empty reports whether no candidate is visible.
func (s Snapshot) Empty() bool {
	return len(s.Candidates) == 0
}

func cursorFor(query string) CursorHint {
	return CursorHint{Row: 0, Column: runewidth.StringWidth(query)}
}
