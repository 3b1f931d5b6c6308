package state

import "github.com/rivo/uniseg"

// Query is the user-edited search text. Text is only ever added at the end
// and removed one character at a time from the end.
type Query struct {
	text string
}

// String returns the current query text.
func (q *Query) String() string {
	return q.text
}

// Len returns the number of user-perceived characters in the query.
func (q *Query) Len() int {
	return uniseg.GraphemeClusterCount(q.text)
}

// Empty reports whether the query has no text.
func (q *Query) Empty() bool {
	return q.text == ""
}

// Append adds text to the end of the query. It reports whether the query
// changed.
func (q *Query) Append(text string) bool {
	if text == "" {
		return false
	}
	q.text += text
	return true
}

// DeleteLast removes the final character (grapheme cluster) of the query. It
// reports whether anything was removed.
func (q *Query) DeleteLast() bool {
	if q.text == "" {
		return false
	}
	q.text = q.text[:lastClusterStart(q.text)]
	return true
}

func lastClusterStart(text string) int {
	start := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		start, _ = g.Positions()
	}
	return start
}
