package state

// Metrics describes the viewport geometry used to derive how many candidate
// rows fit below the query line. Units are whatever the renderer measures in.
type Metrics struct {
	ViewportHeight int
	LineHeight     int
	LineSpacing    int
	Padding        int
}

// Rows returns the number of candidate rows the viewport can display. One
// line is reserved for the query.
func (m Metrics) Rows() int {
	return Rows(m.ViewportHeight, m.Padding, m.LineHeight, m.LineSpacing)
}

// Rows computes max(0, floor((height - 2*padding) / (lineHeight + lineSpacing)) - 1).
func Rows(height, padding, lineHeight, lineSpacing int) int {
	step := lineHeight + lineSpacing
	if step <= 0 {
		return 0
	}
	usable := height - 2*padding
	if usable <= 0 {
		return 0
	}
	rows := usable/step - 1
	if rows < 0 {
		return 0
	}
	return rows
}

// ClampRows limits rows to limit. A negative limit means no limit is known.
func ClampRows(rows, limit int) int {
	if rows < 0 {
		rows = 0
	}
	if limit >= 0 && rows > limit {
		return limit
	}
	return rows
}
