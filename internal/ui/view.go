package ui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/atomicstack/runpop/internal/ui/state"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/sahilm/fuzzy"
)

const promptPlaceholder = "(type a command)"

type styledLine struct {
	text  string
	style *lipgloss.Style
	// highlight holds byte offsets into text that should use the highlight
	// style instead of style.
	highlight map[int]struct{}
}

// View implements tea.Model.
func (m *Model) View() string {
	lines := make([]string, 0, len(m.snapshot.Candidates)+3)
	indent := ""
	if m.margin {
		indent = " "
		lines = append(lines, "")
	}
	lines = append(lines, indent+m.promptLine())
	for i, candidate := range m.snapshot.Candidates {
		style := m.styles.Suggestion
		if i == 0 {
			style = m.styles.Selected
		}
		line := styledLine{
			text:      candidate,
			style:     style,
			highlight: matchedOffsets(m.snapshot.Query, candidate),
		}
		lines = append(lines, indent+m.renderLine(line))
	}
	lines = applyWidth(lines, m.width)
	body := strings.Join(lines, "\n")
	frameStyle := m.styles.Frame.Copy()
	if m.width > 0 {
		frameStyle = frameStyle.Width(m.width)
	}
	if m.height > 0 {
		frameStyle = frameStyle.Height(m.height).MaxHeight(m.height)
	}
	return frameStyle.Render(body)
}

func (m *Model) promptLine() string {
	query := m.snapshot.Query
	var text string
	if query == "" {
		m.promptCursor.TextStyle = m.styles.Placeholder.Copy()
		runes := []rune(promptPlaceholder)
		text = m.renderPromptCursor(string(runes[0])) + m.styles.Placeholder.Render(string(runes[1:]))
	} else {
		m.promptCursor.TextStyle = m.styles.Input.Copy()
		text = m.styles.Input.Render(query) + m.renderPromptCursor(" ")
	}
	if !m.hasFrame || m.snapshot.Total == len(m.snapshot.Candidates) {
		return text
	}
	count := m.styles.Status.Render(fmt.Sprintf("%d/%d", len(m.snapshot.Candidates), m.snapshot.Total))
	if m.width <= 0 {
		return text + " " + count
	}
	gap := m.width - lipgloss.Width(text) - lipgloss.Width(count)
	if m.margin {
		gap -= 2
	}
	if gap < 1 {
		return text
	}
	return text + m.styles.Frame.Render(strings.Repeat(" ", gap)) + count
}

func (m *Model) renderPromptCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.promptCursor.SetChar(char)
	base := m.promptCursor.TextStyle.Copy().Inline(true)
	if m.promptCursor.Blink {
		return base.Render(char)
	}
	return base.Inherit(m.styles.Cursor.Copy().Inline(true)).Blink(false).Render(char)
}

// renderLine styles text in runs so adjacent characters sharing a style are
// emitted together.
func (m *Model) renderLine(line styledLine) string {
	if len(line.highlight) == 0 {
		return line.style.Render(line.text)
	}
	var out strings.Builder
	var run strings.Builder
	runHighlighted := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		style := line.style
		if runHighlighted {
			style = m.styles.Highlight
		}
		out.WriteString(style.Render(run.String()))
		run.Reset()
	}
	for offset, r := range line.text {
		_, hit := line.highlight[offset]
		if hit != runHighlighted {
			flush()
			runHighlighted = hit
		}
		run.WriteRune(r)
	}
	flush()
	return out.String()
}

// matchedOffsets returns the byte offsets of candidate characters matched by
// query, for highlighting only. sahilm/fuzzy always folds case, so for a
// query that matches case-sensitively the offsets are kept only when every
// highlighted rune equals its query rune exactly.
func matchedOffsets(query, candidate string) map[int]struct{} {
	if query == "" {
		return nil
	}
	matches := fuzzy.Find(query, []string{candidate})
	if len(matches) == 0 {
		return nil
	}
	indexes := matches[0].MatchedIndexes
	if state.CaseSensitive(query) && !exactCase(query, candidate, indexes) {
		return nil
	}
	offsets := make(map[int]struct{}, len(indexes))
	for _, idx := range indexes {
		offsets[idx] = struct{}{}
	}
	return offsets
}

func exactCase(query, candidate string, indexes []int) bool {
	want := []rune(query)
	if len(want) != len(indexes) {
		return false
	}
	for i, idx := range indexes {
		if idx < 0 || idx >= len(candidate) {
			return false
		}
		if got, _ := utf8.DecodeRuneInString(candidate[idx:]); got != want[i] {
			return false
		}
	}
	return true
}

func applyWidth(lines []string, width int) []string {
	if width <= 0 {
		return lines
	}
	for i, line := range lines {
		if lipgloss.Width(line) > width {
			lines[i] = truncate.StringWithTail(line, uint(width), "…")
		}
	}
	return lines
}
