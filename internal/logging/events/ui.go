package events

import "github.com/atomicstack/runpop/internal/logging"

type QueryTracer struct{}

type FrameTracer struct{}

type InputTracer struct{}

var (
	Query = QueryTracer{}
	Frame = FrameTracer{}
	Input = InputTracer{}
)

func (QueryTracer) Append(text, query string) {
	logging.Trace("query.append", map[string]interface{}{"text": text, "query": query})
}

func (QueryTracer) Backspace(query string) {
	logging.Trace("query.backspace", map[string]interface{}{"query": query})
}

func (FrameTracer) Render(frame uint64, query string, visible, total int) {
	logging.Trace("frame.render", map[string]interface{}{
		"frame":   frame,
		"query":   query,
		"visible": visible,
		"total":   total,
	})
}

func (FrameTracer) Discard(count int) {
	logging.Trace("frame.discard", map[string]interface{}{"count": count})
}

func (InputTracer) Key(key, event string) {
	logging.Trace("input.key", map[string]interface{}{"key": key, "event": event})
}

func (InputTracer) Resize(width, height, rows int) {
	logging.Trace("input.resize", map[string]interface{}{"width": width, "height": height, "rows": rows})
}
