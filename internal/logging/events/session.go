package events

import "github.com/atomicstack/runpop/internal/logging"

type SessionTracer struct{}

var Session = SessionTracer{}

func (SessionTracer) Confirm(value, query string) {
	logging.Trace("session.confirm", map[string]interface{}{"value": value, "query": query})
}

func (SessionTracer) Cancel(reason, query string) {
	logging.Trace("session.cancel", map[string]interface{}{"reason": reason, "query": query})
}
