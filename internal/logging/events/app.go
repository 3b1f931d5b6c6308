package events

import "github.com/atomicstack/runpop/internal/logging"

type AppTracer struct{}

type ConfigTracer struct{}

var (
	App    = AppTracer{}
	Config = ConfigTracer{}
)

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Exit(phase, value string) {
	logging.Trace("app.exit", map[string]interface{}{"phase": phase, "value": value})
}

func (ConfigTracer) Loaded(path string, payload interface{}) {
	logging.Trace("config.loaded", map[string]interface{}{"path": path, "config": payload})
}

func (ConfigTracer) Fallback(path string, err error) {
	entry := map[string]interface{}{"path": path}
	if err != nil {
		entry["error"] = err.Error()
	}
	logging.Trace("config.fallback", entry)
}

func (ConfigTracer) WriteDefault(path string) {
	logging.Trace("config.write-default", map[string]interface{}{"path": path})
}

func (AppTracer) Font(font string, size int) {
	logging.Trace("app.font", map[string]interface{}{"font": font, "size": size})
}
