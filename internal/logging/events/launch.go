package events

import (
	"fmt"

	"github.com/atomicstack/runpop/internal/logging"
)

type DiscoveryTracer struct{}

type LaunchTracer struct{}

var (
	Discovery = DiscoveryTracer{}
	Launch    = LaunchTracer{}
)

func (DiscoveryTracer) Skip(dir string, err error) {
	entry := map[string]interface{}{"dir": dir}
	if err != nil {
		entry["error"] = err.Error()
	}
	logging.Trace("discovery.skip", entry)
}

func (DiscoveryTracer) Done(dirs, candidates int) {
	logging.Trace("discovery.done", map[string]interface{}{"dirs": dirs, "candidates": candidates})
}

func (LaunchTracer) Start(mode string, argv []string) {
	logging.Trace("launch.start", map[string]interface{}{"mode": mode, "argv": argv})
}

func (LaunchTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("launch.error", map[string]interface{}{"error": err.Error()})
}

// Invalid records a candidate dropped because it is not valid UTF-8.
func (DiscoveryTracer) Invalid(source, name string) {
	logging.Trace("discovery.invalid", map[string]interface{}{"source": source, "name": fmt.Sprintf("%q", name)})
}
