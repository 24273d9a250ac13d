package events

import "github.com/atomicstack/webshell/internal/logging"

type EngineTracer struct{}

var Engine = EngineTracer{}

func (EngineTracer) Event(kind, id string) {
	logging.Trace("engine.event", map[string]interface{}{"kind": kind, "id": id})
}

func (EngineTracer) Unmatched(kind, id string) {
	logging.Trace("engine.unmatched", map[string]interface{}{"kind": kind, "id": id})
}
