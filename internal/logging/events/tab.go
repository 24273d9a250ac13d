package events

import "github.com/atomicstack/webshell/internal/logging"

type TabTracer struct{}

var Tab = TabTracer{}

func (TabTracer) Open(id string, index int) {
	logging.Trace("tab.open", map[string]interface{}{"id": id, "index": index})
}

func (TabTracer) Close(id string, index int) {
	logging.Trace("tab.close", map[string]interface{}{"id": id, "index": index})
}

func (TabTracer) Select(id string, index int) {
	logging.Trace("tab.select", map[string]interface{}{"id": id, "index": index})
}
