package events

import "github.com/atomicstack/webshell/internal/logging"

type NavTracer struct{}

var Nav = NavTracer{}

func (NavTracer) Load(id, url string) {
	logging.Trace("nav.load", map[string]interface{}{"id": id, "url": url})
}

func (NavTracer) Resolve(input, url string) {
	logging.Trace("nav.resolve", map[string]interface{}{"input": input, "url": url})
}

func (NavTracer) ResolveFailed(input string, err error) {
	logging.Trace("nav.resolve.failed", map[string]interface{}{"input": input, "error": err.Error()})
}
