package events

import "github.com/atomicstack/webshell/internal/logging"

type LoopTracer struct{}

var Loop = LoopTracer{}

func (LoopTracer) Pass(pass, app, window, view, engine int) {
	logging.Trace("loop.pass", map[string]interface{}{
		"pass":   pass,
		"app":    app,
		"window": window,
		"view":   view,
		"engine": engine,
	})
}

func (LoopTracer) Idle(passes int) {
	logging.Trace("loop.idle", map[string]interface{}{"passes": passes})
}

func (LoopTracer) Render(pass int) {
	logging.Trace("loop.render", map[string]interface{}{"pass": pass})
}

func (LoopTracer) Sync(force bool, commands int) {
	logging.Trace("loop.sync", map[string]interface{}{"force": force, "commands": commands})
}
