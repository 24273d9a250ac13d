package shell

import (
	"github.com/atomicstack/webshell/internal/platform"
	"github.com/atomicstack/webshell/internal/state"
)

func (s *Shell) handleViewEvent(evt platform.ViewEvent, inv *invalidation) {
	if _, ok := evt.(platform.ViewGeometryDidChange); ok {
		s.updateGeometry()
		return
	}
	b := s.state.CurrentWindow().CurrentBrowser()
	if b == nil {
		return
	}
	switch e := evt.(type) {
	case platform.MouseWheel:
		s.engine.PerformScroll(b.LastMousePoint, e.Delta, e.Phase)
	case platform.MouseMoved:
		b.LastMousePoint = state.Point{X: e.X, Y: e.Y}
		s.engine.PerformMouseMove(b.LastMousePoint)
	case platform.MouseInput:
		at := state.Point{X: e.X, Y: e.Y}
		b.LastMousePoint = at
		s.engine.PerformClick(at, b.LastMouseDownPoint, e.State, e.Button, b.LastMouseDownButton)
		if e.State == platform.Pressed {
			b.LastMouseDownPoint = at
			b.LastMouseDownButton = e.Button
		} else {
			b.LastMouseDownButton = state.MouseNone
		}
	case platform.KeyEvent:
		s.engine.SendKey(b.ID, e)
	}
}
