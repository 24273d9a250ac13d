package shell

import (
	"github.com/atomicstack/webshell/internal/data/dispatcher"
	"github.com/atomicstack/webshell/internal/engine"
)

func (s *Shell) handleEngineEvent(evt engine.Event, inv *invalidation) {
	res := s.dispatch.Handle(evt)
	if res.Unmatched {
		return
	}
	if res.Invalidated {
		inv.ui = true
	}
	switch res.Fullscreen {
	case dispatcher.FullscreenEnter:
		s.view.EnterFullscreen()
	case dispatcher.FullscreenExit:
		s.view.ExitFullscreen()
	}
	if v := res.Visit; v != nil && s.history != nil {
		if v.Navigated {
			s.history.Record(v.URL, v.Title)
		} else {
			s.history.Retitle(v.URL, v.Title)
		}
	}
	if res.Shortcut != nil {
		s.handleCommand(*res.Shortcut, inv)
	}
}
