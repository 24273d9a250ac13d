package shell

import (
	"github.com/atomicstack/webshell/internal/logging"
	"github.com/atomicstack/webshell/internal/logging/events"
	"github.com/atomicstack/webshell/internal/platform"
)

func (s *Shell) handleAppEvent(evt platform.AppEvent, inv *invalidation) {
	switch e := evt.(type) {
	case platform.DidFinishLaunching:
		logging.Infof("application finished launching")
	case platform.WillTerminate:
		events.App.Quit("terminate")
	case platform.DidChangeScreenParameters:
		s.updateGeometry()
	case platform.AppDoCommand:
		events.App.Command(e.Command.String())
		switch e.Command {
		case platform.AppClearHistory:
			if s.history != nil {
				s.history.Clear()
			}
			if win := s.state.CurrentWindow(); win != nil {
				win.Suggestions = nil
			}
			inv.ui = true
		case platform.AppToggleDarkTheme:
			s.state.DarkTheme = !s.state.DarkTheme
			inv.ui = true
		}
	}
}
