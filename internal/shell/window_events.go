package shell

import (
	"fmt"

	"github.com/atomicstack/webshell/internal/logging"
	"github.com/atomicstack/webshell/internal/logging/events"
	"github.com/atomicstack/webshell/internal/navigation"
	"github.com/atomicstack/webshell/internal/platform"
	"github.com/atomicstack/webshell/internal/state"
)

const zoomStep = 1.1

func (s *Shell) handleWindowEvent(evt platform.WindowEvent, inv *invalidation) {
	switch e := evt.(type) {
	case platform.EventLoopAwaken:
		inv.forceSync = true
	case platform.WindowGeometryDidChange:
		s.updateGeometry()
	case platform.DidEnterFullScreen:
		s.setFullscreen(true, inv)
	case platform.DidExitFullScreen:
		s.setFullscreen(false, inv)
	case platform.WillClose:
		s.closeWindow(inv)
	case platform.UrlbarFocusChanged:
		win := s.state.CurrentWindow()
		if win == nil || win.UrlbarFocused == e.Focused {
			return
		}
		win.UrlbarFocused = e.Focused
		if !e.Focused {
			win.Suggestions = nil
		}
		inv.ui = true
	case platform.WindowDoCommand:
		s.handleCommand(e.Command, inv)
	}
}

func (s *Shell) setFullscreen(on bool, inv *invalidation) {
	if win := s.state.CurrentWindow(); win != nil && win.Fullscreen != on {
		win.Fullscreen = on
		inv.ui = true
	}
}

// handleCommand applies a window command to the current tab of the current
// window.
func (s *Shell) handleCommand(cmd platform.WindowCommand, inv *invalidation) {
	win := s.state.CurrentWindow()
	if win == nil {
		return
	}
	b := win.CurrentBrowser()
	if b == nil {
		return
	}
	idx := win.CurrentBrowserIndex

	switch cmd.Kind {
	case platform.CmdStop:
		s.engine.Stop(b.ID)
	case platform.CmdReload:
		s.engine.Reload(b.ID)
	case platform.CmdNavigateBack:
		s.engine.GoBack(b.ID)
	case platform.CmdNavigateForward:
		s.engine.GoForward(b.ID)
	case platform.CmdOpenLocation:
		win.UrlbarFocused = true
		win.UrlbarInput = b.URL
		win.Suggestions = nil
		inv.ui = true
	case platform.CmdOpenInDefaultBrowser:
		if b.URL == "" {
			return
		}
		if err := s.window.OpenExternal(b.URL); err != nil {
			s.report(inv, "Can't open "+b.URL, err)
		}
	case platform.CmdZoomIn:
		b.Zoom *= zoomStep
		s.engine.Zoom(b.Zoom)
		inv.ui = true
	case platform.CmdZoomOut:
		b.Zoom /= zoomStep
		s.engine.Zoom(b.Zoom)
		inv.ui = true
	case platform.CmdZoomToActualSize:
		b.Zoom = 1.0
		s.engine.ResetZoom()
		inv.ui = true
	case platform.CmdToggleSidebar:
		win.SidebarIsOpen = !win.SidebarIsOpen
		inv.ui = true
	case platform.CmdShowOptions:
		win.OptionsOpen = !win.OptionsOpen
		inv.ui = true
	case platform.CmdToggleOptionShowLogs:
		win.LogsVisible = !win.LogsVisible
		inv.ui = true
	case platform.CmdLoad:
		s.load(win, b, cmd.Text, inv)
	case platform.CmdUrlbarInput:
		win.UrlbarInput = cmd.Text
		win.Suggestions = nil
		if s.history != nil {
			win.Suggestions = s.history.Suggest(cmd.Text, suggestionLimit)
		}
		inv.ui = true
	case platform.CmdNewTab:
		s.newTab(win, idx, inv)
	case platform.CmdCloseTab:
		s.closeTab(win, idx, inv)
	case platform.CmdPrevTab:
		n := len(win.Browsers)
		if n > 1 {
			s.selectTab(win, (idx-1+n)%n, inv)
		}
	case platform.CmdNextTab:
		n := len(win.Browsers)
		if n > 1 {
			s.selectTab(win, (idx+1)%n, inv)
		}
	case platform.CmdSelectTab:
		if cmd.Index == idx || cmd.Index < 0 || cmd.Index >= len(win.Browsers) {
			return
		}
		s.selectTab(win, cmd.Index, inv)
	case platform.CmdToggleDebugOption:
		if !cmd.Option.Known() {
			logging.Warnf("unknown debug option %q", cmd.Option)
			return
		}
		if win.DebugOptions == nil {
			win.DebugOptions = state.DebugOptions{}
		}
		win.DebugOptions.Toggle(cmd.Option)
		if cmd.Option.IsRendererOption() {
			s.engine.ToggleDebugOption(cmd.Option)
		}
		inv.ui = true
	}
}

func (s *Shell) load(win *state.WindowState, b *state.BrowserState, input string, inv *invalidation) {
	b.UserInput = input
	win.UrlbarInput = input
	win.Suggestions = nil
	inv.ui = true
	u, err := navigation.Resolve(input, s.template)
	if err != nil {
		events.Nav.ResolveFailed(input, err)
		s.report(inv, fmt.Sprintf("Can't load %q", input), err)
		return
	}
	target := u.String()
	events.Nav.Resolve(input, target)
	events.Nav.Load(string(b.ID), target)
	s.engine.LoadURL(b.ID, target)
}

// newTab opens about:blank right after the current tab and selects it.
func (s *Shell) newTab(win *state.WindowState, idx int, inv *invalidation) {
	nb, err := s.engine.CreateBrowser("about:blank")
	if err != nil {
		s.report(inv, "Can't open a new tab", err)
		return
	}
	s.engine.UpdateGeometry(s.view.Geometry())
	at := idx + 1
	win.Browsers = append(win.Browsers, state.BrowserState{})
	copy(win.Browsers[at+1:], win.Browsers[at:])
	win.Browsers[at] = nb
	win.CurrentBrowserIndex = at
	s.applyZoom(&win.Browsers[at])
	events.Tab.Open(string(nb.ID), at)
	inv.ui = true
}

// closeTab removes the tab at idx. The last tab in order hands selection to
// its predecessor; any other tab hands it to its successor, which then takes
// over index idx. Closing the only tab closes the window.
func (s *Shell) closeTab(win *state.WindowState, idx int, inv *invalidation) {
	if len(win.Browsers) <= 1 {
		s.closeWindow(inv)
		return
	}
	closing := win.Browsers[idx].ID
	var next state.BrowserID
	if idx == len(win.Browsers)-1 {
		win.CurrentBrowserIndex = idx - 1
		next = win.Browsers[idx-1].ID
	} else {
		next = win.Browsers[idx+1].ID
	}
	s.engine.SelectBrowser(next)
	s.engine.CloseBrowser(closing)
	win.Browsers = append(win.Browsers[:idx], win.Browsers[idx+1:]...)
	s.applyZoom(win.CurrentBrowser())
	events.Tab.Close(string(closing), idx)
	inv.ui = true
}

func (s *Shell) selectTab(win *state.WindowState, idx int, inv *invalidation) {
	win.CurrentBrowserIndex = idx
	id := win.Browsers[idx].ID
	s.engine.SelectBrowser(id)
	s.applyZoom(&win.Browsers[idx])
	events.Tab.Select(string(id), idx)
	inv.ui = true
}

// applyZoom restores b's zoom in the engine after b became current.
func (s *Shell) applyZoom(b *state.BrowserState) {
	if b == nil {
		return
	}
	if b.Zoom == 1.0 {
		s.engine.ResetZoom()
		return
	}
	s.engine.Zoom(b.Zoom)
}
