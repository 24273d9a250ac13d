// Package shell runs the reconciliation loop: it drains the platform and
// engine queues, applies each event to the state tree, and pushes the result
// back out to the platform and the engine.
package shell

import (
	"fmt"

	"github.com/atomicstack/webshell/internal/data/dispatcher"
	"github.com/atomicstack/webshell/internal/engine"
	"github.com/atomicstack/webshell/internal/history"
	"github.com/atomicstack/webshell/internal/logging"
	"github.com/atomicstack/webshell/internal/logging/events"
	"github.com/atomicstack/webshell/internal/navigation"
	"github.com/atomicstack/webshell/internal/platform"
	"github.com/atomicstack/webshell/internal/state"
)

// suggestionLimit caps the address bar completions shown while typing.
const suggestionLimit = 8

// LogSource supplies captured log lines for the logs panel.
type LogSource interface {
	Drain() []logging.Entry
}

// Options wires a shell to its collaborators. History and Logs are optional.
type Options struct {
	App            platform.App
	Window         platform.Window
	View           platform.View
	Engine         *engine.Adapter
	History        *history.Recorder
	Logs           LogSource
	SearchTemplate string
	Keymap         platform.Keymap
}

// Shell owns the state tree. Every method must be called from the goroutine
// running the platform loop.
type Shell struct {
	app      platform.App
	window   platform.Window
	view     platform.View
	engine   *engine.Adapter
	history  *history.Recorder
	logs     LogSource
	template string
	keymap   platform.Keymap

	state    *state.AppState
	dispatch *dispatcher.Dispatcher
}

// invalidation accumulates what a pass changed. It is reset every pass.
type invalidation struct {
	ui        bool
	forceSync bool
}

func New(opts Options) *Shell {
	keymap := opts.Keymap
	if keymap.Primary == 0 {
		keymap = platform.DefaultKeymap()
	}
	template := opts.SearchTemplate
	if template == "" {
		template = navigation.DefaultSearchTemplate
	}
	app := state.New()
	return &Shell{
		app:      opts.App,
		window:   opts.Window,
		view:     opts.View,
		engine:   opts.Engine,
		history:  opts.History,
		logs:     opts.Logs,
		template: template,
		keymap:   keymap,
		state:    app,
		dispatch: dispatcher.New(app, keymap),
	}
}

// State exposes the tree for inspection.
func (s *Shell) State() *state.AppState {
	return s.state
}

// Bootstrap opens the initial window state with one tab loading url.
func (s *Shell) Bootstrap(url string) error {
	b, err := s.engine.CreateBrowser(url)
	if err != nil {
		return fmt.Errorf("create initial tab: %w", err)
	}
	win := state.NewWindow()
	win.Browsers = []state.BrowserState{b}
	win.CurrentBrowserIndex = 0
	s.state.Windows = append(s.state.Windows, win)
	s.state.CurrentWindowIndex = len(s.state.Windows) - 1
	s.engine.UpdateGeometry(s.view.Geometry())
	events.Tab.Open(string(b.ID), 0)
	s.render()
	s.engine.Sync(false)
	return nil
}

// HandleEvents runs passes until every queue is empty and returns how many
// passes did work.
func (s *Shell) HandleEvents() int {
	passes := 0
	for {
		appEvents := s.app.Events()
		winEvents := s.window.Events()
		viewEvents := s.view.Events()
		engineEvents := s.engine.Events()
		if len(appEvents) == 0 && len(winEvents) == 0 && len(viewEvents) == 0 && len(engineEvents) == 0 {
			break
		}
		passes++
		events.Loop.Pass(passes, len(appEvents), len(winEvents), len(viewEvents), len(engineEvents))

		var inv invalidation
		for _, evt := range appEvents {
			s.handleAppEvent(evt, &inv)
		}
		for _, evt := range winEvents {
			s.handleWindowEvent(evt, &inv)
		}
		for _, evt := range viewEvents {
			s.handleViewEvent(evt, &inv)
		}
		for _, evt := range engineEvents {
			s.handleEngineEvent(evt, &inv)
		}

		if inv.ui {
			events.Loop.Render(passes)
			s.render()
		}
		n := s.engine.Sync(inv.forceSync)
		if n > 0 || inv.forceSync {
			events.Loop.Sync(inv.forceSync, n)
		}
	}
	events.Loop.Idle(passes)
	s.afterSettle()
	return passes
}

func (s *Shell) render() {
	s.app.Render(s.state)
	if win := s.state.CurrentWindow(); win != nil {
		s.window.Render(win)
	}
}

// afterSettle runs effects that never produce new events.
func (s *Shell) afterSettle() {
	win := s.state.CurrentWindow()
	if win == nil || !win.LogsVisible || s.logs == nil {
		return
	}
	if entries := s.logs.Drain(); len(entries) > 0 {
		s.window.AppendLogs(entries)
	}
}

// report surfaces a recoverable failure in the log and the status line.
func (s *Shell) report(inv *invalidation, status string, err error) {
	logging.Warnf("%s: %v", status, err)
	if win := s.state.CurrentWindow(); win != nil {
		win.Status = status
		inv.ui = true
	}
}

func (s *Shell) updateGeometry() {
	s.engine.UpdateGeometry(s.view.Geometry())
	s.view.UpdateDrawable()
}

// closeWindow drops the current window and its tabs. The app quits once no
// window is left.
func (s *Shell) closeWindow(inv *invalidation) {
	win := s.state.CurrentWindow()
	if win == nil {
		return
	}
	for i, b := range win.Browsers {
		events.Tab.Close(string(b.ID), i)
		s.engine.CloseBrowser(b.ID)
	}
	s.state.RemoveWindow(s.state.CurrentWindowIndex)
	inv.ui = true
	if len(s.state.Windows) == 0 {
		events.App.Quit("last window closed")
		s.app.Quit()
	}
}
