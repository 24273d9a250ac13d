package dispatcher

import (
	"fmt"

	"github.com/atomicstack/webshell/internal/engine"
	"github.com/atomicstack/webshell/internal/logging/events"
	"github.com/atomicstack/webshell/internal/platform"
	"github.com/atomicstack/webshell/internal/state"
)

type FullscreenChange int

const (
	FullscreenUnchanged FullscreenChange = iota
	FullscreenEnter
	FullscreenExit
)

// Visit describes a page worth recording in history. Navigated is false when
// only the title of the current page changed.
type Visit struct {
	URL       string
	Title     string
	Navigated bool
}

// Result tells the loop what an engine event changed and which side effects
// it still has to perform.
type Result struct {
	Invalidated bool
	Unmatched   bool
	Fullscreen  FullscreenChange
	Visit       *Visit
	Shortcut    *platform.WindowCommand
}

type Dispatcher struct {
	app    *state.AppState
	keymap platform.Keymap
}

func New(app *state.AppState, keymap platform.Keymap) *Dispatcher {
	return &Dispatcher{app: app, keymap: keymap}
}

// Handle applies one engine event to the state tree.
func (d *Dispatcher) Handle(evt engine.Event) Result {
	var res Result
	id := evt.Target()
	events.Engine.Event(evt.Kind(), string(id))

	switch e := evt.(type) {
	case engine.SetWindowInnerSize, engine.SetWindowPosition:
		// The shell owns window geometry.
	case engine.SetFullScreenState:
		win := d.window(id)
		if win == nil {
			return d.unmatched(evt)
		}
		if win.Fullscreen == e.Fullscreen {
			return res
		}
		win.Fullscreen = e.Fullscreen
		if e.Fullscreen {
			res.Fullscreen = FullscreenEnter
		} else {
			res.Fullscreen = FullscreenExit
		}
		res.Invalidated = true
	case engine.TitleChanged:
		b := d.browser(id)
		if b == nil {
			return d.unmatched(evt)
		}
		b.Title = e.Title
		res.Invalidated = true
		if b.URL != "" && e.Title != "" {
			res.Visit = &Visit{URL: b.URL, Title: e.Title}
		}
	case engine.StatusChanged:
		win := d.window(id)
		if win == nil {
			return d.unmatched(evt)
		}
		win.Status = e.Status
		res.Invalidated = true
	case engine.LoadStart:
		b := d.browser(id)
		if b == nil {
			return d.unmatched(evt)
		}
		b.IsLoading = true
		res.Invalidated = true
	case engine.LoadEnd:
		b := d.browser(id)
		if b == nil {
			return d.unmatched(evt)
		}
		b.IsLoading = false
		res.Invalidated = true
	case engine.LoadError:
		win, b := d.app.FindBrowser(id)
		if b == nil {
			return d.unmatched(evt)
		}
		b.IsLoading = false
		win.Status = fmt.Sprintf("Failed to load %s: %s", e.URL, e.Reason)
		res.Invalidated = true
	case engine.HeadParsed:
		if d.browser(id) == nil {
			return d.unmatched(evt)
		}
	case engine.HistoryChanged:
		b := d.browser(id)
		if b == nil {
			return d.unmatched(evt)
		}
		if e.Current < 0 || e.Current >= len(e.Entries) {
			return res
		}
		entry := e.Entries[e.Current]
		b.URL = entry.URL
		b.CanGoBack = e.Current > 0
		b.CanGoForward = e.Current < len(e.Entries)-1
		res.Invalidated = true
		res.Visit = &Visit{URL: entry.URL, Title: entry.Title, Navigated: true}
	case engine.CursorChanged:
		if d.app.Cursor != e.Cursor {
			d.app.Cursor = e.Cursor
			res.Invalidated = true
		}
	case engine.FaviconChanged:
		b := d.browser(id)
		if b == nil {
			return d.unmatched(evt)
		}
		b.Favicon = e.URL
		res.Invalidated = true
	case engine.KeyEvent:
		if cmd, ok := d.keymap.Command(e.Key, e.Modifiers); ok {
			res.Shortcut = &cmd
		}
	}
	return res
}

func (d *Dispatcher) unmatched(evt engine.Event) Result {
	events.Engine.Unmatched(evt.Kind(), string(evt.Target()))
	return Result{Unmatched: true}
}

func (d *Dispatcher) browser(id state.BrowserID) *state.BrowserState {
	_, b := d.app.FindBrowser(id)
	return b
}

// window returns the window holding id, or the current window for events
// not tied to a browser.
func (d *Dispatcher) window(id state.BrowserID) *state.WindowState {
	if id == "" {
		return d.app.CurrentWindow()
	}
	win, _ := d.app.FindBrowser(id)
	return win
}
