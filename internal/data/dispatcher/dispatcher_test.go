package dispatcher

import (
	"testing"

	"github.com/atomicstack/webshell/internal/engine"
	"github.com/atomicstack/webshell/internal/platform"
	"github.com/atomicstack/webshell/internal/state"
)

func newTree() *state.AppState {
	app := state.New()
	win := state.NewWindow()
	win.Browsers = []state.BrowserState{state.NewBrowser("a"), state.NewBrowser("b")}
	win.CurrentBrowserIndex = 0
	app.Windows = []state.WindowState{win}
	app.CurrentWindowIndex = 0
	return app
}

func TestHistoryChangedUpdatesNavigationFlags(t *testing.T) {
	app := newTree()
	d := New(app, platform.Keymap{Primary: platform.ModControl})
	res := d.Handle(engine.HistoryChanged{
		Browser: "b",
		Entries: []engine.HistoryEntry{{URL: "u1"}, {URL: "u2", Title: "Two"}, {URL: "u3"}},
		Current: 1,
	})
	if !res.Invalidated || res.Unmatched {
		t.Fatalf("expected invalidation, got %+v", res)
	}
	b := app.Windows[0].Browsers[1]
	if b.URL != "u2" || !b.CanGoBack || !b.CanGoForward {
		t.Fatalf("unexpected browser state %+v", b)
	}
	if res.Visit == nil || res.Visit.URL != "u2" || res.Visit.Title != "Two" || !res.Visit.Navigated {
		t.Fatalf("expected visit for u2, got %+v", res.Visit)
	}
}

func TestHistoryChangedIgnoresBadIndex(t *testing.T) {
	app := newTree()
	d := New(app, platform.DefaultKeymap())
	res := d.Handle(engine.HistoryChanged{Browser: "a", Entries: []engine.HistoryEntry{{URL: "x"}}, Current: 3})
	if res.Invalidated || app.Windows[0].Browsers[0].URL != "" {
		t.Fatalf("expected out of range history to be ignored")
	}
}

func TestUnknownIDLeavesStateUntouched(t *testing.T) {
	app := newTree()
	before := app.Windows[0].Snapshot()
	d := New(app, platform.DefaultKeymap())
	for _, evt := range []engine.Event{
		engine.TitleChanged{Browser: "zz", Title: "x"},
		engine.LoadStart{Browser: "zz"},
		engine.LoadEnd{Browser: "zz"},
		engine.HistoryChanged{Browser: "zz", Entries: []engine.HistoryEntry{{URL: "x"}}},
		engine.FaviconChanged{Browser: "zz", URL: "x"},
	} {
		res := d.Handle(evt)
		if !res.Unmatched || res.Invalidated {
			t.Fatalf("%s: expected unmatched, got %+v", evt.Kind(), res)
		}
	}
	for i, b := range app.Windows[0].Browsers {
		if b != before.Browsers[i] {
			t.Fatalf("browser %d changed: %+v", i, b)
		}
	}
}

func TestLoadLifecycle(t *testing.T) {
	app := newTree()
	d := New(app, platform.DefaultKeymap())
	d.Handle(engine.LoadStart{Browser: "a"})
	if !app.Windows[0].Browsers[0].IsLoading {
		t.Fatalf("expected loading")
	}
	d.Handle(engine.LoadEnd{Browser: "a"})
	if app.Windows[0].Browsers[0].IsLoading {
		t.Fatalf("expected load finished")
	}
	d.Handle(engine.LoadStart{Browser: "a"})
	d.Handle(engine.LoadError{Browser: "a", URL: "http://x", Reason: "refused"})
	if app.Windows[0].Browsers[0].IsLoading || app.Windows[0].Status == "" {
		t.Fatalf("expected load error to stop loading and set status")
	}
}

func TestTitleStatusCursor(t *testing.T) {
	app := newTree()
	d := New(app, platform.DefaultKeymap())
	app.Windows[0].Browsers[0].URL = "https://example.com"
	res := d.Handle(engine.TitleChanged{Browser: "a", Title: "Example"})
	if app.Windows[0].Browsers[0].Title != "Example" || res.Visit == nil || res.Visit.Navigated {
		t.Fatalf("expected title and visit, got %+v", res)
	}
	d.Handle(engine.StatusChanged{Status: "hovering"})
	if app.Windows[0].Status != "hovering" {
		t.Fatalf("expected status on current window")
	}
	res = d.Handle(engine.CursorChanged{Cursor: state.CursorPointer})
	if app.Cursor != state.CursorPointer || !res.Invalidated {
		t.Fatalf("expected cursor update")
	}
	res = d.Handle(engine.CursorChanged{Cursor: state.CursorPointer})
	if res.Invalidated {
		t.Fatalf("expected unchanged cursor not to invalidate")
	}
}

func TestFullscreenRequest(t *testing.T) {
	app := newTree()
	d := New(app, platform.DefaultKeymap())
	res := d.Handle(engine.SetFullScreenState{Browser: "a", Fullscreen: true})
	if res.Fullscreen != FullscreenEnter || !app.Windows[0].Fullscreen {
		t.Fatalf("expected enter, got %+v", res)
	}
	res = d.Handle(engine.SetFullScreenState{Browser: "a", Fullscreen: true})
	if res.Fullscreen != FullscreenUnchanged {
		t.Fatalf("expected repeated request to be a no-op")
	}
	res = d.Handle(engine.SetFullScreenState{Browser: "a", Fullscreen: false})
	if res.Fullscreen != FullscreenExit {
		t.Fatalf("expected exit")
	}
}

func TestKeyEventMapsToShortcut(t *testing.T) {
	d := New(newTree(), platform.Keymap{Primary: platform.ModControl})
	res := d.Handle(engine.KeyEvent{Browser: "a", Key: platform.KeyT, Modifiers: platform.ModControl})
	if res.Shortcut == nil || res.Shortcut.Kind != platform.CmdNewTab {
		t.Fatalf("expected new tab shortcut, got %+v", res.Shortcut)
	}
	res = d.Handle(engine.KeyEvent{Browser: "a", Key: platform.KeyX})
	if res.Shortcut != nil {
		t.Fatalf("expected no shortcut")
	}
}
