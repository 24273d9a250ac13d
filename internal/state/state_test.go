package state

import (
	"strings"
	"testing"
)

func sampleApp() *AppState {
	app := New()
	win := NewWindow()
	win.Browsers = []BrowserState{NewBrowser("a"), NewBrowser("b"), NewBrowser("c")}
	win.CurrentBrowserIndex = 1
	app.Windows = append(app.Windows, win)
	app.CurrentWindowIndex = 0
	return app
}

func TestNewBrowserDefaults(t *testing.T) {
	b := NewBrowser("x")
	if b.ID != "x" {
		t.Fatalf("expected id x, got %q", b.ID)
	}
	if b.Zoom != 1.0 {
		t.Fatalf("expected zoom 1.0, got %v", b.Zoom)
	}
	if b.LastMouseDownButton != MouseNone {
		t.Fatalf("expected no recorded button, got %v", b.LastMouseDownButton)
	}
	if b.IsLoading || b.CanGoBack || b.CanGoForward {
		t.Fatalf("expected fresh browser flags to be false, got %+v", b)
	}
}

func TestCurrentAccessors(t *testing.T) {
	app := sampleApp()
	win := app.CurrentWindow()
	if win == nil {
		t.Fatalf("expected current window")
	}
	if cur := win.CurrentBrowser(); cur == nil || cur.ID != "b" {
		t.Fatalf("expected current browser b, got %+v", cur)
	}
	if New().CurrentWindow() != nil {
		t.Fatalf("expected no current window on empty state")
	}
	win.CurrentBrowserIndex = 7
	if win.CurrentBrowser() != nil {
		t.Fatalf("expected nil browser for out of range index")
	}
}

func TestFindBrowser(t *testing.T) {
	app := sampleApp()
	b, idx := app.Windows[0].FindBrowser("c")
	if b == nil || idx != 2 {
		t.Fatalf("expected c at 2, got %v %d", b, idx)
	}
	if b, idx := app.Windows[0].FindBrowser("zz"); b != nil || idx != None {
		t.Fatalf("expected miss, got %v %d", b, idx)
	}
	win, found := app.FindBrowser("a")
	if win == nil || found == nil || found.ID != "a" {
		t.Fatalf("expected to find a across windows")
	}
	found.Title = "changed"
	if app.Windows[0].Browsers[0].Title != "changed" {
		t.Fatalf("expected FindBrowser to return a pointer into the tree")
	}
}

func TestValidate(t *testing.T) {
	if err := sampleApp().Validate(); err != nil {
		t.Fatalf("expected valid tree, got %v", err)
	}
	if err := New().Validate(); err != nil {
		t.Fatalf("expected empty app to be valid, got %v", err)
	}

	app := sampleApp()
	app.Windows[0].Browsers[2].ID = "a"
	app.Windows[0].Browsers[1].Zoom = 0
	app.Windows[0].CurrentBrowserIndex = 5
	err := app.Validate()
	if err == nil {
		t.Fatalf("expected violations")
	}
	for _, want := range []string{"duplicated", "zoom", "out of range"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %v", want, err)
		}
	}

	empty := New()
	empty.Windows = []WindowState{NewWindow()}
	empty.CurrentWindowIndex = 0
	if err := empty.Validate(); err == nil || !strings.Contains(err.Error(), "no browsers") {
		t.Fatalf("expected empty window violation, got %v", err)
	}
}

func TestRemoveWindow(t *testing.T) {
	app := sampleApp()
	app.Windows = append(app.Windows, NewWindow())
	app.CurrentWindowIndex = 1
	app.RemoveWindow(0)
	if len(app.Windows) != 1 || app.CurrentWindowIndex != 0 {
		t.Fatalf("expected one window selected at 0, got %d/%d", len(app.Windows), app.CurrentWindowIndex)
	}
	app.RemoveWindow(0)
	if app.CurrentWindowIndex != None {
		t.Fatalf("expected no current window, got %d", app.CurrentWindowIndex)
	}
}

func TestSnapshotIsolation(t *testing.T) {
	app := sampleApp()
	app.Windows[0].DebugOptions[DebugTileBorders] = true
	snap := app.Windows[0].Snapshot()
	app.Windows[0].Browsers[0].Title = "mutated"
	app.Windows[0].DebugOptions[DebugTileBorders] = false
	if snap.Browsers[0].Title != "" {
		t.Fatalf("expected snapshot browsers to be detached")
	}
	if !snap.DebugOptions[DebugTileBorders] {
		t.Fatalf("expected snapshot options to be detached")
	}
}

func TestDebugOptions(t *testing.T) {
	opts := DebugOptions{}
	if !opts.Toggle(DebugWRProfiler) {
		t.Fatalf("expected first toggle to enable")
	}
	opts.Toggle(DebugFragmentBorders)
	got := opts.Enabled()
	if len(got) != 2 || got[0] != DebugFragmentBorders || got[1] != DebugWRProfiler {
		t.Fatalf("unexpected enabled set %v", got)
	}
	if opts.Toggle(DebugWRProfiler) {
		t.Fatalf("expected second toggle to disable")
	}
	if !DebugWRTextureCacheDebug.IsRendererOption() || DebugTileBorders.IsRendererOption() {
		t.Fatalf("renderer option classification wrong")
	}
	if DebugOption("bogus").Known() {
		t.Fatalf("expected unknown option")
	}
}

func TestCursorNames(t *testing.T) {
	if CursorPointer.String() != "pointer" {
		t.Fatalf("expected pointer, got %s", CursorPointer)
	}
	if ParseCursor("ew-resize") != CursorEwResize {
		t.Fatalf("expected ew-resize to parse")
	}
	if ParseCursor("nope") != CursorDefault {
		t.Fatalf("expected unknown cursor to fall back to default")
	}
}
