package term

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/atomicstack/webshell/internal/engine"
	"github.com/atomicstack/webshell/internal/logging"
	"github.com/atomicstack/webshell/internal/platform"
	"github.com/atomicstack/webshell/internal/shell"
	"github.com/atomicstack/webshell/internal/state"
	"github.com/atomicstack/webshell/internal/testutil"
	"github.com/atomicstack/webshell/internal/theme"
	tea "github.com/charmbracelet/bubbletea"
)

type fixture struct {
	app     *App
	window  *Window
	view    *View
	engine  *testutil.Engine
	shell   *shell.Shell
	harness *Harness
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	app := NewApp(platform.Options{Width: 80, Height: 24})
	w, err := app.NewWindow()
	if err != nil {
		t.Fatalf("new window: %v", err)
	}
	win := w.(*Window)
	win.Opener = func(string) error { return nil }
	rec := &testutil.Engine{}
	adapter, err := engine.New(rec.Factory(), "/res", win.view, win.Waker())
	if err != nil {
		t.Fatalf("adapter: %v", err)
	}
	sh := shell.New(shell.Options{
		App:    app,
		Window: win,
		View:   win.view,
		Engine: adapter,
		Keymap: platform.Keymap{Primary: platform.ModControl},
	})
	if err := sh.Bootstrap("https://blog.servo.org/"); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}
	h := NewHarness(app, func() { sh.HandleEvents() })
	rec.Reset()
	return &fixture{app: app, window: win, view: win.view, engine: rec, shell: sh, harness: h}
}

func (f *fixture) current() *state.WindowState {
	return f.shell.State().CurrentWindow()
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func TestGeometryFromCells(t *testing.T) {
	f := newFixture(t)
	g := f.view.Geometry()
	if g.ViewSize != (platform.Size{Width: 640, Height: 384}) {
		t.Fatalf("unexpected view size %+v", g.ViewSize)
	}
	if g.Margins != (platform.Margins{Top: 32, Bottom: 16}) {
		t.Fatalf("unexpected margins %+v", g.Margins)
	}
	f.harness.Send(tea.WindowSizeMsg{Width: 120, Height: 40})
	if got := f.view.Geometry().ViewSize; got.Width != 640 {
		t.Fatalf("expected fixed viewport to ignore resize, got %+v", got)
	}
}

func TestLaunchRendersChrome(t *testing.T) {
	f := newFixture(t)
	view := f.harness.View()
	lines := strings.Split(view, "\n")
	if len(lines) != 24 {
		t.Fatalf("expected 24 rows, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "> No Title") {
		t.Fatalf("expected selected tab in strip, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "https://blog.servo.org/") {
		t.Fatalf("expected url in address bar, got %q", lines[1])
	}
	if !strings.Contains(lines[23], "ctrl+q quit") {
		t.Fatalf("expected hint in status line, got %q", lines[23])
	}
}

func TestTypingGoesToPage(t *testing.T) {
	f := newFixture(t)
	f.harness.Send(runes("a"))
	cmds := f.engine.Commands()
	if len(cmds) != 2 {
		t.Fatalf("expected press and release, got %#v", cmds)
	}
	press, ok := cmds[0].(engine.KeyInput)
	if !ok || press.Char != 'a' || press.State != platform.Pressed || press.Key != platform.KeyA {
		t.Fatalf("unexpected press %#v", cmds[0])
	}
	if release := cmds[1].(engine.KeyInput); release.State != platform.Released {
		t.Fatalf("unexpected release %#v", release)
	}
}

func TestShortcutOpensTab(t *testing.T) {
	f := newFixture(t)
	f.harness.Send(key(tea.KeyCtrlT))
	win := f.current()
	if len(win.Browsers) != 2 || win.CurrentBrowserIndex != 1 {
		t.Fatalf("expected second tab selected, got %d of %d", win.CurrentBrowserIndex, len(win.Browsers))
	}
	strip := strings.Split(f.harness.View(), "\n")[0]
	if strings.Count(strip, "No Title") != 2 || !strings.Contains(strip, "|   No Title") {
		t.Fatalf("unexpected strip %q", strip)
	}
}

func TestAltDigitSelectsTab(t *testing.T) {
	f := newFixture(t)
	f.harness.Send(key(tea.KeyCtrlT))
	f.harness.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1"), Alt: true})
	if f.current().CurrentBrowserIndex != 0 {
		t.Fatalf("expected alt+1 to select the first tab")
	}
}

func TestUrlbarLoad(t *testing.T) {
	f := newFixture(t)
	f.harness.Send(key(tea.KeyCtrlL))
	if !f.current().UrlbarFocused || !f.harness.model.urlbar.Focused() {
		t.Fatalf("expected url bar focused")
	}
	if got := f.harness.model.urlbar.Value(); got != "https://blog.servo.org/" {
		t.Fatalf("expected url bar seeded with the current url, got %q", got)
	}
	f.harness.Send(key(tea.KeyCtrlU))
	f.harness.Send(runes("example.com"))
	if f.current().UrlbarInput != "example.com" {
		t.Fatalf("expected typed input mirrored, got %q", f.current().UrlbarInput)
	}
	f.engine.Reset()
	f.harness.Send(key(tea.KeyEnter))
	cmds := f.engine.Commands()
	if len(cmds) != 1 {
		t.Fatalf("expected one load, got %#v", cmds)
	}
	if load, ok := cmds[0].(engine.LoadURL); !ok || load.URL != "http://example.com" {
		t.Fatalf("unexpected command %#v", cmds[0])
	}
	if f.current().UrlbarFocused || f.harness.model.urlbar.Focused() {
		t.Fatalf("expected url bar blurred after enter")
	}
}

func TestUrlbarEscape(t *testing.T) {
	f := newFixture(t)
	f.harness.Send(key(tea.KeyCtrlL))
	f.harness.Send(key(tea.KeyEsc))
	if f.current().UrlbarFocused {
		t.Fatalf("expected escape to blur the url bar")
	}
	if f.engine.BatchCount() != 0 {
		t.Fatalf("expected nothing sent to the engine")
	}
}

func TestClickTabStrip(t *testing.T) {
	f := newFixture(t)
	f.harness.Send(key(tea.KeyCtrlT))
	f.harness.Send(tea.MouseMsg{X: 2, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if f.current().CurrentBrowserIndex != 0 {
		t.Fatalf("expected click to select the first tab")
	}
	f.harness.Send(tea.MouseMsg{X: 30, Y: 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if !f.current().UrlbarFocused {
		t.Fatalf("expected click on the address bar to focus it")
	}
}

func TestPageClickSynthesis(t *testing.T) {
	f := newFixture(t)
	f.harness.Send(tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	f.harness.Send(tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionRelease, Button: tea.MouseButtonNone})
	var actions []engine.MouseButtonEvent
	for _, c := range f.engine.Commands() {
		if m, ok := c.(engine.MouseButtonEvent); ok {
			actions = append(actions, m)
		}
	}
	if len(actions) != 3 || actions[2].Action != engine.MouseClick {
		t.Fatalf("expected down, up, click, got %#v", actions)
	}
	if actions[2].Point != (state.Point{X: 80, Y: 48}) || actions[2].Button != state.MouseLeft {
		t.Fatalf("unexpected click %#v", actions[2])
	}
}

func TestWheelScrolls(t *testing.T) {
	f := newFixture(t)
	f.harness.Send(tea.MouseMsg{X: 4, Y: 6, Action: tea.MouseActionMotion})
	f.harness.Send(tea.MouseMsg{X: 4, Y: 6, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	cmds := f.engine.Commands()
	s, ok := cmds[len(cmds)-1].(engine.Scroll)
	if !ok || s.DY != -platform.LineHeight || s.Point != (state.Point{X: 32, Y: 64}) {
		t.Fatalf("unexpected scroll %#v", cmds[len(cmds)-1])
	}
}

func TestSidebarFilterSelects(t *testing.T) {
	f := newFixture(t)
	f.harness.Send(key(tea.KeyCtrlT))
	f.harness.Send(key(tea.KeyCtrlT))
	for i, title := range []string{"Servo", "Rust", "Mozilla"} {
		f.engine.Post(engine.TitleChanged{Browser: f.current().Browsers[i].ID, Title: title})
	}
	f.harness.Wake()
	f.harness.Send(key(tea.KeyCtrlB))
	if !f.current().SidebarIsOpen {
		t.Fatalf("expected sidebar open")
	}
	if left := f.view.Geometry().Margins.Left; left != sidebarCols*cellWidth {
		t.Fatalf("expected left margin for the sidebar, got %d", left)
	}
	f.harness.Send(runes("rust"))
	if len(f.harness.model.tabs.Items) != 1 {
		t.Fatalf("expected one filtered tab, got %#v", f.harness.model.tabs.Items)
	}
	if !strings.Contains(f.harness.View(), "/ rust") {
		t.Fatalf("expected filter rendered")
	}
	f.harness.Send(key(tea.KeyEnter))
	if f.current().CurrentBrowserIndex != 1 {
		t.Fatalf("expected the rust tab selected, got %d", f.current().CurrentBrowserIndex)
	}
	f.harness.Send(key(tea.KeyEsc))
	f.harness.Send(key(tea.KeyEsc))
	if f.current().SidebarIsOpen {
		t.Fatalf("expected second escape to close the sidebar")
	}
}

func TestOptionsToggleRendererOption(t *testing.T) {
	f := newFixture(t)
	f.harness.Send(key(tea.KeyCtrlO))
	for i := 0; i < 5; i++ {
		f.harness.Send(key(tea.KeyDown))
	}
	f.engine.Reset()
	f.harness.Send(key(tea.KeyEnter))
	cmds := f.engine.Commands()
	if len(cmds) == 0 {
		t.Fatalf("expected a debug toggle")
	}
	if td, ok := cmds[0].(engine.ToggleDebug); !ok || td.Option != state.DebugWRProfiler {
		t.Fatalf("unexpected command %#v", cmds[0])
	}
	if !strings.Contains(f.harness.View(), "[x] wr-profiler") {
		t.Fatalf("expected checked option in view")
	}
}

func TestOptionsDarkTheme(t *testing.T) {
	f := newFixture(t)
	f.harness.Send(key(tea.KeyCtrlO))
	entries := optionEntries(state.AppState{}, *f.current())
	for i := range entries {
		if entries[i].Label == "dark theme" {
			f.harness.model.option = i
		}
	}
	f.harness.Send(key(tea.KeyEnter))
	if !f.shell.State().DarkTheme || !f.app.snapshot().DarkTheme {
		t.Fatalf("expected dark theme toggled and rendered")
	}
}

func TestWakeForcesOneSync(t *testing.T) {
	f := newFixture(t)
	waker := f.window.Waker()
	waker.Wake()
	waker.Wake()
	f.harness.Wake()
	if f.engine.BatchCount() != 1 {
		t.Fatalf("expected one forced batch, got %d", f.engine.BatchCount())
	}
	f.harness.Wake()
	if f.engine.BatchCount() != 1 {
		t.Fatalf("expected a stale wake to be ignored")
	}
}

func TestLogsPanel(t *testing.T) {
	f := newFixture(t)
	f.window.AppendLogs([]logging.Entry{{Time: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), Level: logging.LevelWarn, Message: "history queue full"}})
	f.window.pushCommand(platform.Do(platform.CmdToggleOptionShowLogs))
	f.harness.Wake()
	view := f.harness.View()
	if !strings.Contains(view, "03:04:05  WARN  history queue full") {
		t.Fatalf("expected log row in view:\n%s", view)
	}
	if bottom := f.view.Geometry().Margins.Bottom; bottom != (statusRows+logRows)*cellHeight {
		t.Fatalf("expected logs in the bottom margin, got %d", bottom)
	}
	if n := len(strings.Split(view, "\n")); n != 24 {
		t.Fatalf("expected 24 rows, got %d", n)
	}
}

func TestCtrlQQuits(t *testing.T) {
	f := newFixture(t)
	f.harness.Send(key(tea.KeyCtrlQ))
	if !f.harness.Quit() {
		t.Fatalf("expected the program to quit")
	}
	if len(f.shell.State().Windows) != 0 {
		t.Fatalf("expected the window closed")
	}
}

func TestOpenExternalUsesOpener(t *testing.T) {
	f := newFixture(t)
	f.window.Opener = func(string) error { return errors.New("no desktop") }
	f.window.pushCommand(platform.Do(platform.CmdOpenInDefaultBrowser))
	f.harness.Wake()
	if !strings.Contains(f.current().Status, "Can't open") {
		t.Fatalf("expected failure in status, got %q", f.current().Status)
	}
}

func TestSecondWindowRejected(t *testing.T) {
	app := NewApp(platform.Options{Width: 80, Height: 24})
	if _, err := app.NewWindow(); err != nil {
		t.Fatalf("first window: %v", err)
	}
	if _, err := app.NewWindow(); !errors.Is(err, ErrSingleWindow) {
		t.Fatalf("expected ErrSingleWindow, got %v", err)
	}
	if err := NewApp(platform.Options{Width: 1, Height: 1}).Run(func() {}); !errors.Is(err, errNoWindow) {
		t.Fatalf("expected errNoWindow, got %v", err)
	}
}

func TestTabStripLayout(t *testing.T) {
	win := state.WindowState{
		CurrentBrowserIndex: 1,
		Browsers: []state.BrowserState{
			{ID: "a"},
			{ID: "b", Title: "Servo", IsLoading: true},
		},
	}
	want := "|   No Title" + strings.Repeat(" ", 7) + "  |" + " > Servo" + strings.Repeat(" ", 10) + " *|"
	if got := tabStrip(win, theme.Default()); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	cases := map[int]int{0: -1, 1: 0, 21: 0, 22: 1, 42: 1, 43: -1}
	for x, want := range cases {
		if got := tabAt(2, x); got != want {
			t.Fatalf("tabAt(%d): expected %d, got %d", x, want, got)
		}
	}
}

func TestTranslateKey(t *testing.T) {
	cases := []struct {
		msg  tea.KeyMsg
		key  platform.Key
		mods platform.Modifiers
		char rune
	}{
		{key(tea.KeyCtrlT), platform.KeyT, platform.ModControl, 0},
		{runes("A"), platform.KeyA, platform.ModShift, 'A'},
		{key(tea.KeyShiftTab), platform.KeyTab, platform.ModShift, 0},
		{key(tea.KeyCtrlLeft), platform.KeyLeft, platform.ModControl, 0},
		{key(tea.KeyEnter), platform.KeyEnter, 0, '\r'},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("="), Alt: true}, platform.KeyEqual, platform.ModAlt, '='},
	}
	for _, tc := range cases {
		k, mods, char := translateKey(tc.msg)
		if k != tc.key || mods != tc.mods || char != tc.char {
			t.Fatalf("%v: expected %v/%v/%q, got %v/%v/%q", tc.msg, tc.key, tc.mods, tc.char, k, mods, char)
		}
	}
	cmd, ok := shortcut(platform.Keymap{Primary: platform.ModControl}, platform.KeyEqual, platform.ModAlt)
	if !ok || cmd.Kind != platform.CmdZoomIn {
		t.Fatalf("expected alt+= to zoom in, got %v", cmd)
	}
}
