// Package term is a terminal platform backend. A Bubble Tea program is the
// native event loop: terminal input is translated into platform events, and
// the state the shell renders is drawn as text chrome around an empty page
// area whose pixel geometry is derived from the terminal cell grid.
package term

import (
	"errors"
	"os"
	"sync"
	"sync/atomic"

	"github.com/atomicstack/webshell/internal/logging"
	"github.com/atomicstack/webshell/internal/platform"
	"github.com/atomicstack/webshell/internal/platform/queue"
	"github.com/atomicstack/webshell/internal/state"
	tea "github.com/charmbracelet/bubbletea"
	xterm "golang.org/x/term"
)

const Name = "term"

// Each terminal cell stands for a fixed block of pixels.
const (
	cellWidth  = 8
	cellHeight = 16
)

const (
	chromeRows  = 2
	statusRows  = 1
	logRows     = 6
	sidebarCols = 28
	optionsCols = 34
	logCapacity = 200
)

var (
	ErrSingleWindow = errors.New("term: only one window is supported")
	errNoWindow     = errors.New("term: no window was created")
)

func init() {
	platform.Register(Name, func(opts platform.Options) (platform.App, error) {
		return NewApp(opts), nil
	})
}

// App is the terminal application. It owns at most one window.
type App struct {
	events queue.Queue[platform.AppEvent]

	cols, rows int
	fixed      bool

	// ProgramOptions are appended to the defaults when Run starts the program.
	ProgramOptions []tea.ProgramOption

	mu       sync.Mutex
	program  *tea.Program
	window   *Window
	state    state.AppState
	quitting atomic.Bool
}

// NewApp sizes the viewport from opts, which is measured in cells. A zero
// size follows the terminal.
func NewApp(opts platform.Options) *App {
	a := &App{cols: opts.Width, rows: opts.Height}
	if a.cols > 0 && a.rows > 0 {
		a.fixed = true
		return a
	}
	cols, rows := 80, 24
	if fd := int(os.Stdout.Fd()); xterm.IsTerminal(fd) {
		if w, h, err := xterm.GetSize(fd); err == nil {
			cols, rows = w, h
		}
	}
	if a.cols <= 0 {
		a.cols = cols
	}
	if a.rows <= 0 {
		a.rows = rows
	}
	return a
}

func (a *App) Events() []platform.AppEvent { return a.events.Drain() }

func (a *App) Render(s *state.AppState) {
	a.mu.Lock()
	a.state = state.AppState{
		CurrentWindowIndex: s.CurrentWindowIndex,
		DarkTheme:          s.DarkTheme,
		Cursor:             s.Cursor,
	}
	a.mu.Unlock()
}

func (a *App) snapshot() state.AppState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

func (a *App) NewWindow() (platform.Window, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.window != nil {
		return nil, ErrSingleWindow
	}
	w := &Window{app: a, Opener: platform.OpenURL}
	w.view = &View{window: w, cols: a.cols, rows: a.rows, fixed: a.fixed}
	w.view.margins = marginsFor(state.WindowState{})
	a.window = w
	return w, nil
}

// Run starts the Bubble Tea program and blocks until it exits.
func (a *App) Run(tick func()) error {
	a.mu.Lock()
	if a.window == nil {
		a.mu.Unlock()
		return errNoWindow
	}
	opts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseAllMotion()}, a.ProgramOptions...)
	p := tea.NewProgram(newModel(a, tick), opts...)
	a.program = p
	a.mu.Unlock()

	_, err := p.Run()

	a.mu.Lock()
	a.program = nil
	a.mu.Unlock()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

// send delivers msg to the running program without blocking the caller.
// Before Run or after exit the message is dropped.
func (a *App) send(msg tea.Msg) {
	a.mu.Lock()
	p := a.program
	a.mu.Unlock()
	if p != nil {
		go p.Send(msg)
	}
}

// Quit stops the program once the current update returns.
func (a *App) Quit() {
	a.quitting.Store(true)
	a.send(quitMsg{})
}

func (a *App) ResourcesPath() (string, error) {
	return platform.FindResources()
}

// Window is the terminal screen.
type Window struct {
	app    *App
	view   *View
	events queue.Queue[platform.WindowEvent]
	awaken atomic.Bool

	// Opener hands URLs to the desktop's default browser.
	Opener func(url string) error

	mu       sync.Mutex
	state    state.WindowState
	rendered bool
	logs     []logging.Entry
}

func (w *Window) Events() []platform.WindowEvent { return w.events.Drain() }

// Render stores the state for the next frame. A change in chrome layout is
// reported as a view geometry change so the engine learns the new margins.
func (w *Window) Render(s *state.WindowState) {
	snap := s.Snapshot()
	w.mu.Lock()
	w.state = snap
	w.rendered = true
	w.mu.Unlock()
	if w.view.setMargins(marginsFor(snap)) {
		w.view.events.Push(platform.ViewGeometryDidChange{})
	}
}

func (w *Window) snapshot() (state.WindowState, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state, w.rendered
}

func (w *Window) NewView() (platform.View, error) { return w.view, nil }

// Waker posts at most one pending wake message to the program.
func (w *Window) Waker() platform.Waker {
	return platform.WakerFunc(func() {
		if w.awaken.CompareAndSwap(false, true) {
			w.app.send(wakeMsg{})
		}
	})
}

func (w *Window) AppendLogs(entries []logging.Entry) {
	w.mu.Lock()
	w.logs = append(w.logs, entries...)
	if over := len(w.logs) - logCapacity; over > 0 {
		w.logs = append([]logging.Entry(nil), w.logs[over:]...)
	}
	w.mu.Unlock()
}

func (w *Window) recentLogs(n int) []logging.Entry {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.logs) > n {
		return append([]logging.Entry(nil), w.logs[len(w.logs)-n:]...)
	}
	return append([]logging.Entry(nil), w.logs...)
}

func (w *Window) OpenExternal(url string) error {
	return w.Opener(url)
}

// View maps the terminal grid onto pixel geometry.
type View struct {
	window *Window
	events queue.Queue[platform.ViewEvent]

	mu         sync.Mutex
	cols, rows int
	fixed      bool
	margins    platform.Margins
	fullscreen bool
	liveResize func()
}

func (v *View) Events() []platform.ViewEvent { return v.events.Drain() }

func (v *View) Geometry() platform.DrawableGeometry {
	v.mu.Lock()
	defer v.mu.Unlock()
	return platform.DrawableGeometry{
		ViewSize:    platform.Size{Width: v.cols * cellWidth, Height: v.rows * cellHeight},
		Margins:     v.margins,
		HiDPIFactor: 1,
	}
}

func (v *View) size() (int, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cols, v.rows
}

// resize adopts a new terminal size. A fixed viewport ignores it.
func (v *View) resize(cols, rows int) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.fixed || (cols == v.cols && rows == v.rows) {
		return false
	}
	v.cols, v.rows = cols, rows
	return true
}

func (v *View) setMargins(m platform.Margins) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if m == v.margins {
		return false
	}
	v.margins = m
	return true
}

// UpdateDrawable is a no-op: the terminal redraws after every update.
func (v *View) UpdateDrawable() {}

func (v *View) EnterFullscreen() {
	v.mu.Lock()
	v.fullscreen = true
	v.mu.Unlock()
}

func (v *View) ExitFullscreen() {
	v.mu.Lock()
	v.fullscreen = false
	v.mu.Unlock()
}

func (v *View) Fullscreen() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.fullscreen
}

func (v *View) MakeCurrent() {}

func (v *View) Present() {}

func (v *View) SetLiveResizeCallback(cb func()) {
	v.mu.Lock()
	v.liveResize = cb
	v.mu.Unlock()
}

// marginsFor returns the chrome around the page area in pixels.
func marginsFor(win state.WindowState) platform.Margins {
	m := platform.Margins{
		Top:    chromeRows * cellHeight,
		Bottom: statusRows * cellHeight,
	}
	if win.LogsVisible {
		m.Bottom += logRows * cellHeight
	}
	if win.SidebarIsOpen {
		m.Left = sidebarCols * cellWidth
	}
	if win.OptionsOpen {
		m.Right = optionsCols * cellWidth
	}
	return m
}
