//go:build raylib

// Package raylib is a desktop window backend built on raylib. The window is
// polled once per frame: input becomes platform events, the shell ticks, and
// the chrome is drawn around the page area.
package raylib

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/atomicstack/webshell/internal/logging"
	"github.com/atomicstack/webshell/internal/platform"
	"github.com/atomicstack/webshell/internal/platform/queue"
	"github.com/atomicstack/webshell/internal/state"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const Name = "raylib"

const (
	defaultWidth  = 1024
	defaultHeight = 740
	targetFPS     = 60
	logCapacity   = 200
)

var (
	ErrSingleWindow = errors.New("raylib: only one window is supported")
	errNoWindow     = errors.New("raylib: no window was created")
)

func init() {
	platform.Register(Name, func(opts platform.Options) (platform.App, error) {
		return NewApp(opts), nil
	})
}

// App owns the raylib window and its frame loop.
type App struct {
	events queue.Queue[platform.AppEvent]
	opts   platform.Options
	keymap platform.Keymap

	mu     sync.Mutex
	window *Window
	state  state.AppState
	quit   atomic.Bool
}

func NewApp(opts platform.Options) *App {
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}
	return &App{opts: opts, keymap: platform.DefaultKeymap()}
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
	w := &Window{app: a}
	w.view = &View{window: w, size: platform.Size{Width: a.opts.Width, Height: a.opts.Height}, dpi: 1}
	w.view.margins = marginsFor(state.WindowState{})
	a.window = w
	return w, nil
}

// Run opens the native window and runs the frame loop until Quit.
func (a *App) Run(tick func()) error {
	a.mu.Lock()
	w := a.window
	a.mu.Unlock()
	if w == nil {
		return errNoWindow
	}

	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi)
	rl.InitWindow(int32(a.opts.Width), int32(a.opts.Height), a.opts.Title)
	defer rl.CloseWindow()
	rl.SetTargetFPS(targetFPS)
	rl.SetExitKey(0)

	f := newFrame(a, w)
	w.view.measure()
	a.events.Push(platform.DidFinishLaunching{})
	tick()

	for !a.quit.Load() {
		if rl.WindowShouldClose() {
			a.events.Push(platform.WillTerminate{})
			w.events.Push(platform.WillClose{})
		}
		if rl.IsWindowResized() && w.view.measure() {
			w.events.Push(platform.WindowGeometryDidChange{})
			w.view.events.Push(platform.ViewGeometryDidChange{})
		}
		if w.awaken.Swap(false) {
			w.events.Push(platform.EventLoopAwaken{})
		}
		f.poll()
		tick()
		f.draw()
	}
	return nil
}

func (a *App) Quit() {
	a.quit.Store(true)
}

func (a *App) ResourcesPath() (string, error) {
	return platform.FindResources()
}

// Window is the native raylib window.
type Window struct {
	app    *App
	view   *View
	events queue.Queue[platform.WindowEvent]
	awaken atomic.Bool

	mu    sync.Mutex
	state state.WindowState
	logs  []logging.Entry
}

func (w *Window) Events() []platform.WindowEvent { return w.events.Drain() }

func (w *Window) Render(s *state.WindowState) {
	snap := s.Snapshot()
	w.mu.Lock()
	w.state = snap
	w.mu.Unlock()
	if w.view.setMargins(marginsFor(snap)) {
		w.view.events.Push(platform.ViewGeometryDidChange{})
	}
}

func (w *Window) snapshot() state.WindowState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

func (w *Window) NewView() (platform.View, error) { return w.view, nil }

// Waker marks the window awake. The frame loop picks it up on its next pass.
func (w *Window) Waker() platform.Waker {
	return platform.WakerFunc(func() { w.awaken.Store(true) })
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
	return platform.OpenURL(url)
}

func (w *Window) pushCommand(cmd platform.WindowCommand) {
	w.events.Push(platform.WindowDoCommand{Command: cmd})
}

// View is the page area of the window.
type View struct {
	window *Window
	events queue.Queue[platform.ViewEvent]

	mu      sync.Mutex
	size    platform.Size
	dpi     float64
	margins platform.Margins
}

func (v *View) Events() []platform.ViewEvent { return v.events.Drain() }

func (v *View) Geometry() platform.DrawableGeometry {
	v.mu.Lock()
	defer v.mu.Unlock()
	return platform.DrawableGeometry{ViewSize: v.size, Margins: v.margins, HiDPIFactor: v.dpi}
}

// measure reads the window size and scale, reporting whether either changed.
// It must run on the loop goroutine.
func (v *View) measure() bool {
	size := platform.Size{Width: rl.GetScreenWidth(), Height: rl.GetScreenHeight()}
	dpi := float64(rl.GetWindowScaleDPI().X)
	if dpi <= 0 {
		dpi = 1
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if size == v.size && dpi == v.dpi {
		return false
	}
	v.size, v.dpi = size, dpi
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

// UpdateDrawable is a no-op: raylib resizes its framebuffer with the window.
func (v *View) UpdateDrawable() {}

func (v *View) EnterFullscreen() {
	if !rl.IsWindowFullscreen() {
		rl.ToggleFullscreen()
		v.window.events.Push(platform.DidEnterFullScreen{})
	}
}

func (v *View) ExitFullscreen() {
	if rl.IsWindowFullscreen() {
		rl.ToggleFullscreen()
		v.window.events.Push(platform.DidExitFullScreen{})
	}
}

func (v *View) MakeCurrent() {}

// Present is a no-op: the frame loop swaps buffers after drawing the chrome.
func (v *View) Present() {}

// SetLiveResizeCallback is a no-op: raylib reports resizes between frames and
// the frame loop ticks after each one.
func (v *View) SetLiveResizeCallback(func()) {}
