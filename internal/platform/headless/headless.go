// Package headless is an in-memory platform backend. Tests and scripted runs
// feed it events through the Push methods and inspect what the shell rendered.
package headless

import (
	"sync"
	"sync/atomic"

	"github.com/atomicstack/webshell/internal/logging"
	"github.com/atomicstack/webshell/internal/platform"
	"github.com/atomicstack/webshell/internal/platform/queue"
	"github.com/atomicstack/webshell/internal/state"
)

const Name = "headless"

func init() {
	platform.Register(Name, func(opts platform.Options) (platform.App, error) {
		return NewApp(opts), nil
	})
}

// App owns an arena of windows addressed by handle.
type App struct {
	opts   platform.Options
	events queue.Queue[platform.AppEvent]

	// wake carries engine wakes, input carries pushed events. Both hold at
	// most one pending signal.
	wake  chan struct{}
	input chan struct{}
	quit  chan struct{}
	once  sync.Once

	// Resources overrides resource discovery when set.
	Resources string

	mu      sync.Mutex
	windows []*Window
	renders []state.AppState
	ticks   int
}

func NewApp(opts platform.Options) *App {
	if opts.Width <= 0 {
		opts.Width = 1024
	}
	if opts.Height <= 0 {
		opts.Height = 768
	}
	return &App{
		opts:  opts,
		wake:  make(chan struct{}, 1),
		input: make(chan struct{}, 1),
		quit:  make(chan struct{}),
	}
}

func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

func (a *App) Events() []platform.AppEvent { return a.events.Drain() }

func (a *App) Render(s *state.AppState) {
	snap := *s
	snap.Windows = make([]state.WindowState, len(s.Windows))
	for i := range s.Windows {
		snap.Windows[i] = s.Windows[i].Snapshot()
	}
	a.mu.Lock()
	a.renders = append(a.renders, snap)
	a.mu.Unlock()
}

func (a *App) NewWindow() (platform.Window, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	w := &Window{app: a, handle: len(a.windows)}
	w.view = &View{
		window: w,
		geometry: platform.DrawableGeometry{
			ViewSize:    platform.Size{Width: a.opts.Width, Height: a.opts.Height},
			HiDPIFactor: 1,
		},
	}
	a.windows = append(a.windows, w)
	return w, nil
}

// Run calls tick at startup, after every pushed event and after every wake,
// until Quit.
func (a *App) Run(tick func()) error {
	a.tick(tick)
	for {
		select {
		case <-a.quit:
			return nil
		case <-a.wake:
			for _, w := range a.Windows() {
				if w.awaken.Swap(false) && !w.closed.Load() {
					w.events.Push(platform.EventLoopAwaken{})
				}
			}
			a.tick(tick)
		case <-a.input:
			a.tick(tick)
		}
	}
}

func (a *App) tick(tick func()) {
	a.mu.Lock()
	a.ticks++
	a.mu.Unlock()
	tick()
}

func (a *App) Quit() {
	a.once.Do(func() { close(a.quit) })
}

// Done is closed once Quit was called.
func (a *App) Done() <-chan struct{} { return a.quit }

func (a *App) ResourcesPath() (string, error) {
	if a.Resources != "" {
		return a.Resources, nil
	}
	return platform.FindResources()
}

// PushEvent queues an application event and schedules a tick.
func (a *App) PushEvent(evt platform.AppEvent) {
	a.events.Push(evt)
	signal(a.input)
}

// Window returns the window with the given handle, or nil.
func (a *App) Window(handle int) *Window {
	a.mu.Lock()
	defer a.mu.Unlock()
	if handle < 0 || handle >= len(a.windows) {
		return nil
	}
	return a.windows[handle]
}

func (a *App) Windows() []*Window {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]*Window(nil), a.windows...)
}

// Renders returns copies of every state the shell pushed to the app.
func (a *App) Renders() []state.AppState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]state.AppState(nil), a.renders...)
}

func (a *App) Ticks() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ticks
}

// Window records what the shell pushed to it.
type Window struct {
	app    *App
	handle int
	view   *View
	events queue.Queue[platform.WindowEvent]

	awaken atomic.Bool
	closed atomic.Bool

	// OpenErr is returned by OpenExternal when set.
	OpenErr error

	mu      sync.Mutex
	renders []state.WindowState
	logs    []logging.Entry
	opened  []string
}

func (w *Window) Handle() int { return w.handle }

func (w *Window) Events() []platform.WindowEvent { return w.events.Drain() }

func (w *Window) Render(s *state.WindowState) {
	snap := s.Snapshot()
	w.mu.Lock()
	w.renders = append(w.renders, snap)
	w.mu.Unlock()
}

func (w *Window) NewView() (platform.View, error) { return w.view, nil }

// View returns the window's view with its concrete type.
func (w *Window) View() *View { return w.view }

// Waker marks the window as awakened and signals the app. Wakes after Close
// are dropped.
func (w *Window) Waker() platform.Waker {
	return platform.WakerFunc(func() {
		if w.closed.Load() {
			return
		}
		w.awaken.Store(true)
		signal(w.app.wake)
	})
}

func (w *Window) AppendLogs(entries []logging.Entry) {
	w.mu.Lock()
	w.logs = append(w.logs, entries...)
	w.mu.Unlock()
}

func (w *Window) OpenExternal(url string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.OpenErr != nil {
		return w.OpenErr
	}
	w.opened = append(w.opened, url)
	return nil
}

// PushEvent queues a window event and schedules a tick.
func (w *Window) PushEvent(evt platform.WindowEvent) {
	w.events.Push(evt)
	signal(w.app.input)
}

// PushCommand queues a window command.
func (w *Window) PushCommand(cmd platform.WindowCommand) {
	w.PushEvent(platform.WindowDoCommand{Command: cmd})
}

// Close reports the window closing and makes later wakes no-ops.
func (w *Window) Close() {
	w.PushEvent(platform.WillClose{})
	w.closed.Store(true)
}

func (w *Window) Renders() []state.WindowState {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]state.WindowState(nil), w.renders...)
}

// LastRender returns the most recent window render.
func (w *Window) LastRender() (state.WindowState, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.renders) == 0 {
		return state.WindowState{}, false
	}
	return w.renders[len(w.renders)-1], true
}

func (w *Window) Logs() []logging.Entry {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]logging.Entry(nil), w.logs...)
}

func (w *Window) Opened() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.opened...)
}

// View is the window's drawable surface.
type View struct {
	window *Window
	events queue.Queue[platform.ViewEvent]

	mu         sync.Mutex
	geometry   platform.DrawableGeometry
	fullscreen bool
	drawables  int
	presents   int
	current    bool
	liveResize func()
}

func (v *View) Events() []platform.ViewEvent { return v.events.Drain() }

func (v *View) Geometry() platform.DrawableGeometry {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.geometry
}

func (v *View) UpdateDrawable() {
	v.mu.Lock()
	v.drawables++
	v.mu.Unlock()
}

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

func (v *View) MakeCurrent() {
	v.mu.Lock()
	v.current = true
	v.mu.Unlock()
}

func (v *View) Present() {
	v.mu.Lock()
	v.presents++
	v.mu.Unlock()
}

func (v *View) SetLiveResizeCallback(cb func()) {
	v.mu.Lock()
	v.liveResize = cb
	v.mu.Unlock()
}

// PushEvent queues an input event and schedules a tick.
func (v *View) PushEvent(evt platform.ViewEvent) {
	v.events.Push(evt)
	signal(v.window.app.input)
}

// SetGeometry changes the geometry and reports it.
func (v *View) SetGeometry(g platform.DrawableGeometry) {
	v.mu.Lock()
	v.geometry = g
	v.mu.Unlock()
	v.PushEvent(platform.ViewGeometryDidChange{})
}

// SimulateLiveResize changes the geometry and runs the live resize callback
// inline, the way a native modal resize loop would.
func (v *View) SimulateLiveResize(g platform.DrawableGeometry) {
	v.mu.Lock()
	v.geometry = g
	cb := v.liveResize
	v.mu.Unlock()
	v.events.Push(platform.ViewGeometryDidChange{})
	if cb != nil {
		cb()
	}
}

func (v *View) Fullscreen() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.fullscreen
}

func (v *View) Drawables() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.drawables
}

func (v *View) Presents() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.presents
}
