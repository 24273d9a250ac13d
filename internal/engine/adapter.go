package engine

import (
	"fmt"
	"math"
	"sync"

	"github.com/atomicstack/webshell/internal/platform"
	"github.com/atomicstack/webshell/internal/state"
)

// clickDistance is the largest press-to-release travel, in pixels, that still
// counts as a click.
const clickDistance = 10.0

// Adapter owns the engine for one window. Outbound calls only queue commands;
// nothing reaches the engine until Sync. Apart from Events, which may race
// with engine callbacks, the adapter is used from the loop goroutine only.
type Adapter struct {
	engine Engine
	host   *Host

	mu       sync.Mutex
	outbound []Command

	configure sync.Once
	version   string
}

// New builds the engine against view and waker and configures it with the
// resources directory.
func New(factory Factory, resourcesPath string, view platform.View, waker platform.Waker) (*Adapter, error) {
	if resourcesPath == "" {
		return nil, ErrResourcesMissing
	}
	host := newHost(view.Geometry(), waker, view.Present)
	eng, err := factory(host)
	if err != nil {
		return nil, fmt.Errorf("start engine: %w", err)
	}
	a := &Adapter{engine: eng, host: host}
	if err := a.Configure(resourcesPath); err != nil {
		eng.Shutdown()
		return nil, err
	}
	a.version = eng.Version()
	return a, nil
}

// Configure hands the resources directory to the engine. Only the first call
// has an effect.
func (a *Adapter) Configure(resourcesPath string) error {
	var err error
	a.configure.Do(func() {
		if resourcesPath == "" {
			err = ErrResourcesMissing
			return
		}
		if cerr := a.engine.Configure(resourcesPath); cerr != nil {
			err = fmt.Errorf("configure engine: %w", cerr)
		}
	})
	return err
}

func (a *Adapter) Version() string { return a.version }

func (a *Adapter) Host() *Host { return a.host }

func (a *Adapter) push(cmds ...Command) {
	a.mu.Lock()
	a.outbound = append(a.outbound, cmds...)
	a.mu.Unlock()
}

// Pending reports how many commands wait for the next Sync.
func (a *Adapter) Pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.outbound)
}

// CreateBrowser asks the engine for a new browsing context and queues its
// selection. The id is known when this returns.
func (a *Adapter) CreateBrowser(url string) (state.BrowserState, error) {
	id, err := a.engine.NewBrowser(url)
	if err != nil {
		return state.BrowserState{}, fmt.Errorf("new browser: %w", err)
	}
	a.push(SelectBrowser{Browser: id})
	b := state.NewBrowser(id)
	b.URL = url
	return b, nil
}

func (a *Adapter) SelectBrowser(id state.BrowserID) { a.push(SelectBrowser{Browser: id}) }

func (a *Adapter) CloseBrowser(id state.BrowserID) { a.push(CloseBrowser{Browser: id}) }

func (a *Adapter) Reload(id state.BrowserID) { a.push(Reload{Browser: id}) }

func (a *Adapter) Stop(id state.BrowserID) { a.push(Stop{Browser: id}) }

func (a *Adapter) GoBack(id state.BrowserID) { a.push(Navigate{Browser: id, Steps: -1}) }

func (a *Adapter) GoForward(id state.BrowserID) { a.push(Navigate{Browser: id, Steps: 1}) }

func (a *Adapter) LoadURL(id state.BrowserID, url string) {
	a.push(LoadURL{Browser: id, URL: url})
}

func (a *Adapter) Zoom(factor float64) { a.push(Zoom{Factor: factor}) }

func (a *Adapter) ResetZoom() { a.push(ResetZoom{}) }

func (a *Adapter) ToggleDebugOption(o state.DebugOption) { a.push(ToggleDebug{Option: o}) }

// UpdateGeometry stores g for the engine to pull and queues a resize.
func (a *Adapter) UpdateGeometry(g platform.DrawableGeometry) {
	a.host.setGeometry(g)
	a.push(Resize{Framebuffer: a.host.FramebufferSize()})
}

// subtractMargins converts view coordinates to page coordinates.
func (a *Adapter) subtractMargins(p state.Point) state.Point {
	g := a.host.Geometry()
	factor := g.HiDPIFactor
	if factor <= 0 {
		factor = 1
	}
	top := float64(g.Margins.Top) * factor
	left := float64(g.Margins.Left) * factor
	return state.Point{X: p.X - int(left), Y: p.Y - int(top)}
}

func (a *Adapter) PerformMouseMove(p state.Point) {
	a.push(MouseMove{Point: a.subtractMargins(p)})
}

// PerformClick forwards a press or release at p. A release of the button
// last pressed at down, within clickDistance of it, is followed by a click.
func (a *Adapter) PerformClick(p, down state.Point, st platform.ElementState, button, downButton state.MouseButton) {
	at := a.subtractMargins(p)
	if st == platform.Pressed {
		a.push(MouseButtonEvent{Action: MouseDown, Button: button, Point: at})
		return
	}
	up := MouseButtonEvent{Action: MouseUp, Button: button, Point: at}
	if downButton == state.MouseNone || downButton != button {
		a.push(up)
		return
	}
	org := a.subtractMargins(down)
	dx := float64(org.X - at.X)
	dy := float64(org.Y - at.Y)
	if math.Sqrt(dx*dx+dy*dy) < clickDistance {
		a.push(up, MouseButtonEvent{Action: MouseClick, Button: button, Point: at})
		return
	}
	a.push(up)
}

// PerformScroll forwards a wheel delta anchored at p. Line deltas are
// converted to pixels.
func (a *Adapter) PerformScroll(p state.Point, delta platform.ScrollDelta, phase platform.TouchPhase) {
	d := platform.NormalizeScroll(delta)
	a.push(Scroll{DX: d.DX, DY: d.DY, Point: a.subtractMargins(p), Phase: phase})
}

func (a *Adapter) SendKey(id state.BrowserID, evt platform.KeyEvent) {
	a.push(KeyInput{
		Browser:   id,
		Char:      evt.Char,
		Key:       evt.Key,
		State:     evt.State,
		Modifiers: evt.Modifiers,
	})
}

// Events drains the notifications posted by the engine since the last call.
func (a *Adapter) Events() []Event {
	return a.host.events.Drain()
}

// Sync delivers the queued commands as one batch. With force an empty batch
// is delivered too, which lets the engine run its own housekeeping. It
// returns the number of commands delivered.
func (a *Adapter) Sync(force bool) int {
	a.mu.Lock()
	batch := a.outbound
	a.outbound = nil
	a.mu.Unlock()
	if len(batch) == 0 && !force {
		return 0
	}
	a.engine.HandleEvents(batch)
	return len(batch)
}

func (a *Adapter) Shutdown() {
	a.engine.Shutdown()
}
