// Package platform defines the contract between the shell loop and a native
// windowing backend, along with the event vocabulary backends report.
package platform

import (
	"github.com/atomicstack/webshell/internal/logging"
	"github.com/atomicstack/webshell/internal/state"
)

// App is the native application object. It owns the event loop.
type App interface {
	Events() []AppEvent
	Render(*state.AppState)
	NewWindow() (Window, error)
	// Run blocks in the native loop and calls tick once at startup and after
	// every batch of native events or wake. It returns after Quit.
	Run(tick func()) error
	Quit()
	ResourcesPath() (string, error)
}

// Window is one native window containing the chrome and a single view.
type Window interface {
	Events() []WindowEvent
	Render(*state.WindowState)
	NewView() (View, error)
	Waker() Waker
	AppendLogs([]logging.Entry)
	OpenExternal(url string) error
}

// View is the drawable surface the engine paints into.
type View interface {
	Events() []ViewEvent
	Geometry() DrawableGeometry
	UpdateDrawable()
	EnterFullscreen()
	ExitFullscreen()
	MakeCurrent()
	Present()
	SetLiveResizeCallback(func())
}

// Waker schedules a loop iteration. It is safe to call from any goroutine and
// wakes that arrive while an iteration is already pending are absorbed.
type Waker interface {
	Wake()
}

// WakerFunc adapts a function to Waker.
type WakerFunc func()

func (f WakerFunc) Wake() { f() }

// Margins are the chrome insets around the page area, in pixels.
type Margins struct {
	Top, Right, Bottom, Left int
}

// Size is a width and height in pixels.
type Size struct {
	Width, Height int
}

// DrawableGeometry describes the view in device independent pixels.
type DrawableGeometry struct {
	ViewSize    Size
	Margins     Margins
	Position    state.Point
	HiDPIFactor float64
}

// PageSize is the view size minus the chrome margins.
func (g DrawableGeometry) PageSize() Size {
	w := g.ViewSize.Width - g.Margins.Left - g.Margins.Right
	h := g.ViewSize.Height - g.Margins.Top - g.Margins.Bottom
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Size{Width: w, Height: h}
}
