package engine

import (
	"math"
	"sync"

	"github.com/atomicstack/webshell/internal/platform"
	"github.com/atomicstack/webshell/internal/platform/queue"
	"github.com/atomicstack/webshell/internal/state"
)

// Host is what the engine calls back into. Every method is safe from any
// goroutine. Post only enqueues; the engine calls Waker().Wake() when the
// loop should look at the queue.
type Host struct {
	mu       sync.Mutex
	geometry platform.DrawableGeometry
	events   queue.Queue[Event]
	waker    platform.Waker
	present  func()
}

func newHost(geometry platform.DrawableGeometry, waker platform.Waker, present func()) *Host {
	if present == nil {
		present = func() {}
	}
	return &Host{geometry: geometry, waker: waker, present: present}
}

// Post queues an engine notification for the loop.
func (h *Host) Post(evt Event) {
	h.events.Push(evt)
}

func (h *Host) Waker() platform.Waker { return h.waker }

func (h *Host) Present() { h.present() }

// AllowNavigation is consulted before every navigation. The shell allows all.
func (h *Host) AllowNavigation(state.BrowserID, string) bool { return true }

func (h *Host) Geometry() platform.DrawableGeometry {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.geometry
}

func (h *Host) setGeometry(g platform.DrawableGeometry) {
	h.mu.Lock()
	h.geometry = g
	h.mu.Unlock()
}

func (h *Host) HiDPIFactor() float64 {
	return h.Geometry().HiDPIFactor
}

// FramebufferSize is the view size in device pixels.
func (h *Host) FramebufferSize() platform.Size {
	g := h.Geometry()
	return platform.Size{
		Width:  scale(g.ViewSize.Width, g.HiDPIFactor),
		Height: scale(g.ViewSize.Height, g.HiDPIFactor),
	}
}

// WindowRect is the page area in device pixels: the framebuffer minus the
// scaled chrome margins.
func (h *Host) WindowRect() (state.Point, platform.Size) {
	g := h.Geometry()
	fb := h.FramebufferSize()
	top := scale(g.Margins.Top, g.HiDPIFactor)
	right := scale(g.Margins.Right, g.HiDPIFactor)
	bottom := scale(g.Margins.Bottom, g.HiDPIFactor)
	left := scale(g.Margins.Left, g.HiDPIFactor)
	size := platform.Size{Width: fb.Width - left - right, Height: fb.Height - top - bottom}
	if size.Width < 0 {
		size.Width = 0
	}
	if size.Height < 0 {
		size.Height = 0
	}
	return state.Point{X: left, Y: top}, size
}

// Size is the view size in device independent pixels.
func (h *Host) Size() platform.Size {
	return h.Geometry().ViewSize
}

// ClientWindow reports the native window size and screen position.
func (h *Host) ClientWindow() (platform.Size, state.Point) {
	g := h.Geometry()
	return g.ViewSize, g.Position
}

func scale(v int, factor float64) int {
	if factor <= 0 {
		factor = 1
	}
	return int(math.Round(float64(v) * factor))
}
