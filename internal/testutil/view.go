package testutil

import (
	"sync"

	"github.com/atomicstack/webshell/internal/platform"
)

// View is a minimal platform.View with a fixed geometry.
type View struct {
	mu       sync.Mutex
	Geom     platform.DrawableGeometry
	Presents int
}

func NewView(g platform.DrawableGeometry) *View {
	return &View{Geom: g}
}

func (v *View) Events() []platform.ViewEvent { return nil }

func (v *View) Geometry() platform.DrawableGeometry {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.Geom
}

func (v *View) UpdateDrawable()              {}
func (v *View) EnterFullscreen()             {}
func (v *View) ExitFullscreen()              {}
func (v *View) MakeCurrent()                 {}
func (v *View) SetLiveResizeCallback(func()) {}

func (v *View) Present() {
	v.mu.Lock()
	v.Presents++
	v.mu.Unlock()
}

// Waker counts wake calls.
type Waker struct {
	mu    sync.Mutex
	count int
}

func (w *Waker) Wake() {
	w.mu.Lock()
	w.count++
	w.mu.Unlock()
}

func (w *Waker) Count() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}
