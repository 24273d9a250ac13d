package engine

import (
	"github.com/atomicstack/webshell/internal/platform"
	"github.com/atomicstack/webshell/internal/state"
)

// Command is an instruction queued for the engine. Commands are delivered in
// batches by Adapter.Sync.
type Command interface{ isCommand() }

type SelectBrowser struct{ Browser state.BrowserID }

type CloseBrowser struct{ Browser state.BrowserID }

type Reload struct{ Browser state.BrowserID }

type Stop struct{ Browser state.BrowserID }

// Navigate moves through session history. Negative steps go back.
type Navigate struct {
	Browser state.BrowserID
	Steps   int
}

type LoadURL struct {
	Browser state.BrowserID
	URL     string
}

// MouseMove carries page coordinates (margins already subtracted).
type MouseMove struct{ Point state.Point }

type MouseAction int

const (
	MouseDown MouseAction = iota
	MouseUp
	MouseClick
)

func (a MouseAction) String() string {
	switch a {
	case MouseDown:
		return "down"
	case MouseUp:
		return "up"
	default:
		return "click"
	}
}

type MouseButtonEvent struct {
	Action MouseAction
	Button state.MouseButton
	Point  state.Point
}

type Scroll struct {
	DX, DY float64
	Point  state.Point
	Phase  platform.TouchPhase
}

// Resize tells the engine to pull fresh geometry from its Host.
type Resize struct{ Framebuffer platform.Size }

// Zoom sets the absolute page zoom of the current browser.
type Zoom struct{ Factor float64 }

type ResetZoom struct{}

type KeyInput struct {
	Browser   state.BrowserID
	Char      rune
	Key       platform.Key
	State     platform.ElementState
	Modifiers platform.Modifiers
}

type ToggleDebug struct{ Option state.DebugOption }

func (SelectBrowser) isCommand()    {}
func (CloseBrowser) isCommand()     {}
func (Reload) isCommand()           {}
func (Stop) isCommand()             {}
func (Navigate) isCommand()         {}
func (LoadURL) isCommand()          {}
func (MouseMove) isCommand()        {}
func (MouseButtonEvent) isCommand() {}
func (Scroll) isCommand()           {}
func (Resize) isCommand()           {}
func (Zoom) isCommand()             {}
func (ResetZoom) isCommand()        {}
func (KeyInput) isCommand()         {}
func (ToggleDebug) isCommand()      {}
