package platform

import (
	"fmt"

	"github.com/atomicstack/webshell/internal/state"
)

// AppEvent is reported by the application object.
type AppEvent interface{ isAppEvent() }

type DidFinishLaunching struct{}
type WillTerminate struct{}
type DidChangeScreenParameters struct{}

// AppDoCommand carries an application-wide command.
type AppDoCommand struct{ Command AppCommand }

func (DidFinishLaunching) isAppEvent()        {}
func (WillTerminate) isAppEvent()             {}
func (DidChangeScreenParameters) isAppEvent() {}
func (AppDoCommand) isAppEvent()              {}

type AppCommand int

const (
	AppClearHistory AppCommand = iota
	AppToggleDarkTheme
)

func (c AppCommand) String() string {
	switch c {
	case AppClearHistory:
		return "clear-history"
	case AppToggleDarkTheme:
		return "toggle-dark-theme"
	default:
		return fmt.Sprintf("app-command(%d)", int(c))
	}
}

// WindowEvent is reported by a window.
type WindowEvent interface{ isWindowEvent() }

// EventLoopAwaken is pushed when the window's waker fired.
type EventLoopAwaken struct{}
type WindowGeometryDidChange struct{}
type DidEnterFullScreen struct{}
type DidExitFullScreen struct{}
type WillClose struct{}

type UrlbarFocusChanged struct{ Focused bool }

type WindowDoCommand struct{ Command WindowCommand }

func (EventLoopAwaken) isWindowEvent()         {}
func (WindowGeometryDidChange) isWindowEvent() {}
func (DidEnterFullScreen) isWindowEvent()      {}
func (DidExitFullScreen) isWindowEvent()       {}
func (WillClose) isWindowEvent()               {}
func (UrlbarFocusChanged) isWindowEvent()      {}
func (WindowDoCommand) isWindowEvent()         {}

// CommandKind enumerates window commands.
type CommandKind int

const (
	CmdStop CommandKind = iota
	CmdReload
	CmdNavigateBack
	CmdNavigateForward
	CmdOpenLocation
	CmdOpenInDefaultBrowser
	CmdZoomIn
	CmdZoomOut
	CmdZoomToActualSize
	CmdToggleSidebar
	CmdShowOptions
	CmdLoad
	CmdToggleOptionShowLogs
	CmdNewTab
	CmdCloseTab
	CmdPrevTab
	CmdNextTab
	CmdSelectTab
	CmdUrlbarInput
	CmdToggleDebugOption
)

var commandNames = [...]string{
	CmdStop:                 "stop",
	CmdReload:               "reload",
	CmdNavigateBack:         "navigate-back",
	CmdNavigateForward:      "navigate-forward",
	CmdOpenLocation:         "open-location",
	CmdOpenInDefaultBrowser: "open-in-default-browser",
	CmdZoomIn:               "zoom-in",
	CmdZoomOut:              "zoom-out",
	CmdZoomToActualSize:     "zoom-to-actual-size",
	CmdToggleSidebar:        "toggle-sidebar",
	CmdShowOptions:          "show-options",
	CmdLoad:                 "load",
	CmdToggleOptionShowLogs: "toggle-logs",
	CmdNewTab:               "new-tab",
	CmdCloseTab:             "close-tab",
	CmdPrevTab:              "prev-tab",
	CmdNextTab:              "next-tab",
	CmdSelectTab:            "select-tab",
	CmdUrlbarInput:          "urlbar-input",
	CmdToggleDebugOption:    "toggle-debug-option",
}

func (k CommandKind) String() string {
	if k < 0 || int(k) >= len(commandNames) {
		return fmt.Sprintf("command(%d)", int(k))
	}
	return commandNames[k]
}

// WindowCommand is a user intent addressed to the current tab of a window.
// Only the field matching Kind is meaningful.
type WindowCommand struct {
	Kind   CommandKind
	Text   string
	Index  int
	Option state.DebugOption
}

func Do(kind CommandKind) WindowCommand { return WindowCommand{Kind: kind} }

func Load(input string) WindowCommand {
	return WindowCommand{Kind: CmdLoad, Text: input}
}

func SelectTab(idx int) WindowCommand {
	return WindowCommand{Kind: CmdSelectTab, Index: idx}
}

func UrlbarInput(text string) WindowCommand {
	return WindowCommand{Kind: CmdUrlbarInput, Text: text}
}

func ToggleDebugOption(o state.DebugOption) WindowCommand {
	return WindowCommand{Kind: CmdToggleDebugOption, Option: o}
}

func (c WindowCommand) String() string {
	switch c.Kind {
	case CmdLoad, CmdUrlbarInput:
		return fmt.Sprintf("%s(%q)", c.Kind, c.Text)
	case CmdSelectTab:
		return fmt.Sprintf("%s(%d)", c.Kind, c.Index)
	case CmdToggleDebugOption:
		return fmt.Sprintf("%s(%s)", c.Kind, c.Option)
	default:
		return c.Kind.String()
	}
}

// ViewEvent is reported by the drawable surface.
type ViewEvent interface{ isViewEvent() }

type ViewGeometryDidChange struct{}

type MouseWheel struct {
	Delta ScrollDelta
	Phase TouchPhase
}

type MouseMoved struct{ X, Y int }

type MouseInput struct {
	State  ElementState
	Button state.MouseButton
	X, Y   int
}

type KeyEvent struct {
	Char      rune
	Key       Key
	State     ElementState
	Modifiers Modifiers
}

func (ViewGeometryDidChange) isViewEvent() {}
func (MouseWheel) isViewEvent()            {}
func (MouseMoved) isViewEvent()            {}
func (MouseInput) isViewEvent()            {}
func (KeyEvent) isViewEvent()              {}

type ElementState int

const (
	Pressed ElementState = iota
	Released
)

type TouchPhase int

const (
	TouchStarted TouchPhase = iota
	TouchMoved
	TouchEnded
	TouchCancelled
)

type ScrollKind int

const (
	LineDelta ScrollKind = iota
	PixelDelta
)

type ScrollDelta struct {
	Kind   ScrollKind
	DX, DY float64
}
