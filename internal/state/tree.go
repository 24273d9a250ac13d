// Package state holds the plain data the shell loop reconciles: one AppState
// per process, one WindowState per open window and one BrowserState per tab.
// Nothing in this package talks to a platform backend or to the engine.
package state

// None marks an unset index.
const None = -1

// BrowserID is the opaque identifier the engine assigns to a browsing context.
// The shell never invents one.
type BrowserID string

// Point is a pixel coordinate in view space.
type Point struct {
	X int
	Y int
}

// MouseButton identifies a pointer button. MouseNone is the zero value and
// means no button has been recorded.
type MouseButton int

const (
	MouseNone MouseButton = iota
	MouseLeft
	MouseRight
	MouseMiddle
)

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "left"
	case MouseRight:
		return "right"
	case MouseMiddle:
		return "middle"
	default:
		return "none"
	}
}

// AppState is the root of the tree.
type AppState struct {
	CurrentWindowIndex int
	Windows            []WindowState
	DarkTheme          bool
	Cursor             Cursor
}

// WindowState describes one open window and its tabs.
type WindowState struct {
	CurrentBrowserIndex int
	Browsers            []BrowserState
	UrlbarFocused       bool
	UrlbarInput         string
	Suggestions         []string
	SidebarIsOpen       bool
	OptionsOpen         bool
	LogsVisible         bool
	Fullscreen          bool
	Status              string
	DebugOptions        DebugOptions
}

// BrowserState describes one tab.
type BrowserState struct {
	ID                  BrowserID
	URL                 string
	Title               string
	UserInput           string
	Favicon             string
	Zoom                float64
	IsLoading           bool
	CanGoBack           bool
	CanGoForward        bool
	LastMousePoint      Point
	LastMouseDownPoint  Point
	LastMouseDownButton MouseButton
}

// New returns an application state with no windows.
func New() *AppState {
	return &AppState{CurrentWindowIndex: None, Cursor: CursorDefault}
}

// NewWindow returns the initial state of a freshly opened window.
func NewWindow() WindowState {
	return WindowState{
		CurrentBrowserIndex: None,
		DebugOptions:        DebugOptions{},
	}
}

// NewBrowser returns the initial state of a tab the engine just created.
func NewBrowser(id BrowserID) BrowserState {
	return BrowserState{ID: id, Zoom: 1.0}
}

// CurrentWindow returns the selected window, or nil when none is selected.
func (a *AppState) CurrentWindow() *WindowState {
	if a == nil || a.CurrentWindowIndex < 0 || a.CurrentWindowIndex >= len(a.Windows) {
		return nil
	}
	return &a.Windows[a.CurrentWindowIndex]
}

// CurrentBrowser returns the selected tab of the window, or nil.
func (w *WindowState) CurrentBrowser() *BrowserState {
	if w == nil || w.CurrentBrowserIndex < 0 || w.CurrentBrowserIndex >= len(w.Browsers) {
		return nil
	}
	return &w.Browsers[w.CurrentBrowserIndex]
}

// FindBrowser returns the tab with the given id and its index.
func (w *WindowState) FindBrowser(id BrowserID) (*BrowserState, int) {
	if w == nil {
		return nil, None
	}
	for i := range w.Browsers {
		if w.Browsers[i].ID == id {
			return &w.Browsers[i], i
		}
	}
	return nil, None
}

// FindBrowser searches every window for the tab with the given id.
func (a *AppState) FindBrowser(id BrowserID) (*WindowState, *BrowserState) {
	if a == nil {
		return nil, nil
	}
	for i := range a.Windows {
		if b, _ := a.Windows[i].FindBrowser(id); b != nil {
			return &a.Windows[i], b
		}
	}
	return nil, nil
}

// RemoveWindow drops the window at idx and keeps CurrentWindowIndex valid.
func (a *AppState) RemoveWindow(idx int) {
	if idx < 0 || idx >= len(a.Windows) {
		return
	}
	a.Windows = append(a.Windows[:idx], a.Windows[idx+1:]...)
	switch {
	case len(a.Windows) == 0:
		a.CurrentWindowIndex = None
	case a.CurrentWindowIndex >= len(a.Windows):
		a.CurrentWindowIndex = len(a.Windows) - 1
	case a.CurrentWindowIndex > idx:
		a.CurrentWindowIndex--
	}
}

// Snapshot returns a copy of the window that shares no slices with w, so a
// backend may keep it past the render call.
func (w WindowState) Snapshot() WindowState {
	dup := w
	dup.Browsers = append([]BrowserState(nil), w.Browsers...)
	dup.Suggestions = append([]string(nil), w.Suggestions...)
	dup.DebugOptions = w.DebugOptions.Clone()
	return dup
}
