package engine

import (
	"github.com/atomicstack/webshell/internal/platform"
	"github.com/atomicstack/webshell/internal/state"
)

// Event is a notification the engine posted through its Host. Target is empty
// for events that are not tied to a browser.
type Event interface {
	Target() state.BrowserID
	Kind() string
}

type SetWindowInnerSize struct {
	Browser state.BrowserID
	Size    platform.Size
}

type SetWindowPosition struct {
	Browser state.BrowserID
	Point   state.Point
}

type SetFullScreenState struct {
	Browser    state.BrowserID
	Fullscreen bool
}

type TitleChanged struct {
	Browser state.BrowserID
	Title   string
}

type StatusChanged struct {
	Browser state.BrowserID
	Status  string
}

type LoadStart struct{ Browser state.BrowserID }

type LoadEnd struct{ Browser state.BrowserID }

type LoadError struct {
	Browser state.BrowserID
	URL     string
	Reason  string
}

type HeadParsed struct{ Browser state.BrowserID }

// HistoryEntry is one session history item.
type HistoryEntry struct {
	URL   string
	Title string
}

type HistoryChanged struct {
	Browser state.BrowserID
	Entries []HistoryEntry
	Current int
}

type CursorChanged struct{ Cursor state.Cursor }

type FaviconChanged struct {
	Browser state.BrowserID
	URL     string
}

// KeyEvent reports a key the page did not consume.
type KeyEvent struct {
	Browser   state.BrowserID
	Char      rune
	Key       platform.Key
	Modifiers platform.Modifiers
}

func (e SetWindowInnerSize) Target() state.BrowserID { return e.Browser }
func (e SetWindowPosition) Target() state.BrowserID  { return e.Browser }
func (e SetFullScreenState) Target() state.BrowserID { return e.Browser }
func (e TitleChanged) Target() state.BrowserID       { return e.Browser }
func (e StatusChanged) Target() state.BrowserID      { return e.Browser }
func (e LoadStart) Target() state.BrowserID          { return e.Browser }
func (e LoadEnd) Target() state.BrowserID            { return e.Browser }
func (e LoadError) Target() state.BrowserID          { return e.Browser }
func (e HeadParsed) Target() state.BrowserID         { return e.Browser }
func (e HistoryChanged) Target() state.BrowserID     { return e.Browser }
func (CursorChanged) Target() state.BrowserID        { return "" }
func (e FaviconChanged) Target() state.BrowserID     { return e.Browser }
func (e KeyEvent) Target() state.BrowserID           { return e.Browser }

func (SetWindowInnerSize) Kind() string { return "set-window-inner-size" }
func (SetWindowPosition) Kind() string  { return "set-window-position" }
func (SetFullScreenState) Kind() string { return "set-fullscreen-state" }
func (TitleChanged) Kind() string       { return "title-changed" }
func (StatusChanged) Kind() string      { return "status-changed" }
func (LoadStart) Kind() string          { return "load-start" }
func (LoadEnd) Kind() string            { return "load-end" }
func (LoadError) Kind() string          { return "load-error" }
func (HeadParsed) Kind() string         { return "head-parsed" }
func (HistoryChanged) Kind() string     { return "history-changed" }
func (CursorChanged) Kind() string      { return "cursor-changed" }
func (FaviconChanged) Kind() string     { return "favicon-changed" }
func (KeyEvent) Kind() string           { return "key" }
