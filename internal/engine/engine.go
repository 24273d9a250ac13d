// Package engine adapts a web engine to the shell loop. Outbound calls are
// queued and flushed by Sync; inbound notifications are posted by the engine
// from any goroutine and drained by the loop.
package engine

import (
	"errors"

	"github.com/atomicstack/webshell/internal/state"
)

var (
	// ErrResourcesMissing is returned when the adapter is built without an
	// engine resources directory.
	ErrResourcesMissing = errors.New("engine resources path missing")
	// ErrNotConfigured is returned by engines asked to work before Configure.
	ErrNotConfigured = errors.New("engine not configured")
)

// Engine is the embedded web engine as seen by the shell.
type Engine interface {
	Version() string
	Configure(resourcesPath string) error
	// NewBrowser creates a browsing context and returns its id before any
	// loading starts.
	NewBrowser(url string) (state.BrowserID, error)
	HandleEvents([]Command)
	Shutdown()
}

// Factory builds an engine bound to host.
type Factory func(host *Host) (Engine, error)
