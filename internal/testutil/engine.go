// Package testutil holds fakes shared by package tests.
package testutil

import (
	"errors"
	"fmt"
	"sync"

	"github.com/atomicstack/webshell/internal/engine"
	"github.com/atomicstack/webshell/internal/state"
)

// Engine records every batch it receives and hands out sequential ids.
type Engine struct {
	mu         sync.Mutex
	Host       *engine.Host
	Resources  string
	Batches    [][]engine.Command
	Created    []string
	NewErr     error
	ConfigErr  error
	ShutDown   bool
	configured int
	next       int
}

// Factory returns an engine.Factory that installs e.
func (e *Engine) Factory() engine.Factory {
	return func(host *engine.Host) (engine.Engine, error) {
		e.mu.Lock()
		e.Host = host
		e.mu.Unlock()
		return e, nil
	}
}

// FailingFactory returns a factory that always fails.
func FailingFactory() engine.Factory {
	return func(*engine.Host) (engine.Engine, error) {
		return nil, errors.New("engine unavailable")
	}
}

func (e *Engine) Version() string { return "recording/1.0" }

func (e *Engine) Configure(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.configured++
	e.Resources = path
	return e.ConfigErr
}

func (e *Engine) NewBrowser(url string) (state.BrowserID, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.NewErr != nil {
		return "", e.NewErr
	}
	e.next++
	e.Created = append(e.Created, url)
	return state.BrowserID(fmt.Sprintf("browser-%d", e.next)), nil
}

func (e *Engine) HandleEvents(cmds []engine.Command) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Batches = append(e.Batches, append([]engine.Command(nil), cmds...))
}

func (e *Engine) Shutdown() {
	e.mu.Lock()
	e.ShutDown = true
	e.mu.Unlock()
}

// ConfigureCalls reports how often Configure ran.
func (e *Engine) ConfigureCalls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.configured
}

// Commands flattens every batch received so far.
func (e *Engine) Commands() []engine.Command {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []engine.Command
	for _, b := range e.Batches {
		out = append(out, b...)
	}
	return out
}

// BatchCount reports how many HandleEvents calls happened.
func (e *Engine) BatchCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.Batches)
}

// Reset forgets recorded batches.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.Batches = nil
	e.mu.Unlock()
}

// Post delivers evt through the host the way a real engine callback would.
func (e *Engine) Post(evt engine.Event) {
	e.mu.Lock()
	host := e.Host
	e.mu.Unlock()
	host.Post(evt)
}
