// Package headless is an in-process engine that simulates page loads. It
// produces the same notifications a real engine would, from its own
// goroutines, without fetching or rendering anything.
package headless

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/atomicstack/webshell/internal/engine"
	"github.com/atomicstack/webshell/internal/platform"
	"github.com/atomicstack/webshell/internal/state"
)

const version = "headless/0.1"

type browser struct {
	history []engine.HistoryEntry
	index   int
}

func (b *browser) currentURL() string {
	if b.index < 0 || b.index >= len(b.history) {
		return ""
	}
	return b.history[b.index].URL
}

// Engine simulates a web engine. Loads complete after Latency.
type Engine struct {
	host    *engine.Host
	latency time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu         sync.Mutex
	configured bool
	browsers   map[state.BrowserID]*browser
	current    state.BrowserID
	zoom       float64
	debug      map[state.DebugOption]bool
	framebuf   platform.Size
	inputs     int
}

// Factory returns an engine.Factory producing simulated engines whose loads
// take latency to complete.
func Factory(latency time.Duration) engine.Factory {
	return func(host *engine.Host) (engine.Engine, error) {
		return New(host, latency), nil
	}
}

func New(host *engine.Host, latency time.Duration) *Engine {
	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		host:     host,
		latency:  latency,
		ctx:      ctx,
		cancel:   cancel,
		browsers: make(map[state.BrowserID]*browser),
		zoom:     1.0,
		debug:    make(map[state.DebugOption]bool),
	}
}

func (e *Engine) Version() string { return version }

func (e *Engine) Configure(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("resources: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("resources: %s is not a directory", path)
	}
	e.mu.Lock()
	e.configured = true
	e.mu.Unlock()
	return nil
}

func (e *Engine) NewBrowser(rawURL string) (state.BrowserID, error) {
	e.mu.Lock()
	if !e.configured {
		e.mu.Unlock()
		return "", engine.ErrNotConfigured
	}
	id := state.BrowserID(uuid.NewString())
	b := &browser{history: []engine.HistoryEntry{{URL: rawURL}}}
	e.browsers[id] = b
	entries, idx := cloneHistory(b)
	e.mu.Unlock()

	e.load(id, entries, idx)
	return id, nil
}

func (e *Engine) HandleEvents(cmds []engine.Command) {
	for _, cmd := range cmds {
		e.handle(cmd)
	}
	e.host.Present()
}

func (e *Engine) handle(cmd engine.Command) {
	switch c := cmd.(type) {
	case engine.SelectBrowser:
		e.mu.Lock()
		if _, ok := e.browsers[c.Browser]; ok {
			e.current = c.Browser
		}
		e.mu.Unlock()
	case engine.CloseBrowser:
		e.mu.Lock()
		delete(e.browsers, c.Browser)
		if e.current == c.Browser {
			e.current = ""
		}
		e.mu.Unlock()
	case engine.LoadURL:
		e.mu.Lock()
		b, ok := e.browsers[c.Browser]
		if !ok {
			e.mu.Unlock()
			return
		}
		b.history = append(b.history[:b.index+1], engine.HistoryEntry{URL: c.URL})
		b.index = len(b.history) - 1
		entries, idx := cloneHistory(b)
		e.mu.Unlock()
		e.load(c.Browser, entries, idx)
	case engine.Navigate:
		e.mu.Lock()
		b, ok := e.browsers[c.Browser]
		if !ok {
			e.mu.Unlock()
			return
		}
		next := b.index + c.Steps
		if next < 0 || next >= len(b.history) {
			e.mu.Unlock()
			return
		}
		b.index = next
		entries, idx := cloneHistory(b)
		e.mu.Unlock()
		e.load(c.Browser, entries, idx)
	case engine.Reload:
		e.mu.Lock()
		b, ok := e.browsers[c.Browser]
		if !ok {
			e.mu.Unlock()
			return
		}
		entries, idx := cloneHistory(b)
		e.mu.Unlock()
		e.load(c.Browser, entries, idx)
	case engine.Stop:
		e.host.Post(engine.LoadEnd{Browser: c.Browser})
	case engine.Zoom:
		e.mu.Lock()
		e.zoom = c.Factor
		e.mu.Unlock()
	case engine.ResetZoom:
		e.mu.Lock()
		e.zoom = 1.0
		e.mu.Unlock()
	case engine.ToggleDebug:
		e.mu.Lock()
		e.debug[c.Option] = !e.debug[c.Option]
		e.mu.Unlock()
	case engine.Resize:
		fb := e.host.FramebufferSize()
		e.mu.Lock()
		e.framebuf = fb
		e.mu.Unlock()
	case engine.KeyInput:
		e.mu.Lock()
		e.inputs++
		e.mu.Unlock()
		// Keys with a command modifier are not consumed by pages and come
		// back to the shell.
		if c.State == platform.Pressed && c.Modifiers&(platform.ModControl|platform.ModSuper|platform.ModAlt) != 0 {
			e.host.Post(engine.KeyEvent{Browser: c.Browser, Char: c.Char, Key: c.Key, Modifiers: c.Modifiers})
		}
	case engine.MouseMove, engine.MouseButtonEvent, engine.Scroll:
		e.mu.Lock()
		e.inputs++
		e.mu.Unlock()
	}
}

// load reports a page load. about: pages complete inline, everything else
// completes on a goroutine which wakes the loop when done.
func (e *Engine) load(id state.BrowserID, entries []engine.HistoryEntry, idx int) {
	target := entries[idx].URL
	if strings.HasPrefix(target, "about:") {
		e.report(id, entries, idx)
		return
	}
	e.host.Post(engine.LoadStart{Browser: id})
	e.host.Post(engine.StatusChanged{Browser: id, Status: "Loading " + target})
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		if e.latency > 0 {
			timer := time.NewTimer(e.latency)
			defer timer.Stop()
			select {
			case <-e.ctx.Done():
				return
			case <-timer.C:
			}
		}
		e.report(id, entries, idx)
		e.host.Post(engine.StatusChanged{Browser: id})
		if w := e.host.Waker(); w != nil {
			w.Wake()
		}
	}()
}

func (e *Engine) report(id state.BrowserID, entries []engine.HistoryEntry, idx int) {
	title := TitleFor(entries[idx].URL)
	entries[idx].Title = title
	e.mu.Lock()
	if b, ok := e.browsers[id]; ok && idx < len(b.history) && b.history[idx].URL == entries[idx].URL {
		b.history[idx].Title = title
	}
	e.mu.Unlock()
	e.host.Post(engine.HistoryChanged{Browser: id, Entries: entries, Current: idx})
	e.host.Post(engine.HeadParsed{Browser: id})
	e.host.Post(engine.TitleChanged{Browser: id, Title: title})
	e.host.Post(engine.LoadEnd{Browser: id})
}

// Shutdown cancels pending loads and waits for their goroutines.
func (e *Engine) Shutdown() {
	e.cancel()
	e.wg.Wait()
}

// Zoom reports the last zoom factor applied.
func (e *Engine) Zoom() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.zoom
}

// DebugEnabled reports whether o was toggled on.
func (e *Engine) DebugEnabled(o state.DebugOption) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.debug[o]
}

// Current reports the selected browser.
func (e *Engine) Current() state.BrowserID {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// History returns a copy of a browser's session history.
func (e *Engine) History(id state.BrowserID) ([]engine.HistoryEntry, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	b, ok := e.browsers[id]
	if !ok {
		return nil, state.None
	}
	return cloneHistory(b)
}

func cloneHistory(b *browser) ([]engine.HistoryEntry, int) {
	return append([]engine.HistoryEntry(nil), b.history...), b.index
}

// TitleFor derives a page title from its address: host and path without
// a trailing slash. about:blank has no title.
func TitleFor(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if u.Scheme == "about" {
		if u.Opaque == "blank" {
			return ""
		}
		return u.Opaque
	}
	title := u.Host + strings.TrimSuffix(u.Path, "/")
	if title == "" {
		return raw
	}
	return title
}
