package logging

import (
	"sync"
	"time"
)

// Level classifies a captured entry.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// Entry is one captured log line.
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
}

// captureLimit bounds memory when nobody drains the buffer.
const captureLimit = 1000

// Capture buffers log entries for display inside the shell.
type Capture struct {
	mu      sync.Mutex
	entries []Entry
	dropped int
}

var capture = &Capture{}

// Captured returns the process-wide capture buffer.
func Captured() *Capture {
	return capture
}

func (c *Capture) add(e Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= captureLimit {
		n := len(c.entries) - captureLimit + 1
		c.entries = append(c.entries[:0], c.entries[n:]...)
		c.dropped += n
	}
	c.entries = append(c.entries, e)
}

// Drain returns every buffered entry in order and empties the buffer.
func (c *Capture) Drain() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.entries
	c.entries = nil
	return out
}

// Dropped reports how many entries were discarded because the buffer was full.
func (c *Capture) Dropped() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dropped
}
