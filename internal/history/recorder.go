package history

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/agnivade/levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/webshell/internal/logging"
)

const (
	recentLimit = 500
	queueSize   = 64
	opTimeout   = 5 * time.Second
)

type opKind int

const (
	opRecord opKind = iota
	opRetitle
	opClear
)

type op struct {
	kind  opKind
	visit Visit
}

// Recorder keeps history off the loop goroutine. Writes are queued to a
// worker and mirrored into an in-memory cache that answers suggestions. A nil
// store keeps history in memory only.
type Recorder struct {
	store    *Store
	interval time.Duration

	ops chan op
	wg  sync.WaitGroup

	mu      sync.Mutex
	recent  []Visit
	closed  bool
	dropped int
}

// NewRecorder starts the worker and loads the most recent visits from store.
// Writes queued within writeInterval of each other reach the database in one
// flush; zero writes each one as it arrives.
func NewRecorder(store *Store, writeInterval time.Duration) *Recorder {
	r := &Recorder{
		store:    store,
		interval: writeInterval,
		ops:      make(chan op, queueSize),
	}
	if store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		recent, err := store.Recent(ctx, recentLimit)
		cancel()
		if err != nil {
			logging.Error(err)
		}
		r.recent = recent
	}
	r.wg.Add(1)
	go r.run()
	return r
}

func (r *Recorder) run() {
	defer r.wg.Done()
	queued := newPending()
	var flush <-chan time.Time
	for {
		select {
		case o, ok := <-r.ops:
			if !ok {
				r.write(queued.take())
				return
			}
			queued.add(o)
			if r.interval <= 0 {
				r.write(queued.take())
			} else if flush == nil {
				flush = time.After(r.interval)
			}
		case <-flush:
			flush = nil
			r.write(queued.take())
		}
	}
}

func (r *Recorder) write(ops []op) {
	if r.store == nil {
		return
	}
	for _, o := range ops {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		var err error
		switch o.kind {
		case opRecord:
			err = r.store.Record(ctx, o.visit)
		case opRetitle:
			err = r.store.Retitle(ctx, o.visit.URL, o.visit.Title)
		case opClear:
			err = r.store.Clear(ctx)
		}
		cancel()
		if err != nil {
			logging.Error(err)
		}
	}
}

func (r *Recorder) enqueue(o op) {
	select {
	case r.ops <- o:
	default:
		r.dropped++
		logging.Warnf("history queue full, dropped %d writes", r.dropped)
	}
}

// Record counts a visit to url.
func (r *Recorder) Record(url, title string) {
	if url == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	v := Visit{URL: url, Title: title, Count: 1, LastVisit: now()}
	for i, existing := range r.recent {
		if existing.URL == url {
			v.Count = existing.Count + 1
			if v.Title == "" {
				v.Title = existing.Title
			}
			r.recent = append(r.recent[:i], r.recent[i+1:]...)
			break
		}
	}
	r.recent = append([]Visit{v}, r.recent...)
	if len(r.recent) > recentLimit {
		r.recent = r.recent[:recentLimit]
	}
	r.enqueue(op{kind: opRecord, visit: Visit{URL: url, Title: title, LastVisit: v.LastVisit}})
}

// Retitle attaches a title to a visit already recorded.
func (r *Recorder) Retitle(url, title string) {
	if url == "" || title == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	for i := range r.recent {
		if r.recent[i].URL == url {
			if r.recent[i].Title == title {
				return
			}
			r.recent[i].Title = title
			r.enqueue(op{kind: opRetitle, visit: Visit{URL: url, Title: title}})
			return
		}
	}
}

// Clear forgets every visit.
func (r *Recorder) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.recent = nil
	r.enqueue(op{kind: opClear})
}

// Recent returns a copy of the cached visits, most recent first.
func (r *Recorder) Recent() []Visit {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Visit(nil), r.recent...)
}

// Suggest returns up to n cached URLs that fuzzy match input, closest first.
func (r *Recorder) Suggest(input string, n int) []string {
	query := strings.ToLower(strings.TrimSpace(input))
	if query == "" || n <= 0 {
		return nil
	}
	type candidate struct {
		url   string
		dist  int
		order int
	}
	var matches []candidate
	for i, v := range r.Recent() {
		if !fuzzy.MatchFold(query, v.URL) && !fuzzy.MatchFold(query, v.Title) {
			continue
		}
		dist := levenshtein.ComputeDistance(query, strings.ToLower(trimScheme(v.URL)))
		if v.Title != "" {
			if d := levenshtein.ComputeDistance(query, strings.ToLower(v.Title)); d < dist {
				dist = d
			}
		}
		matches = append(matches, candidate{url: v.URL, dist: dist, order: i})
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].dist != matches[j].dist {
			return matches[i].dist < matches[j].dist
		}
		return matches[i].order < matches[j].order
	})
	if len(matches) > n {
		matches = matches[:n]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.url
	}
	return out
}

func trimScheme(url string) string {
	if i := strings.Index(url, "://"); i >= 0 {
		return url[i+3:]
	}
	return url
}

// Close flushes queued writes and closes the store.
func (r *Recorder) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	close(r.ops)
	r.mu.Unlock()

	r.wg.Wait()
	if r.store != nil {
		return r.store.Close()
	}
	return nil
}
