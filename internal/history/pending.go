package history

// pending holds the writes queued between two flushes. Retitles of one URL
// keep only the newest title, and a clear discards everything queued before
// it.
type pending struct {
	ops      []op
	retitles map[string]int
}

func newPending() *pending {
	return &pending{retitles: make(map[string]int)}
}

func (p *pending) empty() bool { return len(p.ops) == 0 }

func (p *pending) add(o op) {
	switch o.kind {
	case opClear:
		p.ops = p.ops[:0]
		clear(p.retitles)
	case opRecord:
		// later retitles must land after this record
		delete(p.retitles, o.visit.URL)
	case opRetitle:
		if i, ok := p.retitles[o.visit.URL]; ok {
			p.ops[i].visit.Title = o.visit.Title
			return
		}
		p.retitles[o.visit.URL] = len(p.ops)
	}
	p.ops = append(p.ops, o)
}

// take returns the queued writes in order and resets p.
func (p *pending) take() []op {
	out := p.ops
	p.ops = nil
	clear(p.retitles)
	return out
}
