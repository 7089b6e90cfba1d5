package state

// ReorderWindow is how far behind an author's newest sequence number an
// event may arrive and still be recognised. Anything older is treated as
// already seen.
const ReorderWindow = 64

// SeenLog remembers which (author, seq) draw events were already rendered so
// a redelivered event is not drawn twice. Per author it keeps a watermark
// below which everything counts as seen, plus the sparse set above it. The
// watermark never trails the newest seq by more than ReorderWindow, so gaps
// left by events that never arrive cost at most that many entries.
type SeenLog struct {
	authors map[string]*authorLog
}

type authorLog struct {
	watermark uint64
	above     map[uint64]struct{}
}

func NewSeenLog() *SeenLog {
	return &SeenLog{authors: make(map[string]*authorLog)}
}

// Observe records the event and reports whether it is new. Events without an
// author or a sequence number cannot be identified and are always new.
func (l *SeenLog) Observe(author string, seq uint64) bool {
	if author == "" || seq == 0 {
		return true
	}

	a, ok := l.authors[author]
	if !ok {
		a = &authorLog{above: make(map[uint64]struct{})}
		l.authors[author] = a
	}

	if seq <= a.watermark {
		return false
	}
	if _, dup := a.above[seq]; dup {
		return false
	}
	a.above[seq] = struct{}{}

	if seq > a.watermark+ReorderWindow {
		a.watermark = seq - ReorderWindow
		for s := range a.above {
			if s <= a.watermark {
				delete(a.above, s)
			}
		}
	}
	for {
		next := a.watermark + 1
		if _, ok := a.above[next]; !ok {
			break
		}
		delete(a.above, next)
		a.watermark = next
	}
	return true
}

// Forget drops everything known about author.
func (l *SeenLog) Forget(author string) {
	delete(l.authors, author)
}

func (l *SeenLog) pending(author string) int {
	if a, ok := l.authors[author]; ok {
		return len(a.above)
	}
	return 0
}
