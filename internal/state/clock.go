package state

import "sync/atomic"

// Sequencer hands out the per-author sequence numbers stamped on outgoing
// draw events. The first value is 1; zero means "unsequenced" on the wire.
type Sequencer struct {
	counter atomic.Uint64
}

func (s *Sequencer) Next() uint64 {
	return s.counter.Add(1)
}

// Current returns the last value handed out.
func (s *Sequencer) Current() uint64 {
	return s.counter.Load()
}

// Reset starts the sequence over, for a new session under a new id.
func (s *Sequencer) Reset() {
	s.counter.Store(0)
}
