package sequence

import "sync/atomic"

// Sequencer stamps commands with strictly increasing numbers. Only the
// owning goroutine calls Next; Last may be read from anywhere.
type Sequencer struct {
	last atomic.Uint64
}

// New creates a sequencer whose first Next returns start+1.
func New(start uint64) *Sequencer {
	s := &Sequencer{}
	s.last.Store(start)
	return s
}

// Next issues the next sequence number.
func (s *Sequencer) Next() uint64 {
	return s.last.Add(1)
}

// Last returns the most recently issued number, or the start value if
// none has been issued.
func (s *Sequencer) Last() uint64 {
	return s.last.Load()
}
