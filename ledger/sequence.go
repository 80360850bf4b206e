/*
sequence.go - Monotonic transaction ID generator

PURPOSE:
  Transaction IDs must be strictly unique and increasing across concurrent
  invocations. Wall-clock-derived IDs can collide under load, so IDs come
  from an atomically incremented counter instead. The counter is seeded
  from the log's highest existing ID so restarts never reuse an ID.
*/
package ledger

import "sync/atomic"

// Sequence hands out strictly increasing int64 IDs. Safe for concurrent use.
type Sequence struct {
	last atomic.Int64
}

// NewSequence returns a Sequence whose first Next() yields base+1.
func NewSequence(base int64) *Sequence {
	s := &Sequence{}
	s.last.Store(base)
	return s
}

// Next returns the next ID.
func (s *Sequence) Next() int64 {
	return s.last.Add(1)
}
