package campaign

import "sync/atomic"

// Sequencer stamps trials with strictly increasing logical sequence numbers.
type Sequencer interface {
	Next() int64
}

// Clock is a monotonic logical clock. Trial order in results and history is
// defined by these numbers, never by wall time.
//
// Clock is safe for concurrent use.
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a clock whose first Next returns 1.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock whose first Next returns start+1.
// Used to continue numbering after previously stored runs.
func NewClockAt(start int64) *Clock {
	c := &Clock{}
	c.seq.Store(start)
	return c
}

// Next returns the next sequence number.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the last issued sequence number.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
