package testutil

import "sync"

// ResettableClock is a logical clock that can be rewound between runs, so a
// test can execute the same campaign repeatedly and compare seq values.
// It satisfies campaign.Sequencer.
//
// Safe for concurrent use.
type ResettableClock struct {
	mu    sync.Mutex
	start int64
	seq   int64
}

// NewResettableClock creates a clock whose first Next returns start+1.
func NewResettableClock(start int64) *ResettableClock {
	return &ResettableClock{start: start, seq: start}
}

// Next returns the next sequence number.
func (c *ResettableClock) Next() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	return c.seq
}

// Current returns the last issued number without advancing.
func (c *ResettableClock) Current() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.seq
}

// Reset rewinds the clock to its starting value.
func (c *ResettableClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq = c.start
}
