package testutil

import "sync/atomic"

// Counter hands out 1, 2, 3, ... and can be rewound so a rerun of the
// same test sees the same numbers. Safe for concurrent use.
type Counter struct {
	n atomic.Int64
}

// Next advances the counter and returns the new value.
func (c *Counter) Next() int64 {
	return c.n.Add(1)
}

// Current returns the last value handed out, 0 before the first Next.
func (c *Counter) Current() int64 {
	return c.n.Load()
}

// Reset rewinds the counter so the next call to Next returns 1.
func (c *Counter) Reset() {
	c.n.Store(0)
}
