// Package pin tracks how many callers currently hold a frame pinned.
// It is bookkeeping the demonstration buffer pool keeps on top of the
// replacer's own evictable flag: a frame only becomes evictable again
// once its pin count drops to zero.
package pin

import (
	"fmt"

	"go.uber.org/atomic"
)

// Count is a concurrency-safe pin counter. A freshly loaded frame starts
// pinned once, by its loader.
type Count struct {
	n atomic.Int32
}

// New returns a Count starting at 1 (the caller that triggered the load).
func New() *Count {
	c := &Count{}
	c.n.Store(1)
	return c
}

// Inc records an additional pinner.
func (c *Count) Inc() {
	c.n.Inc()
}

// Dec releases one pinner and reports whether the count reached zero,
// i.e. whether the frame may now be marked evictable. Panics if the
// count would go negative: that indicates an unbalanced Unpin in the
// caller, a bookkeeping bug rather than a recoverable condition.
func (c *Count) Dec() bool {
	n := c.n.Dec()
	if n < 0 {
		panic(fmt.Errorf("pin: refcount dropped below zero"))
	}
	return n == 0
}

// Get returns the current pin count.
func (c *Count) Get() int32 {
	return c.n.Load()
}
