package counter

import "sync/atomic"

// Counter is a gauge safe for concurrent use, e.g. open connections.
type Counter struct {
	n int64
}

func NewCounter() *Counter {
	return &Counter{}
}

// Inc adds one and returns the new value
func (c *Counter) Inc() int {
	return int(atomic.AddInt64(&c.n, 1))
}

// Dec subtracts one and returns the new value
func (c *Counter) Dec() int {
	return int(atomic.AddInt64(&c.n, -1))
}

func (c *Counter) Count() int {
	return int(atomic.LoadInt64(&c.n))
}
