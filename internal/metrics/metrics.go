package metrics

import "sync/atomic"

type Counter struct {
	value atomic.Uint64
}

func (c *Counter) Inc() {
	c.value.Add(1)
}

func (c *Counter) Add(n uint64) {
	c.value.Add(n)
}

func (c *Counter) Load() uint64 {
	return c.value.Load()
}

// Registry groups the counters the HTTP layer exposes on /metrics.
type Registry struct {
	Requests    Counter
	Checkouts   Counter
	Transitions Counter
	Claims      Counter
}

func NewRegistry() *Registry {
	return &Registry{}
}
