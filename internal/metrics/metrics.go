package metrics

import (
	"sync/atomic"
	"time"
)

type Counter struct {
	value uint64
}

func (c *Counter) Inc() {
	atomic.AddUint64(&c.value, 1)
}

func (c *Counter) Add(n uint64) {
	atomic.AddUint64(&c.value, n)
}

func (c *Counter) Load() uint64 {
	return atomic.LoadUint64(&c.value)
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// Process-wide counters.
var (
	HTTPRequests    Counter
	HTTPErrors      Counter
	PersistFailures Counter
	OrdersPlaced    Counter
	EventsPublished Counter
	EventsDropped   Counter
)

// Snapshot returns the current value of every counter, keyed by name.
func Snapshot() map[string]uint64 {
	return map[string]uint64{
		"http_requests":    HTTPRequests.Load(),
		"http_errors":      HTTPErrors.Load(),
		"persist_failures": PersistFailures.Load(),
		"orders_placed":    OrdersPlaced.Load(),
		"events_published": EventsPublished.Load(),
		"events_dropped":   EventsDropped.Load(),
	}
}
