// Package idgen issues identifiers for cart lines, orders, reviews and rides.
//
// An id is a base36 nanosecond timestamp followed by a short random suffix,
// e.g. "lr1x9s0k4q2w-3f9a1c0d". Timestamps are forced strictly increasing
// inside one Generator, so ids never collide within a process, and the
// random suffix keeps two processes apart.
package idgen

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const suffixLen = 8

// Clock returns the current time. A zero time means the clock is unavailable.
type Clock func() time.Time

type Generator struct {
	mu      sync.Mutex
	clock   Clock
	last    int64
	counter uint64
}

// New returns a generator reading the wall clock.
func New() *Generator {
	return NewWithClock(time.Now)
}

func NewWithClock(clock Clock) *Generator {
	return &Generator{clock: clock}
}

// NewID never fails. Without a usable clock it falls back to a counter.
func (g *Generator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.counter++

	var ts int64
	if g.clock != nil {
		if now := g.clock(); !now.IsZero() {
			ts = now.UnixNano()
		}
	}

	if ts <= 0 {
		return "c" + strconv.FormatUint(g.counter, 36) + "-" + g.suffix()
	}

	if ts <= g.last {
		ts = g.last + 1
	}
	g.last = ts

	return strconv.FormatInt(ts, 36) + "-" + g.suffix()
}

func (g *Generator) suffix() string {
	id, err := uuid.NewRandom()
	if err != nil {
		// entropy source failed; the counter still keeps ids unique
		return fmt.Sprintf("%08x", uint32(g.counter))
	}
	return strings.ReplaceAll(id.String(), "-", "")[:suffixLen]
}

var defaultGenerator = New()

// NewID issues an id from the process wide generator.
func NewID() string {
	return defaultGenerator.NewID()
}
