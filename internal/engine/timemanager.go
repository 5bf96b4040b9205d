package engine

import (
	"sync/atomic"
	"time"
)

// SearchControl is the one piece of state shared across threads during a
// search: the I/O goroutine (on `stop`) and the worker pool (on deadline or
// node-limit) both observe it, matching the single cooperative stop flag
// the concurrency model calls for.
type SearchControl struct {
	start    time.Time
	deadline time.Time
	hasHard  bool
	nodeCap  int64
	stopped  int32
}

// newSearchControl derives a single hard deadline from Limits the way the
// teacher's simpleTimeManager derives its budget: movetime is authoritative
// if given, otherwise split the remaining clock, reserving a fixed move
// overhead. There is no separate soft deadline.
func newSearchControl(start time.Time, limits Limits, whiteToMove bool) *SearchControl {
	c := &SearchControl{start: start}
	if limits.Nodes > 0 {
		c.nodeCap = int64(limits.Nodes)
	}
	if limits.Infinite {
		return c
	}
	if limits.MoveTime > 0 {
		c.deadline = start.Add(time.Duration(limits.MoveTime) * time.Millisecond)
		c.hasHard = true
		return c
	}
	var main, inc time.Duration
	if whiteToMove {
		main = time.Duration(limits.WhiteTime) * time.Millisecond
		inc = time.Duration(limits.WhiteIncrement) * time.Millisecond
	} else {
		main = time.Duration(limits.BlackTime) * time.Millisecond
		inc = time.Duration(limits.BlackIncrement) * time.Millisecond
	}
	if main <= 0 {
		return c
	}
	const moveOverhead = 50 * time.Millisecond
	const minTime = 1 * time.Millisecond
	main -= moveOverhead
	if main < minTime {
		main = minTime
	}
	movesToGo := limits.MovesToGo
	if movesToGo <= 0 {
		movesToGo = 30
	}
	budget := main/time.Duration(movesToGo) + inc/2
	if budget < 100*time.Millisecond {
		budget = 100 * time.Millisecond
	}
	if budget > main {
		budget = main
	}
	c.deadline = start.Add(budget)
	c.hasHard = true
	return c
}

// Stop requests cooperative termination; called from the UCI `stop` command
// or when `quit` arrives mid-search.
func (c *SearchControl) Stop() {
	atomic.StoreInt32(&c.stopped, 1)
}

func (c *SearchControl) shouldStop() bool {
	if atomic.LoadInt32(&c.stopped) != 0 {
		return true
	}
	if c.hasHard && time.Now().After(c.deadline) {
		return true
	}
	return false
}

// onNodes lets the driver enforce a `go nodes N` limit without waiting for
// the next deadline poll.
func (c *SearchControl) onNodes(n int64) {
	if c.nodeCap > 0 && n >= c.nodeCap {
		c.Stop()
	}
}

func (c *SearchControl) depthExceeded(depth, limit int) bool {
	return limit > 0 && depth > limit
}
