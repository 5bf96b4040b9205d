package engine

import (
	"testing"
	"time"
)

func fixedTime() time.Time { return time.Now() }

func TestSearchControlInfiniteHasNoDeadline(t *testing.T) {
	var c = newSearchControl(fixedTime(), Limits{Infinite: true}, true)
	if c.hasHard {
		t.Error("infinite search should have no hard deadline")
	}
	if c.shouldStop() {
		t.Error("infinite search should not stop on its own")
	}
}

func TestSearchControlClockBudgetSetsDeadline(t *testing.T) {
	var c = newSearchControl(fixedTime(), Limits{MoveTime: 0, WhiteTime: 60000}, true)
	if !c.hasHard {
		t.Error("a clock-derived budget should still set a hard deadline")
	}
}

func TestSearchControlStopIsImmediate(t *testing.T) {
	var c = newSearchControl(fixedTime(), Limits{Infinite: true}, true)
	c.Stop()
	if !c.shouldStop() {
		t.Error("Stop() should make shouldStop() report true immediately")
	}
}

func TestSearchControlNodeCapStops(t *testing.T) {
	var c = newSearchControl(fixedTime(), Limits{Infinite: true, Nodes: 100}, true)
	c.onNodes(50)
	if c.shouldStop() {
		t.Error("should not stop before reaching the node cap")
	}
	c.onNodes(100)
	if !c.shouldStop() {
		t.Error("should stop once the node cap is reached")
	}
}

func TestDepthExceeded(t *testing.T) {
	var c = &SearchControl{}
	if c.depthExceeded(5, 0) {
		t.Error("a zero depth limit means unlimited")
	}
	if !c.depthExceeded(6, 5) {
		t.Error("depth 6 should exceed a limit of 5")
	}
	if c.depthExceeded(5, 5) {
		t.Error("depth 5 should not exceed a limit of 5")
	}
}
