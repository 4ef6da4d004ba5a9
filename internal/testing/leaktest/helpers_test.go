package leaktest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGoroutineChecker_NoLeak(t *testing.T) {
	checker := NewGoroutineChecker(t)
	checker.Check(0)
}

func TestGoroutineChecker_WithTolerance(t *testing.T) {
	checker := NewGoroutineChecker(t)

	done := make(chan struct{})
	go func() { <-done }()

	checker.Check(1)
	close(done)
}

func TestGoroutineChecker_WaitsForTimers(t *testing.T) {
	CheckNoGoroutineLeak(t, func() {
		fired := make(chan struct{})
		time.AfterFunc(20*time.Millisecond, func() { close(fired) })
		<-fired
	})
}

func TestWaitAtMost_ReturnsWhenTargetReached(t *testing.T) {
	start := time.Now()
	n := waitAtMost(1<<20, time.Second)
	assert.Positive(t, n)
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}
