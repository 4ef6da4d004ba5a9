package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DarkFrame_Go/internal/clock"
	"github.com/osse101/DarkFrame_Go/internal/testing/leaktest"
)

type funcTask struct {
	name string
	run  func(ctx context.Context) (TickResult, error)
}

func (f *funcTask) Name() string { return f.name }

func (f *funcTask) Run(ctx context.Context) (TickResult, error) { return f.run(ctx) }

func okTask(items int, units int64) *funcTask {
	return &funcTask{name: "ok", run: func(context.Context) (TickResult, error) {
		return TickResult{ItemsProcessed: items, UnitsChanged: units}, nil
	}}
}

func TestRunner_StartStopIdempotent(t *testing.T) {
	r := NewRunner(okTask(0, 0), time.Hour)
	ctx := context.Background()

	res := r.Stop()
	assert.False(t, res.Success)
	assert.Equal(t, MsgJobNotRunning, res.Message)

	res = r.Start(ctx)
	assert.True(t, res.Success)
	assert.True(t, r.IsRunning())

	res = r.Start(ctx)
	assert.False(t, res.Success)
	assert.Equal(t, MsgJobAlreadyRunning, res.Message)

	res = r.Stop()
	assert.True(t, res.Success)
	assert.False(t, r.IsRunning())

	res = r.Stop()
	assert.False(t, res.Success)
	require.NoError(t, r.Shutdown(ctx))
}

func TestRunner_FirstTickImmediate(t *testing.T) {
	r := NewRunner(okTask(3, 7), time.Hour)
	r.Start(context.Background())
	defer r.Shutdown(context.Background())

	require.Eventually(t, func() bool {
		return r.Stats().ExecutionCount == 1
	}, time.Second, 5*time.Millisecond)

	st := r.Stats()
	assert.Equal(t, int64(3), st.ItemsProcessed)
	assert.Equal(t, int64(7), st.TotalUnitsChanged)
	assert.NotNil(t, st.LastRun)
	assert.NotNil(t, st.NextRun)
	assert.True(t, st.Running)
	assert.Equal(t, time.Hour.Milliseconds(), st.IntervalMs)
}

func TestRunner_ErrorDoesNotStopSchedule(t *testing.T) {
	var calls atomic.Int32
	task := &funcTask{name: "flaky", run: func(context.Context) (TickResult, error) {
		if calls.Add(1) == 1 {
			return TickResult{}, errors.New("query failed")
		}
		return TickResult{ItemsProcessed: 1}, nil
	}}

	r := NewRunner(task, 10*time.Millisecond)
	r.Start(context.Background())
	defer r.Shutdown(context.Background())

	require.Eventually(t, func() bool {
		return r.Stats().ExecutionCount >= 1
	}, time.Second, 5*time.Millisecond)

	st := r.Stats()
	assert.Equal(t, int64(1), st.ErrorCount)
	assert.NotNil(t, st.LastRun)
}

func TestRunner_PanicCountsAsError(t *testing.T) {
	task := &funcTask{name: "boom", run: func(context.Context) (TickResult, error) {
		panic("nil entity")
	}}
	r := NewRunner(task, time.Hour)

	res := r.RunOnce(context.Background())
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, ErrTaskPanicked.Error())

	st := r.Stats()
	assert.Equal(t, int64(1), st.ErrorCount)
	assert.Zero(t, st.ExecutionCount)
	assert.Nil(t, st.LastRun)
}

func TestRunner_FailedTickLeavesLastRun(t *testing.T) {
	fail := false
	task := &funcTask{name: "toggle", run: func(context.Context) (TickResult, error) {
		if fail {
			return TickResult{}, errors.New("bulk write failed")
		}
		return TickResult{ItemsProcessed: 2}, nil
	}}
	fake := clock.NewFake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	r := NewRunner(task, time.Minute, WithClock(fake))
	ctx := context.Background()

	require.True(t, r.RunOnce(ctx).Success)
	first := *r.Stats().LastRun

	fake.Advance(time.Minute)
	fail = true
	assert.False(t, r.RunOnce(ctx).Success)

	st := r.Stats()
	assert.True(t, first.Equal(*st.LastRun))
	assert.Equal(t, int64(1), st.ErrorCount)
	assert.Equal(t, int64(1), st.ExecutionCount)
	assert.Equal(t, int64(2), st.ItemsProcessed)

	fake.Advance(time.Minute)
	fail = false
	require.True(t, r.RunOnce(ctx).Success)
	assert.True(t, fake.Now().Equal(*r.Stats().LastRun))
	assert.Equal(t, int64(2), r.Stats().ExecutionCount)
}

func TestRunner_StatsIsACopy(t *testing.T) {
	r := NewRunner(okTask(1, 1), time.Hour)
	r.RunOnce(context.Background())

	st := r.Stats()
	*st.LastRun = time.Time{}
	st.ExecutionCount = 99

	again := r.Stats()
	assert.False(t, again.LastRun.IsZero())
	assert.Equal(t, int64(1), again.ExecutionCount)
}

func TestRunner_TicksNeverOverlap(t *testing.T) {
	var active, maxActive atomic.Int32
	task := &funcTask{name: "slow", run: func(context.Context) (TickResult, error) {
		n := active.Add(1)
		for {
			m := maxActive.Load()
			if n <= m || maxActive.CompareAndSwap(m, n) {
				break
			}
		}
		time.Sleep(15 * time.Millisecond)
		active.Add(-1)
		return TickResult{}, nil
	}}

	r := NewRunner(task, time.Millisecond)
	ctx := context.Background()
	r.Start(ctx)

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.RunOnce(ctx)
		}()
	}
	wg.Wait()

	require.Eventually(t, func() bool {
		return r.Stats().ExecutionCount >= 6
	}, 2*time.Second, 5*time.Millisecond)
	require.NoError(t, r.Shutdown(ctx))

	assert.Equal(t, int32(1), maxActive.Load())
}

func TestRunner_ShutdownWaitsForInflightTick(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var finished atomic.Bool
	task := &funcTask{name: "blocking", run: func(context.Context) (TickResult, error) {
		close(started)
		<-release
		finished.Store(true)
		return TickResult{}, nil
	}}

	r := NewRunner(task, time.Hour)
	r.Start(context.Background())
	<-started

	// the tick is not cancelled by Shutdown, so a short deadline expires first
	short, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, r.Shutdown(short), context.DeadlineExceeded)
	assert.False(t, r.IsRunning())

	close(release)
	require.NoError(t, r.Shutdown(context.Background()))
	assert.True(t, finished.Load())
	assert.Equal(t, int64(1), r.Stats().ExecutionCount)
}

func TestRunner_StopPreventsFurtherTicks(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	r := NewRunner(okTask(0, 0), 5*time.Millisecond)
	r.Start(context.Background())
	require.Eventually(t, func() bool {
		return r.Stats().ExecutionCount >= 2
	}, time.Second, time.Millisecond)
	require.NoError(t, r.Shutdown(context.Background()))

	count := r.Stats().ExecutionCount
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, count, r.Stats().ExecutionCount)
	assert.Nil(t, r.Stats().NextRun)

	checker.Check(0)
}

func TestRunner_Restart(t *testing.T) {
	r := NewRunner(okTask(0, 0), time.Hour)
	ctx := context.Background()

	r.Start(ctx)
	require.Eventually(t, func() bool { return r.Stats().ExecutionCount == 1 }, time.Second, time.Millisecond)
	r.Stop()

	assert.True(t, r.Start(ctx).Success)
	require.Eventually(t, func() bool { return r.Stats().ExecutionCount == 2 }, time.Second, time.Millisecond)
	require.NoError(t, r.Shutdown(ctx))
}

func TestRunner_Info(t *testing.T) {
	r := NewRunner(okTask(0, 0), 90*time.Second)
	info := r.Info()
	assert.Equal(t, "ok", info.Name)
	assert.Equal(t, int64(90000), info.IntervalMs)
	assert.False(t, info.IsRunning)
	assert.Zero(t, info.Stats.ExecutionCount)
}
