package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/DarkFrame_Go/internal/clock"
	"github.com/osse101/DarkFrame_Go/internal/domain"
	"github.com/osse101/DarkFrame_Go/internal/logger"
	"github.com/osse101/DarkFrame_Go/internal/metrics"
)

// Runner drives a Task on a fixed interval until stopped.
//
// The first tick fires immediately after Start. The next one is armed only once
// the previous tick has returned, so ticks never overlap. Task errors and panics
// are absorbed into the error count and never reach the caller.
type Runner struct {
	task     Task
	interval time.Duration
	clock    clock.Clock

	mu      sync.Mutex
	running bool
	gen     uint64 // bumped on every Start/Stop so stale timers do nothing
	timer   *time.Timer
	ctx     context.Context
	stats   domain.JobRunState

	tickMu sync.Mutex // serializes scheduled ticks with RunOnce
	wg     sync.WaitGroup
}

// Option customizes a Runner
type Option func(*Runner)

// WithClock overrides the clock used for LastRun/NextRun timestamps
func WithClock(c clock.Clock) Option {
	return func(r *Runner) { r.clock = c }
}

// NewRunner creates a stopped runner for task
func NewRunner(task Task, interval time.Duration, opts ...Option) *Runner {
	r := &Runner{
		task:     task,
		interval: interval,
		clock:    clock.Real{},
	}
	for _, opt := range opts {
		opt(r)
	}
	r.stats.IntervalMs = interval.Milliseconds()
	return r
}

// Name returns the task name
func (r *Runner) Name() string {
	return r.task.Name()
}

// Start moves the runner to Running and schedules the first tick.
// Starting a running job reports failure and changes nothing.
func (r *Runner) Start(ctx context.Context) domain.JobResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return domain.JobResult{Success: false, Message: MsgJobAlreadyRunning}
	}

	r.running = true
	r.gen++
	// ticks outlive the caller's request
	r.ctx = context.WithoutCancel(ctx)
	r.arm(0, r.gen)

	metrics.JobRunning.WithLabelValues(r.task.Name()).Set(1)
	logger.ForJob(ctx, r.task.Name()).Info(LogMsgJobStarted, "interval", r.interval.String())
	return domain.JobResult{Success: true, Message: MsgJobStarted}
}

// Stop moves the runner to Stopped. A tick already in progress finishes normally.
func (r *Runner) Stop() domain.JobResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return domain.JobResult{Success: false, Message: MsgJobNotRunning}
	}

	r.running = false
	r.gen++
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.stats.NextRun = nil

	metrics.JobRunning.WithLabelValues(r.task.Name()).Set(0)
	logger.ForJob(r.ctx, r.task.Name()).Info(LogMsgJobStopped)
	return domain.JobResult{Success: true, Message: MsgJobStopped}
}

// IsRunning reports whether ticks are being scheduled
func (r *Runner) IsRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Stats returns a copy of the run statistics
func (r *Runner) Stats() domain.JobRunState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot()
}

// Info describes the job for health and admin endpoints
func (r *Runner) Info() domain.JobInfo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return domain.JobInfo{
		Name:       r.task.Name(),
		IntervalMs: r.interval.Milliseconds(),
		IsRunning:  r.running,
		Stats:      r.snapshot(),
	}
}

// RunOnce executes one tick synchronously, waiting for any scheduled tick to finish first.
// It works whether or not the runner is started.
func (r *Runner) RunOnce(ctx context.Context) domain.JobResult {
	if err := r.tick(ctx); err != nil {
		return domain.JobResult{Success: false, Message: err.Error()}
	}
	return domain.JobResult{Success: true, Message: MsgJobRanOnce}
}

// Shutdown stops the runner and waits for an in-flight tick to complete
func (r *Runner) Shutdown(ctx context.Context) error {
	log := logger.ForJob(ctx, r.task.Name())
	log.Info(LogMsgJobShuttingDown)

	r.Stop()

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Info(LogMsgJobShutdownDone)
		return nil
	case <-ctx.Done():
		log.Warn(LogMsgJobShutdownSlow)
		return ctx.Err()
	}
}

// arm schedules the next tick for generation gen. Callers hold r.mu.
func (r *Runner) arm(d time.Duration, gen uint64) {
	next := r.clock.Now().Add(d)
	r.stats.NextRun = &next
	r.timer = time.AfterFunc(d, func() { r.fire(gen) })
}

func (r *Runner) fire(gen uint64) {
	r.mu.Lock()
	if !r.running || r.gen != gen {
		r.mu.Unlock()
		return
	}
	r.wg.Add(1)
	ctx := r.ctx
	r.mu.Unlock()
	defer r.wg.Done()

	_ = r.tick(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running && r.gen == gen {
		r.arm(r.interval, gen)
	}
}

// tick runs the task once and folds the outcome into the statistics
func (r *Runner) tick(ctx context.Context) error {
	r.tickMu.Lock()
	defer r.tickMu.Unlock()

	name := r.task.Name()
	log := logger.ForJob(ctx, name)
	log.Debug(LogMsgJobTickStarted)

	started := time.Now()
	res, err := r.runTask(ctx)
	elapsed := time.Since(started)
	metrics.JobTickDuration.WithLabelValues(name).Observe(elapsed.Seconds())

	r.mu.Lock()
	defer r.mu.Unlock()

	if err != nil {
		r.stats.ErrorCount++
		metrics.JobTicksTotal.WithLabelValues(name, metrics.ResultError).Inc()
		log.Error(LogMsgJobTickFailed, "error", err, "error_count", r.stats.ErrorCount)
		return err
	}

	now := r.clock.Now()
	r.stats.ExecutionCount++
	r.stats.ItemsProcessed += int64(res.ItemsProcessed)
	r.stats.TotalUnitsChanged += res.UnitsChanged
	ms := float64(elapsed) / float64(time.Millisecond)
	n := float64(r.stats.ExecutionCount)
	r.stats.AverageExecutionTimeMs += (ms - r.stats.AverageExecutionTimeMs) / n
	r.stats.LastRun = &now

	metrics.JobTicksTotal.WithLabelValues(name, metrics.ResultSuccess).Inc()
	metrics.JobItemsProcessed.WithLabelValues(name).Add(float64(res.ItemsProcessed))
	metrics.JobUnitsChanged.WithLabelValues(name).Add(float64(res.UnitsChanged))
	log.Info(LogMsgJobTickCompleted,
		"items_processed", res.ItemsProcessed,
		"units_changed", res.UnitsChanged,
		"duration_ms", ms)
	return nil
}

func (r *Runner) runTask(ctx context.Context) (res TickResult, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrTaskPanicked, p)
		}
	}()
	return r.task.Run(ctx)
}

// snapshot copies the stats, including the pointed-to timestamps. Callers hold r.mu.
func (r *Runner) snapshot() domain.JobRunState {
	s := r.stats
	s.Running = r.running
	if r.stats.LastRun != nil {
		t := *r.stats.LastRun
		s.LastRun = &t
	}
	if r.stats.NextRun != nil {
		t := *r.stats.NextRun
		s.NextRun = &t
	}
	return s
}
