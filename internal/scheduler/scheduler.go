package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/osse101/DarkFrame_Go/internal/domain"
	"github.com/osse101/DarkFrame_Go/internal/logger"
	"github.com/osse101/DarkFrame_Go/internal/worker"
)

// Scheduler owns the named job runners of the process.
// Jobs run independently; the scheduler only starts, looks up and stops them.
type Scheduler struct {
	mu      sync.RWMutex
	runners map[string]*worker.Runner
	opts    []worker.Option
}

// New creates an empty scheduler. opts are applied to every registered runner.
func New(opts ...worker.Option) *Scheduler {
	return &Scheduler{
		runners: make(map[string]*worker.Runner),
		opts:    opts,
	}
}

// Register wraps task in a runner with the given interval.
// Registering the same name twice is an error.
func (s *Scheduler) Register(task worker.Task, interval time.Duration) (*worker.Runner, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: interval for %s must be positive", domain.ErrInvalidInput, task.Name())
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name := task.Name()
	if _, exists := s.runners[name]; exists {
		return nil, fmt.Errorf("%w: job %s already registered", domain.ErrInvalidInput, name)
	}
	r := worker.NewRunner(task, interval, s.opts...)
	s.runners[name] = r
	return r, nil
}

// StartAll starts every registered runner that is not already running
func (s *Scheduler) StartAll(ctx context.Context) {
	for _, r := range s.sorted() {
		r.Start(ctx)
	}
}

// Runner returns the runner registered under name
func (s *Scheduler) Runner(name string) (*worker.Runner, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.runners[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrJobNotFound, name)
	}
	return r, nil
}

// Infos describes all jobs, ordered by name
func (s *Scheduler) Infos() []domain.JobInfo {
	runners := s.sorted()
	infos := make([]domain.JobInfo, 0, len(runners))
	for _, r := range runners {
		infos = append(infos, r.Info())
	}
	return infos
}

// Shutdown stops every runner and waits for in-flight ticks
func (s *Scheduler) Shutdown(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info("Shutting down scheduler")

	runners := s.sorted()
	errs := make([]error, len(runners))

	var wg sync.WaitGroup
	for i, r := range runners {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = r.Shutdown(ctx)
		}()
	}
	wg.Wait()

	return errors.Join(errs...)
}

func (s *Scheduler) sorted() []*worker.Runner {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runners := make([]*worker.Runner, 0, len(s.runners))
	for _, r := range s.runners {
		runners = append(runners, r)
	}
	sort.Slice(runners, func(i, j int) bool {
		return runners[i].Name() < runners[j].Name()
	})
	return runners
}
