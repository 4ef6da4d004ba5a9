package factory

import (
	"context"
	"fmt"

	"github.com/osse101/DarkFrame_Go/internal/clock"
	"github.com/osse101/DarkFrame_Go/internal/domain"
	"github.com/osse101/DarkFrame_Go/internal/logger"
	"github.com/osse101/DarkFrame_Go/internal/repository"
	"github.com/osse101/DarkFrame_Go/internal/worker"
)

const (
	LogMsgNoEligibleFactories = "No factories need slot regeneration"
	LogMsgSlotUpdatesApplied  = "Slot regeneration applied"
	LogMsgSlotUpdatesConflict = "Some slot updates lost a race with slot consumption"
)

// RegenerationJob frees used factory slots as time passes
type RegenerationJob struct {
	repo  repository.FactoryRepository
	clock clock.Clock
}

// NewRegenerationJob creates the slot regeneration task
func NewRegenerationJob(repo repository.FactoryRepository, c clock.Clock) *RegenerationJob {
	if c == nil {
		c = clock.Real{}
	}
	return &RegenerationJob{repo: repo, clock: c}
}

// Name implements worker.Task
func (j *RegenerationJob) Name() string {
	return domain.JobNameFactorySlotRegen
}

// Run performs one regeneration pass: one query, one batched write
func (j *RegenerationJob) Run(ctx context.Context) (worker.TickResult, error) {
	log := logger.ForJob(ctx, j.Name())

	factories, err := j.repo.FindFactories(ctx, Eligible())
	if err != nil {
		return worker.TickResult{}, fmt.Errorf("failed to load factories: %w", err)
	}
	if len(factories) == 0 {
		log.Debug(LogMsgNoEligibleFactories)
		return worker.TickResult{}, nil
	}

	now := j.clock.Now()
	updates := worker.ProcessEach(ctx, j.Name(), factories, func(f domain.Factory) (domain.SlotUpdate, bool, error) {
		return ComputeSlotUpdate(f, now)
	})
	if len(updates) == 0 {
		return worker.TickResult{}, nil
	}

	applied, err := j.repo.ApplySlotUpdates(ctx, updates)
	if err != nil {
		return worker.TickResult{}, fmt.Errorf("failed to apply slot updates: %w", err)
	}

	var freed int64
	for _, u := range updates {
		freed += int64(u.PreviousUsed - u.UsedSlots)
	}

	if applied < int64(len(updates)) {
		log.Warn(LogMsgSlotUpdatesConflict, "staged", len(updates), "applied", applied)
	}
	log.Info(LogMsgSlotUpdatesApplied, "factories", len(factories), "staged", len(updates), "slots_freed", freed)

	return worker.TickResult{ItemsProcessed: len(updates), UnitsChanged: freed}, nil
}
