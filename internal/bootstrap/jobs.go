package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/DarkFrame_Go/internal/clock"
	"github.com/osse101/DarkFrame_Go/internal/config"
	"github.com/osse101/DarkFrame_Go/internal/domain"
	"github.com/osse101/DarkFrame_Go/internal/factory"
	"github.com/osse101/DarkFrame_Go/internal/flagbot"
	"github.com/osse101/DarkFrame_Go/internal/scheduler"
)

// RegisterJobs adds the enabled periodic jobs to sched. Nothing is started.
func RegisterJobs(sched *scheduler.Scheduler, cfg *config.Config, repos *Repositories, c clock.Clock) error {
	if cfg.FactoryRegenEnabled {
		job := factory.NewRegenerationJob(repos.Factory, c)
		if _, err := sched.Register(job, cfg.FactoryRegenInterval); err != nil {
			return fmt.Errorf("failed to register %s: %w", job.Name(), err)
		}
		slog.Info(LogMsgJobRegistered, "job", job.Name(), "interval", cfg.FactoryRegenInterval.String())
	} else {
		slog.Info(LogMsgJobDisabled, "job", domain.JobNameFactorySlotRegen)
	}

	if cfg.FlagBotEnabled {
		job := flagbot.NewBotJob(repos.Flag, c, cfg.FlagConfig())
		// the bot manager wakes at the move interval; per-bot timing is decided inside
		if _, err := sched.Register(job, cfg.FlagMoveInterval); err != nil {
			return fmt.Errorf("failed to register %s: %w", job.Name(), err)
		}
		slog.Info(LogMsgJobRegistered, "job", job.Name(), "interval", cfg.FlagMoveInterval.String())
	} else {
		slog.Info(LogMsgJobDisabled, "job", domain.JobNameFlagBot)
	}

	return nil
}
