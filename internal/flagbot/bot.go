// Package flagbot moves the roaming flag bots and respawns abandoned ones.
package flagbot

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/osse101/DarkFrame_Go/internal/clock"
	"github.com/osse101/DarkFrame_Go/internal/domain"
	"github.com/osse101/DarkFrame_Go/internal/logger"
	"github.com/osse101/DarkFrame_Go/internal/repository"
	"github.com/osse101/DarkFrame_Go/internal/worker"
)

const (
	DefaultMoveInterval     = 30 * time.Minute
	DefaultAbandonThreshold = time.Hour
	DefaultMaxStep          = 3
)

const (
	LogMsgNoFlagBots       = "No flag bots to manage"
	LogMsgFlagsRespawned   = "Abandoned flags respawned"
	LogMsgFlagsMoved       = "Flag bots moved"
	LogMsgFlagWriteContest = "Some flag updates lost a race with a claim"
)

// Config controls flag movement
type Config struct {
	MapWidth         int
	MapHeight        int
	MoveInterval     time.Duration
	AbandonThreshold time.Duration
	MaxStep          int
}

// DefaultConfig returns the standard flag settings
func DefaultConfig() Config {
	return Config{
		MapWidth:         domain.DefaultMapWidth,
		MapHeight:        domain.DefaultMapHeight,
		MoveInterval:     DefaultMoveInterval,
		AbandonThreshold: DefaultAbandonThreshold,
		MaxStep:          DefaultMaxStep,
	}
}

// BotJob is the periodic flag bot manager
type BotJob struct {
	repo  repository.FlagRepository
	clock clock.Clock
	cfg   Config
	intN  func(n int) int
}

// Option customizes a BotJob
type Option func(*BotJob)

// WithRand overrides the random source; intN(n) must return [0, n)
func WithRand(intN func(n int) int) Option {
	return func(j *BotJob) { j.intN = intN }
}

// NewBotJob creates the flag bot task
func NewBotJob(repo repository.FlagRepository, c clock.Clock, cfg Config, opts ...Option) *BotJob {
	if c == nil {
		c = clock.Real{}
	}
	j := &BotJob{repo: repo, clock: c, cfg: cfg, intN: rand.IntN}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Name implements worker.Task
func (j *BotJob) Name() string {
	return domain.JobNameFlagBot
}

// IsAbandoned reports whether nobody has claimed the flag for longer than threshold.
// A held flag is claimed. An unheld flag counts from its last claim, or from its
// spawn when it was never claimed.
func IsAbandoned(b domain.FlagBot, now time.Time, threshold time.Duration) bool {
	if b.IsHeld() {
		return false
	}
	since := b.SpawnedAt
	if b.ClaimedAt != nil {
		since = *b.ClaimedAt
	}
	return now.Sub(since) > threshold
}

// Run respawns abandoned flags, or if none are abandoned, moves the idle ones
func (j *BotJob) Run(ctx context.Context) (worker.TickResult, error) {
	log := logger.ForJob(ctx, j.Name())

	bots, err := j.repo.ListFlagBots(ctx)
	if err != nil {
		return worker.TickResult{}, fmt.Errorf("failed to load flag bots: %w", err)
	}
	if len(bots) == 0 {
		log.Debug(LogMsgNoFlagBots)
		return worker.TickResult{}, nil
	}

	now := j.clock.Now()

	var abandoned []domain.FlagBot
	for _, b := range bots {
		if IsAbandoned(b, now, j.cfg.AbandonThreshold) {
			abandoned = append(abandoned, b)
		}
	}

	// respawning takes the whole tick; movement resumes next time
	if len(abandoned) > 0 {
		updates := worker.ProcessEach(ctx, j.Name(), abandoned, func(b domain.FlagBot) (domain.FlagUpdate, bool, error) {
			return j.respawn(b, now), true, nil
		})
		res, err := j.apply(ctx, updates, bots)
		if err == nil {
			log.Info(LogMsgFlagsRespawned, "count", res.ItemsProcessed)
		}
		return res, err
	}

	updates := worker.ProcessEach(ctx, j.Name(), bots, func(b domain.FlagBot) (domain.FlagUpdate, bool, error) {
		return j.move(b, now)
	})
	if len(updates) == 0 {
		return worker.TickResult{}, nil
	}
	res, err := j.apply(ctx, updates, bots)
	if err == nil {
		log.Info(LogMsgFlagsMoved, "count", res.ItemsProcessed, "tiles", res.UnitsChanged)
	}
	return res, err
}

func (j *BotJob) respawn(b domain.FlagBot, now time.Time) domain.FlagUpdate {
	return domain.FlagUpdate{
		FlagID:          b.ID,
		Kind:            domain.FlagUpdateRespawn,
		ExpectedVersion: b.Version,
		X:               j.intN(j.cfg.MapWidth),
		Y:               j.intN(j.cfg.MapHeight),
		At:              now,
	}
}

func (j *BotJob) move(b domain.FlagBot, now time.Time) (domain.FlagUpdate, bool, error) {
	if b.IsHeld() {
		return domain.FlagUpdate{}, false, nil
	}
	if b.LastMovedAt != nil && now.Sub(*b.LastMovedAt) < j.cfg.MoveInterval {
		return domain.FlagUpdate{}, false, nil
	}
	if b.X < 0 || b.Y < 0 || b.X >= j.cfg.MapWidth || b.Y >= j.cfg.MapHeight {
		// off-map bots are put back on the map instead of stepped
		return j.respawn(b, now), true, nil
	}

	x := clamp(b.X+j.step(), 0, j.cfg.MapWidth-1)
	y := clamp(b.Y+j.step(), 0, j.cfg.MapHeight-1)
	if x == b.X && y == b.Y {
		return domain.FlagUpdate{}, false, nil
	}

	return domain.FlagUpdate{
		FlagID:          b.ID,
		Kind:            domain.FlagUpdateMove,
		ExpectedVersion: b.Version,
		X:               x,
		Y:               y,
		At:              now,
	}, true, nil
}

// step returns a random offset in [-MaxStep, MaxStep]
func (j *BotJob) step() int {
	return j.intN(2*j.cfg.MaxStep+1) - j.cfg.MaxStep
}

func (j *BotJob) apply(ctx context.Context, updates []domain.FlagUpdate, bots []domain.FlagBot) (worker.TickResult, error) {
	applied, err := j.repo.ApplyFlagUpdates(ctx, updates)
	if err != nil {
		return worker.TickResult{}, fmt.Errorf("failed to apply flag updates: %w", err)
	}
	if applied < int64(len(updates)) {
		logger.ForJob(ctx, j.Name()).Warn(LogMsgFlagWriteContest, "staged", len(updates), "applied", applied)
	}

	byID := make(map[string]domain.FlagBot, len(bots))
	for _, b := range bots {
		byID[b.ID] = b
	}
	var tiles int64
	for _, u := range updates {
		b := byID[u.FlagID]
		tiles += int64(abs(u.X-b.X) + abs(u.Y-b.Y))
	}
	return worker.TickResult{ItemsProcessed: len(updates), UnitsChanged: tiles}, nil
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
