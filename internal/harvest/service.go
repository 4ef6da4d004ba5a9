package harvest

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/osse101/DarkFrame_Go/internal/clock"
	"github.com/osse101/DarkFrame_Go/internal/concurrency"
	"github.com/osse101/DarkFrame_Go/internal/domain"
	"github.com/osse101/DarkFrame_Go/internal/logger"
	"github.com/osse101/DarkFrame_Go/internal/metrics"
	"github.com/osse101/DarkFrame_Go/internal/repository"
)

// Request is a single harvest attempt
type Request struct {
	PlayerID string              `json:"player_id" validate:"required,max=64"`
	X        int                 `json:"x" validate:"gte=0"`
	Y        int                 `json:"y" validate:"gte=0"`
	Resource domain.ResourceKind `json:"resource" validate:"required,oneof=metal energy"`
}

// Service defines the harvest system business logic
type Service interface {
	// Harvest collects the tile at (X, Y) for the player, once per reset window
	Harvest(ctx context.Context, req Request) (*domain.HarvestResult, error)

	// Window reports the active reset window for column x
	Window(x int) domain.WindowStatus
}

// Config tunes yield and map bounds
type Config struct {
	MapWidth        int
	MapHeight       int
	SplitX          int
	PerActorBonus   float64
	CrowdCap        int
	RecentCacheSize int
}

// DefaultConfig returns the standard map and bonus settings
func DefaultConfig() Config {
	return Config{
		MapWidth:        domain.DefaultMapWidth,
		MapHeight:       domain.DefaultMapHeight,
		SplitX:          domain.DefaultBucketSplitX,
		PerActorBonus:   DefaultPerActorBonus,
		CrowdCap:        DefaultCrowdCap,
		RecentCacheSize: DefaultRecentCacheSize,
	}
}

type service struct {
	repo     repository.HarvestRepository
	schedule *Schedule
	clock    clock.Clock
	cfg      Config
	yield    func() int
	// recent remembers (player, location, bucket) keys already recorded by this process
	recent *lru.Cache[string, struct{}]
	// locks serializes attempts on the same key within this process
	locks *concurrency.LockManager
}

// Option customizes the service
type Option func(*service)

// WithClock overrides the time source
func WithClock(c clock.Clock) Option {
	return func(s *service) { s.clock = c }
}

// WithYieldSource overrides the base yield roll
func WithYieldSource(f func() int) Option {
	return func(s *service) { s.yield = f }
}

// NewService creates a new harvest service
func NewService(repo repository.HarvestRepository, cfg Config, opts ...Option) (Service, error) {
	s := &service{
		repo:  repo,
		clock: clock.Real{},
		cfg:   cfg,
		yield: BaseYield,
		locks: concurrency.NewLockManager(concurrency.DefaultStripes),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.schedule = NewSchedule(cfg.SplitX, s.clock)

	size := cfg.RecentCacheSize
	if size <= 0 {
		size = DefaultRecentCacheSize
	}
	cache, err := lru.New[string, struct{}](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create harvest cache: %w", err)
	}
	s.recent = cache
	return s, nil
}

// Harvest collects the tile at (X, Y) for the player
func (s *service) Harvest(ctx context.Context, req Request) (*domain.HarvestResult, error) {
	log := logger.FromContext(ctx)
	log.Debug(LogMsgHarvestRequested, "player_id", req.PlayerID, "x", req.X, "y", req.Y, "resource", req.Resource)

	if !req.Resource.IsValid() {
		s.reject(req.Resource)
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidResource, req.Resource)
	}
	if req.X < 0 || req.Y < 0 || req.X >= s.cfg.MapWidth || req.Y >= s.cfg.MapHeight {
		s.reject(req.Resource)
		return nil, fmt.Errorf("%w: (%d, %d)", domain.ErrInvalidCoordinates, req.X, req.Y)
	}

	now := s.clock.Now()
	window := s.schedule.bucketAt(req.X, now)
	location := LocationKey(req.X, req.Y)
	cacheKey := req.PlayerID + "|" + location + "|" + window.ID

	unlock := s.locks.Lock(cacheKey)
	defer unlock()

	if s.recent.Contains(cacheKey) {
		s.reject(req.Resource)
		log.Info(LogMsgHarvestRejected, "player_id", req.PlayerID, "location", location, "bucket", window.ID)
		return nil, domain.ErrAlreadyHarvested
	}

	done, err := s.repo.HasHarvested(ctx, req.PlayerID, location, window.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check harvest record: %w", err)
	}
	if done {
		s.recent.Add(cacheKey, struct{}{})
		s.reject(req.Resource)
		log.Info(LogMsgHarvestRejected, "player_id", req.PlayerID, "location", location, "bucket", window.ID)
		return nil, domain.ErrAlreadyHarvested
	}

	bonuses, err := s.repo.GetPlayerBonuses(ctx, req.PlayerID)
	if err != nil {
		if errors.Is(err, domain.ErrPlayerNotFound) {
			return nil, err
		}
		log.Warn(LogMsgBonusLookupFail, "player_id", req.PlayerID, "error", err)
		bonuses = &domain.PlayerBonuses{}
	}

	crowdPct := 0.0
	existing, err := s.repo.CountHarvesters(ctx, location, window.ID)
	if err != nil {
		log.Warn(LogMsgCrowdLookupFail, "location", location, "bucket", window.ID, "error", err)
	} else {
		// this harvester counts toward the crowd
		crowdPct = DiminishingCrowdBonusWithCap(existing+1, s.cfg.PerActorBonus, s.cfg.CrowdCap) * 100
	}

	base := s.yield()
	amount := ApplyBonuses(base, bonuses.PermanentPct+crowdPct, bonuses.ActiveTemporaryPct(now))

	record := domain.HarvestRecord{
		ID:           uuid.New(),
		PlayerID:     req.PlayerID,
		LocationKey:  location,
		BucketID:     window.ID,
		HarvestedAt:  now,
		AmountGained: amount,
		ResourceKind: req.Resource,
	}
	if err := s.repo.RecordHarvest(ctx, record); err != nil {
		if errors.Is(err, domain.ErrAlreadyHarvested) {
			s.recent.Add(cacheKey, struct{}{})
			s.reject(req.Resource)
			return nil, err
		}
		metrics.HarvestsTotal.WithLabelValues(string(req.Resource), metrics.ResultError).Inc()
		return nil, fmt.Errorf("failed to record harvest: %w", err)
	}
	s.recent.Add(cacheKey, struct{}{})

	metrics.HarvestsTotal.WithLabelValues(string(req.Resource), metrics.ResultSuccess).Inc()
	metrics.HarvestYield.WithLabelValues(string(req.Resource)).Observe(float64(amount))
	log.Info(LogMsgHarvestSucceeded, "player_id", req.PlayerID, "location", location, "bucket", window.ID, "amount", amount)

	crowdPct = math.Round(crowdPct*10) / 10
	return &domain.HarvestResult{
		Resource:      req.Resource,
		BaseYield:     base,
		AmountGained:  amount,
		CrowdBonusPct: crowdPct,
		Window:        window,
		NextResetAt:   window.ClosesAt,
		Message:       formatHarvestMessage(req.Resource, amount, crowdPct),
	}, nil
}

// Window reports the active reset window for column x
func (s *service) Window(x int) domain.WindowStatus {
	now := s.clock.Now()
	w := s.schedule.bucketAt(x, now)
	remaining := w.ClosesAt.Sub(now)
	return domain.WindowStatus{
		Window:         w,
		TimeUntilReset: remaining.Truncate(time.Second).String(),
		ResetInSeconds: int64(remaining / time.Second),
	}
}

func (s *service) reject(kind domain.ResourceKind) {
	metrics.HarvestsTotal.WithLabelValues(string(kind), metrics.ResultRejected).Inc()
}

// LocationKey is the canonical "x,y" key for a map tile
func LocationKey(x, y int) string {
	return fmt.Sprintf("%d,%d", x, y)
}
