package bootstrap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/DarkFrame_Go/internal/clock"
	"github.com/osse101/DarkFrame_Go/internal/config"
	"github.com/osse101/DarkFrame_Go/internal/domain"
	"github.com/osse101/DarkFrame_Go/internal/scheduler"
)

func jobsConfig() *config.Config {
	return &config.Config{
		MapWidth:             100,
		MapHeight:            100,
		FactoryRegenEnabled:  true,
		FactoryRegenInterval: time.Minute,
		FlagBotEnabled:       true,
		FlagMoveInterval:     30 * time.Minute,
		FlagAbandonThreshold: time.Hour,
		FlagMaxStep:          3,
	}
}

func TestRegisterJobs(t *testing.T) {
	tests := []struct {
		name    string
		factory bool
		flag    bool
		want    []string
	}{
		{"all enabled", true, true, []string{domain.JobNameFactorySlotRegen, domain.JobNameFlagBot}},
		{"factory only", true, false, []string{domain.JobNameFactorySlotRegen}},
		{"flag only", false, true, []string{domain.JobNameFlagBot}},
		{"none", false, false, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := jobsConfig()
			cfg.FactoryRegenEnabled = tt.factory
			cfg.FlagBotEnabled = tt.flag
			sched := scheduler.New()

			require.NoError(t, RegisterJobs(sched, cfg, &Repositories{}, clock.Real{}))

			var names []string
			for _, info := range sched.Infos() {
				names = append(names, info.Name)
				assert.False(t, info.IsRunning, "registration does not start jobs")
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestRegisterJobs_Intervals(t *testing.T) {
	sched := scheduler.New()
	require.NoError(t, RegisterJobs(sched, jobsConfig(), &Repositories{}, clock.Real{}))

	regen, err := sched.Runner(domain.JobNameFactorySlotRegen)
	require.NoError(t, err)
	assert.Equal(t, time.Minute.Milliseconds(), regen.Info().IntervalMs)

	bots, err := sched.Runner(domain.JobNameFlagBot)
	require.NoError(t, err)
	assert.Equal(t, (30 * time.Minute).Milliseconds(), bots.Info().IntervalMs)
}

func TestRegisterJobs_Twice(t *testing.T) {
	sched := scheduler.New()
	require.NoError(t, RegisterJobs(sched, jobsConfig(), &Repositories{}, clock.Real{}))

	err := RegisterJobs(sched, jobsConfig(), &Repositories{}, clock.Real{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
