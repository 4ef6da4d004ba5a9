package harvest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/DarkFrame_Go/internal/clock"
	"github.com/osse101/DarkFrame_Go/internal/domain"
)

func TestSchedule_TagFor_SplitBoundary(t *testing.T) {
	s := NewSchedule(50, clock.NewFake(time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)))

	assert.Equal(t, domain.BucketMorning, s.TagFor(0))
	assert.Equal(t, domain.BucketMorning, s.TagFor(49))
	assert.Equal(t, domain.BucketEvening, s.TagFor(50))
	assert.Equal(t, domain.BucketEvening, s.TagFor(99))

	assert.NotEqual(t, s.CurrentBucket(49).Tag, s.CurrentBucket(50).Tag)
	assert.NotEqual(t, s.CurrentBucket(49).ID, s.CurrentBucket(50).ID)
}

func TestSchedule_CurrentBucket(t *testing.T) {
	tests := []struct {
		name      string
		now       time.Time
		x         int
		wantID    string
		wantOpens time.Time
	}{
		{
			name:      "morning half before noon",
			now:       time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC),
			x:         10,
			wantID:    "2026-05-04T00-AM",
			wantOpens: time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC),
		},
		{
			name:      "evening half after noon",
			now:       time.Date(2026, 5, 4, 15, 0, 0, 0, time.UTC),
			x:         75,
			wantID:    "2026-05-04T12-PM",
			wantOpens: time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC),
		},
		{
			name:      "exactly noon opens the second window",
			now:       time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC),
			x:         10,
			wantID:    "2026-05-04T12-AM",
			wantOpens: time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC),
		},
		{
			name:      "non-UTC clock is normalized",
			now:       time.Date(2026, 5, 4, 23, 0, 0, 0, time.FixedZone("EST", -5*3600)),
			x:         60,
			wantID:    "2026-05-05T00-PM",
			wantOpens: time.Date(2026, 5, 5, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSchedule(50, clock.NewFake(tt.now))
			w := s.CurrentBucket(tt.x)
			assert.Equal(t, tt.wantID, w.ID)
			assert.True(t, tt.wantOpens.Equal(w.OpensAt))
			assert.Equal(t, domain.BucketLength, w.ClosesAt.Sub(w.OpensAt))
		})
	}
}

func TestSchedule_TimeUntilNextBucket_Range(t *testing.T) {
	fake := clock.NewFake(time.Date(2026, 5, 4, 0, 0, 0, 0, time.UTC))
	s := NewSchedule(50, fake)

	// exactly on a boundary the full window remains
	assert.Equal(t, 12*time.Hour, s.TimeUntilNextBucket(10))

	for i := 0; i < 200; i++ {
		fake.Advance(7*time.Minute + 13*time.Second)
		for _, x := range []int{0, 49, 50, 99} {
			d := s.TimeUntilNextBucket(x)
			assert.Greater(t, d, time.Duration(0))
			assert.LessOrEqual(t, d, 12*time.Hour)
		}
	}
}

func TestSchedule_TimeUntilNextBucket_OneSecondBeforeReset(t *testing.T) {
	s := NewSchedule(50, clock.NewFake(time.Date(2026, 5, 4, 11, 59, 59, 0, time.UTC)))
	assert.Equal(t, time.Second, s.TimeUntilNextBucket(5))
}

func TestSchedule_BucketRollsOver(t *testing.T) {
	fake := clock.NewFake(time.Date(2026, 5, 4, 11, 0, 0, 0, time.UTC))
	s := NewSchedule(50, fake)

	before := s.CurrentBucket(3)
	fake.Advance(s.TimeUntilNextBucket(3))
	after := s.CurrentBucket(3)

	assert.NotEqual(t, before.ID, after.ID)
	assert.True(t, before.ClosesAt.Equal(after.OpensAt))
}
