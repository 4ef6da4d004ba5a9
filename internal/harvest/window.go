package harvest

import (
	"fmt"
	"time"

	"github.com/osse101/DarkFrame_Go/internal/clock"
	"github.com/osse101/DarkFrame_Go/internal/domain"
)

// Schedule maps map columns to half-day reset windows.
//
// Columns below splitX belong to the AM ledger and the rest to the PM ledger, so
// the two halves of the map never share a bucket. Every window is 12 hours long
// and starts at 00:00 or 12:00 UTC.
type Schedule struct {
	splitX int
	clock  clock.Clock
}

// NewSchedule creates a schedule. A nil clock falls back to the system clock.
func NewSchedule(splitX int, c clock.Clock) *Schedule {
	if c == nil {
		c = clock.Real{}
	}
	return &Schedule{splitX: splitX, clock: c}
}

// TagFor returns the ledger tag for column x
func (s *Schedule) TagFor(x int) domain.BucketTag {
	if x < s.splitX {
		return domain.BucketMorning
	}
	return domain.BucketEvening
}

// CurrentBucket returns the window that column x is harvested in right now
func (s *Schedule) CurrentBucket(x int) domain.ResetWindow {
	return s.bucketAt(x, s.clock.Now())
}

// TimeUntilNextBucket returns how long until the current window for x closes.
// The result is always in (0, BucketLength].
func (s *Schedule) TimeUntilNextBucket(x int) time.Duration {
	now := s.clock.Now().UTC()
	return s.bucketAt(x, now).ClosesAt.Sub(now)
}

func (s *Schedule) bucketAt(x int, now time.Time) domain.ResetWindow {
	opens := windowStart(now)
	tag := s.TagFor(x)
	return domain.ResetWindow{
		ID:       fmt.Sprintf("%s-%s", opens.Format(bucketIDLayout), tag),
		Tag:      tag,
		OpensAt:  opens,
		ClosesAt: opens.Add(domain.BucketLength),
	}
}

// windowStart truncates t to the most recent 00:00 or 12:00 UTC
func windowStart(t time.Time) time.Time {
	t = t.UTC()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	if t.Hour() >= 12 {
		return midnight.Add(domain.BucketLength)
	}
	return midnight
}
