package harvest

import (
	"math"
	"math/rand/v2"
)

// BaseYield returns a uniformly random harvest amount in [MinBaseYield, MaxBaseYield]
func BaseYield() int {
	return BaseYieldFrom(rand.IntN)
}

// BaseYieldFrom is BaseYield with an explicit source; intN(n) must return [0, n)
func BaseYieldFrom(intN func(n int) int) int {
	return MinBaseYield + intN(MaxBaseYield-MinBaseYield+1)
}

// ApplyBonuses returns floor(base * (1 + (permanentPct+temporaryPct)/100)).
// Negative bonuses may reduce the result below base; it never goes under zero.
func ApplyBonuses(base int, permanentPct, temporaryPct float64) int {
	// multiply before dividing so whole-percent bonuses stay exact in float64
	total := float64(base) * (100 + permanentPct + temporaryPct) / 100
	if total <= 0 {
		return 0
	}
	return int(math.Floor(total))
}

// DiminishingCrowdBonus is DiminishingCrowdBonusWithCap with DefaultCrowdCap
func DiminishingCrowdBonus(actorCount int, perActorBonus float64) float64 {
	return DiminishingCrowdBonusWithCap(actorCount, perActorBonus, DefaultCrowdCap)
}

// DiminishingCrowdBonusWithCap returns perActorBonus * n * (1 - n/cap).
// The bonus rises with the first few harvesters, peaks at cap/2 and is zero at
// n == 0 and for n >= cap.
func DiminishingCrowdBonusWithCap(actorCount int, perActorBonus float64, crowdCap int) float64 {
	if crowdCap <= 0 || actorCount <= 0 || actorCount >= crowdCap {
		return 0
	}
	n := float64(actorCount)
	return perActorBonus * n * (1 - n/float64(crowdCap))
}
