package game

import (
	"math"
	"time"
)

const (
	BugMinInterval = 20 * time.Second
	BugMaxInterval = 40 * time.Second
	BugLifetime    = 10 * time.Second

	bugRewardFloor   = 100.0
	bugRewardSeconds = 30.0
)

// BugReward is the bounty for squashing a bug at the given production rate
func BugReward(productionRate float64) float64 {
	return math.Max(bugRewardFloor, math.Floor(productionRate*bugRewardSeconds))
}

// TickBugs spawns a bug once the schedule comes due and expires one that has
// been left on screen too long. A state with no schedule gets one.
func (e *Engine) TickBugs(st *State, now time.Time) (spawned, expired bool) {
	if st.BugPending() {
		if now.Sub(st.BugSpawnedAt) < BugLifetime {
			return false, false
		}
		st.BugSpawnedAt = time.Time{}
		e.scheduleBug(st, now)
		return false, true
	}

	if st.NextBugAt.IsZero() {
		e.scheduleBug(st, now)
		return false, false
	}
	if now.Before(st.NextBugAt) {
		return false, false
	}
	st.BugSpawnedAt = now
	st.NextBugAt = time.Time{}
	return true, false
}

// SquashBug pays the bounty for the bug on screen. The bounty is income but
// not a manual action, so it neither strains nor counts as typing.
func (e *Engine) SquashBug(st *State, now time.Time) bool {
	if !st.BugPending() {
		return false
	}

	e.credit(st, BugReward(st.ProductionRate))
	st.BugsSquashed++
	st.BugSpawnedAt = time.Time{}
	e.scheduleBug(st, now)
	return true
}

func (e *Engine) scheduleBug(st *State, now time.Time) {
	spread := float64(BugMaxInterval - BugMinInterval)
	st.NextBugAt = now.Add(BugMinInterval + time.Duration(e.rng.Float64()*spread))
}
