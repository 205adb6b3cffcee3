package game

import (
	"math"
	"time"
)

// OfflineThreshold is the minimum absence that earns offline production
const OfflineThreshold = 10 * time.Second

// ReconcileOffline credits production for the time since the state was last
// touched and returns the amount credited. Short gaps are ignored.
func (e *Engine) ReconcileOffline(st *State, now time.Time) float64 {
	away := now.Sub(st.LastUpdate)
	if st.LastUpdate.IsZero() || away <= OfflineThreshold || st.ProductionRate <= 0 {
		return 0
	}

	earned := math.Floor(st.ProductionRate * away.Seconds())
	e.credit(st, earned)
	st.LastUpdate = now
	return earned
}
