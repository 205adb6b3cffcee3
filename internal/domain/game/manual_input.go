package game

import "time"

// ManualInput credits one typed burst of base size and strains the developer.
// Rejected outright while burnout is overloaded. An expired cooldown is
// settled first, so the deadline holds even when no tick driver runs.
func (e *Engine) ManualInput(st *State, base float64, now time.Time) bool {
	st.Burnout.Recover(now)
	if st.Burnout.Overloaded() || base <= 0 {
		return false
	}

	e.credit(st, ManualYield(st, e.catalog, base))
	st.ManualActions++
	st.Burnout.Strain(BurnoutStrain(st, e.catalog), now)
	return true
}

// RelaxBurnout applies one passive recovery step
func (e *Engine) RelaxBurnout(st *State, step float64) bool {
	return st.Burnout.Relax(step)
}

// RecoverBurnout unlocks an overloaded gauge whose cooldown has elapsed
func (e *Engine) RecoverBurnout(st *State, now time.Time) bool {
	return st.Burnout.Recover(now)
}
