package game

import "math"

const (
	shortcutSeconds  = 60.0
	shortcutDebtRate = 1.5
)

// TakeShortcut grants a minute of production now at the price of 1.5x that in
// debt. The advance is not earned income and does not count toward lifetime
// currency.
func (e *Engine) TakeShortcut(st *State) bool {
	gain := st.ProductionRate * shortcutSeconds
	if gain <= 0 {
		return false
	}

	st.Currency += gain
	st.TechnicalDebt += gain * shortcutDebtRate
	e.recompute(st)
	return true
}

// PayDebt pays down as much of the requested amount as debt and balance allow
func (e *Engine) PayDebt(st *State, requested float64) bool {
	amount := math.Min(requested, math.Min(st.TechnicalDebt, st.Currency))
	if amount <= 0 || math.IsNaN(amount) {
		return false
	}

	st.Currency -= amount
	st.TechnicalDebt -= amount
	e.recompute(st)
	return true
}
