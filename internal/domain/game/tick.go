package game

import "github.com/andrescamacho/devempire-go/internal/domain/market"

// ApplyElapsed credits passive production for dt seconds and rolls the
// illegal AI bust check. The bust chance is per call, not per second, so the
// tick cadence sets its effective rate. Reports whether the player got busted.
func (e *Engine) ApplyElapsed(st *State, dt float64) bool {
	if dt > 0 && st.ProductionRate > 0 {
		e.credit(st, st.ProductionRate*dt)
	}

	if !st.IllegalAIActive || e.rng.Float64() >= e.hackChance {
		return false
	}
	st.Currency = 0
	st.IllegalAIActive = false
	e.recompute(st)
	return true
}

// UpdateMarket moves every listed stock one random-walk step, in catalog order
func (e *Engine) UpdateMarket(st *State) {
	for _, s := range e.catalog.Stocks() {
		st.StockPrices[s.ID] = market.NextPrice(st.StockPrices[s.ID], s, e.rng.Float64())
	}
}
