package game

import (
	"math"
	"time"

	"github.com/andrescamacho/devempire-go/internal/domain/burnout"
	"github.com/andrescamacho/devempire-go/internal/domain/catalog"
	"github.com/andrescamacho/devempire-go/internal/domain/contract"
	"github.com/andrescamacho/devempire-go/internal/domain/market"
)

const prestigeCurrencyUnit = 1_000_000.0

// PotentialShares is the total prestige currency a lifetime of income is worth
func PotentialShares(lifetime float64) float64 {
	if lifetime <= 0 {
		return 0
	}
	return math.Floor(math.Sqrt(lifetime / prestigeCurrencyUnit))
}

// PrestigeGain is how many shares a prestige right now would add
func PrestigeGain(st *State) float64 {
	return math.Max(0, PotentialShares(st.LifetimeCurrency)-st.PrestigeCurrency)
}

// Prestige trades the current run for prestige currency. Lifetime currency,
// achievements, contract history and career choices survive; everything
// bought during the run is cleared.
func (e *Engine) Prestige(st *State) bool {
	gain := PrestigeGain(st)
	if gain <= 0 {
		return false
	}

	st.PrestigeCurrency += gain
	st.Currency = 0
	st.ProductionRate = 0
	st.TechnicalDebt = 0
	st.Buildings = make(map[catalog.BuildingID]int)
	st.Upgrades = NewIDSet[catalog.UpgradeID]()
	st.Hardware = NewIDSet[catalog.HardwareID]()
	st.Skills = NewIDSet[catalog.SkillID]()
	st.Burnout = burnout.NewGauge()
	st.ActiveContractID = ""
	st.ContractProgress = 0
	st.StockPrices = market.BasePrices(e.catalog.Stocks())
	st.OwnedStocks = make(map[catalog.StockID]int)
	st.AvailableContracts = e.contracts.Pool(contract.PoolSize, 0, 0)
	e.recompute(st)
	return true
}

// Reset wipes the save back to a fresh game. The intro flag is kept.
func (e *Engine) Reset(st *State, now time.Time) {
	seenIntro := st.HasSeenIntro
	*st = *e.NewState(now)
	st.HasSeenIntro = seenIntro
}
