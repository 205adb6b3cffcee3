package game

import "github.com/andrescamacho/devempire-go/internal/domain/catalog"

// EvaluateAchievements unlocks every achievement whose threshold is now met
// and returns the ids unlocked by this call, in catalog order.
func (e *Engine) EvaluateAchievements(st *State) []catalog.AchievementID {
	var unlocked []catalog.AchievementID
	for _, a := range e.catalog.Achievements() {
		if st.Achievements.Has(a.ID) || metricValue(st, a) < a.Threshold {
			continue
		}
		st.Achievements.Add(a.ID)
		unlocked = append(unlocked, a.ID)
	}
	return unlocked
}

func metricValue(st *State, a catalog.Achievement) float64 {
	switch a.Metric {
	case catalog.MetricCurrency:
		return st.Currency
	case catalog.MetricProductionRate:
		return st.ProductionRate
	case catalog.MetricBuildingCount:
		return float64(st.Buildings[a.Building])
	case catalog.MetricContractsCompleted:
		return float64(st.ContractsCompleted())
	case catalog.MetricManualActions:
		return float64(st.ManualActions)
	case catalog.MetricPrestigeCurrency:
		return st.PrestigeCurrency
	default:
		return 0
	}
}
