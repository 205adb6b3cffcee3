package game

import (
	"math"

	"github.com/andrescamacho/devempire-go/internal/domain/burnout"
	"github.com/andrescamacho/devempire-go/internal/domain/catalog"
)

const (
	specializationProductionBonus = 1.5
	specializationClickBonus      = 2.0
	devOpsStrainFactor            = 0.5
	prestigeBonusPerShare         = 0.1
	illegalAIBonus                = 2.0
	debtReferenceSeconds          = 600.0
	debtPenaltySlope              = 0.5
	debtPenaltyFloor              = 0.25
)

// PrestigeMultiplier is the permanent bonus granted by prestige currency
func PrestigeMultiplier(shares float64) float64 {
	return 1 + shares*prestigeBonusPerShare
}

// DebtPenalty throttles production by technical debt relative to ten minutes of
// the previous rate. The previous rate is used as the reference instead of
// solving for a fixed point.
func DebtPenalty(debt, previousRate float64) float64 {
	if debt <= 0 {
		return 1
	}
	ratio := 0.0
	if previousRate > 0 {
		ratio = debt / (previousRate * debtReferenceSeconds)
	}
	return math.Max(debtPenaltyFloor, 1-debtPenaltySlope*ratio)
}

// ProductionRate computes currency per second from owned producers and every
// multiplier. It reads st.ProductionRate only as the debt penalty reference.
func ProductionRate(st *State, cat *catalog.Catalog) float64 {
	perBuilding := make(map[catalog.BuildingID]float64)
	global := 1.0
	for _, id := range st.Upgrades.Sorted() {
		u, err := cat.Upgrade(id)
		if err != nil {
			continue
		}
		switch u.Kind {
		case catalog.UpgradeKindBuilding:
			if m, ok := perBuilding[u.Target]; ok {
				perBuilding[u.Target] = m * u.Multiplier
			} else {
				perBuilding[u.Target] = u.Multiplier
			}
		case catalog.UpgradeKindGlobal:
			global *= u.Multiplier
		}
	}

	raw := 0.0
	for _, b := range cat.Buildings() {
		count := st.Buildings[b.ID]
		if count <= 0 {
			continue
		}
		m, ok := perBuilding[b.ID]
		if !ok {
			m = 1
		}
		raw += float64(count) * b.BaseRate * m
	}

	for _, id := range st.Hardware.Sorted() {
		h, err := cat.Hardware(id)
		if err == nil && h.Class == catalog.HardwareMonitor {
			global *= h.Multiplier
		}
	}
	for _, id := range st.Skills.Sorted() {
		s, err := cat.Skill(id)
		if err == nil && s.Effect == catalog.SkillEffectPassive {
			global *= s.Multiplier
		}
	}

	specialization := 1.0
	if st.Specialization.BoostsProduction() {
		specialization = specializationProductionBonus
	}
	illegal := 1.0
	if st.IllegalAIActive {
		illegal = illegalAIBonus
	}

	return raw * global * specialization * PrestigeMultiplier(st.PrestigeCurrency) * illegal *
		DebtPenalty(st.TechnicalDebt, st.ProductionRate)
}

// ClickPower is the product of click upgrades, keyboard hardware and prestige
func ClickPower(st *State, cat *catalog.Catalog) float64 {
	power := 1.0
	for _, id := range st.Upgrades.Sorted() {
		u, err := cat.Upgrade(id)
		if err == nil && u.Kind == catalog.UpgradeKindClick {
			power *= u.Multiplier
		}
	}
	for _, id := range st.Hardware.Sorted() {
		h, err := cat.Hardware(id)
		if err == nil && h.Class == catalog.HardwareKeyboard {
			power *= h.Multiplier
		}
	}
	return power * PrestigeMultiplier(st.PrestigeCurrency)
}

// ManualYield is the currency produced by one manual input of base size
func ManualYield(st *State, cat *catalog.Catalog, base float64) float64 {
	amount := base
	if st.Specialization.BoostsManualInput() {
		amount *= specializationClickBonus
	}
	for _, id := range st.Skills.Sorted() {
		s, err := cat.Skill(id)
		if err == nil && s.Effect == catalog.SkillEffectClick {
			amount *= s.Multiplier
		}
	}
	return amount * st.ClickPower
}

// BurnoutStrain is the stress one manual input adds
func BurnoutStrain(st *State, cat *catalog.Catalog) float64 {
	strain := burnout.BaseStrain
	if st.Specialization.EasesBurnout() {
		strain *= devOpsStrainFactor
	}
	for _, id := range st.Hardware.Sorted() {
		h, err := cat.Hardware(id)
		if err == nil && h.Class == catalog.HardwareChair {
			strain *= h.Multiplier
		}
	}
	return strain
}
