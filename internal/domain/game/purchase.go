package game

import "github.com/andrescamacho/devempire-go/internal/domain/catalog"

// BuildingCost is the price of the next unit of a building
func (e *Engine) BuildingCost(st *State, id catalog.BuildingID) (float64, error) {
	b, err := e.catalog.Building(id)
	if err != nil {
		return 0, err
	}
	return b.CostAt(st.Buildings[id]), nil
}

// BuyBuilding hires one more unit if it is affordable and the office has room
func (e *Engine) BuyBuilding(st *State, id catalog.BuildingID) (bool, error) {
	b, err := e.catalog.Building(id)
	if err != nil {
		return false, err
	}

	cost := b.CostAt(st.Buildings[id])
	if st.Currency < cost || !e.catalog.Office(st.OfficeLevel).Admits(st.Personnel()) {
		return false, nil
	}

	st.Currency -= cost
	st.Buildings[id]++
	e.recompute(st)
	return true, nil
}

// BuyUpgrade purchases a one-time upgrade
func (e *Engine) BuyUpgrade(st *State, id catalog.UpgradeID) (bool, error) {
	u, err := e.catalog.Upgrade(id)
	if err != nil {
		return false, err
	}
	if st.Upgrades.Has(id) || st.Currency < u.Cost {
		return false, nil
	}

	st.Currency -= u.Cost
	st.Upgrades.Add(id)
	e.recompute(st)
	return true, nil
}

// BuyHardware purchases a one-time piece of hardware
func (e *Engine) BuyHardware(st *State, id catalog.HardwareID) (bool, error) {
	h, err := e.catalog.Hardware(id)
	if err != nil {
		return false, err
	}
	if st.Hardware.Has(id) || st.Currency < h.Cost {
		return false, nil
	}

	st.Currency -= h.Cost
	st.Hardware.Add(id)
	e.recompute(st)
	return true, nil
}
