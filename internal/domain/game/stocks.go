package game

import (
	"github.com/andrescamacho/devempire-go/internal/domain/catalog"
	"github.com/andrescamacho/devempire-go/internal/domain/market"
)

// BuyStock spends prestige currency on quantity units at the current price.
// Prestige currency also drives the production multiplier, so derived
// quantities are recomputed after every trade.
func (e *Engine) BuyStock(st *State, id catalog.StockID, quantity int) (bool, error) {
	if _, err := e.catalog.Stock(id); err != nil {
		return false, err
	}
	cost, err := market.TradeValue(st.StockPrices[id], quantity)
	if err != nil || st.PrestigeCurrency < cost {
		return false, nil
	}

	st.PrestigeCurrency -= cost
	st.OwnedStocks[id] += quantity
	e.recompute(st)
	return true, nil
}

// SellStock sells quantity owned units at the current price for prestige currency
func (e *Engine) SellStock(st *State, id catalog.StockID, quantity int) (bool, error) {
	if _, err := e.catalog.Stock(id); err != nil {
		return false, err
	}
	revenue, err := market.TradeValue(st.StockPrices[id], quantity)
	if err != nil || st.OwnedStocks[id] < quantity {
		return false, nil
	}

	st.PrestigeCurrency += revenue
	st.OwnedStocks[id] -= quantity
	if st.OwnedStocks[id] == 0 {
		delete(st.OwnedStocks, id)
	}
	e.recompute(st)
	return true, nil
}
