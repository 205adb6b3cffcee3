package market

import (
	"math"

	"github.com/andrescamacho/devempire-go/internal/domain/catalog"
)

const (
	// Drift is the constant bullish bias added on every update
	Drift = 0.001

	// MinPrice is the floor of the random walk
	MinPrice = 1.0
)

// NextPrice advances one stock by a single random-walk step.
// roll is a uniform draw in [0,1) mapped onto [-volatility, +volatility).
func NextPrice(current float64, stock catalog.Stock, roll float64) float64 {
	if current <= 0 || math.IsNaN(current) || math.IsInf(current, 0) {
		current = stock.BasePrice
	}
	change := (roll*2 - 1) * stock.Volatility
	return Clamp(current*(1+change+Drift), stock)
}

// Clamp bounds a price to [MinPrice, 10 × base]
func Clamp(price float64, stock catalog.Stock) float64 {
	return math.Max(MinPrice, math.Min(stock.MaxPrice(), price))
}

// BasePrices returns every stock at its listing price
func BasePrices(stocks []catalog.Stock) map[catalog.StockID]float64 {
	prices := make(map[catalog.StockID]float64, len(stocks))
	for _, s := range stocks {
		prices[s.ID] = s.BasePrice
	}
	return prices
}
