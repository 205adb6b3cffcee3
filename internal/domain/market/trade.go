package market

import "math"

// TradeValue is the prestige-currency value of quantity units at price
func TradeValue(price float64, quantity int) (float64, error) {
	if quantity < 1 {
		return 0, ErrInvalidQuantity
	}
	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return 0, ErrInvalidPrice
	}
	return price * float64(quantity), nil
}
