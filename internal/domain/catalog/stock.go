package catalog

// StockID identifies a tradable stock
type StockID string

// Stock is a random-walk priced asset traded with prestige currency
type Stock struct {
	ID         StockID
	Name       string
	Symbol     string
	BasePrice  float64
	Volatility float64 // maximum fractional move per market update, in [0,1]
}

// MaxPrice is the ceiling of the random walk
func (s Stock) MaxPrice() float64 {
	return s.BasePrice * 10
}

var defaultStocks = []Stock{
	{ID: "microhard", Name: "Microhard", Symbol: "MHD", BasePrice: 100, Volatility: 0.1},
	{ID: "jungle", Name: "Jungle", Symbol: "JGL", BasePrice: 250, Volatility: 0.2},
	{ID: "pear", Name: "Pear", Symbol: "PAR", BasePrice: 500, Volatility: 0.3},
	{ID: "faceblock", Name: "Faceblock", Symbol: "FBK", BasePrice: 50, Volatility: 0.6},
	{ID: "cryptocoin", Name: "DogeDev", Symbol: "DOG", BasePrice: 10, Volatility: 0.9},
}
