package catalog

// UnlimitedCapacity marks the top office tier
const UnlimitedCapacity = -1

// OfficeTier is one step of the office ladder. RelocationCost is the price of
// moving out of this tier into the next one.
type OfficeTier struct {
	Level          int
	Name           string
	Capacity       int
	RelocationCost float64
}

// Admits reports whether one more head fits next to the current personnel
func (o OfficeTier) Admits(personnel int) bool {
	return o.Capacity == UnlimitedCapacity || personnel < o.Capacity
}

var defaultOffices = []OfficeTier{
	{Level: 0, Name: "Garage Startup", Capacity: 20, RelocationCost: 50000},
	{Level: 1, Name: "Developer Hub", Capacity: 50, RelocationCost: 500000},
	{Level: 2, Name: "Growth Stage", Capacity: 150, RelocationCost: 5000000},
	{Level: 3, Name: "Tech Tower", Capacity: UnlimitedCapacity},
}
