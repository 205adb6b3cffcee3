package catalog

import "math"

// CostGrowth is the per-unit price escalation applied to every building
const CostGrowth = 1.15

// BuildingID identifies a building type
type BuildingID string

const (
	BuildingIntern    BuildingID = "intern"
	BuildingJuniorDev BuildingID = "junior_dev"
	BuildingSeniorDev BuildingID = "senior_dev"
	BuildingAICopilot BuildingID = "ai_copilot"
)

// Building is a purchasable passive producer. Every unit counts as one head of personnel.
type Building struct {
	ID          BuildingID
	Name        string
	Description string
	BaseCost    float64
	BaseRate    float64 // currency per second per unit
}

// CostAt returns the price of the next unit when owned units are already held
func (b Building) CostAt(owned int) float64 {
	if owned < 0 {
		owned = 0
	}
	return math.Floor(b.BaseCost * math.Pow(CostGrowth, float64(owned)))
}

var defaultBuildings = []Building{
	{ID: BuildingIntern, Name: "Intern", Description: "A cheap hire. Writes spaghetti code, but hey, it runs.", BaseCost: 15, BaseRate: 0.5},
	{ID: BuildingJuniorDev, Name: "Junior Developer", Description: "Fresh out of bootcamp. Needs supervision.", BaseCost: 100, BaseRate: 3},
	{ID: BuildingSeniorDev, Name: "Senior Developer", Description: "Writes clean code and refuses to attend meetings.", BaseCost: 1100, BaseRate: 12},
	{ID: BuildingAICopilot, Name: "AI Copilot", Description: "Writes code faster than you can think.", BaseCost: 12000, BaseRate: 50},
}
