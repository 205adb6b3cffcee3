package catalog

// AchievementID identifies an achievement
type AchievementID string

// Metric names the game quantity an achievement threshold is compared against
type Metric string

const (
	MetricCurrency           Metric = "CURRENCY"
	MetricProductionRate     Metric = "PRODUCTION_RATE"
	MetricBuildingCount      Metric = "BUILDING_COUNT"
	MetricContractsCompleted Metric = "CONTRACTS_COMPLETED"
	MetricManualActions      Metric = "MANUAL_ACTIONS"
	MetricPrestigeCurrency   Metric = "PRESTIGE_CURRENCY"
)

// Achievement unlocks once Metric (for Building when MetricBuildingCount) reaches Threshold
type Achievement struct {
	ID          AchievementID
	Name        string
	Description string
	Metric      Metric
	Building    BuildingID
	Threshold   float64
}

var defaultAchievements = []Achievement{
	{ID: "first_line", Name: "Hello World", Description: "Write your first 10 lines of code.", Metric: MetricCurrency, Threshold: 10},
	{ID: "script_kiddie", Name: "Script Kiddie", Description: "Accumulate 1,000 LOC.", Metric: MetricCurrency, Threshold: 1000},
	{ID: "junior_dev_hire", Name: "Delegation", Description: "Hire your first Junior Developer.", Metric: MetricBuildingCount, Building: BuildingJuniorDev, Threshold: 1},
	{ID: "startup_founder", Name: "Startup Founder", Description: "Reach 10,000 LOC. Time to get a hoodie.", Metric: MetricCurrency, Threshold: 10000},
	{ID: "automation_expert", Name: "Automation Expert", Description: "Reach 100 LOC/sec.", Metric: MetricProductionRate, Threshold: 100},
	{ID: "tech_mogul", Name: "Tech Mogul", Description: "Reach 1,000,000 LOC.", Metric: MetricCurrency, Threshold: 1000000},
	{ID: "contractor", Name: "Contractor", Description: "Deliver your first contract.", Metric: MetricContractsCompleted, Threshold: 1},
	{ID: "keyboard_warrior", Name: "Keyboard Warrior", Description: "Type 1,000 times.", Metric: MetricManualActions, Threshold: 1000},
	{ID: "shareholder", Name: "Shareholder", Description: "Own a prestige share.", Metric: MetricPrestigeCurrency, Threshold: 1},
}
