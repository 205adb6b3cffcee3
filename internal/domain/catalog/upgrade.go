package catalog

// UpgradeID identifies a one-time upgrade
type UpgradeID string

// UpgradeKind selects what an upgrade multiplies
type UpgradeKind string

const (
	UpgradeKindClick    UpgradeKind = "CLICK"
	UpgradeKindBuilding UpgradeKind = "BUILDING"
	UpgradeKindGlobal   UpgradeKind = "GLOBAL"
)

// Upgrade is bought once and multiplies either manual input, one building type, or all
// passive production.
type Upgrade struct {
	ID         UpgradeID
	Name       string
	Kind       UpgradeKind
	Target     BuildingID // only meaningful for UpgradeKindBuilding
	Cost       float64
	Multiplier float64
}

var defaultUpgrades = []Upgrade{
	{ID: "mechanical_keyboard", Name: "Mechanical Keyboard", Kind: UpgradeKindClick, Cost: 500, Multiplier: 2},
	{ID: "coffee_machine", Name: "Espresso Machine", Kind: UpgradeKindBuilding, Target: BuildingIntern, Cost: 2000, Multiplier: 2},
	{ID: "dual_monitors", Name: "Dual Monitors", Kind: UpgradeKindBuilding, Target: BuildingJuniorDev, Cost: 5000, Multiplier: 1.5},
	{ID: "git_gud", Name: "Git Gud", Kind: UpgradeKindGlobal, Cost: 50000, Multiplier: 1.1},
	{ID: "tech_react", Name: "React.js Mastery", Kind: UpgradeKindBuilding, Target: BuildingJuniorDev, Cost: 100000, Multiplier: 2},
	{ID: "tech_python", Name: "Python Scripts", Kind: UpgradeKindBuilding, Target: BuildingSeniorDev, Cost: 250000, Multiplier: 1.5},
	// targets a building type that is not sold yet; buying it has no production effect
	{ID: "tech_docker", Name: "Docker Containers", Kind: UpgradeKindBuilding, Target: "server", Cost: 1000000, Multiplier: 1.2},
}
