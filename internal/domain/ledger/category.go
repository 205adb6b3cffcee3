package ledger

import "fmt"

// Category groups transaction types for cash flow reporting
type Category string

const (
	// CategoryStaffing covers hires, upgrades, hardware, skills and relocations
	CategoryStaffing Category = "STAFFING"

	// CategoryContractRevenue covers contract payouts
	CategoryContractRevenue Category = "CONTRACT_REVENUE"

	// CategoryWindfall covers income outside regular production: offline catch-up and bug bounties
	CategoryWindfall Category = "WINDFALL"

	// CategoryDebt covers shortcut advances and debt repayments
	CategoryDebt Category = "DEBT"

	// CategoryMarket covers stock trades
	CategoryMarket Category = "MARKET"

	// CategoryPrestige covers prestige payouts
	CategoryPrestige Category = "PRESTIGE"

	// CategoryLosses covers balance wiped out by a hack
	CategoryLosses Category = "LOSSES"
)

// AllCategories returns all valid categories
func AllCategories() []Category {
	return []Category{
		CategoryStaffing,
		CategoryContractRevenue,
		CategoryWindfall,
		CategoryDebt,
		CategoryMarket,
		CategoryPrestige,
		CategoryLosses,
	}
}

// TypeToCategoryMap maps transaction types to their categories
var TypeToCategoryMap = map[TransactionType]Category{
	TransactionTypeBuyBuilding:    CategoryStaffing,
	TransactionTypeBuyUpgrade:     CategoryStaffing,
	TransactionTypeBuyHardware:    CategoryStaffing,
	TransactionTypeUnlockSkill:    CategoryStaffing,
	TransactionTypeUpgradeOffice:  CategoryStaffing,
	TransactionTypeContractReward: CategoryContractRevenue,
	TransactionTypeOfflineIncome:  CategoryWindfall,
	TransactionTypeBugBounty:      CategoryWindfall,
	TransactionTypeShortcut:       CategoryDebt,
	TransactionTypePayDebt:        CategoryDebt,
	TransactionTypeBuyStock:       CategoryMarket,
	TransactionTypeSellStock:      CategoryMarket,
	TransactionTypePrestige:       CategoryPrestige,
	TransactionTypeHack:           CategoryLosses,
}

func (c Category) String() string {
	return string(c)
}

// IsValid checks if the category is valid
func (c Category) IsValid() bool {
	for _, known := range AllCategories() {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory parses a string into a Category
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}
