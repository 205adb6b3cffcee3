package ledger

import "fmt"

// TransactionType represents what moved a balance
type TransactionType string

const (
	TransactionTypeBuyBuilding    TransactionType = "BUY_BUILDING"
	TransactionTypeBuyUpgrade     TransactionType = "BUY_UPGRADE"
	TransactionTypeBuyHardware    TransactionType = "BUY_HARDWARE"
	TransactionTypeUnlockSkill    TransactionType = "UNLOCK_SKILL"
	TransactionTypeUpgradeOffice  TransactionType = "UPGRADE_OFFICE"
	TransactionTypeContractReward TransactionType = "CONTRACT_REWARD"
	TransactionTypeOfflineIncome  TransactionType = "OFFLINE_INCOME"
	TransactionTypeBugBounty      TransactionType = "BUG_BOUNTY"
	TransactionTypeShortcut       TransactionType = "SHORTCUT"
	TransactionTypePayDebt        TransactionType = "PAY_DEBT"
	TransactionTypeBuyStock       TransactionType = "BUY_STOCK"
	TransactionTypeSellStock      TransactionType = "SELL_STOCK"
	TransactionTypePrestige       TransactionType = "PRESTIGE"
	TransactionTypeHack           TransactionType = "HACK"
)

// AllTransactionTypes returns all valid transaction types
func AllTransactionTypes() []TransactionType {
	return []TransactionType{
		TransactionTypeBuyBuilding,
		TransactionTypeBuyUpgrade,
		TransactionTypeBuyHardware,
		TransactionTypeUnlockSkill,
		TransactionTypeUpgradeOffice,
		TransactionTypeContractReward,
		TransactionTypeOfflineIncome,
		TransactionTypeBugBounty,
		TransactionTypeShortcut,
		TransactionTypePayDebt,
		TransactionTypeBuyStock,
		TransactionTypeSellStock,
		TransactionTypePrestige,
		TransactionTypeHack,
	}
}

func (t TransactionType) String() string {
	return string(t)
}

// IsValid checks if the transaction type is valid
func (t TransactionType) IsValid() bool {
	_, ok := TypeToCategoryMap[t]
	return ok
}

// ToCategory maps the transaction type to its category
func (t TransactionType) ToCategory() (Category, error) {
	category, exists := TypeToCategoryMap[t]
	if !exists {
		return "", fmt.Errorf("unknown transaction type: %s", t)
	}
	return category, nil
}

// ParseTransactionType parses a string into a TransactionType
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid transaction type: %s", s)
	}
	return t, nil
}
