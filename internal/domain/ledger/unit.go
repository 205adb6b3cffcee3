package ledger

import "fmt"

// Unit is the balance a transaction moves
type Unit string

const (
	// UnitLOC is the spendable lines-of-code balance
	UnitLOC Unit = "LOC"

	// UnitShares is the prestige currency balance
	UnitShares Unit = "SHARES"
)

func (u Unit) String() string {
	return string(u)
}

// ParseUnit parses a string into a Unit
func ParseUnit(s string) (Unit, error) {
	switch u := Unit(s); u {
	case UnitLOC, UnitShares:
		return u, nil
	default:
		return "", fmt.Errorf("invalid unit: %s", s)
	}
}
