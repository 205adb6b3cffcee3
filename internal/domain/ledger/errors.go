package ledger

import (
	"fmt"

	"github.com/andrescamacho/devempire-go/internal/domain/shared"
)

// ErrInvalidTransaction rejects a journal entry with a bad field
type ErrInvalidTransaction struct {
	Field  string
	Reason string
}

func (e *ErrInvalidTransaction) Error() string {
	return fmt.Sprintf("invalid ledger entry %s: %s", e.Field, e.Reason)
}

// ErrBalanceInvariantViolation means an entry's before and after balances do
// not differ by its amount, so the journal would stop reconciling with the save.
type ErrBalanceInvariantViolation struct {
	BalanceBefore float64
	Amount        float64
	BalanceAfter  float64
	Expected      float64
}

func (e *ErrBalanceInvariantViolation) Error() string {
	return fmt.Sprintf("ledger entry does not balance: %g %+g gives %g, entry says %g",
		e.BalanceBefore, e.Amount, e.Expected, e.BalanceAfter)
}

// ErrTransactionNotFound is returned for an unknown entry id
type ErrTransactionNotFound struct {
	ID string
}

func (e *ErrTransactionNotFound) Error() string {
	return fmt.Sprintf("ledger entry %s not found", e.ID)
}

// Is lets callers match any missing entry with shared.ErrNotFound
func (e *ErrTransactionNotFound) Is(target error) bool {
	return target == shared.ErrNotFound
}
