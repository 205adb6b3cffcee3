package ledger

import (
	"fmt"

	"github.com/google/uuid"
)

// TransactionID names one journal entry. Entries are written by a single
// session, so a random UUID never collides across save slots sharing a table.
type TransactionID struct {
	value string
}

func NewTransactionID() TransactionID {
	return TransactionID{value: uuid.NewString()}
}

// ParseTransactionID accepts an id read back from storage or typed on the CLI
func ParseTransactionID(id string) (TransactionID, error) {
	u, err := uuid.Parse(id)
	if err != nil {
		return TransactionID{}, fmt.Errorf("ledger entry id %q: %w", id, err)
	}
	return TransactionID{value: u.String()}, nil
}

func (t TransactionID) String() string { return t.value }

func (t TransactionID) IsZero() bool { return t.value == "" }
