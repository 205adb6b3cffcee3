package ledger

import (
	"fmt"
	"math"
	"time"
)

// balanceTolerance absorbs float rounding in the balance invariant
const balanceTolerance = 1e-6

// Transaction is one immutable journal entry recording a balance change.
//
// Invariants:
//   - amount is non-zero and finite
//   - balanceAfter == balanceBefore + amount
//   - the category is the one mapped from the type
type Transaction struct {
	id                TransactionID
	timestamp         time.Time
	transactionType   TransactionType
	category          Category
	unit              Unit
	amount            float64 // positive for income, negative for spending
	balanceBefore     float64
	balanceAfter      float64
	description       string
	metadata          map[string]interface{}
	relatedEntityType string // e.g. "building", "contract", "stock"
	relatedEntityID   string
}

// NewTransaction creates a new transaction with validation
func NewTransaction(
	timestamp time.Time,
	transactionType TransactionType,
	unit Unit,
	amount float64,
	balanceBefore float64,
	balanceAfter float64,
	description string,
	metadata map[string]interface{},
	relatedEntityType string,
	relatedEntityID string,
) (*Transaction, error) {
	category, err := transactionType.ToCategory()
	if err != nil {
		return nil, &ErrInvalidTransaction{
			Field:  "transaction_type",
			Reason: err.Error(),
		}
	}
	if _, err := ParseUnit(string(unit)); err != nil {
		return nil, &ErrInvalidTransaction{
			Field:  "unit",
			Reason: err.Error(),
		}
	}

	t := ReconstructTransaction(
		NewTransactionID(),
		timestamp,
		transactionType,
		category,
		unit,
		amount,
		balanceBefore,
		balanceAfter,
		description,
		metadata,
		relatedEntityType,
		relatedEntityID,
	)
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// ReconstructTransaction rebuilds a transaction from persistence without validation
func ReconstructTransaction(
	id TransactionID,
	timestamp time.Time,
	transactionType TransactionType,
	category Category,
	unit Unit,
	amount float64,
	balanceBefore float64,
	balanceAfter float64,
	description string,
	metadata map[string]interface{},
	relatedEntityType string,
	relatedEntityID string,
) *Transaction {
	return &Transaction{
		id:                id,
		timestamp:         timestamp,
		transactionType:   transactionType,
		category:          category,
		unit:              unit,
		amount:            amount,
		balanceBefore:     balanceBefore,
		balanceAfter:      balanceAfter,
		description:       description,
		metadata:          metadata,
		relatedEntityType: relatedEntityType,
		relatedEntityID:   relatedEntityID,
	}
}

// Validate checks that the transaction satisfies all invariants
func (t *Transaction) Validate() error {
	if t.amount == 0 || math.IsNaN(t.amount) || math.IsInf(t.amount, 0) {
		return &ErrInvalidTransaction{
			Field:  "amount",
			Reason: "amount must be a non-zero finite number",
		}
	}

	expected := t.balanceBefore + t.amount
	if math.Abs(t.balanceAfter-expected) > balanceTolerance*math.Max(1, math.Abs(expected)) {
		return &ErrBalanceInvariantViolation{
			BalanceBefore: t.balanceBefore,
			Amount:        t.amount,
			BalanceAfter:  t.balanceAfter,
			Expected:      expected,
		}
	}

	if t.timestamp.IsZero() {
		return &ErrInvalidTransaction{
			Field:  "timestamp",
			Reason: "timestamp is required",
		}
	}
	return nil
}

// Getters (all fields are immutable)

func (t *Transaction) ID() TransactionID                { return t.id }
func (t *Transaction) Timestamp() time.Time             { return t.timestamp }
func (t *Transaction) TransactionType() TransactionType { return t.transactionType }
func (t *Transaction) Category() Category               { return t.category }
func (t *Transaction) Unit() Unit                       { return t.unit }
func (t *Transaction) Amount() float64                  { return t.amount }
func (t *Transaction) BalanceBefore() float64           { return t.balanceBefore }
func (t *Transaction) BalanceAfter() float64            { return t.balanceAfter }
func (t *Transaction) Description() string              { return t.description }
func (t *Transaction) RelatedEntityType() string        { return t.relatedEntityType }
func (t *Transaction) RelatedEntityID() string          { return t.relatedEntityID }

// Metadata returns a copy to prevent external modification
func (t *Transaction) Metadata() map[string]interface{} {
	if t.metadata == nil {
		return nil
	}
	out := make(map[string]interface{}, len(t.metadata))
	for k, v := range t.metadata {
		out[k] = v
	}
	return out
}

// IsIncome returns true if the transaction raised the balance
func (t *Transaction) IsIncome() bool {
	return t.amount > 0
}

func (t *Transaction) String() string {
	return fmt.Sprintf("Transaction[%s, type=%s, amount=%.2f %s, balance=%.2f->%.2f]",
		t.id, t.transactionType, t.amount, t.unit, t.balanceBefore, t.balanceAfter)
}
