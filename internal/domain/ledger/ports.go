package ledger

import (
	"context"
	"time"
)

// TransactionRepository stores the journal of currency and share movements.
// Entries are append-only; nothing here updates or deletes one.
type TransactionRepository interface {
	Create(ctx context.Context, transaction *Transaction) error
	FindByID(ctx context.Context, id TransactionID) (*Transaction, error)
	Find(ctx context.Context, opts QueryOptions) ([]*Transaction, error)

	// Count ignores Limit and Offset
	Count(ctx context.Context, opts QueryOptions) (int, error)
}

// QueryOptions narrows a journal listing. Nil filters match everything.
type QueryOptions struct {
	StartDate *time.Time // inclusive
	EndDate   *time.Time // inclusive

	Category        *Category
	TransactionType *TransactionType
	Unit            *Unit // LOC or SHARES

	// The catalog item or contract an entry paid for, e.g. "building"/"intern"
	RelatedEntityType *string
	RelatedEntityID   *string

	Limit  int
	Offset int

	OrderBy string // "timestamp ASC" or "timestamp DESC"
}

// DefaultQueryOptions lists the latest page of entries, newest first
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{Limit: 50, OrderBy: "timestamp DESC"}
}
