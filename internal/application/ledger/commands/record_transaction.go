package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/devempire-go/internal/adapters/metrics"
	"github.com/andrescamacho/devempire-go/internal/application/mediator"
	"github.com/andrescamacho/devempire-go/internal/domain/ledger"
	"github.com/andrescamacho/devempire-go/internal/domain/shared"
)

// RecordTransactionCommand represents a command to journal a balance change
type RecordTransactionCommand struct {
	TransactionType   string
	Unit              string
	Amount            float64 // Positive for income, negative for spending
	BalanceBefore     float64
	BalanceAfter      float64
	Description       string
	Metadata          map[string]interface{}
	RelatedEntityType string
	RelatedEntityID   string
	Timestamp         *time.Time // Optional: if provided, use this timestamp; otherwise use current time
}

// RecordTransactionResponse represents the result of recording a transaction
type RecordTransactionResponse struct {
	TransactionID string
	Timestamp     time.Time
}

// RecordTransactionHandler handles the RecordTransaction command
type RecordTransactionHandler struct {
	transactionRepo ledger.TransactionRepository
	clock           shared.Clock
}

// NewRecordTransactionHandler creates a new RecordTransactionHandler
func NewRecordTransactionHandler(
	transactionRepo ledger.TransactionRepository,
	clock shared.Clock,
) *RecordTransactionHandler {
	// Default to real clock if not provided
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &RecordTransactionHandler{
		transactionRepo: transactionRepo,
		clock:           clock,
	}
}

// Handle executes the RecordTransaction command
func (h *RecordTransactionHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RecordTransactionCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *RecordTransactionCommand")
	}

	transactionType, err := ledger.ParseTransactionType(cmd.TransactionType)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction type: %w", err)
	}
	unit, err := ledger.ParseUnit(cmd.Unit)
	if err != nil {
		return nil, fmt.Errorf("invalid unit: %w", err)
	}

	timestamp := h.clock.Now()
	if cmd.Timestamp != nil {
		timestamp = *cmd.Timestamp
	}

	transaction, err := ledger.NewTransaction(
		timestamp,
		transactionType,
		unit,
		cmd.Amount,
		cmd.BalanceBefore,
		cmd.BalanceAfter,
		cmd.Description,
		cmd.Metadata,
		cmd.RelatedEntityType,
		cmd.RelatedEntityID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	if err := h.transactionRepo.Create(ctx, transaction); err != nil {
		return nil, fmt.Errorf("failed to persist transaction: %w", err)
	}

	metrics.RecordTransaction(
		transaction.TransactionType().String(),
		transaction.Category().String(),
		transaction.Unit().String(),
		transaction.Amount(),
		transaction.BalanceAfter(),
	)

	return &RecordTransactionResponse{
		TransactionID: transaction.ID().String(),
		Timestamp:     transaction.Timestamp(),
	}, nil
}
