package commands

import (
	"context"
	"fmt"
	"time"

	gameApp "github.com/andrescamacho/devempire-go/internal/application/game"
	"github.com/andrescamacho/devempire-go/internal/application/mediator"
	"github.com/andrescamacho/devempire-go/internal/domain/catalog"
	"github.com/andrescamacho/devempire-go/internal/domain/game"
	"github.com/andrescamacho/devempire-go/internal/domain/ledger"
)

// TakeShortcutCommand borrows a minute of production against technical debt
type TakeShortcutCommand struct{}

// TakeShortcutHandler handles TakeShortcutCommand
type TakeShortcutHandler struct {
	actionRunner
}

// NewTakeShortcutHandler creates a new TakeShortcutHandler
func NewTakeShortcutHandler(session *gameApp.Session, m mediator.Mediator) *TakeShortcutHandler {
	return &TakeShortcutHandler{actionRunner: newActionRunner(session, m)}
}

// Handle executes the TakeShortcut command
func (h *TakeShortcutHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*TakeShortcutCommand); !ok {
		return nil, invalidRequest("TakeShortcutCommand")
	}
	engine := h.session.Engine()

	return h.apply(ctx,
		func(st *game.State, _ time.Time) (bool, error) {
			return engine.TakeShortcut(st), nil
		},
		func(before, after balances) []journalEntry {
			return []journalEntry{locEntry(ledger.TransactionTypeShortcut, before, after,
				"Shipped a shortcut", "", "")}
		})
}

// PayDebtCommand pays down technical debt
type PayDebtCommand struct {
	Amount float64
}

// PayDebtHandler handles PayDebtCommand
type PayDebtHandler struct {
	actionRunner
}

// NewPayDebtHandler creates a new PayDebtHandler
func NewPayDebtHandler(session *gameApp.Session, m mediator.Mediator) *PayDebtHandler {
	return &PayDebtHandler{actionRunner: newActionRunner(session, m)}
}

// Handle executes the PayDebt command
func (h *PayDebtHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*PayDebtCommand)
	if !ok {
		return nil, invalidRequest("PayDebtCommand")
	}
	engine := h.session.Engine()

	return h.apply(ctx,
		func(st *game.State, _ time.Time) (bool, error) {
			return engine.PayDebt(st, cmd.Amount), nil
		},
		func(before, after balances) []journalEntry {
			return []journalEntry{locEntry(ledger.TransactionTypePayDebt, before, after,
				"Refactored technical debt", "", "")}
		})
}

// BuyStockCommand buys shares of a listed stock with prestige currency
type BuyStockCommand struct {
	StockID  string
	Quantity int
}

// BuyStockHandler handles BuyStockCommand
type BuyStockHandler struct {
	actionRunner
}

// NewBuyStockHandler creates a new BuyStockHandler
func NewBuyStockHandler(session *gameApp.Session, m mediator.Mediator) *BuyStockHandler {
	return &BuyStockHandler{actionRunner: newActionRunner(session, m)}
}

// Handle executes the BuyStock command
func (h *BuyStockHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*BuyStockCommand)
	if !ok {
		return nil, invalidRequest("BuyStockCommand")
	}
	engine := h.session.Engine()

	return h.apply(ctx,
		func(st *game.State, _ time.Time) (bool, error) {
			return engine.BuyStock(st, catalog.StockID(cmd.StockID), cmd.Quantity)
		},
		func(before, after balances) []journalEntry {
			e := sharesEntry(ledger.TransactionTypeBuyStock, before, after,
				fmt.Sprintf("Bought %d %s", cmd.Quantity, cmd.StockID), "stock", cmd.StockID)
			e.metadata = map[string]interface{}{"quantity": cmd.Quantity}
			return []journalEntry{e}
		})
}

// SellStockCommand sells held shares of a listed stock
type SellStockCommand struct {
	StockID  string
	Quantity int
}

// SellStockHandler handles SellStockCommand
type SellStockHandler struct {
	actionRunner
}

// NewSellStockHandler creates a new SellStockHandler
func NewSellStockHandler(session *gameApp.Session, m mediator.Mediator) *SellStockHandler {
	return &SellStockHandler{actionRunner: newActionRunner(session, m)}
}

// Handle executes the SellStock command
func (h *SellStockHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*SellStockCommand)
	if !ok {
		return nil, invalidRequest("SellStockCommand")
	}
	engine := h.session.Engine()

	return h.apply(ctx,
		func(st *game.State, _ time.Time) (bool, error) {
			return engine.SellStock(st, catalog.StockID(cmd.StockID), cmd.Quantity)
		},
		func(before, after balances) []journalEntry {
			e := sharesEntry(ledger.TransactionTypeSellStock, before, after,
				fmt.Sprintf("Sold %d %s", cmd.Quantity, cmd.StockID), "stock", cmd.StockID)
			e.metadata = map[string]interface{}{"quantity": cmd.Quantity}
			return []journalEntry{e}
		})
}
