package commands

import (
	"context"
	"time"

	"github.com/andrescamacho/devempire-go/internal/adapters/metrics"
	gameApp "github.com/andrescamacho/devempire-go/internal/application/game"
	"github.com/andrescamacho/devempire-go/internal/application/logging"
	"github.com/andrescamacho/devempire-go/internal/application/mediator"
	"github.com/andrescamacho/devempire-go/internal/domain/game"
	"github.com/andrescamacho/devempire-go/internal/domain/ledger"
)

// PrestigeCommand trades the current run for prestige currency
type PrestigeCommand struct{}

// PrestigeHandler handles PrestigeCommand
type PrestigeHandler struct {
	actionRunner
}

// NewPrestigeHandler creates a new PrestigeHandler
func NewPrestigeHandler(session *gameApp.Session, m mediator.Mediator) *PrestigeHandler {
	return &PrestigeHandler{actionRunner: newActionRunner(session, m)}
}

// Handle executes the Prestige command
func (h *PrestigeHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*PrestigeCommand); !ok {
		return nil, invalidRequest("PrestigeCommand")
	}
	engine := h.session.Engine()

	resp, err := h.run(ctx,
		func(st *game.State, _ time.Time) (bool, error) {
			return engine.Prestige(st), nil
		},
		func(before, after balances) []journalEntry {
			return []journalEntry{
				locEntry(ledger.TransactionTypePrestige, before, after, "Run balance forfeited on prestige", "", ""),
				sharesEntry(ledger.TransactionTypePrestige, before, after, "Shares earned on prestige", "", ""),
			}
		})
	if err != nil {
		return nil, err
	}

	if resp.Applied {
		metrics.RecordGameEvent("prestige")
		logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "Prestiged", map[string]interface{}{
			"shares": resp.State.PrestigeCurrency,
		})
	}
	return resp, nil
}

// ResetCommand wipes the save back to a fresh game
type ResetCommand struct{}

// ResetHandler handles ResetCommand
type ResetHandler struct {
	actionRunner
}

// NewResetHandler creates a new ResetHandler
func NewResetHandler(session *gameApp.Session, m mediator.Mediator) *ResetHandler {
	return &ResetHandler{actionRunner: newActionRunner(session, m)}
}

// Handle executes the Reset command. The ledger keeps its history.
func (h *ResetHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ResetCommand); !ok {
		return nil, invalidRequest("ResetCommand")
	}
	engine := h.session.Engine()

	resp, err := h.run(ctx, func(st *game.State, now time.Time) (bool, error) {
		engine.Reset(st, now)
		return true, nil
	}, nil)
	if err != nil {
		return nil, err
	}

	logging.LoggerFromContext(ctx).Log(logging.LevelWarning, "Game reset", nil)
	return resp, nil
}
