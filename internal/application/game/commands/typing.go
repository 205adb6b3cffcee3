package commands

import (
	"context"
	"time"

	"github.com/andrescamacho/devempire-go/internal/adapters/metrics"
	gameApp "github.com/andrescamacho/devempire-go/internal/application/game"
	"github.com/andrescamacho/devempire-go/internal/application/mediator"
	"github.com/andrescamacho/devempire-go/internal/domain/game"
	"github.com/andrescamacho/devempire-go/internal/domain/ledger"
)

// DefaultManualBase is the size of one keystroke burst
const DefaultManualBase = 1.0

// ManualInputCommand types one burst of code. Base defaults to DefaultManualBase.
type ManualInputCommand struct {
	Base float64
}

// ManualInputHandler handles ManualInputCommand. Typing is not journaled.
type ManualInputHandler struct {
	actionRunner
}

// NewManualInputHandler creates a new ManualInputHandler
func NewManualInputHandler(session *gameApp.Session, m mediator.Mediator) *ManualInputHandler {
	return &ManualInputHandler{actionRunner: newActionRunner(session, m)}
}

// Handle executes the ManualInput command
func (h *ManualInputHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ManualInputCommand)
	if !ok {
		return nil, invalidRequest("ManualInputCommand")
	}
	base := cmd.Base
	if base == 0 {
		base = DefaultManualBase
	}
	engine := h.session.Engine()

	return h.apply(ctx, func(st *game.State, now time.Time) (bool, error) {
		return engine.ManualInput(st, base, now), nil
	}, nil)
}

// SquashBugCommand claims the bounty for the bug on screen
type SquashBugCommand struct{}

// SquashBugHandler handles SquashBugCommand
type SquashBugHandler struct {
	actionRunner
}

// NewSquashBugHandler creates a new SquashBugHandler
func NewSquashBugHandler(session *gameApp.Session, m mediator.Mediator) *SquashBugHandler {
	return &SquashBugHandler{actionRunner: newActionRunner(session, m)}
}

// Handle executes the SquashBug command
func (h *SquashBugHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*SquashBugCommand); !ok {
		return nil, invalidRequest("SquashBugCommand")
	}
	engine := h.session.Engine()

	resp, err := h.run(ctx,
		func(st *game.State, now time.Time) (bool, error) {
			return engine.SquashBug(st, now), nil
		},
		func(before, after balances) []journalEntry {
			return []journalEntry{locEntry(ledger.TransactionTypeBugBounty, before, after, "Squashed a bug", "", "")}
		})
	if err != nil {
		return nil, err
	}

	if resp.Applied {
		metrics.RecordGameEvent("bug_squashed")
	}
	return resp, nil
}
