package commands

import (
	"context"
	"time"

	"github.com/andrescamacho/devempire-go/internal/adapters/metrics"
	gameApp "github.com/andrescamacho/devempire-go/internal/application/game"
	"github.com/andrescamacho/devempire-go/internal/application/logging"
	"github.com/andrescamacho/devempire-go/internal/application/mediator"
	"github.com/andrescamacho/devempire-go/internal/domain/burnout"
	"github.com/andrescamacho/devempire-go/internal/domain/game"
	"github.com/andrescamacho/devempire-go/internal/domain/ledger"
)

// AdvanceTimeCommand credits passive production for the elapsed time
type AdvanceTimeCommand struct {
	Elapsed time.Duration
}

// AdvanceTimeResponse reports whether the illegal AI got the player busted
type AdvanceTimeResponse struct {
	*ActionResponse
	Busted bool
}

// AdvanceTimeHandler handles AdvanceTimeCommand. Passive income is not
// journaled; only a bust is.
type AdvanceTimeHandler struct {
	actionRunner
}

// NewAdvanceTimeHandler creates a new AdvanceTimeHandler
func NewAdvanceTimeHandler(session *gameApp.Session, m mediator.Mediator) *AdvanceTimeHandler {
	return &AdvanceTimeHandler{actionRunner: newActionRunner(session, m)}
}

// Handle executes the AdvanceTime command
func (h *AdvanceTimeHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*AdvanceTimeCommand)
	if !ok {
		return nil, invalidRequest("AdvanceTimeCommand")
	}
	engine := h.session.Engine()

	var busted bool
	resp, err := h.run(ctx,
		func(st *game.State, _ time.Time) (bool, error) {
			rate := st.ProductionRate
			busted = engine.ApplyElapsed(st, cmd.Elapsed.Seconds())
			return busted || (cmd.Elapsed > 0 && rate > 0), nil
		},
		func(before, after balances) []journalEntry {
			if !busted {
				return nil
			}
			return []journalEntry{locEntry(ledger.TransactionTypeHack, before, after, "Busted running illegal AI", "", "")}
		})
	if err != nil {
		return nil, err
	}

	if busted {
		metrics.RecordGameEvent("hack")
		logging.LoggerFromContext(ctx).Log(logging.LevelWarning, "Illegal AI traced, balance wiped", nil)
	}
	return &AdvanceTimeResponse{ActionResponse: resp, Busted: busted}, nil
}

// UpdateMarketCommand moves every stock one random-walk step
type UpdateMarketCommand struct{}

// UpdateMarketHandler handles UpdateMarketCommand
type UpdateMarketHandler struct {
	actionRunner
}

// NewUpdateMarketHandler creates a new UpdateMarketHandler
func NewUpdateMarketHandler(session *gameApp.Session, m mediator.Mediator) *UpdateMarketHandler {
	return &UpdateMarketHandler{actionRunner: newActionRunner(session, m)}
}

// Handle executes the UpdateMarket command
func (h *UpdateMarketHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*UpdateMarketCommand); !ok {
		return nil, invalidRequest("UpdateMarketCommand")
	}
	engine := h.session.Engine()

	return h.apply(ctx, func(st *game.State, _ time.Time) (bool, error) {
		engine.UpdateMarket(st)
		return true, nil
	}, nil)
}

// RelaxBurnoutCommand applies one passive burnout recovery step. Step
// defaults to burnout.RelaxStep.
type RelaxBurnoutCommand struct {
	Step float64
}

// RelaxBurnoutHandler handles RelaxBurnoutCommand
type RelaxBurnoutHandler struct {
	actionRunner
}

// NewRelaxBurnoutHandler creates a new RelaxBurnoutHandler
func NewRelaxBurnoutHandler(session *gameApp.Session, m mediator.Mediator) *RelaxBurnoutHandler {
	return &RelaxBurnoutHandler{actionRunner: newActionRunner(session, m)}
}

// Handle executes the RelaxBurnout command
func (h *RelaxBurnoutHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*RelaxBurnoutCommand)
	if !ok {
		return nil, invalidRequest("RelaxBurnoutCommand")
	}
	step := cmd.Step
	if step == 0 {
		step = burnout.RelaxStep
	}
	engine := h.session.Engine()

	return h.apply(ctx, func(st *game.State, _ time.Time) (bool, error) {
		return engine.RelaxBurnout(st, step), nil
	}, nil)
}

// RecoverBurnoutCommand unlocks an overloaded gauge whose cooldown is over
type RecoverBurnoutCommand struct{}

// RecoverBurnoutHandler handles RecoverBurnoutCommand
type RecoverBurnoutHandler struct {
	actionRunner
}

// NewRecoverBurnoutHandler creates a new RecoverBurnoutHandler
func NewRecoverBurnoutHandler(session *gameApp.Session, m mediator.Mediator) *RecoverBurnoutHandler {
	return &RecoverBurnoutHandler{actionRunner: newActionRunner(session, m)}
}

// Handle executes the RecoverBurnout command
func (h *RecoverBurnoutHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*RecoverBurnoutCommand); !ok {
		return nil, invalidRequest("RecoverBurnoutCommand")
	}
	engine := h.session.Engine()

	return h.apply(ctx, func(st *game.State, now time.Time) (bool, error) {
		return engine.RecoverBurnout(st, now), nil
	}, nil)
}

// SpawnBugCommand advances the bug schedule: spawns a due bug or expires an
// unsquashed one.
type SpawnBugCommand struct{}

// SpawnBugResponse reports what the bug schedule did
type SpawnBugResponse struct {
	*ActionResponse
	Spawned bool
	Expired bool
}

// SpawnBugHandler handles SpawnBugCommand
type SpawnBugHandler struct {
	actionRunner
}

// NewSpawnBugHandler creates a new SpawnBugHandler
func NewSpawnBugHandler(session *gameApp.Session, m mediator.Mediator) *SpawnBugHandler {
	return &SpawnBugHandler{actionRunner: newActionRunner(session, m)}
}

// Handle executes the SpawnBug command
func (h *SpawnBugHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*SpawnBugCommand); !ok {
		return nil, invalidRequest("SpawnBugCommand")
	}
	engine := h.session.Engine()

	var spawned, expired bool
	resp, err := h.run(ctx, func(st *game.State, now time.Time) (bool, error) {
		spawned, expired = engine.TickBugs(st, now)
		return spawned || expired, nil
	}, nil)
	if err != nil {
		return nil, err
	}

	switch {
	case spawned:
		metrics.RecordGameEvent("bug_spawned")
	case expired:
		metrics.RecordGameEvent("bug_expired")
	}
	return &SpawnBugResponse{ActionResponse: resp, Spawned: spawned, Expired: expired}, nil
}

// ReconcileOfflineCommand credits production for the time the game was closed
type ReconcileOfflineCommand struct{}

// ReconcileOfflineResponse carries the amount credited
type ReconcileOfflineResponse struct {
	*ActionResponse
	Earned float64
}

// ReconcileOfflineHandler handles ReconcileOfflineCommand
type ReconcileOfflineHandler struct {
	actionRunner
}

// NewReconcileOfflineHandler creates a new ReconcileOfflineHandler
func NewReconcileOfflineHandler(session *gameApp.Session, m mediator.Mediator) *ReconcileOfflineHandler {
	return &ReconcileOfflineHandler{actionRunner: newActionRunner(session, m)}
}

// Handle executes the ReconcileOffline command
func (h *ReconcileOfflineHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*ReconcileOfflineCommand); !ok {
		return nil, invalidRequest("ReconcileOfflineCommand")
	}
	engine := h.session.Engine()

	var earned float64
	resp, err := h.run(ctx,
		func(st *game.State, now time.Time) (bool, error) {
			earned = engine.ReconcileOffline(st, now)
			return earned > 0, nil
		},
		func(before, after balances) []journalEntry {
			return []journalEntry{locEntry(ledger.TransactionTypeOfflineIncome, before, after, "Produced while away", "", "")}
		})
	if err != nil {
		return nil, err
	}

	if earned > 0 {
		logging.LoggerFromContext(ctx).Log(logging.LevelInfo, "Offline production credited", map[string]interface{}{
			"earned": earned,
		})
	}
	return &ReconcileOfflineResponse{ActionResponse: resp, Earned: earned}, nil
}
