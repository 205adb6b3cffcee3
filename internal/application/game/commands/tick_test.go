package commands_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/devempire-go/internal/application/game/commands"
	"github.com/andrescamacho/devempire-go/internal/domain/burnout"
	"github.com/andrescamacho/devempire-go/internal/domain/catalog"
	"github.com/andrescamacho/devempire-go/internal/domain/game"
	"github.com/andrescamacho/devempire-go/internal/domain/ledger"
	"github.com/andrescamacho/devempire-go/internal/domain/market"
)

func TestAdvanceTimeHandler_PassiveIncomeIsNotJournaled(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.seed(t, withTwentyInterns)
	handler := commands.NewAdvanceTimeHandler(f.session, f.journal)

	// Act
	resp := send(t, handler, &commands.AdvanceTimeCommand{Elapsed: 500 * time.Millisecond}).(*commands.AdvanceTimeResponse)

	// Assert
	assert.True(t, resp.Applied)
	assert.False(t, resp.Busted)
	assert.InDelta(t, 5.0, resp.State.Currency, 1e-9)
	assert.Empty(t, f.journal.entries())
}

func TestAdvanceTimeHandler_IdleWithoutProduction(t *testing.T) {
	f := newFixture(t)

	resp := send(t, commands.NewAdvanceTimeHandler(f.session, f.journal), &commands.AdvanceTimeCommand{Elapsed: time.Second}).(*commands.AdvanceTimeResponse)

	assert.False(t, resp.Applied)
}

func TestAdvanceTimeHandler_BustIsJournaled(t *testing.T) {
	// Arrange
	f := newFixture(t, 0)
	f.seed(t, func(st *game.State) {
		withTwentyInterns(st)
		st.Currency = 1000
		st.DarkWebUnlocked = true
		st.IllegalAIActive = true
	})
	handler := commands.NewAdvanceTimeHandler(f.session, f.journal)

	// Act
	resp := send(t, handler, &commands.AdvanceTimeCommand{Elapsed: time.Second}).(*commands.AdvanceTimeResponse)

	// Assert
	assert.True(t, resp.Busted)
	assert.Zero(t, resp.State.Currency)
	assert.False(t, resp.State.IllegalAIActive)

	entries := f.journal.entries()
	require.Len(t, entries, 1)
	assert.Equal(t, ledger.TransactionTypeHack.String(), entries[0].TransactionType)
	assert.InDelta(t, -1000.0, entries[0].Amount, 1e-9)
}

func TestUpdateMarketHandler_MovesEveryStock(t *testing.T) {
	// Arrange
	f := newFixture(t, 1)
	handler := commands.NewUpdateMarketHandler(f.session, f.journal)

	// Act
	out := send(t, handler, &commands.UpdateMarketCommand{}).(*commands.ActionResponse)

	// Assert
	assert.True(t, out.Applied)
	for _, s := range catalog.Default().Stocks() {
		assert.Greater(t, out.State.StockPrices[s.ID], s.BasePrice, s.ID)
		assert.LessOrEqual(t, out.State.StockPrices[s.ID], s.BasePrice*(1+s.Volatility+market.Drift), s.ID)
	}
}

func TestBurnoutHandlers(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.seed(t, func(st *game.State) {
		st.Burnout = burnout.Reconstruct(burnout.MaxLevel, true, epoch.Add(burnout.RecoveryCooldown), epoch)
	})
	relax := commands.NewRelaxBurnoutHandler(f.session, f.journal)
	recovery := commands.NewRecoverBurnoutHandler(f.session, f.journal)
	typing := commands.NewManualInputHandler(f.session, f.journal)

	// Act + Assert
	assert.False(t, send(t, typing, &commands.ManualInputCommand{}).(*commands.ActionResponse).Applied, "typing is locked")
	assert.False(t, send(t, relax, &commands.RelaxBurnoutCommand{}).(*commands.ActionResponse).Applied, "relax is suspended")
	assert.False(t, send(t, recovery, &commands.RecoverBurnoutCommand{}).(*commands.ActionResponse).Applied, "cooldown running")

	f.clock.Advance(burnout.RecoveryCooldown)
	recovered := send(t, recovery, &commands.RecoverBurnoutCommand{}).(*commands.ActionResponse)
	assert.True(t, recovered.Applied)
	assert.Equal(t, burnout.StatusNormal, recovered.State.Burnout.Status())

	typed := send(t, typing, &commands.ManualInputCommand{}).(*commands.ActionResponse)
	assert.True(t, typed.Applied)
	assert.InDelta(t, burnout.BaseStrain, typed.State.Burnout.Level(), 1e-9)

	relaxed := send(t, relax, &commands.RelaxBurnoutCommand{}).(*commands.ActionResponse)
	assert.True(t, relaxed.Applied)
	assert.InDelta(t, burnout.BaseStrain-burnout.RelaxStep, relaxed.State.Burnout.Level(), 1e-9)
}

func TestBugHandlers_SpawnSquashExpire(t *testing.T) {
	// Arrange
	f := newFixture(t, 0)
	tick := commands.NewSpawnBugHandler(f.session, f.journal)
	squash := commands.NewSquashBugHandler(f.session, f.journal)

	// Act + Assert: first tick only schedules
	scheduled := send(t, tick, &commands.SpawnBugCommand{}).(*commands.SpawnBugResponse)
	assert.False(t, scheduled.Spawned)
	assert.Equal(t, epoch.Add(game.BugMinInterval), scheduled.State.NextBugAt)

	f.clock.Advance(game.BugMinInterval)
	spawned := send(t, tick, &commands.SpawnBugCommand{}).(*commands.SpawnBugResponse)
	assert.True(t, spawned.Spawned)
	assert.True(t, spawned.State.BugPending())

	squashed := send(t, squash, &commands.SquashBugCommand{}).(*commands.ActionResponse)
	assert.True(t, squashed.Applied)
	assert.InDelta(t, 100.0, squashed.State.Currency, 1e-9)
	assert.Equal(t, 1, squashed.State.BugsSquashed)

	f.clock.Advance(game.BugMinInterval)
	send(t, tick, &commands.SpawnBugCommand{})
	f.clock.Advance(game.BugLifetime)
	expired := send(t, tick, &commands.SpawnBugCommand{}).(*commands.SpawnBugResponse)
	assert.True(t, expired.Expired)
	assert.False(t, expired.State.BugPending())

	entries := f.journal.entries()
	require.Len(t, entries, 1)
	assert.Equal(t, ledger.TransactionTypeBugBounty.String(), entries[0].TransactionType)
	assert.InDelta(t, 100.0, entries[0].Amount, 1e-9)
}

func TestReconcileOfflineHandler(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.seed(t, withTwentyInterns)
	handler := commands.NewReconcileOfflineHandler(f.session, f.journal)

	// Act
	f.clock.Advance(5 * time.Second)
	short := send(t, handler, &commands.ReconcileOfflineCommand{}).(*commands.ReconcileOfflineResponse)
	f.clock.Advance(time.Minute)
	long := send(t, handler, &commands.ReconcileOfflineCommand{}).(*commands.ReconcileOfflineResponse)

	// Assert
	assert.False(t, short.Applied)
	assert.Zero(t, short.Earned)
	assert.True(t, long.Applied)
	assert.InDelta(t, 600.0, long.Earned, 1e-9)
	assert.Equal(t, epoch.Add(65*time.Second), long.State.LastUpdate)

	entries := f.journal.entries()
	require.Len(t, entries, 1)
	assert.Equal(t, ledger.TransactionTypeOfflineIncome.String(), entries[0].TransactionType)
	assert.InDelta(t, 600.0, entries[0].Amount, 1e-9)
}

func TestManualInputHandler_UnlocksOnceCooldownPasses(t *testing.T) {
	// Arrange: a one-shot process has no tick driver sending recovery
	f := newFixture(t)
	typing := commands.NewManualInputHandler(f.session, f.journal)
	for i := 0; i < 60; i++ {
		send(t, typing, &commands.ManualInputCommand{})
	}
	require.True(t, f.session.Snapshot().Burnout.Overloaded())
	f.clock.Advance(burnout.RecoveryCooldown + time.Second)

	// Act
	typed := send(t, typing, &commands.ManualInputCommand{}).(*commands.ActionResponse)

	// Assert
	assert.True(t, typed.Applied)
	assert.Equal(t, burnout.StatusNormal, typed.State.Burnout.Status())
	assert.Equal(t, 51, typed.State.ManualActions)
}
