package commands_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/devempire-go/internal/application/game/commands"
	"github.com/andrescamacho/devempire-go/internal/domain/catalog"
	"github.com/andrescamacho/devempire-go/internal/domain/game"
	"github.com/andrescamacho/devempire-go/internal/domain/ledger"
	"github.com/andrescamacho/devempire-go/internal/domain/shared"
)

func TestBuyBuildingHandler_JournalsTheSpend(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.seed(t, func(st *game.State) { st.Currency = 20 })
	handler := commands.NewBuyBuildingHandler(f.session, f.journal)

	// Act
	resp := send(t, handler, &commands.BuyBuildingCommand{BuildingID: string(catalog.BuildingIntern)})

	// Assert
	out := resp.(*commands.ActionResponse)
	assert.True(t, out.Applied)
	assert.Equal(t, 1, out.State.Buildings[catalog.BuildingIntern])
	assert.InDelta(t, 5.0, out.State.Currency, 1e-9)
	assert.InDelta(t, 0.5, out.State.ProductionRate, 1e-9)

	entries := f.journal.entries()
	require.Len(t, entries, 1)
	assert.Equal(t, ledger.TransactionTypeBuyBuilding.String(), entries[0].TransactionType)
	assert.Equal(t, ledger.UnitLOC.String(), entries[0].Unit)
	assert.InDelta(t, -15.0, entries[0].Amount, 1e-9)
	assert.InDelta(t, 20.0, entries[0].BalanceBefore, 1e-9)
	assert.InDelta(t, 5.0, entries[0].BalanceAfter, 1e-9)
	assert.Equal(t, "building", entries[0].RelatedEntityType)
	assert.Equal(t, "Hired Intern", entries[0].Description)
	require.NotNil(t, entries[0].Timestamp)
	assert.Equal(t, epoch, *entries[0].Timestamp)
}

func TestBuyBuildingHandler_UnaffordableIsNotJournaled(t *testing.T) {
	// Arrange
	f := newFixture(t)
	handler := commands.NewBuyBuildingHandler(f.session, f.journal)

	// Act
	resp := send(t, handler, &commands.BuyBuildingCommand{BuildingID: string(catalog.BuildingIntern)})

	// Assert
	assert.False(t, resp.(*commands.ActionResponse).Applied)
	assert.Empty(t, f.journal.entries())
}

func TestBuyBuildingHandler_UnknownBuilding(t *testing.T) {
	f := newFixture(t)
	handler := commands.NewBuyBuildingHandler(f.session, f.journal)

	_, err := handler.Handle(context.Background(), &commands.BuyBuildingCommand{BuildingID: "quantum_team"})

	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Empty(t, f.journal.entries())
}

func TestBuyBuildingHandler_LedgerFailureDoesNotUndoThePurchase(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.journal.fail = true
	f.seed(t, func(st *game.State) { st.Currency = 20 })
	handler := commands.NewBuyBuildingHandler(f.session, f.journal)

	// Act
	resp, err := handler.Handle(context.Background(), &commands.BuyBuildingCommand{BuildingID: string(catalog.BuildingIntern)})

	// Assert
	require.NoError(t, err)
	assert.True(t, resp.(*commands.ActionResponse).Applied)
	assert.Equal(t, 1, f.session.Snapshot().Buildings[catalog.BuildingIntern])
}

func TestBuyUpgradeAndHardwareHandlers_AreIdempotent(t *testing.T) {
	// Arrange
	f := newFixture(t)
	f.seed(t, func(st *game.State) { st.Currency = 1e9 })
	upgrade := catalog.Default().Upgrades()[0]
	hardware := catalog.Default().HardwareItems()[0]
	upgrades := commands.NewBuyUpgradeHandler(f.session, f.journal)
	hardwares := commands.NewBuyHardwareHandler(f.session, f.journal)

	// Act
	first := send(t, upgrades, &commands.BuyUpgradeCommand{UpgradeID: string(upgrade.ID)}).(*commands.ActionResponse)
	again := send(t, upgrades, &commands.BuyUpgradeCommand{UpgradeID: string(upgrade.ID)}).(*commands.ActionResponse)
	hw := send(t, hardwares, &commands.BuyHardwareCommand{HardwareID: string(hardware.ID)}).(*commands.ActionResponse)
	hwAgain := send(t, hardwares, &commands.BuyHardwareCommand{HardwareID: string(hardware.ID)}).(*commands.ActionResponse)

	// Assert
	assert.True(t, first.Applied)
	assert.False(t, again.Applied)
	assert.True(t, hw.Applied)
	assert.False(t, hwAgain.Applied)

	entries := f.journal.entries()
	require.Len(t, entries, 2)
	assert.Equal(t, ledger.TransactionTypeBuyUpgrade.String(), entries[0].TransactionType)
	assert.InDelta(t, -upgrade.Cost, entries[0].Amount, 1e-9)
	assert.Equal(t, ledger.TransactionTypeBuyHardware.String(), entries[1].TransactionType)
	assert.InDelta(t, -hardware.Cost, entries[1].Amount, 1e-9)
}

func TestHandlers_RejectForeignRequests(t *testing.T) {
	f := newFixture(t)
	handler := commands.NewBuyBuildingHandler(f.session, f.journal)

	_, err := handler.Handle(context.Background(), &commands.PrestigeCommand{})

	assert.Error(t, err)
}
