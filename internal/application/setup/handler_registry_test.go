package setup_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/devempire-go/internal/adapters/persistence"
	gameApp "github.com/andrescamacho/devempire-go/internal/application/game"
	gameCommands "github.com/andrescamacho/devempire-go/internal/application/game/commands"
	gameQueries "github.com/andrescamacho/devempire-go/internal/application/game/queries"
	ledgerQueries "github.com/andrescamacho/devempire-go/internal/application/ledger/queries"
	"github.com/andrescamacho/devempire-go/internal/application/mediator"
	"github.com/andrescamacho/devempire-go/internal/application/setup"
	"github.com/andrescamacho/devempire-go/internal/domain/catalog"
	"github.com/andrescamacho/devempire-go/internal/domain/game"
	"github.com/andrescamacho/devempire-go/internal/domain/shared"
	"github.com/andrescamacho/devempire-go/internal/infrastructure/database"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newSession(t *testing.T, clock shared.Clock) *gameApp.Session {
	t.Helper()
	engine, err := game.NewEngine(catalog.Default(), shared.NewFixedRandom())
	require.NoError(t, err)
	return gameApp.NewSession(engine, engine.NewState(epoch), clock, nil)
}

func newTransactionRepo(t *testing.T) *persistence.GormTransactionRepository {
	t.Helper()
	db, err := database.NewTestConnection()
	require.NoError(t, err)
	t.Cleanup(func() { database.Close(db) })
	return persistence.NewGormTransactionRepository(db)
}

func TestCreateConfiguredMediator_RegistersEveryRequest(t *testing.T) {
	// Arrange
	clock := shared.NewMockClock(epoch)
	m, err := setup.NewHandlerRegistry(newSession(t, clock), newTransactionRepo(t), clock, nil).CreateConfiguredMediator()
	require.NoError(t, err)

	requests := []mediator.Request{
		&gameCommands.ManualInputCommand{},
		&gameCommands.BuyBuildingCommand{BuildingID: "intern"},
		&gameCommands.BuyUpgradeCommand{UpgradeID: "mechanical_keyboard"},
		&gameCommands.BuyHardwareCommand{HardwareID: "mech_keyboard_v1"},
		&gameCommands.CancelContractCommand{},
		&gameCommands.CompleteContractCommand{},
		&gameCommands.GenerateContractsCommand{},
		&gameCommands.TakeShortcutCommand{},
		&gameCommands.PayDebtCommand{Amount: 1},
		&gameCommands.BuyStockCommand{StockID: "microhard", Quantity: 1},
		&gameCommands.SellStockCommand{StockID: "microhard", Quantity: 1},
		&gameCommands.SetSpecializationCommand{Specialization: "backend"},
		&gameCommands.UnlockSkillCommand{SkillID: "touch_typing"},
		&gameCommands.UpgradeOfficeCommand{},
		&gameCommands.ToggleIllegalAICommand{Enabled: false},
		&gameCommands.SquashBugCommand{},
		&gameCommands.MarkIntroSeenCommand{},
		&gameCommands.AdvanceTimeCommand{Elapsed: time.Second},
		&gameCommands.UpdateMarketCommand{},
		&gameCommands.RelaxBurnoutCommand{},
		&gameCommands.RecoverBurnoutCommand{},
		&gameCommands.SpawnBugCommand{},
		&gameCommands.ReconcileOfflineCommand{},
		&gameCommands.PrestigeCommand{},
		&gameCommands.ResetCommand{},
		&gameQueries.GetStateQuery{},
		&gameQueries.GetShopQuery{},
		&ledgerQueries.GetTransactionsQuery{Limit: 10},
		&ledgerQueries.GetCashFlowQuery{},
	}

	// Act & Assert
	for _, request := range requests {
		_, err := m.Send(context.Background(), request)
		assert.NoError(t, err, "%T", request)
	}
}

func TestCreateConfiguredMediator_LedgerOnly(t *testing.T) {
	// Arrange
	m, err := setup.NewHandlerRegistry(nil, newTransactionRepo(t), nil, nil).CreateConfiguredMediator()
	require.NoError(t, err)

	// Act
	_, ledgerErr := m.Send(context.Background(), &ledgerQueries.GetTransactionsQuery{Limit: 10})
	_, gameErr := m.Send(context.Background(), &gameQueries.GetStateQuery{})

	// Assert
	assert.NoError(t, ledgerErr)
	assert.Error(t, gameErr, "game handlers need a session")
}

func TestCreateConfiguredMediator_ActionsAreJournaled(t *testing.T) {
	// Arrange
	clock := shared.NewMockClock(epoch)
	session := newSession(t, clock)
	_, err := session.Apply(context.Background(), func(st *game.State, _ time.Time) (bool, error) {
		st.Currency = 100
		return true, nil
	})
	require.NoError(t, err)

	m, err := setup.NewHandlerRegistry(session, newTransactionRepo(t), clock, nil).CreateConfiguredMediator()
	require.NoError(t, err)

	// Act
	_, err = m.Send(context.Background(), &gameCommands.BuyBuildingCommand{BuildingID: "intern"})
	require.NoError(t, err)
	resp, err := m.Send(context.Background(), &ledgerQueries.GetTransactionsQuery{Limit: 10})
	require.NoError(t, err)

	// Assert
	result := resp.(*ledgerQueries.GetTransactionsResponse)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "BUY_BUILDING", result.Transactions[0].Type)
	assert.Equal(t, "STAFFING", result.Transactions[0].Category)
	assert.InDelta(t, -15, result.Transactions[0].Amount, 1e-9)
}

func TestCreateConfiguredMediator_WithoutLedgerActionsStillApply(t *testing.T) {
	// Arrange
	clock := shared.NewMockClock(epoch)
	m, err := setup.NewHandlerRegistry(newSession(t, clock), nil, clock, nil).CreateConfiguredMediator()
	require.NoError(t, err)

	// Act
	resp, err := m.Send(context.Background(), &gameCommands.ManualInputCommand{})

	// Assert
	require.NoError(t, err)
	assert.True(t, resp.(*gameCommands.ActionResponse).Applied)
}
