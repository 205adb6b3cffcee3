package game_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/devempire-go/internal/domain/catalog"
	"github.com/andrescamacho/devempire-go/internal/domain/game"
	"github.com/andrescamacho/devempire-go/internal/domain/market"
	"github.com/andrescamacho/devempire-go/internal/domain/shared"
)

// twentyInterns produces exactly 10 per second
func twentyInterns(e *game.Engine, st *game.State) {
	st.Buildings[catalog.BuildingIntern] = 20
	e.Repair(st)
}

func TestTakeShortcut(t *testing.T) {
	// Arrange
	e := newEngine(t)
	st := newState(t, e)
	twentyInterns(e, st)
	require.Equal(t, 10.0, st.ProductionRate)

	// Act
	applied := e.TakeShortcut(st)

	// Assert
	assert.True(t, applied)
	assert.Equal(t, 600.0, st.Currency)
	assert.Equal(t, 900.0, st.TechnicalDebt)
	assert.Zero(t, st.LifetimeCurrency)
	assert.InDelta(t, 9.25, st.ProductionRate, 1e-9)
}

func TestTakeShortcut_WithoutProductionIsNoop(t *testing.T) {
	e := newEngine(t)
	st := newState(t, e)
	before := st.Clone()

	assert.False(t, e.TakeShortcut(st))
	assert.Equal(t, before, st)
}

func TestPayDebt_CapsAtDebtAndBalance(t *testing.T) {
	// Arrange
	e := newEngine(t)
	st := newState(t, e)
	twentyInterns(e, st)
	e.TakeShortcut(st)
	st.Currency = 400

	// Act + Assert
	require.True(t, e.PayDebt(st, 1000))
	assert.Zero(t, st.Currency)
	assert.Equal(t, 500.0, st.TechnicalDebt)

	st.Currency = 10000
	require.True(t, e.PayDebt(st, 1e9))
	assert.Equal(t, 9500.0, st.Currency)
	assert.Zero(t, st.TechnicalDebt)
	assert.Equal(t, 10.0, st.ProductionRate)

	assert.False(t, e.PayDebt(st, 100), "nothing left to pay")
}

func TestApplyElapsed_CreditsProduction(t *testing.T) {
	// Arrange
	e := newEngine(t)
	st := newState(t, e)
	twentyInterns(e, st)
	_, err := e.AcceptContract(st, "contract-1")
	require.NoError(t, err)

	// Act
	busted := e.ApplyElapsed(st, 0.1)

	// Assert
	assert.False(t, busted)
	assert.InDelta(t, 1.0, st.Currency, 1e-9)
	assert.InDelta(t, 1.0, st.LifetimeCurrency, 1e-9)
	assert.InDelta(t, 1.0, st.ContractProgress, 1e-9)
}

func TestApplyElapsed_DarkWebLatch(t *testing.T) {
	// Arrange
	e := newEngine(t)
	st := newState(t, e)
	twentyInterns(e, st)
	require.False(t, e.ToggleIllegalAI(st, true), "dark web still hidden")

	// Act
	e.ApplyElapsed(st, 1000)

	// Assert
	assert.True(t, st.DarkWebUnlocked)
	assert.True(t, e.ToggleIllegalAI(st, true))
	assert.Equal(t, 20.0, st.ProductionRate)

	st.LifetimeCurrency = 0
	e.ApplyElapsed(st, 0)
	assert.True(t, st.DarkWebUnlocked, "the latch never reopens")
}

func TestApplyElapsed_IllegalAIBust(t *testing.T) {
	// Arrange: draw 0.9 is safe, draw 0 busts
	e := newEngine(t, 0.9, 0)
	st := newState(t, e)
	twentyInterns(e, st)
	st.DarkWebUnlocked = true
	require.True(t, e.ToggleIllegalAI(st, true))

	// Act + Assert
	assert.False(t, e.ApplyElapsed(st, 1))
	assert.Equal(t, 20.0, st.Currency)

	assert.True(t, e.ApplyElapsed(st, 1))
	assert.Zero(t, st.Currency)
	assert.False(t, st.IllegalAIActive)
	assert.Equal(t, 10.0, st.ProductionRate)
	assert.True(t, st.DarkWebUnlocked)
}

func TestUpdateMarket_SingleStepBounds(t *testing.T) {
	for _, roll := range []float64{0, 0.25, 0.5, 0.75, 0.999999} {
		// Arrange
		e := newEngine(t, roll)
		st := newState(t, e)

		// Act
		e.UpdateMarket(st)

		// Assert
		price := st.StockPrices["microhard"]
		assert.GreaterOrEqual(t, price, 100*(1-0.1+market.Drift)-1e-9)
		assert.LessOrEqual(t, price, 100*(1+0.1+market.Drift)+1e-9)
		assert.GreaterOrEqual(t, price, market.MinPrice)
		assert.LessOrEqual(t, price, 1000.0)
	}
}

func TestStocks_TradeInPrestigeCurrency(t *testing.T) {
	// Arrange
	e := newEngine(t)
	st := newState(t, e)
	st.PrestigeCurrency = 250

	// Act + Assert
	applied, err := e.BuyStock(st, "microhard", 2)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, 50.0, st.PrestigeCurrency)
	assert.Equal(t, 2, st.OwnedStocks["microhard"])
	assert.InDelta(t, 6.0, st.ClickPower, 1e-9, "fewer shares, smaller multiplier")

	applied, err = e.BuyStock(st, "microhard", 1)
	require.NoError(t, err)
	assert.False(t, applied, "insufficient prestige currency")

	applied, err = e.SellStock(st, "microhard", 3)
	require.NoError(t, err)
	assert.False(t, applied, "insufficient quantity")

	applied, err = e.SellStock(st, "microhard", 2)
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, 250.0, st.PrestigeCurrency)
	assert.NotContains(t, st.OwnedStocks, catalog.StockID("microhard"))

	applied, err = e.BuyStock(st, "microhard", 0)
	require.NoError(t, err)
	assert.False(t, applied, "quantity must be positive")

	_, err = e.SellStock(st, "enron", 1)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestReconcileOffline(t *testing.T) {
	t.Run("credits whole seconds away", func(t *testing.T) {
		e := newEngine(t)
		st := newState(t, e)
		st.Buildings[catalog.BuildingIntern] = 3
		e.Repair(st)

		earned := e.ReconcileOffline(st, epoch.Add(61*time.Second))

		assert.Equal(t, 91.0, earned)
		assert.Equal(t, 91.0, st.Currency)
		assert.Equal(t, 91.0, st.LifetimeCurrency)
		assert.Equal(t, epoch.Add(61*time.Second), st.LastUpdate)
	})

	t.Run("short absences earn nothing", func(t *testing.T) {
		e := newEngine(t)
		st := newState(t, e)
		twentyInterns(e, st)

		assert.Zero(t, e.ReconcileOffline(st, epoch.Add(game.OfflineThreshold)))
		assert.Zero(t, st.Currency)
	})
}

func TestCurrencyNeverNegative(t *testing.T) {
	e, err := game.NewEngine(catalog.Default(), shared.NewSeededRandom(7))
	require.NoError(t, err)
	st := e.NewState(epoch)
	pick := shared.NewSeededRandom(11)
	now := epoch

	for i := 0; i < 5000; i++ {
		now = now.Add(100 * time.Millisecond)
		switch int(pick.Float64() * 12) {
		case 0:
			e.ManualInput(st, 25, now)
		case 1:
			_, _ = e.BuyBuilding(st, catalog.Default().Buildings()[int(pick.Float64()*4)].ID)
		case 2:
			_, _ = e.BuyUpgrade(st, catalog.Default().Upgrades()[int(pick.Float64()*7)].ID)
		case 3:
			_, _ = e.BuyHardware(st, catalog.Default().HardwareItems()[int(pick.Float64()*5)].ID)
		case 4:
			e.TakeShortcut(st)
		case 5:
			e.PayDebt(st, pick.Float64()*1000)
		case 6:
			e.ApplyElapsed(st, 0.1)
		case 7:
			e.UpdateMarket(st)
		case 8:
			_, _ = e.UnlockSkill(st, "touch_typing")
		case 9:
			e.UpgradeOffice(st)
		case 10:
			e.RecoverBurnout(st, now)
		default:
			e.RelaxBurnout(st, 1)
		}
		require.GreaterOrEqual(t, st.Currency, 0.0, "step %d", i)
		require.GreaterOrEqual(t, st.TechnicalDebt, 0.0, "step %d", i)
	}
}
