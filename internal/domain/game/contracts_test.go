package game_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/devempire-go/internal/domain/catalog"
	"github.com/andrescamacho/devempire-go/internal/domain/contract"
	"github.com/andrescamacho/devempire-go/internal/domain/shared"
)

func TestNewState_FullContractPool(t *testing.T) {
	e := newEngine(t)
	st := newState(t, e)

	assert.Equal(t, []string{"contract-1", "contract-2", "contract-3"}, contractIDs(st))
	assert.Equal(t, 175.0, st.AvailableContracts[0].LOCRequired())
}

func TestAcceptContract(t *testing.T) {
	t.Run("unknown id", func(t *testing.T) {
		e := newEngine(t)
		st := newState(t, e)

		applied, err := e.AcceptContract(st, "missing")

		assert.False(t, applied)
		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.Empty(t, st.ActiveContractID)
	})

	t.Run("one active contract at a time", func(t *testing.T) {
		e := newEngine(t)
		st := newState(t, e)

		first, err := e.AcceptContract(st, "contract-1")
		require.NoError(t, err)
		second, err := e.AcceptContract(st, "contract-2")
		require.NoError(t, err)

		assert.True(t, first)
		assert.False(t, second)
		assert.Equal(t, "contract-1", st.ActiveContractID)
	})

	t.Run("building requirements", func(t *testing.T) {
		// Arrange
		e := newEngine(t)
		st := newState(t, e)
		c, err := contract.NewContract("gated", "Port to Rust for Bank", "Client: Bank. Memory safety.", 500,
			[]contract.Requirement{{Building: catalog.BuildingJuniorDev, Count: 1}},
			contract.Reward{Currency: 750}, contract.DifficultyEasy, contract.RarityCommon)
		require.NoError(t, err)
		st.AvailableContracts[2] = c

		// Act + Assert
		applied, err := e.AcceptContract(st, "gated")
		require.NoError(t, err)
		assert.False(t, applied)

		st.Buildings[catalog.BuildingJuniorDev] = 1
		applied, err = e.AcceptContract(st, "gated")
		require.NoError(t, err)
		assert.True(t, applied)
	})
}

func TestCancelContract_DiscardsProgress(t *testing.T) {
	// Arrange
	e := newEngine(t)
	st := newState(t, e)
	_, err := e.AcceptContract(st, "contract-2")
	require.NoError(t, err)
	e.ManualInput(st, 50, epoch)

	// Act
	cancelled := e.CancelContract(st)

	// Assert
	assert.True(t, cancelled)
	assert.Empty(t, st.ActiveContractID)
	assert.Zero(t, st.ContractProgress)
	assert.Equal(t, 50.0, st.Currency, "no penalty")
	assert.Len(t, st.AvailableContracts, contract.PoolSize)
	assert.False(t, e.CancelContract(st))
}

func TestCompleteContract_Gate(t *testing.T) {
	// Arrange
	e := newEngine(t)
	st := newState(t, e)
	_, err := e.AcceptContract(st, "contract-1")
	require.NoError(t, err)
	e.ManualInput(st, 174, epoch)
	before := st.Clone()

	// Act
	completed := e.CompleteContract(st)

	// Assert
	assert.False(t, completed)
	assert.Equal(t, before, st)
}

func TestCompleteContract_PaysAndReplacesInPlace(t *testing.T) {
	// Arrange
	e := newEngine(t)
	st := newState(t, e)
	offer := st.AvailableContracts[1]
	_, err := e.AcceptContract(st, offer.ID())
	require.NoError(t, err)
	e.ManualInput(st, offer.LOCRequired(), epoch)
	currency := st.Currency
	lifetime := st.LifetimeCurrency

	// Act
	completed := e.CompleteContract(st)

	// Assert
	require.True(t, completed)
	assert.Equal(t, currency+offer.Reward().Currency, st.Currency)
	assert.Equal(t, lifetime, st.LifetimeCurrency, "contract rewards are not lifetime income")
	assert.Equal(t, []string{"contract-2"}, st.CompletedContracts)
	assert.Equal(t, 1, st.ContractsCompleted())
	assert.Equal(t, []string{"contract-1", "contract-4", "contract-3"}, contractIDs(st))
	assert.Empty(t, st.ActiveContractID)
	assert.Zero(t, st.ContractProgress)
}

func TestCompleteContract_SharesRaiseMultipliers(t *testing.T) {
	// Arrange
	e := newEngine(t)
	st := newState(t, e)
	st.Buildings[catalog.BuildingIntern] = 2
	e.Repair(st)
	mythic, err := contract.NewContract("mythic", "Rewrite the Kernel for Pear", "Client: Pear. Legacy code.", 10,
		nil, contract.Reward{Currency: 100, Shares: 2}, contract.DifficultyLegendary, contract.RarityMythic)
	require.NoError(t, err)
	st.AvailableContracts[0] = mythic
	_, err = e.AcceptContract(st, "mythic")
	require.NoError(t, err)
	e.ManualInput(st, 10, epoch)

	// Act
	require.True(t, e.CompleteContract(st))

	// Assert
	assert.Equal(t, 2.0, st.PrestigeCurrency)
	assert.InDelta(t, 1.2, st.ProductionRate, 1e-9)
	assert.InDelta(t, 1.2, st.ClickPower, 1e-9)
}

func TestGenerateContracts_KeepsActiveOffer(t *testing.T) {
	// Arrange
	e := newEngine(t)
	st := newState(t, e)
	_, err := e.AcceptContract(st, "contract-3")
	require.NoError(t, err)

	// Act
	e.GenerateContracts(st)

	// Assert
	assert.Equal(t, []string{"contract-3", "contract-4", "contract-5"}, contractIDs(st))
	assert.Equal(t, "contract-3", st.ActiveContractID)
}
