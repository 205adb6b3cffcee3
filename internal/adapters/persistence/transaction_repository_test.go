package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/devempire-go/internal/adapters/persistence"
	"github.com/andrescamacho/devempire-go/internal/domain/ledger"
	"github.com/andrescamacho/devempire-go/internal/domain/shared"
	"github.com/andrescamacho/devempire-go/test/helpers"
)

func newTransaction(t *testing.T, at time.Time, txType ledger.TransactionType, unit ledger.Unit, before, after float64) *ledger.Transaction {
	t.Helper()
	tx, err := ledger.NewTransaction(at, txType, unit, after-before, before, after, "test entry", map[string]interface{}{"quantity": 2}, "building", "intern")
	require.NoError(t, err)
	return tx
}

func TestTransactionRepository_CreateAndFindByID(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTransactionRepository(db)
	tx := newTransaction(t, epoch, ledger.TransactionTypeBuyBuilding, ledger.UnitLOC, 100, 85)

	// Act
	require.NoError(t, repo.Create(context.Background(), tx))
	found, err := repo.FindByID(context.Background(), tx.ID())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, tx.ID(), found.ID())
	assert.Equal(t, ledger.TransactionTypeBuyBuilding, found.TransactionType())
	assert.Equal(t, ledger.CategoryStaffing, found.Category())
	assert.Equal(t, ledger.UnitLOC, found.Unit())
	assert.Equal(t, -15.0, found.Amount())
	assert.Equal(t, 100.0, found.BalanceBefore())
	assert.Equal(t, 85.0, found.BalanceAfter())
	assert.Equal(t, "intern", found.RelatedEntityID())
	assert.Equal(t, float64(2), found.Metadata()["quantity"])
	assert.True(t, found.Timestamp().Equal(epoch))
}

func TestTransactionRepository_FindByIDNotFound(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTransactionRepository(db)

	// Act
	_, err := repo.FindByID(context.Background(), ledger.NewTransactionID())

	// Assert
	var notFound *ledger.ErrTransactionNotFound
	assert.ErrorAs(t, err, &notFound)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestTransactionRepository_FindFiltersAndOrders(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTransactionRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, newTransaction(t, epoch, ledger.TransactionTypeBuyBuilding, ledger.UnitLOC, 100, 85)))
	require.NoError(t, repo.Create(ctx, newTransaction(t, epoch.Add(time.Second), ledger.TransactionTypeContractReward, ledger.UnitLOC, 85, 385)))
	require.NoError(t, repo.Create(ctx, newTransaction(t, epoch.Add(2*time.Second), ledger.TransactionTypeContractReward, ledger.UnitShares, 0, 1)))

	category := ledger.CategoryContractRevenue
	shares := ledger.UnitShares

	// Act
	all, err := repo.Find(ctx, ledger.DefaultQueryOptions())
	require.NoError(t, err)
	revenue, err := repo.Find(ctx, ledger.QueryOptions{Category: &category, OrderBy: "timestamp ASC"})
	require.NoError(t, err)
	shareCount, err := repo.Count(ctx, ledger.QueryOptions{Unit: &shares})
	require.NoError(t, err)

	// Assert
	require.Len(t, all, 3)
	assert.Equal(t, ledger.UnitShares, all[0].Unit(), "newest first by default")
	require.Len(t, revenue, 2)
	assert.Equal(t, 300.0, revenue[0].Amount())
	assert.Equal(t, 1, shareCount)
}

func TestTransactionRepository_DateRangeAndPagination(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTransactionRepository(db)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		at := epoch.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, newTransaction(t, at, ledger.TransactionTypeBugBounty, ledger.UnitLOC, float64(i*100), float64(i*100+100))))
	}
	start := epoch.Add(time.Minute)
	end := epoch.Add(3 * time.Minute)

	// Act
	page, err := repo.Find(ctx, ledger.QueryOptions{StartDate: &start, EndDate: &end, Limit: 2, Offset: 1, OrderBy: "timestamp ASC"})
	require.NoError(t, err)
	total, err := repo.Count(ctx, ledger.QueryOptions{StartDate: &start, EndDate: &end})
	require.NoError(t, err)

	// Assert
	assert.Equal(t, 3, total)
	require.Len(t, page, 2)
	assert.Equal(t, 200.0, page[0].BalanceBefore())
	assert.Equal(t, 300.0, page[1].BalanceBefore())
}
