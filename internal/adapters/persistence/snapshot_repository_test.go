package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/devempire-go/internal/adapters/persistence"
	"github.com/andrescamacho/devempire-go/internal/domain/game"
	"github.com/andrescamacho/devempire-go/internal/domain/shared"
	"github.com/andrescamacho/devempire-go/test/helpers"
)

func TestSnapshotRepository_LoadEmptySlot(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormSnapshotRepository(db, "", shared.NewMockClock(epoch))

	// Act
	st, err := repo.Load(context.Background())

	// Assert
	assert.Nil(t, st)
	assert.ErrorIs(t, err, game.ErrNoSnapshot)
	assert.Equal(t, persistence.DefaultSlot, repo.Slot())
}

func TestSnapshotRepository_SaveAndLoad(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(epoch)
	repo := persistence.NewGormSnapshotRepository(db, "main", clock)
	st := playedState(t)

	// Act
	require.NoError(t, repo.Save(context.Background(), st))
	got, err := repo.Load(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, st.Currency, got.Currency)
	assert.Equal(t, st.Buildings, got.Buildings)
	assert.Equal(t, st.ActiveContractID, got.ActiveContractID)
}

func TestSnapshotRepository_SaveOverwritesSlot(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(epoch)
	repo := persistence.NewGormSnapshotRepository(db, "main", clock)
	st := playedState(t)
	require.NoError(t, repo.Save(context.Background(), st))

	st.Currency = 1
	clock.Advance(time.Minute)

	// Act
	require.NoError(t, repo.Save(context.Background(), st))

	// Assert
	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.Currency)

	var rows int64
	require.NoError(t, db.Model(&persistence.SnapshotModel{}).Count(&rows).Error)
	assert.Equal(t, int64(1), rows)

	info, err := repo.Info(context.Background())
	require.NoError(t, err)
	assert.True(t, info.UpdatedAt.Equal(epoch.Add(time.Minute)))
	assert.Equal(t, persistence.SnapshotFormatVersion, info.FormatVersion)
	assert.Positive(t, info.SizeBytes)
}

func TestSnapshotRepository_SlotsAreIndependent(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(epoch)
	first := persistence.NewGormSnapshotRepository(db, "first", clock)
	second := persistence.NewGormSnapshotRepository(db, "second", clock)
	require.NoError(t, first.Save(context.Background(), playedState(t)))

	// Act
	_, err := second.Load(context.Background())

	// Assert
	assert.ErrorIs(t, err, game.ErrNoSnapshot)
}

func TestSnapshotRepository_CorruptRow(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormSnapshotRepository(db, "main", shared.NewMockClock(epoch))
	require.NoError(t, repo.Save(context.Background(), playedState(t)))
	require.NoError(t, db.Model(&persistence.SnapshotModel{}).
		Where("slot = ?", "main").
		Update("checksum", "deadbeef").Error)

	// Act
	_, err := repo.Load(context.Background())

	// Assert
	assert.ErrorIs(t, err, persistence.ErrCorruptSnapshot)
}

func TestSnapshotRepository_Delete(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormSnapshotRepository(db, "main", shared.NewMockClock(epoch))
	require.NoError(t, repo.Save(context.Background(), playedState(t)))

	// Act
	require.NoError(t, repo.Delete(context.Background()))

	// Assert
	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, game.ErrNoSnapshot)
	assert.NoError(t, repo.Delete(context.Background()))
}
