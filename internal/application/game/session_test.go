package game_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gameApp "github.com/andrescamacho/devempire-go/internal/application/game"
	"github.com/andrescamacho/devempire-go/internal/domain/catalog"
	"github.com/andrescamacho/devempire-go/internal/domain/game"
	"github.com/andrescamacho/devempire-go/internal/domain/shared"
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

type memoryRepo struct {
	saved   *game.State
	loadErr error
	saves   int
}

func (r *memoryRepo) Load(context.Context) (*game.State, error) {
	if r.loadErr != nil {
		return nil, r.loadErr
	}
	if r.saved == nil {
		return nil, game.ErrNoSnapshot
	}
	return r.saved.Clone(), nil
}

func (r *memoryRepo) Save(_ context.Context, st *game.State) error {
	r.saved = st.Clone()
	r.saves++
	return nil
}

func newEngine(t *testing.T) *game.Engine {
	t.Helper()
	e, err := game.NewEngine(catalog.Default(), shared.NewFixedRandom(0.5))
	require.NoError(t, err)
	return e
}

func TestSession_ApplyEvaluatesAchievementsAndStampsTime(t *testing.T) {
	// Arrange
	engine := newEngine(t)
	clock := shared.NewMockClock(epoch)
	session := gameApp.NewSession(engine, engine.NewState(epoch), clock, nil)
	clock.Advance(time.Second)

	// Act
	out, err := session.Apply(context.Background(), func(st *game.State, now time.Time) (bool, error) {
		return engine.ManualInput(st, 10, now), nil
	})

	// Assert
	require.NoError(t, err)
	assert.True(t, out.Applied)
	assert.Equal(t, []catalog.AchievementID{"first_line"}, out.Unlocked)
	assert.Equal(t, epoch.Add(time.Second), out.State.LastUpdate)
}

func TestSession_OutcomeIsAPrivateCopy(t *testing.T) {
	// Arrange
	engine := newEngine(t)
	session := gameApp.NewSession(engine, engine.NewState(epoch), shared.NewMockClock(epoch), nil)

	// Act
	out, err := session.Apply(context.Background(), func(st *game.State, _ time.Time) (bool, error) {
		st.Currency = 50
		return true, nil
	})
	require.NoError(t, err)
	out.State.Currency = 1e9
	out.State.Buildings[catalog.BuildingIntern] = 99

	// Assert
	snapshot := session.Snapshot()
	assert.Equal(t, 50.0, snapshot.Currency)
	assert.Zero(t, snapshot.Buildings[catalog.BuildingIntern])
}

func TestSession_ApplyErrorSkipsObservers(t *testing.T) {
	// Arrange
	engine := newEngine(t)
	session := gameApp.NewSession(engine, engine.NewState(epoch), shared.NewMockClock(epoch), nil)
	var seen []gameApp.Outcome
	session.Subscribe(func(o gameApp.Outcome) { seen = append(seen, o) })

	// Act
	_, failed := session.Apply(context.Background(), func(st *game.State, _ time.Time) (bool, error) {
		return engine.BuyBuilding(st, "quantum_team")
	})
	_, ok := session.Apply(context.Background(), func(st *game.State, _ time.Time) (bool, error) {
		return false, nil
	})

	// Assert
	assert.ErrorIs(t, failed, shared.ErrNotFound)
	require.NoError(t, ok)
	require.Len(t, seen, 1)
	assert.False(t, seen[0].Applied)
}

func TestLoadSession(t *testing.T) {
	t.Run("fresh game when nothing is saved", func(t *testing.T) {
		session, err := gameApp.LoadSession(context.Background(), newEngine(t), &memoryRepo{}, shared.NewMockClock(epoch))

		require.NoError(t, err)
		st := session.Snapshot()
		assert.Zero(t, st.Currency)
		assert.Len(t, st.AvailableContracts, 3)
		assert.Equal(t, epoch, st.SessionStart)
	})

	t.Run("repairs a saved game", func(t *testing.T) {
		// Arrange
		engine := newEngine(t)
		saved := engine.NewState(epoch)
		saved.Buildings[catalog.BuildingIntern] = 4
		saved.ProductionRate = 0
		delete(saved.StockPrices, "pear")
		repo := &memoryRepo{saved: saved}

		// Act
		session, err := gameApp.LoadSession(context.Background(), engine, repo, shared.NewMockClock(epoch))

		// Assert
		require.NoError(t, err)
		st := session.Snapshot()
		assert.InDelta(t, 2.0, st.ProductionRate, 1e-9)
		assert.Equal(t, 500.0, st.StockPrices["pear"])
	})

	t.Run("load failure", func(t *testing.T) {
		repo := &memoryRepo{loadErr: errors.New("disk on fire")}

		_, err := gameApp.LoadSession(context.Background(), newEngine(t), repo, shared.NewMockClock(epoch))

		assert.ErrorContains(t, err, "disk on fire")
	})
}

func TestSession_Save(t *testing.T) {
	// Arrange
	engine := newEngine(t)
	repo := &memoryRepo{}
	session := gameApp.NewSession(engine, engine.NewState(epoch), shared.NewMockClock(epoch), repo)
	_, err := session.Apply(context.Background(), func(st *game.State, _ time.Time) (bool, error) {
		st.Currency = 42
		return true, nil
	})
	require.NoError(t, err)

	// Act
	require.NoError(t, session.Save(context.Background()))

	// Assert
	assert.Equal(t, 1, repo.saves)
	assert.Equal(t, 42.0, repo.saved.Currency)
}

func TestNewStateView(t *testing.T) {
	// Arrange
	engine := newEngine(t)
	st := engine.NewState(epoch)
	st.Buildings[catalog.BuildingIntern] = 2
	st.LifetimeCurrency = 4_000_000
	st.PrestigeCurrency = 1
	st.ActiveContractID = st.AvailableContracts[1].ID()

	// Act
	view := gameApp.NewStateView(st, engine.Catalog())

	// Assert
	assert.Equal(t, 1.0, view.PrestigeGain)
	assert.Equal(t, 2, view.Office.Personnel)
	assert.Equal(t, "Garage Startup", view.Office.Name)
	assert.Equal(t, "NORMAL", view.Burnout.Status)
	require.Len(t, view.Contracts, 3)
	assert.True(t, view.Contracts[1].Active)
	assert.False(t, view.Contracts[0].Active)
}
