package helpers

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/andrescamacho/devempire-go/internal/adapters/persistence"
	gameApp "github.com/andrescamacho/devempire-go/internal/application/game"
	"github.com/andrescamacho/devempire-go/internal/application/mediator"
	"github.com/andrescamacho/devempire-go/internal/application/setup"
	"github.com/andrescamacho/devempire-go/internal/domain/catalog"
	"github.com/andrescamacho/devempire-go/internal/domain/contract"
	"github.com/andrescamacho/devempire-go/internal/domain/game"
	"github.com/andrescamacho/devempire-go/internal/domain/shared"
)

// Epoch is the wall clock every fixture starts at
var Epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// GameFixture is a fully wired game backed by a real database: the session,
// the configured mediator with every handler and both GORM repositories.
type GameFixture struct {
	Engine       *game.Engine
	Session      *gameApp.Session
	Mediator     mediator.Mediator
	Clock        *shared.MockClock
	Snapshots    *persistence.GormSnapshotRepository
	Transactions *persistence.GormTransactionRepository
}

// NewGameFixture builds a fresh game on db. The engine replays draws for its
// own rolls (hack checks, market steps, bug schedule); the contract pool is
// always contract-1, contract-2, ... from a fixed mid-range roll.
func NewGameFixture(db *gorm.DB, draws ...float64) (*GameFixture, error) {
	seq := 0
	gen, err := contract.NewGenerator(shared.NewFixedRandom(0.5), catalog.Default(),
		contract.WithIDFunc(func() string {
			seq++
			return fmt.Sprintf("contract-%d", seq)
		}))
	if err != nil {
		return nil, err
	}

	engine, err := game.NewEngine(catalog.Default(), shared.NewFixedRandom(draws...), game.WithContractGenerator(gen))
	if err != nil {
		return nil, err
	}

	clock := shared.NewMockClock(Epoch)
	snapshots := persistence.NewGormSnapshotRepository(db, persistence.DefaultSlot, clock)
	transactions := persistence.NewGormTransactionRepository(db)

	session := gameApp.NewSession(engine, engine.NewState(Epoch), clock, snapshots)
	m, err := setup.NewHandlerRegistry(session, transactions, clock, nil).CreateConfiguredMediator()
	if err != nil {
		return nil, err
	}

	return &GameFixture{
		Engine:       engine,
		Session:      session,
		Mediator:     m,
		Clock:        clock,
		Snapshots:    snapshots,
		Transactions: transactions,
	}, nil
}

// Seed mutates the live state directly, bypassing the game rules
func (f *GameFixture) Seed(fn func(st *game.State)) error {
	_, err := f.Session.Apply(context.Background(), func(st *game.State, _ time.Time) (bool, error) {
		fn(st)
		return true, nil
	})
	return err
}

// Send dispatches a request through the configured mediator
func (f *GameFixture) Send(request mediator.Request) (mediator.Response, error) {
	return f.Mediator.Send(context.Background(), request)
}

// State returns a copy of the live state
func (f *GameFixture) State() *game.State {
	return f.Session.Snapshot()
}
