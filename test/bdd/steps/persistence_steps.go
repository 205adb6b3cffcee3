package steps

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"

	gameApp "github.com/andrescamacho/devempire-go/internal/application/game"
	gameCommands "github.com/andrescamacho/devempire-go/internal/application/game/commands"
	"github.com/andrescamacho/devempire-go/internal/application/setup"
	"github.com/andrescamacho/devempire-go/internal/domain/catalog"
)

func (gc *gameContext) iSaveTheGame() error {
	return gc.fixture.Session.Save(context.Background())
}

// iLoadTheGame restores the slot into a second session, as a restarted process would
func (gc *gameContext) iLoadTheGame() error {
	f := gc.fixture
	session, err := gameApp.LoadSession(context.Background(), f.Engine, f.Snapshots, f.Clock)
	if err != nil {
		return err
	}
	m, err := setup.NewHandlerRegistry(session, f.Transactions, f.Clock, nil).CreateConfiguredMediator()
	if err != nil {
		return err
	}
	gc.loaded = session
	gc.loadedMediator = m
	return nil
}

func (gc *gameContext) offlineProductionIsReconciled() error {
	if gc.loadedMediator == nil {
		return fmt.Errorf("no game was loaded")
	}
	_, err := gc.loadedMediator.Send(context.Background(), &gameCommands.ReconcileOfflineCommand{})
	return err
}

func (gc *gameContext) theLoadedCurrencyShouldBe(want float64) error {
	if gc.loaded == nil {
		return fmt.Errorf("no game was loaded")
	}
	return expectFloat("loaded currency", gc.loaded.Snapshot().Currency, want)
}

func (gc *gameContext) theLoadedGameShouldOwn(want int, id string) error {
	if gc.loaded == nil {
		return fmt.Errorf("no game was loaded")
	}
	if got := gc.loaded.Snapshot().Buildings[catalog.BuildingID(id)]; got != want {
		return fmt.Errorf("expected the loaded game to own %d %s, got %d", want, id, got)
	}
	return nil
}

func registerPersistenceSteps(sc *godog.ScenarioContext, gc *gameContext) {
	sc.Step(`^I save the game$`, gc.iSaveTheGame)
	sc.Step(`^I load the game$`, gc.iLoadTheGame)
	sc.Step(`^offline production is reconciled$`, gc.offlineProductionIsReconciled)
	sc.Step(`^the loaded currency should be (\d+(?:\.\d+)?)$`, gc.theLoadedCurrencyShouldBe)
	sc.Step(`^the loaded game should own (\d+) "([^"]*)"$`, gc.theLoadedGameShouldOwn)
}
