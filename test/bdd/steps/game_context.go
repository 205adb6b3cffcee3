package steps

import (
	"context"
	"fmt"
	"math"

	"github.com/cucumber/godog"

	gameApp "github.com/andrescamacho/devempire-go/internal/application/game"
	gameCommands "github.com/andrescamacho/devempire-go/internal/application/game/commands"
	"github.com/andrescamacho/devempire-go/internal/application/mediator"
	"github.com/andrescamacho/devempire-go/internal/domain/game"
	"github.com/andrescamacho/devempire-go/test/helpers"
)

const floatTolerance = 1e-6

// gameContext is shared by every DevEmpire step: one fully wired game per
// scenario, plus what the scenario remembers between steps.
type gameContext struct {
	fixture *helpers.GameFixture

	lastOutcome *gameApp.Outcome
	lastErr     error

	remembered    *game.State
	minCurrency   float64
	purchaseCosts []float64

	loaded         *gameApp.Session
	loadedMediator mediator.Mediator
}

func (gc *gameContext) reset() error {
	gc.fixture = nil
	gc.lastOutcome = nil
	gc.lastErr = nil
	gc.remembered = nil
	gc.minCurrency = 0
	gc.purchaseCosts = nil
	gc.loaded = nil
	gc.loadedMediator = nil
	return helpers.TruncateAllTables()
}

// start wires a new game whose engine replays draws
func (gc *gameContext) start(draws ...float64) error {
	f, err := helpers.NewGameFixture(helpers.SharedTestDB, draws...)
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}
	gc.fixture = f
	gc.minCurrency = f.State().Currency
	f.Session.Subscribe(func(out gameApp.Outcome) {
		gc.minCurrency = math.Min(gc.minCurrency, out.State.Currency)
	})
	return nil
}

// send dispatches a request and records its outcome. A handler error is
// returned so the step fails unless the scenario expects it.
func (gc *gameContext) send(request mediator.Request) error {
	resp, err := gc.fixture.Send(request)
	gc.lastErr = err
	if err != nil {
		return err
	}
	out, err := outcomeOf(resp)
	if err != nil {
		return err
	}
	gc.lastOutcome = out
	return nil
}

// sendExpectingFailure dispatches a request whose error the scenario asserts later
func (gc *gameContext) sendExpectingFailure(request mediator.Request) error {
	_ = gc.send(request)
	return nil
}

func (gc *gameContext) state() *game.State {
	return gc.fixture.State()
}

// outcomeOf unwraps the outcome every game command response carries
func outcomeOf(resp mediator.Response) (*gameApp.Outcome, error) {
	switch r := resp.(type) {
	case *gameCommands.ActionResponse:
		return r, nil
	case *gameCommands.AdvanceTimeResponse:
		return r.ActionResponse, nil
	case *gameCommands.SpawnBugResponse:
		return r.ActionResponse, nil
	case *gameCommands.ReconcileOfflineResponse:
		return r.ActionResponse, nil
	default:
		return nil, fmt.Errorf("unexpected response %T", resp)
	}
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= floatTolerance*math.Max(1, math.Abs(b))
}

func expectFloat(what string, got, want float64) error {
	if !approxEqual(got, want) {
		return fmt.Errorf("expected %s to be %g, got %g", what, want, got)
	}
	return nil
}

// InitializeGameScenario registers every DevEmpire step definition
func InitializeGameScenario(sc *godog.ScenarioContext) {
	gc := &gameContext{}

	sc.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, gc.reset()
	})

	registerGameSteps(sc, gc)
	registerLedgerSteps(sc, gc)
	registerPersistenceSteps(sc, gc)
}
