package steps

import (
	"errors"
	"fmt"
	"time"

	"github.com/cucumber/godog"

	gameCommands "github.com/andrescamacho/devempire-go/internal/application/game/commands"
	"github.com/andrescamacho/devempire-go/internal/domain/burnout"
	"github.com/andrescamacho/devempire-go/internal/domain/catalog"
	"github.com/andrescamacho/devempire-go/internal/domain/game"
	"github.com/andrescamacho/devempire-go/internal/domain/shared"
)

// Setup steps

func (gc *gameContext) aNewGame() error {
	return gc.start()
}

func (gc *gameContext) aNewGameWhoseMarketRolls(roll float64) error {
	return gc.start(roll)
}

func (gc *gameContext) theCurrencyIs(amount float64) error {
	return gc.fixture.Seed(func(st *game.State) { st.Currency = amount })
}

func (gc *gameContext) theLifetimeCurrencyIs(amount float64) error {
	return gc.fixture.Seed(func(st *game.State) { st.LifetimeCurrency = amount })
}

func (gc *gameContext) theProductionRateIs(rate float64) error {
	return gc.fixture.Seed(func(st *game.State) { st.ProductionRate = rate })
}

func (gc *gameContext) theTechnicalDebtIs(debt float64) error {
	return gc.fixture.Seed(func(st *game.State) { st.TechnicalDebt = debt })
}

func (gc *gameContext) theSharesAre(shares float64) error {
	return gc.fixture.Seed(func(st *game.State) { st.PrestigeCurrency = shares })
}

func (gc *gameContext) burnoutIsOverloaded() error {
	now := gc.fixture.Clock.Now()
	return gc.fixture.Seed(func(st *game.State) {
		st.Burnout = burnout.Reconstruct(burnout.MaxLevel, true, now.Add(burnout.RecoveryCooldown), now)
	})
}

func (gc *gameContext) iRememberTheBalances() error {
	gc.remembered = gc.state()
	return nil
}

func (gc *gameContext) secondsPass(seconds int) error {
	gc.fixture.Clock.Advance(time.Duration(seconds) * time.Second)
	return nil
}

// Action steps

func (gc *gameContext) iTypeTimes(n int) error {
	for i := 0; i < n; i++ {
		if err := gc.send(&gameCommands.ManualInputCommand{}); err != nil {
			return err
		}
	}
	return nil
}

func (gc *gameContext) iRelaxBurnoutTimes(n int) error {
	for i := 0; i < n; i++ {
		if err := gc.send(&gameCommands.RelaxBurnoutCommand{}); err != nil {
			return err
		}
	}
	return nil
}

func (gc *gameContext) burnoutRecoveryRuns() error {
	return gc.send(&gameCommands.RecoverBurnoutCommand{})
}

func (gc *gameContext) iBuyTheBuilding(id string) error {
	return gc.iBuyTheBuildingTimes(id, 1)
}

func (gc *gameContext) iBuyTheBuildingTimes(id string, n int) error {
	for i := 0; i < n; i++ {
		cost, err := gc.fixture.Engine.BuildingCost(gc.state(), catalog.BuildingID(id))
		if err != nil {
			return err
		}
		if err := gc.send(&gameCommands.BuyBuildingCommand{BuildingID: id}); err != nil {
			return err
		}
		if gc.lastOutcome.Applied {
			gc.purchaseCosts = append(gc.purchaseCosts, cost)
		}
	}
	return nil
}

func (gc *gameContext) iTryToBuyTheBuilding(id string) error {
	return gc.sendExpectingFailure(&gameCommands.BuyBuildingCommand{BuildingID: id})
}

func (gc *gameContext) iBuyTheUpgrade(id string) error {
	return gc.send(&gameCommands.BuyUpgradeCommand{UpgradeID: id})
}

func (gc *gameContext) iBuyTheHardware(id string) error {
	return gc.send(&gameCommands.BuyHardwareCommand{HardwareID: id})
}

func (gc *gameContext) iTakeAShortcut() error {
	return gc.send(&gameCommands.TakeShortcutCommand{})
}

func (gc *gameContext) iPayOfTechnicalDebt(amount float64) error {
	return gc.send(&gameCommands.PayDebtCommand{Amount: amount})
}

func (gc *gameContext) iAcceptTheContract(id string) error {
	return gc.send(&gameCommands.AcceptContractCommand{ContractID: id})
}

func (gc *gameContext) iCompleteTheActiveContract() error {
	return gc.send(&gameCommands.CompleteContractCommand{})
}

func (gc *gameContext) iCancelTheActiveContract() error {
	return gc.send(&gameCommands.CancelContractCommand{})
}

func (gc *gameContext) theActiveContractWorkloadIsCovered() error {
	active, ok := gc.state().ActiveContract()
	if !ok {
		return fmt.Errorf("no contract is active")
	}
	return gc.fixture.Seed(func(st *game.State) { st.ContractProgress = active.LOCRequired() })
}

func (gc *gameContext) iPrestige() error {
	return gc.send(&gameCommands.PrestigeCommand{})
}

func (gc *gameContext) theMarketUpdates() error {
	return gc.send(&gameCommands.UpdateMarketCommand{})
}

func (gc *gameContext) iBuyOfTheStock(quantity int, id string) error {
	return gc.send(&gameCommands.BuyStockCommand{StockID: id, Quantity: quantity})
}

func (gc *gameContext) iSellOfTheStock(quantity int, id string) error {
	return gc.send(&gameCommands.SellStockCommand{StockID: id, Quantity: quantity})
}

// Assertion steps

func (gc *gameContext) theLastActionShouldHaveApplied() error {
	if gc.lastOutcome == nil || !gc.lastOutcome.Applied {
		return fmt.Errorf("expected the last action to apply")
	}
	return nil
}

func (gc *gameContext) theLastActionShouldNotHaveApplied() error {
	if gc.lastOutcome == nil {
		return fmt.Errorf("no action was sent")
	}
	if gc.lastOutcome.Applied {
		return fmt.Errorf("expected the last action to be refused")
	}
	return nil
}

func (gc *gameContext) theRequestShouldFailWithANotFoundError() error {
	if !errors.Is(gc.lastErr, shared.ErrNotFound) {
		return fmt.Errorf("expected a not found error, got %v", gc.lastErr)
	}
	return nil
}

func (gc *gameContext) theCurrencyShouldBe(want float64) error {
	return expectFloat("currency", gc.state().Currency, want)
}

func (gc *gameContext) theCurrencyShouldBeUnchanged() error {
	return expectFloat("currency", gc.state().Currency, gc.remembered.Currency)
}

func (gc *gameContext) theClickPowerShouldBe(want float64) error {
	return expectFloat("click power", gc.state().ClickPower, want)
}

func (gc *gameContext) theClickPowerShouldBeUnchanged() error {
	return expectFloat("click power", gc.state().ClickPower, gc.remembered.ClickPower)
}

func (gc *gameContext) theProductionRateShouldBe(want float64) error {
	return expectFloat("production rate", gc.state().ProductionRate, want)
}

func (gc *gameContext) theTechnicalDebtShouldBe(want float64) error {
	return expectFloat("technical debt", gc.state().TechnicalDebt, want)
}

func (gc *gameContext) theSharesShouldBe(want float64) error {
	return expectFloat("shares", gc.state().PrestigeCurrency, want)
}

func (gc *gameContext) theLifetimeCurrencyShouldBeUnchanged() error {
	return expectFloat("lifetime currency", gc.state().LifetimeCurrency, gc.remembered.LifetimeCurrency)
}

func (gc *gameContext) theManualActionCountShouldBe(want int) error {
	if got := gc.state().ManualActions; got != want {
		return fmt.Errorf("expected %d manual actions, got %d", want, got)
	}
	return nil
}

func (gc *gameContext) theBurnoutLevelShouldBe(want float64) error {
	return expectFloat("burnout level", gc.state().Burnout.Level(), want)
}

func (gc *gameContext) burnoutShouldBeOverloaded() error {
	if !gc.state().Burnout.Overloaded() {
		return fmt.Errorf("expected burnout to be overloaded")
	}
	return nil
}

func (gc *gameContext) burnoutShouldBeNormal() error {
	if status := gc.state().Burnout.Status(); status != burnout.StatusNormal {
		return fmt.Errorf("expected burnout to be %s, got %s", burnout.StatusNormal, status)
	}
	return nil
}

func (gc *gameContext) iShouldOwn(want int, id string) error {
	if got := gc.state().Buildings[catalog.BuildingID(id)]; got != want {
		return fmt.Errorf("expected to own %d %s, got %d", want, id, got)
	}
	return nil
}

func (gc *gameContext) theNextShouldCost(id string, want float64) error {
	cost, err := gc.fixture.Engine.BuildingCost(gc.state(), catalog.BuildingID(id))
	if err != nil {
		return err
	}
	return expectFloat("next "+id+" cost", cost, want)
}

func (gc *gameContext) everyPurchaseShouldHaveCostMoreThanThePreviousOne(id string) error {
	if len(gc.purchaseCosts) < 2 {
		return fmt.Errorf("expected several %s purchases, got %d", id, len(gc.purchaseCosts))
	}
	for i := 1; i < len(gc.purchaseCosts); i++ {
		if gc.purchaseCosts[i] <= gc.purchaseCosts[i-1] {
			return fmt.Errorf("purchase %d of %s cost %g, not more than %g",
				i+1, id, gc.purchaseCosts[i], gc.purchaseCosts[i-1])
		}
	}
	return nil
}

func (gc *gameContext) theCurrencyShouldNeverHaveBeenNegative() error {
	if gc.minCurrency < 0 {
		return fmt.Errorf("currency dipped to %g", gc.minCurrency)
	}
	return nil
}

func (gc *gameContext) iShouldOwnNoBuildingsUpgradesOrHardware() error {
	st := gc.state()
	if st.Personnel() != 0 || len(st.Upgrades) != 0 || len(st.Hardware) != 0 {
		return fmt.Errorf("expected an empty run, got %d staff, %d upgrades and %d hardware",
			st.Personnel(), len(st.Upgrades), len(st.Hardware))
	}
	return nil
}

func (gc *gameContext) everyAchievementUnlockedBeforeShouldStillBeUnlocked() error {
	st := gc.state()
	for _, id := range gc.remembered.Achievements.Sorted() {
		if !st.Achievements.Has(id) {
			return fmt.Errorf("achievement %s was lost", id)
		}
	}
	return nil
}

func (gc *gameContext) thereShouldBeContractsOnOffer(want int) error {
	if got := len(gc.state().AvailableContracts); got != want {
		return fmt.Errorf("expected %d contracts on offer, got %d", want, got)
	}
	return nil
}

func (gc *gameContext) contractOnOffer(id string) bool {
	for _, c := range gc.state().AvailableContracts {
		if c.ID() == id {
			return true
		}
	}
	return false
}

func (gc *gameContext) theContractShouldBeOnOffer(id string) error {
	if !gc.contractOnOffer(id) {
		return fmt.Errorf("expected contract %s on offer", id)
	}
	return nil
}

func (gc *gameContext) theContractShouldNotBeOnOffer(id string) error {
	if gc.contractOnOffer(id) {
		return fmt.Errorf("expected contract %s to have left the pool", id)
	}
	return nil
}

func (gc *gameContext) theActiveContractShouldBe(id string) error {
	if got := gc.state().ActiveContractID; got != id {
		return fmt.Errorf("expected active contract %s, got %q", id, got)
	}
	return nil
}

func (gc *gameContext) noContractShouldBeActive() error {
	return gc.theActiveContractShouldBe("")
}

func (gc *gameContext) theContractProgressShouldBe(want float64) error {
	return expectFloat("contract progress", gc.state().ContractProgress, want)
}

func (gc *gameContext) theCompletedContractCountShouldBe(want int) error {
	if got := gc.state().ContractsCompleted(); got != want {
		return fmt.Errorf("expected %d completed contracts, got %d", want, got)
	}
	return nil
}

func (gc *gameContext) thePriceOfShouldBeBetween(id string, low, high float64) error {
	price := gc.state().StockPrices[catalog.StockID(id)]
	if price < low-floatTolerance || price > high+floatTolerance {
		return fmt.Errorf("expected %s between %g and %g, got %g", id, low, high, price)
	}
	return nil
}

func (gc *gameContext) iShouldHoldOfTheStock(want int, id string) error {
	if got := gc.state().OwnedStocks[catalog.StockID(id)]; got != want {
		return fmt.Errorf("expected to hold %d %s, got %d", want, id, got)
	}
	return nil
}

func registerGameSteps(sc *godog.ScenarioContext, gc *gameContext) {
	// Setup steps
	sc.Step(`^a new game$`, gc.aNewGame)
	sc.Step(`^a new game whose market rolls (\d+(?:\.\d+)?)$`, gc.aNewGameWhoseMarketRolls)
	sc.Step(`^the currency is (\d+(?:\.\d+)?)$`, gc.theCurrencyIs)
	sc.Step(`^the lifetime currency is (\d+(?:\.\d+)?)$`, gc.theLifetimeCurrencyIs)
	sc.Step(`^the production rate is (\d+(?:\.\d+)?)$`, gc.theProductionRateIs)
	sc.Step(`^the technical debt is (\d+(?:\.\d+)?)$`, gc.theTechnicalDebtIs)
	sc.Step(`^the shares are (\d+(?:\.\d+)?)$`, gc.theSharesAre)
	sc.Step(`^burnout is overloaded$`, gc.burnoutIsOverloaded)
	sc.Step(`^I remember the balances$`, gc.iRememberTheBalances)
	sc.Step(`^(\d+) seconds pass$`, gc.secondsPass)

	// Action steps
	sc.Step(`^I type (\d+) times$`, gc.iTypeTimes)
	sc.Step(`^I relax burnout (\d+) times$`, gc.iRelaxBurnoutTimes)
	sc.Step(`^burnout recovery runs$`, gc.burnoutRecoveryRuns)
	sc.Step(`^I buy the building "([^"]*)"$`, gc.iBuyTheBuilding)
	sc.Step(`^I buy the building "([^"]*)" (\d+) times$`, gc.iBuyTheBuildingTimes)
	sc.Step(`^I try to buy the building "([^"]*)"$`, gc.iTryToBuyTheBuilding)
	sc.Step(`^I buy the upgrade "([^"]*)"$`, gc.iBuyTheUpgrade)
	sc.Step(`^I buy the hardware "([^"]*)"$`, gc.iBuyTheHardware)
	sc.Step(`^I take a shortcut$`, gc.iTakeAShortcut)
	sc.Step(`^I pay (\d+(?:\.\d+)?) of technical debt$`, gc.iPayOfTechnicalDebt)
	sc.Step(`^I accept the contract "([^"]*)"$`, gc.iAcceptTheContract)
	sc.Step(`^I complete the active contract$`, gc.iCompleteTheActiveContract)
	sc.Step(`^I cancel the active contract$`, gc.iCancelTheActiveContract)
	sc.Step(`^the active contract workload is covered$`, gc.theActiveContractWorkloadIsCovered)
	sc.Step(`^I prestige$`, gc.iPrestige)
	sc.Step(`^the market updates$`, gc.theMarketUpdates)
	sc.Step(`^I buy (\d+) of the stock "([^"]*)"$`, gc.iBuyOfTheStock)
	sc.Step(`^I sell (\d+) of the stock "([^"]*)"$`, gc.iSellOfTheStock)

	// Assertion steps
	sc.Step(`^the last action should have applied$`, gc.theLastActionShouldHaveApplied)
	sc.Step(`^the last action should not have applied$`, gc.theLastActionShouldNotHaveApplied)
	sc.Step(`^the request should fail with a not found error$`, gc.theRequestShouldFailWithANotFoundError)
	sc.Step(`^the currency should be (\d+(?:\.\d+)?)$`, gc.theCurrencyShouldBe)
	sc.Step(`^the currency should be unchanged$`, gc.theCurrencyShouldBeUnchanged)
	sc.Step(`^the click power should be (\d+(?:\.\d+)?)$`, gc.theClickPowerShouldBe)
	sc.Step(`^the click power should be unchanged$`, gc.theClickPowerShouldBeUnchanged)
	sc.Step(`^the production rate should be (\d+(?:\.\d+)?)$`, gc.theProductionRateShouldBe)
	sc.Step(`^the technical debt should be (\d+(?:\.\d+)?)$`, gc.theTechnicalDebtShouldBe)
	sc.Step(`^the shares should be (\d+(?:\.\d+)?)$`, gc.theSharesShouldBe)
	sc.Step(`^the lifetime currency should be unchanged$`, gc.theLifetimeCurrencyShouldBeUnchanged)
	sc.Step(`^the manual action count should be (\d+)$`, gc.theManualActionCountShouldBe)
	sc.Step(`^the burnout level should be (\d+(?:\.\d+)?)$`, gc.theBurnoutLevelShouldBe)
	sc.Step(`^burnout should be overloaded$`, gc.burnoutShouldBeOverloaded)
	sc.Step(`^burnout should be normal$`, gc.burnoutShouldBeNormal)
	sc.Step(`^I should own (\d+) "([^"]*)"$`, gc.iShouldOwn)
	sc.Step(`^the next "([^"]*)" should cost (\d+(?:\.\d+)?)$`, gc.theNextShouldCost)
	sc.Step(`^every "([^"]*)" purchase should have cost more than the previous one$`, gc.everyPurchaseShouldHaveCostMoreThanThePreviousOne)
	sc.Step(`^the currency should never have been negative$`, gc.theCurrencyShouldNeverHaveBeenNegative)
	sc.Step(`^I should own no buildings, upgrades or hardware$`, gc.iShouldOwnNoBuildingsUpgradesOrHardware)
	sc.Step(`^every achievement unlocked before should still be unlocked$`, gc.everyAchievementUnlockedBeforeShouldStillBeUnlocked)
	sc.Step(`^there should be (\d+) contracts on offer$`, gc.thereShouldBeContractsOnOffer)
	sc.Step(`^the contract "([^"]*)" should be on offer$`, gc.theContractShouldBeOnOffer)
	sc.Step(`^the contract "([^"]*)" should not be on offer$`, gc.theContractShouldNotBeOnOffer)
	sc.Step(`^the active contract should be "([^"]*)"$`, gc.theActiveContractShouldBe)
	sc.Step(`^no contract should be active$`, gc.noContractShouldBeActive)
	sc.Step(`^the contract progress should be (\d+(?:\.\d+)?)$`, gc.theContractProgressShouldBe)
	sc.Step(`^the completed contract count should be (\d+)$`, gc.theCompletedContractCountShouldBe)
	sc.Step(`^the price of "([^"]*)" should be between (\d+(?:\.\d+)?) and (\d+(?:\.\d+)?)$`, gc.thePriceOfShouldBeBetween)
	sc.Step(`^I should hold (\d+) of the stock "([^"]*)"$`, gc.iShouldHoldOfTheStock)
}
