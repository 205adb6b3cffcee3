package steps

import (
	"fmt"

	"github.com/cucumber/godog"

	ledgerQueries "github.com/andrescamacho/devempire-go/internal/application/ledger/queries"
)

func (gc *gameContext) transactions() (*ledgerQueries.GetTransactionsResponse, error) {
	resp, err := gc.fixture.Send(&ledgerQueries.GetTransactionsQuery{Limit: 100, OrderBy: "timestamp DESC"})
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	return resp.(*ledgerQueries.GetTransactionsResponse), nil
}

func (gc *gameContext) latestTransaction() (*ledgerQueries.TransactionDTO, error) {
	result, err := gc.transactions()
	if err != nil {
		return nil, err
	}
	if len(result.Transactions) == 0 {
		return nil, fmt.Errorf("the ledger is empty")
	}
	return result.Transactions[0], nil
}

func (gc *gameContext) theLedgerShouldHoldTransactions(want int) error {
	result, err := gc.transactions()
	if err != nil {
		return err
	}
	if result.Total != want {
		return fmt.Errorf("expected %d transactions, got %d", want, result.Total)
	}
	return nil
}

func (gc *gameContext) theLatestTransactionShouldBe(txType, category string, amount float64, unit string) error {
	tx, err := gc.latestTransaction()
	if err != nil {
		return err
	}
	if tx.Type != txType || tx.Category != category || tx.Unit != unit {
		return fmt.Errorf("expected a %s in %s of %s, got a %s in %s of %s",
			txType, category, unit, tx.Type, tx.Category, tx.Unit)
	}
	return expectFloat("transaction amount", tx.Amount, amount)
}

func (gc *gameContext) theLatestTransactionShouldMoveTheBalance(before, after float64) error {
	tx, err := gc.latestTransaction()
	if err != nil {
		return err
	}
	if err := expectFloat("balance before", tx.BalanceBefore, before); err != nil {
		return err
	}
	return expectFloat("balance after", tx.BalanceAfter, after)
}

func (gc *gameContext) cashFlow(category, unit string) (*ledgerQueries.CategoryCashFlow, error) {
	resp, err := gc.fixture.Send(&ledgerQueries.GetCashFlowQuery{})
	if err != nil {
		return nil, fmt.Errorf("failed to generate cash flow: %w", err)
	}
	for _, flow := range resp.(*ledgerQueries.GetCashFlowResponse).Flows {
		if flow.Category == category && flow.Unit == unit {
			return flow, nil
		}
	}
	return nil, fmt.Errorf("no %s cash flow in %s", category, unit)
}

func (gc *gameContext) theCashFlowShouldHaveTransactions(category, unit string, want int) error {
	flow, err := gc.cashFlow(category, unit)
	if err != nil {
		return err
	}
	if flow.Transactions != want {
		return fmt.Errorf("expected %d %s transactions, got %d", want, category, flow.Transactions)
	}
	return nil
}

func (gc *gameContext) theCashFlowShouldHaveAnOutflowOf(category, unit string, want float64) error {
	flow, err := gc.cashFlow(category, unit)
	if err != nil {
		return err
	}
	return expectFloat(category+" outflow", flow.TotalOutflow, want)
}

func registerLedgerSteps(sc *godog.ScenarioContext, gc *gameContext) {
	sc.Step(`^the ledger should hold (\d+) transactions?$`, gc.theLedgerShouldHoldTransactions)
	sc.Step(`^the latest transaction should be a "([^"]*)" in "([^"]*)" of (-?\d+(?:\.\d+)?) (LOC|SHARES)$`, gc.theLatestTransactionShouldBe)
	sc.Step(`^the latest transaction should move the balance from (\d+(?:\.\d+)?) to (\d+(?:\.\d+)?)$`, gc.theLatestTransactionShouldMoveTheBalance)
	sc.Step(`^the "([^"]*)" cash flow in (LOC|SHARES) should have (\d+) transactions$`, gc.theCashFlowShouldHaveTransactions)
	sc.Step(`^the "([^"]*)" cash flow in (LOC|SHARES) should have an outflow of (\d+(?:\.\d+)?)$`, gc.theCashFlowShouldHaveAnOutflowOf)
}
