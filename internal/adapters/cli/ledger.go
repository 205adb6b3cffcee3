package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/text/message"

	"github.com/andrescamacho/devempire-go/internal/adapters/persistence"
	"github.com/andrescamacho/devempire-go/internal/application/ledger/queries"
	"github.com/andrescamacho/devempire-go/internal/application/mediator"
	"github.com/andrescamacho/devempire-go/internal/application/setup"
	"github.com/andrescamacho/devempire-go/internal/domain/shared"
	"github.com/andrescamacho/devempire-go/internal/infrastructure/database"
)

// NewLedgerCommand creates the ledger command with subcommands
func NewLedgerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Currency ledger operations",
		Long: `View the journal of every LOC and share movement.

Every purchase, contract reward, bug bounty, shortcut, debt payment, stock
trade and prestige is journaled with the balance before and after it.

Examples:
  devempire ledger list --limit 20
  devempire ledger list --category STAFFING
  devempire ledger list --unit SHARES --start-date 2026-01-01
  devempire ledger cash-flow --start-date 2026-01-15 --end-date 2026-01-22`,
	}

	// Add subcommands
	cmd.AddCommand(newLedgerListCommand())
	cmd.AddCommand(newLedgerCashFlowCommand())

	return cmd
}

// newLedgerListCommand creates the ledger list subcommand
func newLedgerListCommand() *cobra.Command {
	var (
		startDate  string
		endDate    string
		category   string
		txType     string
		unit       string
		entityType string
		entityID   string
		limit      int
		offset     int
		orderBy    string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions",
		Long: `List journaled transactions with optional filtering.

Results are ordered by timestamp descending (newest first) by default.

Categories:
  STAFFING          - Staff, upgrades, hardware, skills and offices
  CONTRACT_REVENUE  - Contract rewards
  WINDFALL          - Offline production and bug bounties
  DEBT              - Shortcuts and debt payments
  MARKET            - Stock trades
  PRESTIGE          - Shares earned by prestige
  LOSSES            - LOC lost to the illegal AI getting caught

Units:
  LOC     - Lines of code
  SHARES  - Prestige shares

Examples:
  devempire ledger list --limit 10
  devempire ledger list --type BUY_BUILDING --entity-id intern
  devempire ledger list --start-date 2026-01-15 --end-date 2026-01-22`,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := &queries.GetTransactionsQuery{
				Limit:   limit,
				Offset:  offset,
				OrderBy: orderBy,
			}

			var err error
			if query.StartDate, query.EndDate, err = parseDateRange(startDate, endDate); err != nil {
				return err
			}
			query.Category = optionalString(category)
			query.TransactionType = optionalString(txType)
			query.Unit = optionalString(unit)
			query.RelatedEntityType = optionalString(entityType)
			query.RelatedEntityID = optionalString(entityID)

			return runLedgerList(query)
		},
	}

	cmd.Flags().StringVar(&startDate, "start-date", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end-date", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&category, "category", "", "Filter by category")
	cmd.Flags().StringVar(&txType, "type", "", "Filter by transaction type")
	cmd.Flags().StringVar(&unit, "unit", "", "Filter by unit (LOC or SHARES)")
	cmd.Flags().StringVar(&entityType, "entity-type", "", "Filter by related entity type (building, contract, stock, ...)")
	cmd.Flags().StringVar(&entityID, "entity-id", "", "Filter by related entity id")
	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum number of transactions to return")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of transactions to skip")
	cmd.Flags().StringVar(&orderBy, "order-by", "timestamp DESC", "Sort order")

	return cmd
}

// newLedgerCashFlowCommand creates the cash flow report subcommand
func newLedgerCashFlowCommand() *cobra.Command {
	var (
		startDate string
		endDate   string
	)

	cmd := &cobra.Command{
		Use:   "cash-flow",
		Short: "Generate cash flow statement",
		Long: `Generate a cash flow statement grouped by category and unit.

The cash flow statement shows:
- Total inflow by category
- Total outflow by category
- Net flow by category
- Number of transactions per category

Without dates the whole history is covered.

Example:
  devempire ledger cash-flow --start-date 2026-01-15 --end-date 2026-01-22`,
		RunE: func(cmd *cobra.Command, args []string) error {
			start, end, err := parseDateRange(startDate, endDate)
			if err != nil {
				return err
			}
			return runCashFlow(&queries.GetCashFlowQuery{StartDate: start, EndDate: end})
		},
	}

	cmd.Flags().StringVar(&startDate, "start-date", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&endDate, "end-date", "", "End date (YYYY-MM-DD)")

	return cmd
}

// withLedger opens the database and runs fn with a ledger-only mediator
func withLedger(fn func(ctx context.Context, m mediator.Mediator) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	transactionRepo := persistence.NewGormTransactionRepository(db)
	m, err := setup.NewHandlerRegistry(nil, transactionRepo, shared.NewRealClock(), nil).CreateConfiguredMediator()
	if err != nil {
		return fmt.Errorf("failed to configure mediator: %w", err)
	}

	return fn(context.Background(), m)
}

// runLedgerList executes the ledger list command
func runLedgerList(query *queries.GetTransactionsQuery) error {
	return withLedger(func(ctx context.Context, m mediator.Mediator) error {
		result, err := m.Send(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to query transactions: %w", err)
		}

		displayTransactionList(newPrinter(resolveLocale()), result.(*queries.GetTransactionsResponse))
		return nil
	})
}

// runCashFlow executes the cash flow report command
func runCashFlow(query *queries.GetCashFlowQuery) error {
	return withLedger(func(ctx context.Context, m mediator.Mediator) error {
		result, err := m.Send(ctx, query)
		if err != nil {
			return fmt.Errorf("failed to generate cash flow report: %w", err)
		}

		displayCashFlow(newPrinter(resolveLocale()), result.(*queries.GetCashFlowResponse))
		return nil
	})
}

// parseDateRange parses optional YYYY-MM-DD bounds; the end date covers its whole day
func parseDateRange(startDate, endDate string) (*time.Time, *time.Time, error) {
	var start, end *time.Time
	if startDate != "" {
		parsed, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid start date format: %w", err)
		}
		start = &parsed
	}
	if endDate != "" {
		parsed, err := time.Parse("2006-01-02", endDate)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid end date format: %w", err)
		}
		// Set to end of day
		endOfDay := parsed.Add(23*time.Hour + 59*time.Minute + 59*time.Second)
		end = &endOfDay
	}
	if start != nil && end != nil && end.Before(*start) {
		return nil, nil, fmt.Errorf("end date is before start date")
	}
	return start, end, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// displayTransactionList formats and displays transactions
func displayTransactionList(p *message.Printer, response *queries.GetTransactionsResponse) {
	if len(response.Transactions) == 0 {
		fmt.Println("No transactions found")
		return
	}

	p.Printf("\nTRANSACTIONS (showing %d of %d)\n", len(response.Transactions), response.Total)
	fmt.Println("─────────────────────────────────────────────────────────────────────────────")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Timestamp\tType\tCategory\tAmount\tBalance\tDescription")
	fmt.Fprintln(w, "─────────\t────\t────────\t──────\t───────\t───────────")

	for _, tx := range response.Transactions {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s %s\t%s\t%s\n",
			tx.Timestamp.Local().Format("2006-01-02 15:04:05"),
			tx.Type,
			tx.Category,
			formatAmount(p, tx.Amount),
			tx.Unit,
			formatLOC(p, tx.BalanceAfter),
			tx.Description,
		)
	}

	w.Flush()
	fmt.Println("─────────────────────────────────────────────────────────────────────────────")
}

// displayCashFlow formats and displays cash flow report
func displayCashFlow(p *message.Printer, response *queries.GetCashFlowResponse) {
	fmt.Printf("\nCASH FLOW STATEMENT (By Category)\n")
	fmt.Printf("Period: %s\n", response.Period)
	fmt.Println("─────────────────────────────────────────────────────────────────────────────")

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "Category\tUnit\tInflow\tOutflow\tNet Flow\tTransactions")
	fmt.Fprintln(w, "────────\t────\t──────\t───────\t────────\t────────────")

	type totals struct {
		inflow, outflow, net float64
		count                int
	}
	byUnit := make(map[string]*totals)
	var units []string

	for _, flow := range response.Flows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
			flow.Category,
			flow.Unit,
			formatLOC(p, flow.TotalInflow),
			formatLOC(p, -flow.TotalOutflow),
			formatAmount(p, flow.NetFlow),
			flow.Transactions,
		)

		t, ok := byUnit[flow.Unit]
		if !ok {
			t = &totals{}
			byUnit[flow.Unit] = t
			units = append(units, flow.Unit)
		}
		t.inflow += flow.TotalInflow
		t.outflow += flow.TotalOutflow
		t.net += flow.NetFlow
		t.count += flow.Transactions
	}

	fmt.Fprintln(w, "────────\t────\t──────\t───────\t────────\t────────────")
	// Flows are sorted by unit, so totals come out in the same order
	for _, unit := range units {
		t := byUnit[unit]
		fmt.Fprintf(w, "TOTAL\t%s\t%s\t%s\t%s\t%d\n",
			unit,
			formatLOC(p, t.inflow),
			formatLOC(p, -t.outflow),
			formatAmount(p, t.net),
			t.count,
		)
	}

	w.Flush()
	fmt.Println("─────────────────────────────────────────────────────────────────────────────")
}
