package metrics

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	ledgerQueries "github.com/andrescamacho/devempire-go/internal/application/ledger/queries"
	"github.com/andrescamacho/devempire-go/internal/application/logging"
	"github.com/andrescamacho/devempire-go/internal/application/mediator"
)

// DefaultCashFlowInterval is how often the cash flow gauges are refreshed
const DefaultCashFlowInterval = 60 * time.Second

// LedgerMetricsCollector handles all journal metrics (balances, transactions, cash flow)
type LedgerMetricsCollector struct {
	// Dependencies
	mediator mediator.Mediator
	interval time.Duration

	// Balance metrics
	balance *prometheus.GaugeVec

	// Transaction metrics
	transactionsTotal *prometheus.CounterVec
	transactionAmount *prometheus.HistogramVec

	// Cash flow metrics
	totalInflow  *prometheus.GaugeVec
	totalOutflow *prometheus.GaugeVec
	netFlow      *prometheus.GaugeVec

	// Lifecycle
	ctx        context.Context
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewLedgerMetricsCollector creates a new ledger metrics collector. A zero
// interval uses DefaultCashFlowInterval.
func NewLedgerMetricsCollector(m mediator.Mediator, interval time.Duration) *LedgerMetricsCollector {
	if interval <= 0 {
		interval = DefaultCashFlowInterval
	}

	return &LedgerMetricsCollector{
		mediator: m,
		interval: interval,

		// Balance after the most recent transaction, per unit
		balance: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "ledger_balance",
				Help:      "Balance after the most recent journaled transaction",
			},
			[]string{"unit"},
		),

		transactionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transactions_total",
				Help:      "Total number of transactions by type, category and unit",
			},
			[]string{"type", "category", "unit"},
		),

		transactionAmount: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "transaction_amount",
				Help:      "Absolute transaction amount distribution",
				Buckets:   prometheus.ExponentialBuckets(1, 10, 10),
			},
			[]string{"type", "category", "unit"},
		),

		totalInflow: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cash_inflow",
				Help:      "All-time inflow by category and unit",
			},
			[]string{"category", "unit"},
		),

		totalOutflow: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cash_outflow",
				Help:      "All-time outflow by category and unit",
			},
			[]string{"category", "unit"},
		),

		netFlow: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "cash_net_flow",
				Help:      "All-time net flow (inflow - outflow) by category and unit",
			},
			[]string{"category", "unit"},
		),
	}
}

// Register registers all ledger metrics with the Prometheus registry
func (c *LedgerMetricsCollector) Register() error {
	return register(
		c.balance,
		c.transactionsTotal,
		c.transactionAmount,
		c.totalInflow,
		c.totalOutflow,
		c.netFlow,
	)
}

// Start begins the cash flow polling goroutine
func (c *LedgerMetricsCollector) Start(ctx context.Context) {
	c.ctx, c.cancelFunc = context.WithCancel(ctx)

	c.wg.Add(1)
	go c.pollCashFlow()
}

// Stop gracefully stops the ledger metrics collector
func (c *LedgerMetricsCollector) Stop() {
	if c.cancelFunc != nil {
		c.cancelFunc()
	}
	c.wg.Wait()
}

func (c *LedgerMetricsCollector) pollCashFlow() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	// Do initial poll immediately
	c.UpdateCashFlow(c.ctx)

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.UpdateCashFlow(c.ctx)
		}
	}
}

// UpdateCashFlow fetches the all-time cash flow statement and refreshes the gauges
func (c *LedgerMetricsCollector) UpdateCashFlow(ctx context.Context) {
	if c.mediator == nil {
		return
	}
	logger := logging.LoggerFromContext(ctx)

	response, err := c.mediator.Send(ctx, &ledgerQueries.GetCashFlowQuery{})
	if err != nil {
		logger.Log(logging.LevelWarning, "Failed to fetch cash flow", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	cashFlow, ok := response.(*ledgerQueries.GetCashFlowResponse)
	if !ok {
		logger.Log(logging.LevelWarning, "Unexpected response type for cash flow query", map[string]interface{}{
			"type": fmt.Sprintf("%T", response),
		})
		return
	}

	for _, flow := range cashFlow.Flows {
		c.totalInflow.WithLabelValues(flow.Category, flow.Unit).Set(flow.TotalInflow)
		c.totalOutflow.WithLabelValues(flow.Category, flow.Unit).Set(flow.TotalOutflow)
		c.netFlow.WithLabelValues(flow.Category, flow.Unit).Set(flow.NetFlow)
	}
}

// RecordTransaction records a transaction event
func (c *LedgerMetricsCollector) RecordTransaction(
	transactionType string,
	category string,
	unit string,
	amount float64,
	balanceAfter float64,
) {
	c.balance.WithLabelValues(unit).Set(balanceAfter)
	c.transactionsTotal.WithLabelValues(transactionType, category, unit).Inc()
	c.transactionAmount.WithLabelValues(transactionType, category, unit).Observe(math.Abs(amount))
}
