package queries

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/andrescamacho/devempire-go/internal/application/mediator"
	"github.com/andrescamacho/devempire-go/internal/domain/ledger"
)

// GetCashFlowQuery represents a query to summarise journal entries per category
type GetCashFlowQuery struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// GetCashFlowResponse represents the cash flow statement result
type GetCashFlowResponse struct {
	Period string
	Flows  []*CategoryCashFlow
}

// CategoryCashFlow is the cash flow of one category in one unit
type CategoryCashFlow struct {
	Category     string  `json:"category"`
	Unit         string  `json:"unit"`
	TotalInflow  float64 `json:"total_inflow"`
	TotalOutflow float64 `json:"total_outflow"`
	NetFlow      float64 `json:"net_flow"`
	Transactions int     `json:"transactions"`
}

// GetCashFlowHandler handles the GetCashFlow query
type GetCashFlowHandler struct {
	transactionRepo ledger.TransactionRepository
}

// NewGetCashFlowHandler creates a new GetCashFlowHandler
func NewGetCashFlowHandler(transactionRepo ledger.TransactionRepository) *GetCashFlowHandler {
	return &GetCashFlowHandler{transactionRepo: transactionRepo}
}

// Handle executes the GetCashFlow query
func (h *GetCashFlowHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetCashFlowQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetCashFlowQuery")
	}

	opts := ledger.QueryOptions{
		StartDate: query.StartDate,
		EndDate:   query.EndDate,
		Limit:     0, // No limit - get all transactions
	}
	transactions, err := h.transactionRepo.Find(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}

	return &GetCashFlowResponse{
		Period: formatPeriod(query.StartDate, query.EndDate),
		Flows:  calculateCashFlow(transactions),
	}, nil
}

// calculateCashFlow groups by category and unit, sorted for stable output
func calculateCashFlow(transactions []*ledger.Transaction) []*CategoryCashFlow {
	type key struct{ category, unit string }
	flows := make(map[key]*CategoryCashFlow)

	for _, tx := range transactions {
		k := key{tx.Category().String(), tx.Unit().String()}
		flow, ok := flows[k]
		if !ok {
			flow = &CategoryCashFlow{Category: k.category, Unit: k.unit}
			flows[k] = flow
		}

		flow.Transactions++
		if amount := tx.Amount(); amount > 0 {
			flow.TotalInflow += amount
		} else {
			flow.TotalOutflow += -amount // Store as positive value
		}
		flow.NetFlow = flow.TotalInflow - flow.TotalOutflow
	}

	out := make([]*CategoryCashFlow, 0, len(flows))
	for _, flow := range flows {
		out = append(out, flow)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Unit != out[j].Unit {
			return out[i].Unit < out[j].Unit
		}
		return out[i].Category < out[j].Category
	})
	return out
}

func formatPeriod(start, end *time.Time) string {
	from, to := "beginning", "now"
	if start != nil {
		from = start.Format("2006-01-02")
	}
	if end != nil {
		to = end.Format("2006-01-02")
	}
	return fmt.Sprintf("%s to %s", from, to)
}
