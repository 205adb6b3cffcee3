package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/devempire-go/internal/adapters/metrics"
	gameApp "github.com/andrescamacho/devempire-go/internal/application/game"
	"github.com/andrescamacho/devempire-go/internal/application/mediator"
	"github.com/andrescamacho/devempire-go/internal/domain/game"
	"github.com/andrescamacho/devempire-go/internal/domain/ledger"
)

// AcceptContractCommand starts work on an offered contract
type AcceptContractCommand struct {
	ContractID string
}

// AcceptContractHandler handles AcceptContractCommand
type AcceptContractHandler struct {
	actionRunner
}

// NewAcceptContractHandler creates a new AcceptContractHandler
func NewAcceptContractHandler(session *gameApp.Session, m mediator.Mediator) *AcceptContractHandler {
	return &AcceptContractHandler{actionRunner: newActionRunner(session, m)}
}

// Handle executes the AcceptContract command
func (h *AcceptContractHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*AcceptContractCommand)
	if !ok {
		return nil, invalidRequest("AcceptContractCommand")
	}
	engine := h.session.Engine()

	return h.apply(ctx, func(st *game.State, _ time.Time) (bool, error) {
		return engine.AcceptContract(st, cmd.ContractID)
	}, nil)
}

// CancelContractCommand abandons the active contract
type CancelContractCommand struct{}

// CancelContractHandler handles CancelContractCommand
type CancelContractHandler struct {
	actionRunner
}

// NewCancelContractHandler creates a new CancelContractHandler
func NewCancelContractHandler(session *gameApp.Session, m mediator.Mediator) *CancelContractHandler {
	return &CancelContractHandler{actionRunner: newActionRunner(session, m)}
}

// Handle executes the CancelContract command
func (h *CancelContractHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*CancelContractCommand); !ok {
		return nil, invalidRequest("CancelContractCommand")
	}
	engine := h.session.Engine()

	return h.apply(ctx, func(st *game.State, _ time.Time) (bool, error) {
		return engine.CancelContract(st), nil
	}, nil)
}

// CompleteContractCommand delivers the active contract once its workload is covered
type CompleteContractCommand struct{}

// CompleteContractHandler handles CompleteContractCommand
type CompleteContractHandler struct {
	actionRunner
}

// NewCompleteContractHandler creates a new CompleteContractHandler
func NewCompleteContractHandler(session *gameApp.Session, m mediator.Mediator) *CompleteContractHandler {
	return &CompleteContractHandler{actionRunner: newActionRunner(session, m)}
}

// Handle executes the CompleteContract command
func (h *CompleteContractHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*CompleteContractCommand); !ok {
		return nil, invalidRequest("CompleteContractCommand")
	}
	engine := h.session.Engine()

	var contractID, name string
	resp, err := h.run(ctx,
		func(st *game.State, _ time.Time) (bool, error) {
			if c, ok := st.ActiveContract(); ok {
				contractID, name = c.ID(), c.Name()
			}
			return engine.CompleteContract(st), nil
		},
		func(before, after balances) []journalEntry {
			description := fmt.Sprintf("Delivered %s", name)
			return []journalEntry{
				locEntry(ledger.TransactionTypeContractReward, before, after, description, "contract", contractID),
				sharesEntry(ledger.TransactionTypeContractReward, before, after, description, "contract", contractID),
			}
		})
	if err != nil {
		return nil, err
	}

	if resp.Applied {
		metrics.RecordGameEvent("contract_completed")
	}
	return resp, nil
}

// GenerateContractsCommand refills the offer pool, keeping the active contract
type GenerateContractsCommand struct{}

// GenerateContractsHandler handles GenerateContractsCommand
type GenerateContractsHandler struct {
	actionRunner
}

// NewGenerateContractsHandler creates a new GenerateContractsHandler
func NewGenerateContractsHandler(session *gameApp.Session, m mediator.Mediator) *GenerateContractsHandler {
	return &GenerateContractsHandler{actionRunner: newActionRunner(session, m)}
}

// Handle executes the GenerateContracts command
func (h *GenerateContractsHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*GenerateContractsCommand); !ok {
		return nil, invalidRequest("GenerateContractsCommand")
	}
	engine := h.session.Engine()

	return h.apply(ctx, func(st *game.State, _ time.Time) (bool, error) {
		engine.GenerateContracts(st)
		return true, nil
	}, nil)
}
