package setup

import (
	"reflect"

	"github.com/andrescamacho/devempire-go/internal/adapters/metrics"
	gameApp "github.com/andrescamacho/devempire-go/internal/application/game"
	gameCommands "github.com/andrescamacho/devempire-go/internal/application/game/commands"
	gameQueries "github.com/andrescamacho/devempire-go/internal/application/game/queries"
	ledgerCommands "github.com/andrescamacho/devempire-go/internal/application/ledger/commands"
	ledgerQueries "github.com/andrescamacho/devempire-go/internal/application/ledger/queries"
	"github.com/andrescamacho/devempire-go/internal/application/logging"
	"github.com/andrescamacho/devempire-go/internal/application/mediator"
	"github.com/andrescamacho/devempire-go/internal/domain/ledger"
	"github.com/andrescamacho/devempire-go/internal/domain/shared"
)

// TickCommands are sent by the tick driver several times a second; the
// logging middleware keeps them out of the debug log.
var TickCommands = []string{
	"AdvanceTimeCommand",
	"RelaxBurnoutCommand",
	"RecoverBurnoutCommand",
	"SpawnBugCommand",
	"UpdateMarketCommand",
	"GetStateQuery",
}

// HandlerRegistry holds all application dependencies for handler creation
type HandlerRegistry struct {
	session         *gameApp.Session
	transactionRepo ledger.TransactionRepository
	clock           shared.Clock
	commandMetrics  *metrics.CommandMetricsCollector
}

// NewHandlerRegistry creates a new handler registry with required dependencies.
// transactionRepo may be nil, in which case actions are not journaled.
// commandMetrics may be nil when metrics are disabled.
func NewHandlerRegistry(
	session *gameApp.Session,
	transactionRepo ledger.TransactionRepository,
	clock shared.Clock,
	commandMetrics *metrics.CommandMetricsCollector,
) *HandlerRegistry {
	// Default to real clock if not provided
	if clock == nil {
		clock = shared.NewRealClock()
	}

	return &HandlerRegistry{
		session:         session,
		transactionRepo: transactionRepo,
		clock:           clock,
		commandMetrics:  commandMetrics,
	}
}

// RegisterLedgerHandlers registers all ledger command and query handlers with the mediator
//
// This method registers:
//   - RecordTransactionCommand → RecordTransactionHandler (sent by every game action that moves a balance)
//   - GetTransactionsQuery → GetTransactionsHandler (for transaction listings)
//   - GetCashFlowQuery → GetCashFlowHandler (for per-category cash flow reports)
func (r *HandlerRegistry) RegisterLedgerHandlers(m mediator.Mediator) error {
	handlers := map[reflect.Type]mediator.RequestHandler{
		reflect.TypeOf(&ledgerCommands.RecordTransactionCommand{}): ledgerCommands.NewRecordTransactionHandler(r.transactionRepo, r.clock),
		reflect.TypeOf(&ledgerQueries.GetTransactionsQuery{}):      ledgerQueries.NewGetTransactionsHandler(r.transactionRepo),
		reflect.TypeOf(&ledgerQueries.GetCashFlowQuery{}):          ledgerQueries.NewGetCashFlowHandler(r.transactionRepo),
	}
	return registerAll(m, handlers)
}

// RegisterGameHandlers registers one handler per player action and tick step,
// plus the state and shop queries.
//
// Action handlers journal balance changes by sending RecordTransactionCommand
// through the same mediator. Without a transaction repository they journal nothing.
func (r *HandlerRegistry) RegisterGameHandlers(m mediator.Mediator) error {
	s := r.session
	var journal mediator.Mediator
	if r.transactionRepo != nil {
		journal = m
	}

	handlers := map[reflect.Type]mediator.RequestHandler{
		// Player actions
		reflect.TypeOf(&gameCommands.ManualInputCommand{}):       gameCommands.NewManualInputHandler(s, journal),
		reflect.TypeOf(&gameCommands.BuyBuildingCommand{}):       gameCommands.NewBuyBuildingHandler(s, journal),
		reflect.TypeOf(&gameCommands.BuyUpgradeCommand{}):        gameCommands.NewBuyUpgradeHandler(s, journal),
		reflect.TypeOf(&gameCommands.BuyHardwareCommand{}):       gameCommands.NewBuyHardwareHandler(s, journal),
		reflect.TypeOf(&gameCommands.AcceptContractCommand{}):    gameCommands.NewAcceptContractHandler(s, journal),
		reflect.TypeOf(&gameCommands.CancelContractCommand{}):    gameCommands.NewCancelContractHandler(s, journal),
		reflect.TypeOf(&gameCommands.CompleteContractCommand{}):  gameCommands.NewCompleteContractHandler(s, journal),
		reflect.TypeOf(&gameCommands.GenerateContractsCommand{}): gameCommands.NewGenerateContractsHandler(s, journal),
		reflect.TypeOf(&gameCommands.TakeShortcutCommand{}):      gameCommands.NewTakeShortcutHandler(s, journal),
		reflect.TypeOf(&gameCommands.PayDebtCommand{}):           gameCommands.NewPayDebtHandler(s, journal),
		reflect.TypeOf(&gameCommands.BuyStockCommand{}):          gameCommands.NewBuyStockHandler(s, journal),
		reflect.TypeOf(&gameCommands.SellStockCommand{}):         gameCommands.NewSellStockHandler(s, journal),
		reflect.TypeOf(&gameCommands.SetSpecializationCommand{}): gameCommands.NewSetSpecializationHandler(s, journal),
		reflect.TypeOf(&gameCommands.UnlockSkillCommand{}):       gameCommands.NewUnlockSkillHandler(s, journal),
		reflect.TypeOf(&gameCommands.UpgradeOfficeCommand{}):     gameCommands.NewUpgradeOfficeHandler(s, journal),
		reflect.TypeOf(&gameCommands.ToggleIllegalAICommand{}):   gameCommands.NewToggleIllegalAIHandler(s, journal),
		reflect.TypeOf(&gameCommands.PrestigeCommand{}):          gameCommands.NewPrestigeHandler(s, journal),
		reflect.TypeOf(&gameCommands.ResetCommand{}):             gameCommands.NewResetHandler(s, journal),
		reflect.TypeOf(&gameCommands.SquashBugCommand{}):         gameCommands.NewSquashBugHandler(s, journal),
		reflect.TypeOf(&gameCommands.MarkIntroSeenCommand{}):     gameCommands.NewMarkIntroSeenHandler(s, journal),

		// Tick steps
		reflect.TypeOf(&gameCommands.AdvanceTimeCommand{}):      gameCommands.NewAdvanceTimeHandler(s, journal),
		reflect.TypeOf(&gameCommands.UpdateMarketCommand{}):     gameCommands.NewUpdateMarketHandler(s, journal),
		reflect.TypeOf(&gameCommands.RelaxBurnoutCommand{}):     gameCommands.NewRelaxBurnoutHandler(s, journal),
		reflect.TypeOf(&gameCommands.RecoverBurnoutCommand{}):   gameCommands.NewRecoverBurnoutHandler(s, journal),
		reflect.TypeOf(&gameCommands.SpawnBugCommand{}):         gameCommands.NewSpawnBugHandler(s, journal),
		reflect.TypeOf(&gameCommands.ReconcileOfflineCommand{}): gameCommands.NewReconcileOfflineHandler(s, journal),

		// Queries
		reflect.TypeOf(&gameQueries.GetStateQuery{}): gameQueries.NewGetStateHandler(s),
		reflect.TypeOf(&gameQueries.GetShopQuery{}):  gameQueries.NewGetShopHandler(s),
	}
	return registerAll(m, handlers)
}

// CreateConfiguredMediator creates a mediator with logging and metrics
// middleware and every handler whose dependencies are available.
func (r *HandlerRegistry) CreateConfiguredMediator() (mediator.Mediator, error) {
	m := mediator.NewMediator()

	m.Use(logging.Middleware(TickCommands...))
	if r.commandMetrics != nil {
		m.Use(metrics.PrometheusMiddleware(r.commandMetrics))
	}

	if r.transactionRepo != nil {
		if err := r.RegisterLedgerHandlers(m); err != nil {
			return nil, err
		}
	}

	if r.session != nil {
		if err := r.RegisterGameHandlers(m); err != nil {
			return nil, err
		}
	}

	return m, nil
}

func registerAll(m mediator.Mediator, handlers map[reflect.Type]mediator.RequestHandler) error {
	for requestType, handler := range handlers {
		if err := m.Register(requestType, handler); err != nil {
			return err
		}
	}
	return nil
}
