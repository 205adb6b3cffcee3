package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gorm.io/gorm"

	"github.com/andrescamacho/devempire-go/internal/adapters/metrics"
	"github.com/andrescamacho/devempire-go/internal/adapters/persistence"
	gameApp "github.com/andrescamacho/devempire-go/internal/application/game"
	gameCommands "github.com/andrescamacho/devempire-go/internal/application/game/commands"
	appLogging "github.com/andrescamacho/devempire-go/internal/application/logging"
	"github.com/andrescamacho/devempire-go/internal/application/mediator"
	"github.com/andrescamacho/devempire-go/internal/application/setup"
	"github.com/andrescamacho/devempire-go/internal/domain/catalog"
	"github.com/andrescamacho/devempire-go/internal/domain/game"
	"github.com/andrescamacho/devempire-go/internal/domain/shared"
	"github.com/andrescamacho/devempire-go/internal/infrastructure/config"
	"github.com/andrescamacho/devempire-go/internal/infrastructure/database"
	"github.com/andrescamacho/devempire-go/internal/infrastructure/logging"
	"github.com/andrescamacho/devempire-go/internal/infrastructure/pidfile"
)

// errLoopRunning is returned by commands that write the save while `run` owns it
var errLoopRunning = errors.New("the game loop owns this save")

// gameContext is everything one CLI invocation needs to act on a save slot
type gameContext struct {
	ctx          context.Context
	cfg          *config.Config
	db           *gorm.DB
	logger       *logging.SlogLogger
	logCloser    io.Closer
	clock        shared.Clock
	snapshots    *persistence.GormSnapshotRepository
	transactions *persistence.GormTransactionRepository
	session      *gameApp.Session
	mediator     mediator.Mediator
}

// loadConfig reads the configuration named by --config, honouring --verbose
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	return cfg, nil
}

// resolveSlot picks the save slot
// Priority: --slot flag > user config default > config file
func resolveSlot(cfg *config.Config) string {
	if slot != "" {
		return slot
	}

	if handler, err := config.NewUserConfigHandler(); err == nil {
		if userCfg, err := handler.Load(); err == nil && userCfg.DefaultSlot != "" {
			return userCfg.DefaultSlot
		}
	}

	if cfg.Game.SaveSlot != "" {
		return cfg.Game.SaveSlot
	}
	return persistence.DefaultSlot
}

// resolveLocale returns the user's number formatting locale, if any
func resolveLocale() string {
	handler, err := config.NewUserConfigHandler()
	if err != nil {
		return ""
	}
	userCfg, err := handler.Load()
	if err != nil {
		return ""
	}
	return userCfg.Locale
}

// newEngine builds the rules engine from the game section. A zero seed
// draws one from the OS.
func newEngine(cfg *config.GameConfig) (*game.Engine, error) {
	seed := cfg.Seed
	if seed == 0 {
		var err error
		if seed, err = shared.NewSeed(); err != nil {
			return nil, fmt.Errorf("failed to seed random source: %w", err)
		}
	}

	var opts []game.EngineOption
	if cfg.HackChance > 0 {
		opts = append(opts, game.WithHackChance(cfg.HackChance))
	}
	return game.NewEngine(catalog.Default(), shared.NewSeededRandom(seed), opts...)
}

// openDatabase connects and migrates the configured database
func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		database.Close(db)
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return db, nil
}

// openGame loads the save slot and wires a mediator around it.
// commandMetrics may be nil.
func openGame(ctx context.Context, cfg *config.Config, commandMetrics *metrics.CommandMetricsCollector) (*gameContext, error) {
	logger, logCloser, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	ctx = appLogging.WithLogger(ctx, logger)

	db, err := openDatabase(cfg)
	if err != nil {
		logCloser.Close()
		return nil, err
	}

	g := &gameContext{
		ctx:          ctx,
		cfg:          cfg,
		db:           db,
		logger:       logger,
		logCloser:    logCloser,
		clock:        shared.NewRealClock(),
		transactions: persistence.NewGormTransactionRepository(db),
	}
	g.snapshots = persistence.NewGormSnapshotRepository(db, resolveSlot(cfg), g.clock)

	engine, err := newEngine(&cfg.Game)
	if err != nil {
		g.Close()
		return nil, err
	}

	g.session, err = gameApp.LoadSession(ctx, engine, g.snapshots, g.clock)
	if err != nil {
		g.Close()
		return nil, err
	}

	g.mediator, err = setup.NewHandlerRegistry(g.session, g.transactions, g.clock, commandMetrics).CreateConfiguredMediator()
	if err != nil {
		g.Close()
		return nil, fmt.Errorf("failed to configure mediator: %w", err)
	}

	return g, nil
}

// Close releases the database and the log output
func (g *gameContext) Close() {
	if g.db != nil {
		database.Close(g.db)
	}
	if g.logCloser != nil {
		g.logCloser.Close()
	}
}

// ensureLoopStopped refuses to touch the save while a `run` process owns it;
// the two would overwrite each other's snapshots.
func ensureLoopStopped(cfg *config.Config) error {
	pf := pidfile.New(cfg.Runtime.PIDFile)
	if pid, ok := pf.Owner(); ok && pid != os.Getpid() {
		hint := "stop it first"
		if cfg.Server.Enabled {
			hint = fmt.Sprintf("send actions through ws://%s%s instead", cfg.Server.Address, cfg.Server.Path)
		}
		return fmt.Errorf("%w (PID %d): %s", errLoopRunning, pid, hint)
	}
	return nil
}

// runAction performs player actions against the saved game: credit the time
// away, apply the commands in order, save once.
func runAction(requests ...mediator.Request) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := ensureLoopStopped(cfg); err != nil {
		return err
	}

	g, err := openGame(context.Background(), cfg, nil)
	if err != nil {
		return err
	}
	defer g.Close()

	if err := g.reconcileOffline(); err != nil {
		return err
	}
	if _, err := g.mediator.Send(g.ctx, &gameCommands.RecoverBurnoutCommand{}); err != nil {
		return fmt.Errorf("failed to recover burnout: %w", err)
	}

	var last *gameApp.Outcome
	applied := 0
	for _, request := range requests {
		resp, err := g.mediator.Send(g.ctx, request)
		if err != nil {
			return err
		}
		last = outcomeOf(resp)
		if last != nil && last.Applied {
			applied++
		}
	}

	if err := g.session.Save(g.ctx); err != nil {
		return fmt.Errorf("failed to save game: %w", err)
	}

	p := newPrinter(resolveLocale())
	if len(requests) > 1 {
		p.Printf("%d of %d applied\n", applied, len(requests))
		if applied > 0 {
			last = &gameApp.Outcome{Applied: true, State: g.session.Snapshot()}
		}
	}
	printOutcome(p, appLogging.RequestName(requests[len(requests)-1]), last)
	return nil
}

// reconcileOffline credits production earned since the save was last touched
func (g *gameContext) reconcileOffline() error {
	resp, err := g.mediator.Send(g.ctx, &gameCommands.ReconcileOfflineCommand{})
	if err != nil {
		return fmt.Errorf("failed to reconcile offline production: %w", err)
	}
	if r, ok := resp.(*gameCommands.ReconcileOfflineResponse); ok && r.Earned > 0 {
		p := newPrinter(resolveLocale())
		p.Printf("While you were away your team wrote %s LOC\n", formatLOC(p, r.Earned))
	}
	return nil
}

// outcomeOf unwraps the outcome carried by any game command response
func outcomeOf(resp mediator.Response) *gameApp.Outcome {
	switch r := resp.(type) {
	case *gameApp.Outcome:
		return r
	case *gameCommands.AdvanceTimeResponse:
		return r.ActionResponse
	case *gameCommands.SpawnBugResponse:
		return r.ActionResponse
	case *gameCommands.ReconcileOfflineResponse:
		return r.ActionResponse
	default:
		return nil
	}
}
