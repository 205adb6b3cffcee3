package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/devempire-go/internal/adapters/metrics"
	"github.com/andrescamacho/devempire-go/internal/adapters/scheduler"
	"github.com/andrescamacho/devempire-go/internal/adapters/stream"
	gameApp "github.com/andrescamacho/devempire-go/internal/application/game"
	appLogging "github.com/andrescamacho/devempire-go/internal/application/logging"
	"github.com/andrescamacho/devempire-go/internal/infrastructure/config"
	"github.com/andrescamacho/devempire-go/internal/infrastructure/pidfile"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	var (
		withStream  bool
		withMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the game loop in the foreground",
		Long: `Load the save, credit the time away and keep the game ticking: passive
production every tick, market moves every few seconds, burnout relief, bugs
and periodic autosaves. Ctrl+C saves and exits.

Only one loop may own the saves at a time. While it runs, the websocket
stream (when enabled) streams every state change and accepts actions.

Examples:
  devempire run
  devempire run --stream --metrics
  devempire run --slot weekend`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("stream") {
				cfg.Server.Enabled = withStream
			}
			if cmd.Flags().Changed("metrics") {
				cfg.Metrics.Enabled = withMetrics
			}
			return runGameLoop(cfg)
		},
	}

	cmd.Flags().BoolVar(&withStream, "stream", false, "Serve the websocket state stream (overrides server.enabled)")
	cmd.Flags().BoolVar(&withMetrics, "metrics", false, "Serve Prometheus metrics (overrides metrics.enabled)")

	return cmd
}

// runGameLoop owns the save until SIGINT or SIGTERM
func runGameLoop(cfg *config.Config) error {
	fmt.Println("DevEmpire Game Loop")
	fmt.Println("===================")

	// Acquire PID file lock so CLI actions and other loops keep off the save
	pf := pidfile.New(cfg.Runtime.PIDFile)
	fmt.Printf("Acquiring PID file lock: %s\n", pf.Path())
	if err := pf.Acquire(); err != nil {
		return fmt.Errorf("failed to acquire PID file lock: %w", err)
	}
	defer func() {
		if err := pf.Release(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to release PID file: %v\n", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Metrics collectors must exist before the mediator so its middleware can record
	var (
		commandMetrics *metrics.CommandMetricsCollector
		gameMetrics    *metrics.GameMetricsCollector
	)
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		commandMetrics = metrics.NewCommandMetricsCollector()
		gameMetrics = metrics.NewGameMetricsCollector()
		if err := commandMetrics.Register(); err != nil {
			return fmt.Errorf("failed to register command metrics: %w", err)
		}
		if err := gameMetrics.Register(); err != nil {
			return fmt.Errorf("failed to register game metrics: %w", err)
		}
		metrics.SetGlobalGameCollector(gameMetrics)
	}

	fmt.Printf("Connecting to %s database...\n", cfg.Database.Type)
	g, err := openGame(ctx, cfg, commandMetrics)
	if err != nil {
		return err
	}
	defer g.Close()
	ctx = g.ctx
	logger := appLogging.LoggerFromContext(ctx)
	fmt.Printf("Save slot %q loaded\n", g.snapshots.Slot())

	// Stop everything if a listener dies
	serveErr := func(name string, err error) {
		if err == nil {
			return
		}
		logger.Log(appLogging.LevelError, name+" stopped", map[string]interface{}{"error": err.Error()})
		stop()
	}

	if gameMetrics != nil {
		g.session.Subscribe(gameMetrics.Observe)
		gameMetrics.Observe(gameApp.Outcome{State: g.session.Snapshot()})

		ledgerMetrics := metrics.NewLedgerMetricsCollector(g.mediator, cfg.Metrics.LedgerInterval)
		if err := ledgerMetrics.Register(); err != nil {
			return fmt.Errorf("failed to register ledger metrics: %w", err)
		}
		metrics.SetGlobalLedgerCollector(ledgerMetrics)
		ledgerMetrics.Start(ctx)
		defer ledgerMetrics.Stop()

		metricsServer, err := metrics.NewServer(cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
		if err != nil {
			return fmt.Errorf("failed to start metrics server: %w", err)
		}
		go func() { serveErr("Metrics server", metricsServer.Serve()) }()
		defer shutdownWithin(cfg, metricsServer.Shutdown)
		fmt.Printf("Metrics: http://%s%s\n", metricsServer.Addr(), cfg.Metrics.Path)
	}

	if cfg.Server.Enabled {
		hub := stream.NewHub(g.mediator, g.session.Catalog(), g.logger, cfg.Server.PingInterval)
		go hub.Run(ctx)
		g.session.Subscribe(hub.Publish)

		streamServer, err := stream.NewServer(cfg.Server.Address, cfg.Server.Path, hub)
		if err != nil {
			return fmt.Errorf("failed to start state stream: %w", err)
		}
		go func() { serveErr("State stream", streamServer.Serve()) }()
		defer shutdownWithin(cfg, streamServer.Shutdown)
		fmt.Printf("State stream: ws://%s%s\n", streamServer.Addr(), cfg.Server.Path)
	}

	driver := scheduler.NewTickDriver(g.mediator, g.session, g.clock, scheduler.Config{
		TickInterval:     cfg.Game.TickInterval,
		MarketInterval:   cfg.Game.MarketInterval,
		RelaxInterval:    cfg.Game.RelaxInterval,
		AutosaveInterval: cfg.Game.AutosaveInterval,
	})

	fmt.Println("Game loop running. Press Ctrl+C to save and exit.")
	if err := driver.Run(ctx); err != nil {
		return fmt.Errorf("failed to save on shutdown: %w", err)
	}
	fmt.Println("\nGame saved. Bye.")
	return nil
}

// shutdownWithin gives a server the configured grace period to drain
func shutdownWithin(cfg *config.Config, shutdown func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Runtime.ShutdownTimeout)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: shutdown incomplete: %v\n", err)
	}
}
