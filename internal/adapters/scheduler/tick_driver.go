package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	gameCommands "github.com/andrescamacho/devempire-go/internal/application/game/commands"
	"github.com/andrescamacho/devempire-go/internal/application/logging"
	"github.com/andrescamacho/devempire-go/internal/application/mediator"
	"github.com/andrescamacho/devempire-go/internal/domain/shared"
)

// Saver persists the game; *game.Session satisfies it
type Saver interface {
	Save(ctx context.Context) error
}

// Config holds the driver cadences
type Config struct {
	TickInterval     time.Duration
	MarketInterval   time.Duration
	RelaxInterval    time.Duration
	AutosaveInterval time.Duration
}

// DefaultConfig is the cadence of the original game loop
func DefaultConfig() Config {
	return Config{
		TickInterval:     100 * time.Millisecond,
		MarketInterval:   3 * time.Second,
		RelaxInterval:    200 * time.Millisecond,
		AutosaveInterval: 5 * time.Second,
	}
}

// TickDriver is the only goroutine that advances game time. Each step sends
// tick commands through the mediator, so every state change still goes
// through the session lock.
type TickDriver struct {
	mediator mediator.Mediator
	saver    Saver
	clock    shared.Clock
	cfg      Config

	autosave *rate.Limiter
	saving   atomic.Bool
	saves    sync.WaitGroup

	lastTick  time.Time
	marketAcc time.Duration
	relaxAcc  time.Duration
}

// NewTickDriver creates a driver. saver may be nil to disable autosave.
func NewTickDriver(m mediator.Mediator, saver Saver, clock shared.Clock, cfg Config) *TickDriver {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	def := DefaultConfig()
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = def.TickInterval
	}
	if cfg.MarketInterval <= 0 {
		cfg.MarketInterval = def.MarketInterval
	}
	if cfg.RelaxInterval <= 0 {
		cfg.RelaxInterval = def.RelaxInterval
	}
	if cfg.AutosaveInterval <= 0 {
		cfg.AutosaveInterval = def.AutosaveInterval
	}

	return &TickDriver{
		mediator: m,
		saver:    saver,
		clock:    clock,
		cfg:      cfg,
		autosave: rate.NewLimiter(rate.Every(cfg.AutosaveInterval), 1),
	}
}

// Start credits offline progress and marks the start of game time. Run
// calls it; it is exported for drivers stepped by hand.
func (d *TickDriver) Start(ctx context.Context) {
	if _, err := d.mediator.Send(ctx, &gameCommands.ReconcileOfflineCommand{}); err != nil {
		logging.LoggerFromContext(ctx).Log(logging.LevelError, "Offline reconciliation failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	d.lastTick = d.clock.Now()
	// The first autosave waits a full interval
	d.autosave.ReserveN(d.lastTick, 1)
}

// Run blocks until ctx is cancelled, then waits for in-flight saves and
// writes a final one.
func (d *TickDriver) Run(ctx context.Context) error {
	logger := logging.LoggerFromContext(ctx)
	d.Start(ctx)
	logger.Log(logging.LevelInfo, "Game loop started", map[string]interface{}{
		"tick_interval": d.cfg.TickInterval.String(),
	})

	ticker := time.NewTicker(d.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			d.saves.Wait()
			return d.shutdown(ctx)
		case <-ticker.C:
			d.Step(ctx)
		}
	}
}

// Step applies the time elapsed since the previous step and runs every
// periodic rule that fell due.
func (d *TickDriver) Step(ctx context.Context) {
	now := d.clock.Now()
	elapsed := now.Sub(d.lastTick)
	if elapsed < 0 {
		elapsed = 0
	}
	d.lastTick = now

	d.send(ctx, &gameCommands.AdvanceTimeCommand{Elapsed: elapsed})

	d.marketAcc += elapsed
	for d.marketAcc >= d.cfg.MarketInterval {
		d.marketAcc -= d.cfg.MarketInterval
		d.send(ctx, &gameCommands.UpdateMarketCommand{})
	}

	d.relaxAcc += elapsed
	for d.relaxAcc >= d.cfg.RelaxInterval {
		d.relaxAcc -= d.cfg.RelaxInterval
		d.send(ctx, &gameCommands.RelaxBurnoutCommand{})
	}

	d.send(ctx, &gameCommands.RecoverBurnoutCommand{})
	d.send(ctx, &gameCommands.SpawnBugCommand{})

	if d.saver != nil && d.autosave.AllowN(now, 1) {
		d.saveAsync(ctx)
	}
}

// Wait blocks until in-flight autosaves have finished
func (d *TickDriver) Wait() {
	d.saves.Wait()
}

func (d *TickDriver) send(ctx context.Context, request mediator.Request) {
	if _, err := d.mediator.Send(ctx, request); err != nil {
		logging.LoggerFromContext(ctx).Log(logging.LevelError, "Tick step failed", map[string]interface{}{
			"request": logging.RequestName(request),
			"error":   err.Error(),
		})
	}
}

// saveAsync starts a save unless one is still running
func (d *TickDriver) saveAsync(ctx context.Context) {
	if !d.saving.CompareAndSwap(false, true) {
		return
	}
	d.saves.Add(1)
	saveCtx := context.WithoutCancel(ctx)
	go func() {
		defer d.saves.Done()
		defer d.saving.Store(false)
		if err := d.saver.Save(saveCtx); err != nil {
			logging.LoggerFromContext(ctx).Log(logging.LevelError, "Autosave failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()
}

func (d *TickDriver) shutdown(ctx context.Context) error {
	logger := logging.LoggerFromContext(ctx)
	if d.saver == nil {
		logger.Log(logging.LevelInfo, "Game loop stopped", nil)
		return nil
	}
	// ctx is already cancelled by now
	if err := d.saver.Save(context.WithoutCancel(ctx)); err != nil {
		return err
	}
	logger.Log(logging.LevelInfo, "Game loop stopped, game saved", nil)
	return nil
}
