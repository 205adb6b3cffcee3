package game

import (
	"fmt"
	"time"

	"github.com/andrescamacho/devempire-go/internal/domain/burnout"
	"github.com/andrescamacho/devempire-go/internal/domain/catalog"
	"github.com/andrescamacho/devempire-go/internal/domain/contract"
	"github.com/andrescamacho/devempire-go/internal/domain/market"
	"github.com/andrescamacho/devempire-go/internal/domain/shared"
)

const (
	// DefaultHackChance is the per-tick probability that the illegal AI gets caught
	DefaultHackChance = 0.005

	// DarkWebThreshold is the lifetime currency that reveals the dark web
	DarkWebThreshold = 10000.0
)

// Engine applies the game rules to a State. It holds only immutable
// configuration and a random source; all mutable data lives in the State,
// and callers are responsible for serializing access to it.
//
// Operations that can fail a game rule return false and leave the state
// untouched. Operations addressed by id return a shared.NotFoundError for ids
// that do not resolve, also without touching the state.
type Engine struct {
	catalog    *catalog.Catalog
	rng        shared.RandomSource
	contracts  *contract.Generator
	hackChance float64
}

// EngineOption customises an Engine
type EngineOption func(*Engine)

// WithHackChance overrides the per-tick illegal AI bust probability
func WithHackChance(p float64) EngineOption {
	return func(e *Engine) { e.hackChance = p }
}

// WithContractGenerator replaces the default generator
func WithContractGenerator(g *contract.Generator) EngineOption {
	return func(e *Engine) { e.contracts = g }
}

// NewEngine wires the rules to a catalog and random source
func NewEngine(cat *catalog.Catalog, rng shared.RandomSource, opts ...EngineOption) (*Engine, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	if rng == nil {
		return nil, fmt.Errorf("random source is required")
	}

	e := &Engine{catalog: cat, rng: rng, hackChance: DefaultHackChance}
	for _, opt := range opts {
		opt(e)
	}
	if e.contracts == nil {
		g, err := contract.NewGenerator(rng, cat)
		if err != nil {
			return nil, fmt.Errorf("failed to build contract generator: %w", err)
		}
		e.contracts = g
	}
	return e, nil
}

func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// NewState returns a fresh save: base stock prices and a full contract pool
func (e *Engine) NewState(now time.Time) *State {
	st := &State{
		ClickPower:   1,
		Burnout:      burnout.NewGauge(),
		StockPrices:  market.BasePrices(e.catalog.Stocks()),
		LastUpdate:   now,
		SessionStart: now,
	}
	st.Normalize()
	st.AvailableContracts = e.contracts.Pool(contract.PoolSize, st.ProductionRate, st.Currency)
	return st
}

// Repair brings a loaded state in line with the current catalog: missing
// stock prices are listed at base, an orphaned active contract is dropped,
// the contract pool is topped up and derived fields are recomputed.
func (e *Engine) Repair(st *State) {
	st.Normalize()
	for _, s := range e.catalog.Stocks() {
		if p, ok := st.StockPrices[s.ID]; !ok || p <= 0 {
			st.StockPrices[s.ID] = s.BasePrice
		}
	}
	if st.ActiveContractID != "" {
		if _, ok := st.findContract(st.ActiveContractID); !ok {
			st.ActiveContractID = ""
			st.ContractProgress = 0
		}
	}
	for len(st.AvailableContracts) < contract.PoolSize {
		st.AvailableContracts = append(st.AvailableContracts, e.contracts.Generate(st.ProductionRate, st.Currency))
	}
	if st.ClickPower <= 0 {
		st.ClickPower = 1
	}
	e.recompute(st)
}

// credit adds income from any source to the balances and the active contract
func (e *Engine) credit(st *State, amount float64) {
	if amount <= 0 {
		return
	}
	st.Currency += amount
	st.LifetimeCurrency += amount
	if st.ActiveContractID != "" {
		st.ContractProgress += amount
	}
	if st.LifetimeCurrency >= DarkWebThreshold {
		st.DarkWebUnlocked = true
	}
}

// recompute refreshes both derived quantities from scratch
func (e *Engine) recompute(st *State) {
	st.ProductionRate = ProductionRate(st, e.catalog)
	st.ClickPower = ClickPower(st, e.catalog)
}
