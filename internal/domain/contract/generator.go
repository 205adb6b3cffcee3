package contract

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/andrescamacho/devempire-go/internal/domain/catalog"
	"github.com/andrescamacho/devempire-go/internal/domain/shared"
)

const (
	// PoolSize is the number of offers kept available at all times
	PoolSize = 3

	earlyGameCurrency = 5000.0
	earlyGameWorkload = 100.0
	minimumWorkload   = 500.0
	workloadSeconds   = 60.0
	minMultiplier     = 0.5
	multiplierSpan    = 2.5
	uncommonRollAbove = 0.6
	rareRollAbove     = 0.85
	mythicRollAbove   = 0.98
	mediumAbove       = 1.5
	hardAbove         = 2.2
	legendaryAbove    = 2.8
)

// Generator creates procedural contracts scaled to the player's economy
type Generator struct {
	rng     shared.RandomSource
	newID   func() string
	clients []string
	tasks   []string
	briefs  []string
}

// GeneratorOption customises a Generator
type GeneratorOption func(*Generator)

// WithIDFunc replaces the UUID id source, mainly for tests
func WithIDFunc(f func() string) GeneratorOption {
	return func(g *Generator) { g.newID = f }
}

// NewGenerator builds a generator drawing names from the catalog word lists
func NewGenerator(rng shared.RandomSource, cat *catalog.Catalog, opts ...GeneratorOption) (*Generator, error) {
	clients, tasks, briefs := cat.ContractContent()
	if len(clients) == 0 || len(tasks) == 0 || len(briefs) == 0 {
		return nil, ErrEmptyContent
	}

	g := &Generator{
		rng:     rng,
		newID:   uuid.NewString,
		clients: clients,
		tasks:   tasks,
		briefs:  briefs,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// BaseWorkload is the one-minute-of-production baseline a new contract is scaled from
func BaseWorkload(productionRate, currency float64) float64 {
	if currency < earlyGameCurrency {
		return earlyGameWorkload
	}
	return math.Max(minimumWorkload, productionRate*workloadSeconds)
}

// DifficultyFor maps a workload multiplier onto a tier
func DifficultyFor(multiplier float64) Difficulty {
	switch {
	case multiplier > legendaryAbove:
		return DifficultyLegendary
	case multiplier > hardAbove:
		return DifficultyHard
	case multiplier > mediumAbove:
		return DifficultyMedium
	default:
		return DifficultyEasy
	}
}

// RarityFor maps a uniform roll in [0,1) onto a rarity
func RarityFor(roll float64) Rarity {
	switch {
	case roll > mythicRollAbove:
		return RarityMythic
	case roll > rareRollAbove:
		return RarityRare
	case roll > uncommonRollAbove:
		return RarityUncommon
	default:
		return RarityCommon
	}
}

// Generate draws one contract. Draw order: workload multiplier, rarity roll, client,
// task, brief.
func (g *Generator) Generate(productionRate, currency float64) *Contract {
	multiplier := minMultiplier + g.rng.Float64()*multiplierSpan
	locRequired := math.Floor(BaseWorkload(productionRate, currency) * multiplier)
	if locRequired < 1 {
		locRequired = 1
	}

	rarity := RarityFor(g.rng.Float64())
	reward := Reward{Currency: math.Floor(locRequired * rarity.RewardMultiplier())}
	if rarity == RarityMythic {
		reward.Shares = math.Max(1, math.Floor(multiplier))
	}

	client := pick(g.clients, g.rng.Float64())
	task := pick(g.tasks, g.rng.Float64())
	brief := pick(g.briefs, g.rng.Float64())

	return Reconstruct(
		g.newID(),
		fmt.Sprintf("%s for %s", task, client),
		fmt.Sprintf("Client: %s. %s", client, brief),
		locRequired,
		nil,
		reward,
		DifficultyFor(multiplier),
		rarity,
	)
}

// Pool draws n fresh contracts
func (g *Generator) Pool(n int, productionRate, currency float64) []*Contract {
	pool := make([]*Contract, 0, n)
	for i := 0; i < n; i++ {
		pool = append(pool, g.Generate(productionRate, currency))
	}
	return pool
}

func pick(words []string, roll float64) string {
	i := int(roll * float64(len(words)))
	if i >= len(words) {
		i = len(words) - 1
	}
	return words[i]
}
