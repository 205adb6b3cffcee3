package contract_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/devempire-go/internal/domain/catalog"
	"github.com/andrescamacho/devempire-go/internal/domain/contract"
	"github.com/andrescamacho/devempire-go/internal/domain/shared"
)

func newGenerator(t *testing.T, draws ...float64) *contract.Generator {
	t.Helper()
	g, err := contract.NewGenerator(shared.NewFixedRandom(draws...), catalog.Default(),
		contract.WithIDFunc(func() string { return "contract-1" }))
	require.NoError(t, err)
	return g
}

func TestGenerate_EarlyGameUsesFixedBaseline(t *testing.T) {
	// Arrange: multiplier draw 0 → 0.5x, rarity roll 0 → Common, first words
	g := newGenerator(t, 0, 0, 0, 0, 0)

	// Act
	c := g.Generate(1000, 4999)

	// Assert
	assert.Equal(t, "contract-1", c.ID())
	assert.Equal(t, 50.0, c.LOCRequired())
	assert.Equal(t, contract.DifficultyEasy, c.Difficulty())
	assert.Equal(t, contract.RarityCommon, c.Rarity())
	assert.Equal(t, 75.0, c.Reward().Currency)
	assert.Zero(t, c.Reward().Shares)
	assert.Equal(t, "Fix CSS Layouts for Local Bakery", c.Name())
	assert.Equal(t, "Client: Local Bakery. Needs it done yesterday.", c.Description())
	assert.Empty(t, c.Requirements())
}

func TestGenerate_MythicScalesWithProduction(t *testing.T) {
	// Arrange: multiplier draw 0.8 → 2.5x, rarity roll 0.99 → Mythic
	g := newGenerator(t, 0.8, 0.99, 0, 0, 0)

	// Act
	c := g.Generate(100, 10000)

	// Assert: base = max(500, 100*60) = 6000
	assert.Equal(t, 15000.0, c.LOCRequired())
	assert.Equal(t, contract.DifficultyHard, c.Difficulty())
	assert.Equal(t, contract.RarityMythic, c.Rarity())
	assert.Equal(t, 150000.0, c.Reward().Currency)
	assert.Equal(t, 2.0, c.Reward().Shares)
}

func TestGenerate_LateGameFloorIsFiveHundred(t *testing.T) {
	assert.Equal(t, 500.0, contract.BaseWorkload(1, 5000))
	assert.Equal(t, 100.0, contract.BaseWorkload(1000, 10))
	assert.Equal(t, 600.0, contract.BaseWorkload(10, 5000))
}

func TestGenerate_DefaultIDsAreUUIDs(t *testing.T) {
	g, err := contract.NewGenerator(shared.NewSeededRandom(7), catalog.Default())
	require.NoError(t, err)

	c := g.Generate(0, 0)

	_, parseErr := uuid.Parse(c.ID())
	assert.NoError(t, parseErr)
}

func TestGenerate_WorkloadWithinMultiplierBounds(t *testing.T) {
	g, err := contract.NewGenerator(shared.NewSeededRandom(42), catalog.Default())
	require.NoError(t, err)

	for i := 0; i < 500; i++ {
		c := g.Generate(0, 0)
		assert.GreaterOrEqual(t, c.LOCRequired(), 50.0)
		assert.Less(t, c.LOCRequired(), 300.0)
		assert.GreaterOrEqual(t, c.Reward().Currency, c.LOCRequired())
	}
}

func TestDifficultyFor_Thresholds(t *testing.T) {
	cases := []struct {
		multiplier float64
		want       contract.Difficulty
	}{
		{0.5, contract.DifficultyEasy},
		{1.5, contract.DifficultyEasy},
		{1.51, contract.DifficultyMedium},
		{2.2, contract.DifficultyMedium},
		{2.21, contract.DifficultyHard},
		{2.8, contract.DifficultyHard},
		{2.81, contract.DifficultyLegendary},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, contract.DifficultyFor(tc.multiplier), "multiplier %v", tc.multiplier)
	}
}

func TestRarityFor_Thresholds(t *testing.T) {
	assert.Equal(t, contract.RarityCommon, contract.RarityFor(0.6))
	assert.Equal(t, contract.RarityUncommon, contract.RarityFor(0.61))
	assert.Equal(t, contract.RarityUncommon, contract.RarityFor(0.85))
	assert.Equal(t, contract.RarityRare, contract.RarityFor(0.86))
	assert.Equal(t, contract.RarityRare, contract.RarityFor(0.98))
	assert.Equal(t, contract.RarityMythic, contract.RarityFor(0.99))
}

func TestPool_DrawsRequestedCount(t *testing.T) {
	g := newGenerator(t, 0.3, 0.1)

	pool := g.Pool(contract.PoolSize, 0, 0)

	assert.Len(t, pool, contract.PoolSize)
}
