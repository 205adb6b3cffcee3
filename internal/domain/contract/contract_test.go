package contract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/devempire-go/internal/domain/catalog"
	"github.com/andrescamacho/devempire-go/internal/domain/contract"
)

func TestNewContract_Validation(t *testing.T) {
	_, err := contract.NewContract("", "n", "d", 10, nil, contract.Reward{}, contract.DifficultyEasy, contract.RarityCommon)
	assert.Error(t, err)

	_, err = contract.NewContract("c", "n", "d", 0, nil, contract.Reward{}, contract.DifficultyEasy, contract.RarityCommon)
	assert.Error(t, err)

	_, err = contract.NewContract("c", "n", "d", 10, nil, contract.Reward{Currency: -1}, contract.DifficultyEasy, contract.RarityCommon)
	assert.Error(t, err)
}

func TestRequirementsMet(t *testing.T) {
	c, err := contract.NewContract("c", "n", "d", 10,
		[]contract.Requirement{{Building: catalog.BuildingJuniorDev, Count: 2}},
		contract.Reward{Currency: 15}, contract.DifficultyEasy, contract.RarityCommon)
	require.NoError(t, err)

	assert.False(t, c.RequirementsMet(map[catalog.BuildingID]int{catalog.BuildingJuniorDev: 1}))
	assert.True(t, c.RequirementsMet(map[catalog.BuildingID]int{catalog.BuildingJuniorDev: 2}))
	assert.False(t, c.RequirementsMet(nil))
}

func TestIsComplete(t *testing.T) {
	c, err := contract.NewContract("c", "n", "d", 10, nil, contract.Reward{Currency: 15}, contract.DifficultyEasy, contract.RarityCommon)
	require.NoError(t, err)

	assert.False(t, c.IsComplete(9.99))
	assert.True(t, c.IsComplete(10))
}

func TestRarity_RewardMultiplier(t *testing.T) {
	assert.Equal(t, 1.5, contract.RarityCommon.RewardMultiplier())
	assert.Equal(t, 2.0, contract.RarityUncommon.RewardMultiplier())
	assert.Equal(t, 3.5, contract.RarityRare.RewardMultiplier())
	assert.Equal(t, 10.0, contract.RarityMythic.RewardMultiplier())
}
