package contract

import (
	"fmt"
	"math"

	"github.com/andrescamacho/devempire-go/internal/domain/catalog"
)

// Difficulty is derived from the generator's workload multiplier
type Difficulty string

const (
	DifficultyEasy      Difficulty = "Easy"
	DifficultyMedium    Difficulty = "Medium"
	DifficultyHard      Difficulty = "Hard"
	DifficultyLegendary Difficulty = "Legendary"
)

// Rarity scales the reward of a contract
type Rarity string

const (
	RarityCommon   Rarity = "Common"
	RarityUncommon Rarity = "Uncommon"
	RarityRare     Rarity = "Rare"
	RarityMythic   Rarity = "Mythic"
)

// RewardMultiplier is the reward-to-workload ratio of a rarity
func (r Rarity) RewardMultiplier() float64 {
	switch r {
	case RarityUncommon:
		return 2.0
	case RarityRare:
		return 3.5
	case RarityMythic:
		return 10.0
	default:
		return 1.5
	}
}

// Requirement asks for a minimum number of one building type before accepting
type Requirement struct {
	Building catalog.BuildingID
	Count    int
}

// Reward is paid out on completion
type Reward struct {
	Currency float64
	Shares   float64
}

// Contract is an immutable job offer. Progress toward it lives on the game state
// while it is the active contract.
type Contract struct {
	id           string
	name         string
	description  string
	locRequired  float64
	requirements []Requirement
	reward       Reward
	difficulty   Difficulty
	rarity       Rarity
}

// NewContract validates and builds an offer
func NewContract(id, name, description string, locRequired float64, requirements []Requirement, reward Reward, difficulty Difficulty, rarity Rarity) (*Contract, error) {
	if id == "" {
		return nil, fmt.Errorf("contract ID cannot be empty")
	}
	if locRequired <= 0 || math.IsNaN(locRequired) {
		return nil, fmt.Errorf("contract %s: workload must be positive", id)
	}
	if reward.Currency < 0 || reward.Shares < 0 {
		return nil, fmt.Errorf("contract %s: reward cannot be negative", id)
	}
	for _, req := range requirements {
		if req.Count < 0 {
			return nil, fmt.Errorf("contract %s: requirement count cannot be negative", id)
		}
	}

	return Reconstruct(id, name, description, locRequired, requirements, reward, difficulty, rarity), nil
}

// Reconstruct rebuilds a contract from persistence without validation
func Reconstruct(id, name, description string, locRequired float64, requirements []Requirement, reward Reward, difficulty Difficulty, rarity Rarity) *Contract {
	return &Contract{
		id:           id,
		name:         name,
		description:  description,
		locRequired:  locRequired,
		requirements: append([]Requirement(nil), requirements...),
		reward:       reward,
		difficulty:   difficulty,
		rarity:       rarity,
	}
}

func (c *Contract) ID() string             { return c.id }
func (c *Contract) Name() string           { return c.name }
func (c *Contract) Description() string    { return c.description }
func (c *Contract) LOCRequired() float64   { return c.locRequired }
func (c *Contract) Reward() Reward         { return c.reward }
func (c *Contract) Difficulty() Difficulty { return c.difficulty }
func (c *Contract) Rarity() Rarity         { return c.rarity }

func (c *Contract) Requirements() []Requirement {
	return append([]Requirement(nil), c.requirements...)
}

// RequirementsMet checks the building counts against every requirement
func (c *Contract) RequirementsMet(owned map[catalog.BuildingID]int) bool {
	for _, req := range c.requirements {
		if owned[req.Building] < req.Count {
			return false
		}
	}
	return true
}

// IsComplete reports whether progress covers the workload
func (c *Contract) IsComplete(progress float64) bool {
	return progress >= c.locRequired
}
