package game

import (
	"math"
	"time"

	"github.com/andrescamacho/devempire-go/internal/domain/burnout"
	"github.com/andrescamacho/devempire-go/internal/domain/catalog"
	"github.com/andrescamacho/devempire-go/internal/domain/contract"
)

// State is the whole game: one aggregate, mutated only through the Engine.
//
// Invariants:
//   - Currency >= 0 after every operation
//   - at most one active contract, and it is a member of AvailableContracts
//   - Achievements and DarkWebUnlocked only ever grow
//   - ProductionRate and ClickPower are derived, written only by the production engine
type State struct {
	Currency         float64
	ProductionRate   float64
	ClickPower       float64
	LifetimeCurrency float64
	PrestigeCurrency float64
	TechnicalDebt    float64
	ManualActions    int

	Buildings    map[catalog.BuildingID]int
	Upgrades     IDSet[catalog.UpgradeID]
	Hardware     IDSet[catalog.HardwareID]
	Skills       IDSet[catalog.SkillID]
	Achievements IDSet[catalog.AchievementID]

	Burnout burnout.Gauge

	ActiveContractID   string
	ContractProgress   float64
	AvailableContracts []*contract.Contract
	CompletedContracts []string

	StockPrices map[catalog.StockID]float64
	OwnedStocks map[catalog.StockID]int

	Specialization  Specialization
	OfficeLevel     int
	IllegalAIActive bool
	DarkWebUnlocked bool
	HasSeenIntro    bool

	BugSpawnedAt time.Time // zero when no bug is on screen
	NextBugAt    time.Time
	BugsSquashed int

	LastUpdate   time.Time
	SessionStart time.Time
}

// Personnel is the total head count across all buildings
func (s *State) Personnel() int {
	total := 0
	for _, n := range s.Buildings {
		total += n
	}
	return total
}

// ActiveContract returns the contract in progress, if any
func (s *State) ActiveContract() (*contract.Contract, bool) {
	if s.ActiveContractID == "" {
		return nil, false
	}
	return s.findContract(s.ActiveContractID)
}

// ContractsCompleted is the number of contracts delivered over the whole save
func (s *State) ContractsCompleted() int {
	return len(s.CompletedContracts)
}

// BugPending reports whether a bug is waiting to be squashed
func (s *State) BugPending() bool {
	return !s.BugSpawnedAt.IsZero()
}

func (s *State) findContract(id string) (*contract.Contract, bool) {
	for _, c := range s.AvailableContracts {
		if c.ID() == id {
			return c, true
		}
	}
	return nil, false
}

// Clone returns a deep copy. Contracts are immutable and shared.
func (s *State) Clone() *State {
	out := *s

	out.Buildings = make(map[catalog.BuildingID]int, len(s.Buildings))
	for k, v := range s.Buildings {
		out.Buildings[k] = v
	}
	out.Upgrades = s.Upgrades.Clone()
	out.Hardware = s.Hardware.Clone()
	out.Skills = s.Skills.Clone()
	out.Achievements = s.Achievements.Clone()

	out.AvailableContracts = append([]*contract.Contract(nil), s.AvailableContracts...)
	out.CompletedContracts = append([]string(nil), s.CompletedContracts...)

	out.StockPrices = make(map[catalog.StockID]float64, len(s.StockPrices))
	for k, v := range s.StockPrices {
		out.StockPrices[k] = v
	}
	out.OwnedStocks = make(map[catalog.StockID]int, len(s.OwnedStocks))
	for k, v := range s.OwnedStocks {
		out.OwnedStocks[k] = v
	}
	return &out
}

// Normalize replaces nil collections with empty ones so a partially shaped
// state behaves like a fresh one. Counts at or below zero are dropped and
// balances that are negative or not finite are zeroed.
func (s *State) Normalize() {
	if s.Buildings == nil {
		s.Buildings = make(map[catalog.BuildingID]int)
	}
	if s.Upgrades == nil {
		s.Upgrades = NewIDSet[catalog.UpgradeID]()
	}
	if s.Hardware == nil {
		s.Hardware = NewIDSet[catalog.HardwareID]()
	}
	if s.Skills == nil {
		s.Skills = NewIDSet[catalog.SkillID]()
	}
	if s.Achievements == nil {
		s.Achievements = NewIDSet[catalog.AchievementID]()
	}
	if s.StockPrices == nil {
		s.StockPrices = make(map[catalog.StockID]float64)
	}
	if s.OwnedStocks == nil {
		s.OwnedStocks = make(map[catalog.StockID]int)
	}

	for id, n := range s.Buildings {
		if n <= 0 {
			delete(s.Buildings, id)
		}
	}
	for id, n := range s.OwnedStocks {
		if n <= 0 {
			delete(s.OwnedStocks, id)
		}
	}
	for id, p := range s.StockPrices {
		if !validBalance(p) || p == 0 {
			delete(s.StockPrices, id)
		}
	}

	for _, v := range []*float64{&s.Currency, &s.LifetimeCurrency, &s.PrestigeCurrency, &s.TechnicalDebt, &s.ContractProgress} {
		if !validBalance(*v) {
			*v = 0
		}
	}
	if s.ManualActions < 0 {
		s.ManualActions = 0
	}
	if s.OfficeLevel < 0 {
		s.OfficeLevel = 0
	}
}

func validBalance(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0)
}
