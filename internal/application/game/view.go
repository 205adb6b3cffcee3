package game

import (
	"time"

	"github.com/andrescamacho/devempire-go/internal/domain/catalog"
	"github.com/andrescamacho/devempire-go/internal/domain/game"
)

// StateView is the read model of the game state served to the CLI and the stream
type StateView struct {
	Currency         float64 `json:"currency"`
	ProductionRate   float64 `json:"production_rate"`
	ClickPower       float64 `json:"click_power"`
	LifetimeCurrency float64 `json:"lifetime_currency"`
	PrestigeCurrency float64 `json:"prestige_currency"`
	PrestigeGain     float64 `json:"prestige_gain"`
	TechnicalDebt    float64 `json:"technical_debt"`
	ManualActions    int     `json:"manual_actions"`

	Buildings    map[catalog.BuildingID]int `json:"buildings"`
	Upgrades     []catalog.UpgradeID        `json:"upgrades"`
	Hardware     []catalog.HardwareID       `json:"hardware"`
	Skills       []catalog.SkillID          `json:"skills"`
	Achievements []catalog.AchievementID    `json:"achievements"`

	Burnout BurnoutView `json:"burnout"`

	ActiveContractID   string         `json:"active_contract_id,omitempty"`
	ContractProgress   float64        `json:"contract_progress"`
	Contracts          []ContractView `json:"contracts"`
	ContractsCompleted int            `json:"contracts_completed"`

	StockPrices map[catalog.StockID]float64 `json:"stock_prices"`
	OwnedStocks map[catalog.StockID]int     `json:"owned_stocks"`

	Specialization  string     `json:"specialization"`
	Office          OfficeView `json:"office"`
	IllegalAIActive bool       `json:"illegal_ai_active"`
	DarkWebUnlocked bool       `json:"dark_web_unlocked"`
	HasSeenIntro    bool       `json:"has_seen_intro"`

	BugPending   bool      `json:"bug_pending"`
	NextBugAt    time.Time `json:"next_bug_at,omitempty"`
	BugsSquashed int       `json:"bugs_squashed"`

	LastUpdate   time.Time `json:"last_update"`
	SessionStart time.Time `json:"session_start"`
}

type BurnoutView struct {
	Level      float64    `json:"level"`
	Status     string     `json:"status"`
	RecoverAt  *time.Time `json:"recover_at,omitempty"`
	Overloaded bool       `json:"overloaded"`
}

type ContractView struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	LOCRequired  float64        `json:"loc_required"`
	Difficulty   string         `json:"difficulty"`
	Rarity       string         `json:"rarity"`
	RewardLOC    float64        `json:"reward_loc"`
	RewardShares float64        `json:"reward_shares,omitempty"`
	Requirements map[string]int `json:"requirements,omitempty"`
	Active       bool           `json:"active"`
}

type OfficeView struct {
	Level          int     `json:"level"`
	Name           string  `json:"name"`
	Capacity       int     `json:"capacity"`
	Personnel      int     `json:"personnel"`
	RelocationCost float64 `json:"relocation_cost,omitempty"`
}

// NewStateView projects a state for display
func NewStateView(st *game.State, cat *catalog.Catalog) *StateView {
	v := &StateView{
		Currency:           st.Currency,
		ProductionRate:     st.ProductionRate,
		ClickPower:         st.ClickPower,
		LifetimeCurrency:   st.LifetimeCurrency,
		PrestigeCurrency:   st.PrestigeCurrency,
		PrestigeGain:       game.PrestigeGain(st),
		TechnicalDebt:      st.TechnicalDebt,
		ManualActions:      st.ManualActions,
		Buildings:          make(map[catalog.BuildingID]int, len(st.Buildings)),
		Upgrades:           st.Upgrades.Sorted(),
		Hardware:           st.Hardware.Sorted(),
		Skills:             st.Skills.Sorted(),
		Achievements:       st.Achievements.Sorted(),
		ActiveContractID:   st.ActiveContractID,
		ContractProgress:   st.ContractProgress,
		ContractsCompleted: st.ContractsCompleted(),
		StockPrices:        make(map[catalog.StockID]float64, len(st.StockPrices)),
		OwnedStocks:        make(map[catalog.StockID]int, len(st.OwnedStocks)),
		Specialization:     st.Specialization.String(),
		IllegalAIActive:    st.IllegalAIActive,
		DarkWebUnlocked:    st.DarkWebUnlocked,
		HasSeenIntro:       st.HasSeenIntro,
		BugPending:         st.BugPending(),
		NextBugAt:          st.NextBugAt,
		BugsSquashed:       st.BugsSquashed,
		LastUpdate:         st.LastUpdate,
		SessionStart:       st.SessionStart,
	}

	for id, n := range st.Buildings {
		if n > 0 {
			v.Buildings[id] = n
		}
	}
	for id, p := range st.StockPrices {
		v.StockPrices[id] = p
	}
	for id, n := range st.OwnedStocks {
		v.OwnedStocks[id] = n
	}

	v.Burnout = BurnoutView{
		Level:      st.Burnout.Level(),
		Status:     string(st.Burnout.Status()),
		Overloaded: st.Burnout.Overloaded(),
	}
	if st.Burnout.Overloaded() {
		at := st.Burnout.RecoverAt()
		v.Burnout.RecoverAt = &at
	}

	for _, c := range st.AvailableContracts {
		cv := ContractView{
			ID:           c.ID(),
			Name:         c.Name(),
			Description:  c.Description(),
			LOCRequired:  c.LOCRequired(),
			Difficulty:   string(c.Difficulty()),
			Rarity:       string(c.Rarity()),
			RewardLOC:    c.Reward().Currency,
			RewardShares: c.Reward().Shares,
			Active:       c.ID() == st.ActiveContractID,
		}
		if reqs := c.Requirements(); len(reqs) > 0 {
			cv.Requirements = make(map[string]int, len(reqs))
			for _, r := range reqs {
				cv.Requirements[string(r.Building)] = r.Count
			}
		}
		v.Contracts = append(v.Contracts, cv)
	}

	office := cat.Office(st.OfficeLevel)
	v.Office = OfficeView{
		Level:     office.Level,
		Name:      office.Name,
		Capacity:  office.Capacity,
		Personnel: st.Personnel(),
	}
	if st.OfficeLevel < cat.TopOfficeLevel() {
		v.Office.RelocationCost = office.RelocationCost
	}
	return v
}
