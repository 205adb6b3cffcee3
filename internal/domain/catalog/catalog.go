package catalog

import (
	"fmt"

	"github.com/andrescamacho/devempire-go/internal/domain/shared"
)

// Catalog holds the immutable reference tables the game engine reads.
// Slices keep declaration order for listings; maps serve id lookups.
type Catalog struct {
	buildings    []Building
	upgrades     []Upgrade
	hardware     []Hardware
	stocks       []Stock
	skills       []Skill
	achievements []Achievement
	offices      []OfficeTier

	buildingIndex map[BuildingID]int
	upgradeIndex  map[UpgradeID]int
	hardwareIndex map[HardwareID]int
	stockIndex    map[StockID]int
	skillIndex    map[SkillID]int

	clients []string
	tasks   []string
	briefs  []string
}

// Tables is the raw input for New
type Tables struct {
	Buildings    []Building
	Upgrades     []Upgrade
	Hardware     []Hardware
	Stocks       []Stock
	Skills       []Skill
	Achievements []Achievement
	Offices      []OfficeTier
	Clients      []string
	Tasks        []string
	Briefs       []string
}

var defaultCatalog = MustNew(Tables{
	Buildings:    defaultBuildings,
	Upgrades:     defaultUpgrades,
	Hardware:     defaultHardware,
	Stocks:       defaultStocks,
	Skills:       defaultSkills,
	Achievements: defaultAchievements,
	Offices:      defaultOffices,
	Clients:      contractClients,
	Tasks:        contractTasks,
	Briefs:       contractBriefs,
})

// Default returns the built-in game catalog
func Default() *Catalog {
	return defaultCatalog
}

// New indexes the given tables, rejecting duplicate ids and an empty office ladder
func New(t Tables) (*Catalog, error) {
	if len(t.Offices) == 0 {
		return nil, shared.NewValidationError("offices", "at least one office tier is required")
	}
	for i, o := range t.Offices {
		if o.Level != i {
			return nil, shared.NewValidationError("offices", fmt.Sprintf("tier %q has level %d, expected %d", o.Name, o.Level, i))
		}
	}

	c := &Catalog{
		buildings:     append([]Building(nil), t.Buildings...),
		upgrades:      append([]Upgrade(nil), t.Upgrades...),
		hardware:      append([]Hardware(nil), t.Hardware...),
		stocks:        append([]Stock(nil), t.Stocks...),
		skills:        append([]Skill(nil), t.Skills...),
		achievements:  append([]Achievement(nil), t.Achievements...),
		offices:       append([]OfficeTier(nil), t.Offices...),
		buildingIndex: make(map[BuildingID]int, len(t.Buildings)),
		upgradeIndex:  make(map[UpgradeID]int, len(t.Upgrades)),
		hardwareIndex: make(map[HardwareID]int, len(t.Hardware)),
		stockIndex:    make(map[StockID]int, len(t.Stocks)),
		skillIndex:    make(map[SkillID]int, len(t.Skills)),
		clients:       t.Clients,
		tasks:         t.Tasks,
		briefs:        t.Briefs,
	}

	for i, b := range c.buildings {
		if _, dup := c.buildingIndex[b.ID]; dup {
			return nil, shared.NewValidationError("buildings", fmt.Sprintf("duplicate id %q", b.ID))
		}
		c.buildingIndex[b.ID] = i
	}
	for i, u := range c.upgrades {
		if _, dup := c.upgradeIndex[u.ID]; dup {
			return nil, shared.NewValidationError("upgrades", fmt.Sprintf("duplicate id %q", u.ID))
		}
		c.upgradeIndex[u.ID] = i
	}
	for i, h := range c.hardware {
		if _, dup := c.hardwareIndex[h.ID]; dup {
			return nil, shared.NewValidationError("hardware", fmt.Sprintf("duplicate id %q", h.ID))
		}
		c.hardwareIndex[h.ID] = i
	}
	for i, s := range c.stocks {
		if _, dup := c.stockIndex[s.ID]; dup {
			return nil, shared.NewValidationError("stocks", fmt.Sprintf("duplicate id %q", s.ID))
		}
		c.stockIndex[s.ID] = i
	}
	for i, s := range c.skills {
		if _, dup := c.skillIndex[s.ID]; dup {
			return nil, shared.NewValidationError("skills", fmt.Sprintf("duplicate id %q", s.ID))
		}
		c.skillIndex[s.ID] = i
	}
	for _, s := range c.skills {
		if s.Requires == "" {
			continue
		}
		if _, ok := c.skillIndex[s.Requires]; !ok {
			return nil, shared.NewValidationError("skills", fmt.Sprintf("skill %q requires unknown skill %q", s.ID, s.Requires))
		}
	}

	return c, nil
}

// MustNew is New for package-level tables that are known to be valid
func MustNew(t Tables) *Catalog {
	c, err := New(t)
	if err != nil {
		panic(fmt.Sprintf("invalid catalog: %v", err))
	}
	return c
}

func (c *Catalog) Building(id BuildingID) (Building, error) {
	i, ok := c.buildingIndex[id]
	if !ok {
		return Building{}, shared.NewNotFoundError("building", string(id))
	}
	return c.buildings[i], nil
}

func (c *Catalog) Upgrade(id UpgradeID) (Upgrade, error) {
	i, ok := c.upgradeIndex[id]
	if !ok {
		return Upgrade{}, shared.NewNotFoundError("upgrade", string(id))
	}
	return c.upgrades[i], nil
}

func (c *Catalog) Hardware(id HardwareID) (Hardware, error) {
	i, ok := c.hardwareIndex[id]
	if !ok {
		return Hardware{}, shared.NewNotFoundError("hardware", string(id))
	}
	return c.hardware[i], nil
}

func (c *Catalog) Stock(id StockID) (Stock, error) {
	i, ok := c.stockIndex[id]
	if !ok {
		return Stock{}, shared.NewNotFoundError("stock", string(id))
	}
	return c.stocks[i], nil
}

func (c *Catalog) Skill(id SkillID) (Skill, error) {
	i, ok := c.skillIndex[id]
	if !ok {
		return Skill{}, shared.NewNotFoundError("skill", string(id))
	}
	return c.skills[i], nil
}

// Office returns the tier for a level, clamping out-of-range levels to the ladder ends
func (c *Catalog) Office(level int) OfficeTier {
	if level < 0 {
		level = 0
	}
	if level >= len(c.offices) {
		level = len(c.offices) - 1
	}
	return c.offices[level]
}

// TopOfficeLevel is the highest reachable office level
func (c *Catalog) TopOfficeLevel() int {
	return len(c.offices) - 1
}

func (c *Catalog) Buildings() []Building       { return c.buildings }
func (c *Catalog) Upgrades() []Upgrade         { return c.upgrades }
func (c *Catalog) HardwareItems() []Hardware   { return c.hardware }
func (c *Catalog) Stocks() []Stock             { return c.stocks }
func (c *Catalog) Skills() []Skill             { return c.skills }
func (c *Catalog) Achievements() []Achievement { return c.achievements }
func (c *Catalog) Offices() []OfficeTier       { return c.offices }

// ContractContent returns the client, task and brief word lists for contract names
func (c *Catalog) ContractContent() (clients, tasks, briefs []string) {
	return c.clients, c.tasks, c.briefs
}
