package persistence

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pierrec/lz4/v4"
	"lukechampine.com/blake3"

	"github.com/andrescamacho/devempire-go/internal/domain/burnout"
	"github.com/andrescamacho/devempire-go/internal/domain/catalog"
	"github.com/andrescamacho/devempire-go/internal/domain/contract"
	"github.com/andrescamacho/devempire-go/internal/domain/game"
)

// SnapshotFormatVersion is written into every encoded document. Documents
// without it are read as saves of the original browser game.
const SnapshotFormatVersion = 1

// ErrCorruptSnapshot means a stored payload failed to decompress, failed its
// checksum or is not a readable document.
var ErrCorruptSnapshot = errors.New("corrupt snapshot")

type snapshotDocument struct {
	FormatVersion int `json:"formatVersion"`

	Currency           float64 `json:"currency"`
	ProductionRate     float64 `json:"productionRate"`
	ClickPower         float64 `json:"clickPower"`
	LifetimeCurrency   float64 `json:"lifetimeCurrency"`
	PrestigeCurrency   float64 `json:"prestigeCurrency"`
	TechnicalDebt      float64 `json:"technicalDebt"`
	TotalManualActions int     `json:"totalManualActions"`

	OwnedBuildings       map[string]int `json:"ownedBuildings"`
	OwnedUpgrades        []string       `json:"ownedUpgrades"`
	OwnedHardware        []string       `json:"ownedHardware"`
	UnlockedSkills       []string       `json:"unlockedSkills"`
	UnlockedAchievements []string       `json:"unlockedAchievements"`

	Burnout burnoutDocument `json:"burnout"`

	ActiveContractID   string             `json:"activeContractId,omitempty"`
	ContractProgress   float64            `json:"contractProgress"`
	AvailableContracts []contractDocument `json:"availableContracts"`
	CompletedContracts []string           `json:"completedContracts"`

	StockPrices map[string]float64 `json:"stockPrices"`
	OwnedShares map[string]int     `json:"ownedShares"`

	Specialization  string `json:"specialization,omitempty"`
	OfficeLevel     int    `json:"officeLevel"`
	IllegalAIActive bool   `json:"illegalAIActive"`
	DarkWebUnlocked bool   `json:"darkWebUnlocked"`
	HasSeenIntro    bool   `json:"hasSeenIntro"`

	BugSpawnedAt *time.Time `json:"bugSpawnedAt,omitempty"`
	NextBugAt    *time.Time `json:"nextBugAt,omitempty"`
	BugsSquashed int        `json:"bugsSquashed"`

	LastUpdate   time.Time `json:"lastUpdate"`
	SessionStart time.Time `json:"sessionStart"`
}

type burnoutDocument struct {
	Level      float64    `json:"level"`
	Overloaded bool       `json:"overloaded"`
	RecoverAt  *time.Time `json:"recoverAt,omitempty"`
}

type contractDocument struct {
	ID             string                `json:"id"`
	Name           string                `json:"name"`
	Description    string                `json:"description"`
	LOCRequired    float64               `json:"locRequired"`
	Requirements   []requirementDocument `json:"requirements,omitempty"`
	RewardCurrency float64               `json:"rewardCurrency"`
	RewardShares   float64               `json:"rewardShares"`
	Difficulty     string                `json:"difficulty"`
	Rarity         string                `json:"rarity"`
}

type requirementDocument struct {
	Building string `json:"building"`
	Count    int    `json:"count"`
}

// legacyDocument is the persisted store of the original browser game.
// Every field is optional.
type legacyDocument struct {
	LinesOfCode        *float64           `json:"linesOfCode"`
	CPS                float64            `json:"cps"`
	ClickPower         float64            `json:"clickPower"`
	TotalLinesOfCode   *float64           `json:"totalLinesOfCode"`
	Shares             float64            `json:"shares"`
	TotalClicks        int                `json:"totalClicks"`
	Buildings          map[string]int     `json:"buildings"`
	Upgrades           []string           `json:"upgrades"`
	Hardware           []string           `json:"hardware"`
	Achievements       []string           `json:"achievements"`
	Burnout            float64            `json:"burnout"`
	IsBurnout          bool               `json:"isBurnout"`
	ActiveContractID   *string            `json:"activeContractId"`
	ContractProgress   float64            `json:"contractProgress"`
	ContractsCompleted json.RawMessage    `json:"contractsCompleted"`
	OwnedStocks        map[string]int     `json:"ownedStocks"`
	StockPrices        map[string]float64 `json:"stockPrices"`
	HasSeenIntro       bool               `json:"hasSeenIntro"`
	LastSaveTime       int64              `json:"lastSaveTime"`
	StartTime          int64              `json:"startTime"`
}

// EncodeSnapshot serializes the state into a compressed payload and the hex
// blake3 checksum of the uncompressed document.
func EncodeSnapshot(st *game.State) ([]byte, string, error) {
	doc, err := json.Marshal(toDocument(st))
	if err != nil {
		return nil, "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	if _, err := zw.Write(doc); err != nil {
		return nil, "", fmt.Errorf("failed to compress snapshot: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to compress snapshot: %w", err)
	}

	return buf.Bytes(), checksum(doc), nil
}

// EncodeDocument renders the state as the indented, uncompressed JSON
// document that DecodeDocument reads back.
func EncodeDocument(st *game.State) ([]byte, error) {
	doc, err := json.MarshalIndent(toDocument(st), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return doc, nil
}

// DecodeSnapshot reverses EncodeSnapshot. Overloaded gauges saved without a
// deadline are given one relative to now.
func DecodeSnapshot(payload []byte, sum string, now time.Time) (*game.State, error) {
	doc, err := io.ReadAll(lz4.NewReader(bytes.NewReader(payload)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	if checksum(doc) != sum {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorruptSnapshot)
	}
	return DecodeDocument(doc, now)
}

// DecodeDocument reads an uncompressed JSON save, in either the current
// format or the original game's store layout (bare or wrapped in the
// {"state": ..., "version": n} envelope of its persistence layer).
func DecodeDocument(raw []byte, now time.Time) (*game.State, error) {
	var probe struct {
		FormatVersion int             `json:"formatVersion"`
		State         json.RawMessage `json:"state"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}

	if probe.FormatVersion > 0 {
		var doc snapshotDocument
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
		}
		return fromDocument(&doc, now), nil
	}

	if len(probe.State) > 0 && probe.State[0] == '{' {
		raw = probe.State
	}
	var legacy legacyDocument
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return fromLegacy(&legacy, now), nil
}

func checksum(doc []byte) string {
	sum := blake3.Sum256(doc)
	return hex.EncodeToString(sum[:])
}

func toDocument(st *game.State) *snapshotDocument {
	doc := &snapshotDocument{
		FormatVersion:        SnapshotFormatVersion,
		Currency:             st.Currency,
		ProductionRate:       st.ProductionRate,
		ClickPower:           st.ClickPower,
		LifetimeCurrency:     st.LifetimeCurrency,
		PrestigeCurrency:     st.PrestigeCurrency,
		TechnicalDebt:        st.TechnicalDebt,
		TotalManualActions:   st.ManualActions,
		OwnedBuildings:       make(map[string]int, len(st.Buildings)),
		OwnedUpgrades:        idStrings(st.Upgrades.Sorted()),
		OwnedHardware:        idStrings(st.Hardware.Sorted()),
		UnlockedSkills:       idStrings(st.Skills.Sorted()),
		UnlockedAchievements: idStrings(st.Achievements.Sorted()),
		Burnout: burnoutDocument{
			Level:      st.Burnout.Level(),
			Overloaded: st.Burnout.Overloaded(),
			RecoverAt:  optionalTime(st.Burnout.RecoverAt()),
		},
		ActiveContractID:   st.ActiveContractID,
		ContractProgress:   st.ContractProgress,
		AvailableContracts: make([]contractDocument, 0, len(st.AvailableContracts)),
		CompletedContracts: append([]string{}, st.CompletedContracts...),
		StockPrices:        make(map[string]float64, len(st.StockPrices)),
		OwnedShares:        make(map[string]int, len(st.OwnedStocks)),
		Specialization:     string(st.Specialization),
		OfficeLevel:        st.OfficeLevel,
		IllegalAIActive:    st.IllegalAIActive,
		DarkWebUnlocked:    st.DarkWebUnlocked,
		HasSeenIntro:       st.HasSeenIntro,
		BugSpawnedAt:       optionalTime(st.BugSpawnedAt),
		NextBugAt:          optionalTime(st.NextBugAt),
		BugsSquashed:       st.BugsSquashed,
		LastUpdate:         st.LastUpdate,
		SessionStart:       st.SessionStart,
	}

	for id, n := range st.Buildings {
		doc.OwnedBuildings[string(id)] = n
	}
	for id, p := range st.StockPrices {
		doc.StockPrices[string(id)] = p
	}
	for id, n := range st.OwnedStocks {
		doc.OwnedShares[string(id)] = n
	}

	for _, c := range st.AvailableContracts {
		cd := contractDocument{
			ID:             c.ID(),
			Name:           c.Name(),
			Description:    c.Description(),
			LOCRequired:    c.LOCRequired(),
			RewardCurrency: c.Reward().Currency,
			RewardShares:   c.Reward().Shares,
			Difficulty:     string(c.Difficulty()),
			Rarity:         string(c.Rarity()),
		}
		for _, r := range c.Requirements() {
			cd.Requirements = append(cd.Requirements, requirementDocument{Building: string(r.Building), Count: r.Count})
		}
		doc.AvailableContracts = append(doc.AvailableContracts, cd)
	}

	return doc
}

func fromDocument(doc *snapshotDocument, now time.Time) *game.State {
	st := &game.State{
		Currency:         doc.Currency,
		ProductionRate:   doc.ProductionRate,
		ClickPower:       doc.ClickPower,
		LifetimeCurrency: doc.LifetimeCurrency,
		PrestigeCurrency: doc.PrestigeCurrency,
		TechnicalDebt:    doc.TechnicalDebt,
		ManualActions:    doc.TotalManualActions,

		Buildings:    make(map[catalog.BuildingID]int, len(doc.OwnedBuildings)),
		Upgrades:     game.NewIDSet(ids[catalog.UpgradeID](doc.OwnedUpgrades)...),
		Hardware:     game.NewIDSet(ids[catalog.HardwareID](doc.OwnedHardware)...),
		Skills:       game.NewIDSet(ids[catalog.SkillID](doc.UnlockedSkills)...),
		Achievements: game.NewIDSet(ids[catalog.AchievementID](doc.UnlockedAchievements)...),

		Burnout: burnout.Reconstruct(doc.Burnout.Level, doc.Burnout.Overloaded, timeOrZero(doc.Burnout.RecoverAt), now),

		ActiveContractID:   doc.ActiveContractID,
		ContractProgress:   doc.ContractProgress,
		CompletedContracts: append([]string(nil), doc.CompletedContracts...),

		StockPrices: make(map[catalog.StockID]float64, len(doc.StockPrices)),
		OwnedStocks: make(map[catalog.StockID]int, len(doc.OwnedShares)),

		Specialization:  game.Specialization(doc.Specialization),
		OfficeLevel:     doc.OfficeLevel,
		IllegalAIActive: doc.IllegalAIActive,
		DarkWebUnlocked: doc.DarkWebUnlocked,
		HasSeenIntro:    doc.HasSeenIntro,

		BugSpawnedAt: timeOrZero(doc.BugSpawnedAt),
		NextBugAt:    timeOrZero(doc.NextBugAt),
		BugsSquashed: doc.BugsSquashed,

		LastUpdate:   doc.LastUpdate,
		SessionStart: doc.SessionStart,
	}

	for id, n := range doc.OwnedBuildings {
		st.Buildings[catalog.BuildingID(id)] = n
	}
	for id, p := range doc.StockPrices {
		st.StockPrices[catalog.StockID(id)] = p
	}
	for id, n := range doc.OwnedShares {
		st.OwnedStocks[catalog.StockID(id)] = n
	}

	for _, cd := range doc.AvailableContracts {
		reqs := make([]contract.Requirement, 0, len(cd.Requirements))
		for _, r := range cd.Requirements {
			reqs = append(reqs, contract.Requirement{Building: catalog.BuildingID(r.Building), Count: r.Count})
		}
		st.AvailableContracts = append(st.AvailableContracts, contract.Reconstruct(
			cd.ID, cd.Name, cd.Description, cd.LOCRequired, reqs,
			contract.Reward{Currency: cd.RewardCurrency, Shares: cd.RewardShares},
			contract.Difficulty(cd.Difficulty), contract.Rarity(cd.Rarity),
		))
	}

	st.Normalize()
	return st
}

func fromLegacy(doc *legacyDocument, now time.Time) *game.State {
	st := &game.State{
		ProductionRate:   doc.CPS,
		ClickPower:       doc.ClickPower,
		PrestigeCurrency: doc.Shares,
		ManualActions:    doc.TotalClicks,
		Upgrades:         game.NewIDSet(ids[catalog.UpgradeID](doc.Upgrades)...),
		Hardware:         game.NewIDSet(ids[catalog.HardwareID](doc.Hardware)...),
		Achievements:     game.NewIDSet(ids[catalog.AchievementID](doc.Achievements)...),
		Burnout:          burnout.Reconstruct(doc.Burnout, doc.IsBurnout, time.Time{}, now),
		ContractProgress: doc.ContractProgress,
		HasSeenIntro:     doc.HasSeenIntro,
		Buildings:        make(map[catalog.BuildingID]int, len(doc.Buildings)),
		StockPrices:      make(map[catalog.StockID]float64, len(doc.StockPrices)),
		OwnedStocks:      make(map[catalog.StockID]int, len(doc.OwnedStocks)),
	}

	if doc.LinesOfCode != nil {
		st.Currency = *doc.LinesOfCode
	}
	st.LifetimeCurrency = st.Currency
	if doc.TotalLinesOfCode != nil {
		st.LifetimeCurrency = *doc.TotalLinesOfCode
	}
	if doc.ActiveContractID != nil {
		st.ActiveContractID = *doc.ActiveContractID
	}
	if st.ActiveContractID == "" {
		st.ContractProgress = 0
	}
	st.CompletedContracts = legacyCompleted(doc.ContractsCompleted)

	for id, n := range doc.Buildings {
		st.Buildings[catalog.BuildingID(id)] = n
	}
	for id, p := range doc.StockPrices {
		st.StockPrices[catalog.StockID(id)] = p
	}
	for id, n := range doc.OwnedStocks {
		st.OwnedStocks[catalog.StockID(id)] = n
	}

	st.LastUpdate = now
	if doc.LastSaveTime > 0 {
		st.LastUpdate = time.UnixMilli(doc.LastSaveTime).UTC()
	}
	st.SessionStart = st.LastUpdate
	if doc.StartTime > 0 {
		st.SessionStart = time.UnixMilli(doc.StartTime).UTC()
	}

	st.Normalize()
	return st
}

// MaxLegacyCompletedContracts bounds the placeholder history built from a
// legacy completed-contract count
const MaxLegacyCompletedContracts = 10000

// legacyCompleted accepts either the list of delivered contract ids or a
// bare count, which is expanded into placeholder ids.
func legacyCompleted(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var count int
	if err := json.Unmarshal(raw, &count); err == nil && count > 0 {
		count = min(count, MaxLegacyCompletedContracts)
		out := make([]string, count)
		for i := range out {
			out[i] = fmt.Sprintf("legacy-%d", i+1)
		}
		return out
	}
	return nil
}

func ids[K ~string](in []string) []K {
	out := make([]K, len(in))
	for i, s := range in {
		out[i] = K(s)
	}
	return out
}

func idStrings[K ~string](in []K) []string {
	out := make([]string, len(in))
	for i, id := range in {
		out[i] = string(id)
	}
	return out
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
