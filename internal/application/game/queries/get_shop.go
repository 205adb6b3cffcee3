package queries

import (
	"context"
	"fmt"

	gameApp "github.com/andrescamacho/devempire-go/internal/application/game"
	"github.com/andrescamacho/devempire-go/internal/application/mediator"
	"github.com/andrescamacho/devempire-go/internal/domain/catalog"
	"github.com/andrescamacho/devempire-go/internal/domain/game"
)

// GetShopQuery asks for every purchasable item priced against the current state
type GetShopQuery struct{}

// ShopItem is one catalog row with its current price and ownership
type ShopItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Detail      string  `json:"detail"`
	Cost        float64 `json:"cost"`
	Owned       int     `json:"owned"`
	Available   bool    `json:"available"`
	Affordable  bool    `json:"affordable"`
	Requirement string  `json:"requirement,omitempty"`
}

// StockQuote is one listed stock at its current price
type StockQuote struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	BasePrice float64 `json:"base_price"`
	Owned     int     `json:"owned"`
}

// GetShopResponse lists the shop sections
type GetShopResponse struct {
	Buildings []ShopItem   `json:"buildings"`
	Upgrades  []ShopItem   `json:"upgrades"`
	Hardware  []ShopItem   `json:"hardware"`
	Skills    []ShopItem   `json:"skills"`
	Stocks    []StockQuote `json:"stocks"`
	Office    *ShopItem    `json:"office,omitempty"`
}

// GetShopHandler handles the GetShop query
type GetShopHandler struct {
	session *gameApp.Session
}

// NewGetShopHandler creates a new GetShopHandler
func NewGetShopHandler(session *gameApp.Session) *GetShopHandler {
	return &GetShopHandler{session: session}
}

// Handle executes the GetShop query
func (h *GetShopHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	if _, ok := request.(*GetShopQuery); !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetShopQuery")
	}
	return BuildShop(h.session.Snapshot(), h.session.Catalog()), nil
}

// BuildShop prices the catalog against a state
func BuildShop(st *game.State, cat *catalog.Catalog) *GetShopResponse {
	resp := &GetShopResponse{}
	roomy := cat.Office(st.OfficeLevel).Admits(st.Personnel())

	for _, b := range cat.Buildings() {
		cost := b.CostAt(st.Buildings[b.ID])
		resp.Buildings = append(resp.Buildings, ShopItem{
			ID:         string(b.ID),
			Name:       b.Name,
			Detail:     fmt.Sprintf("%g LOC/s each", b.BaseRate),
			Cost:       cost,
			Owned:      st.Buildings[b.ID],
			Available:  roomy,
			Affordable: roomy && st.Currency >= cost,
		})
	}

	for _, u := range cat.Upgrades() {
		owned := st.Upgrades.Has(u.ID)
		resp.Upgrades = append(resp.Upgrades, ShopItem{
			ID:         string(u.ID),
			Name:       u.Name,
			Detail:     upgradeDetail(u),
			Cost:       u.Cost,
			Owned:      boolCount(owned),
			Available:  !owned,
			Affordable: !owned && st.Currency >= u.Cost,
		})
	}

	for _, hw := range cat.HardwareItems() {
		owned := st.Hardware.Has(hw.ID)
		resp.Hardware = append(resp.Hardware, ShopItem{
			ID:         string(hw.ID),
			Name:       hw.Name,
			Detail:     fmt.Sprintf("%s x%g", hw.Class, hw.Multiplier),
			Cost:       hw.Cost,
			Owned:      boolCount(owned),
			Available:  !owned,
			Affordable: !owned && st.Currency >= hw.Cost,
		})
	}

	for _, s := range cat.Skills() {
		owned := st.Skills.Has(s.ID)
		ready := s.Requires == "" || st.Skills.Has(s.Requires)
		resp.Skills = append(resp.Skills, ShopItem{
			ID:          string(s.ID),
			Name:        s.Name,
			Detail:      s.Description,
			Cost:        s.Cost,
			Owned:       boolCount(owned),
			Available:   !owned && ready,
			Affordable:  !owned && ready && st.Currency >= s.Cost,
			Requirement: string(s.Requires),
		})
	}

	for _, s := range cat.Stocks() {
		resp.Stocks = append(resp.Stocks, StockQuote{
			ID:        string(s.ID),
			Name:      s.Name,
			Symbol:    s.Symbol,
			Price:     st.StockPrices[s.ID],
			BasePrice: s.BasePrice,
			Owned:     st.OwnedStocks[s.ID],
		})
	}

	if st.OfficeLevel < cat.TopOfficeLevel() {
		current, next := cat.Office(st.OfficeLevel), cat.Office(st.OfficeLevel+1)
		resp.Office = &ShopItem{
			ID:         fmt.Sprintf("office_%d", next.Level),
			Name:       next.Name,
			Detail:     capacityDetail(next),
			Cost:       current.RelocationCost,
			Available:  true,
			Affordable: st.Currency >= current.RelocationCost,
		}
	}
	return resp
}

func upgradeDetail(u catalog.Upgrade) string {
	if u.Kind == catalog.UpgradeKindBuilding {
		return fmt.Sprintf("%s x%g", u.Target, u.Multiplier)
	}
	return fmt.Sprintf("%s x%g", u.Kind, u.Multiplier)
}

func capacityDetail(o catalog.OfficeTier) string {
	if o.Capacity == catalog.UnlimitedCapacity {
		return "unlimited seats"
	}
	return fmt.Sprintf("%d seats", o.Capacity)
}

func boolCount(b bool) int {
	if b {
		return 1
	}
	return 0
}
