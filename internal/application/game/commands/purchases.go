package commands

import (
	"context"
	"fmt"
	"time"

	gameApp "github.com/andrescamacho/devempire-go/internal/application/game"
	"github.com/andrescamacho/devempire-go/internal/application/mediator"
	"github.com/andrescamacho/devempire-go/internal/domain/catalog"
	"github.com/andrescamacho/devempire-go/internal/domain/game"
	"github.com/andrescamacho/devempire-go/internal/domain/ledger"
)

// BuyBuildingCommand hires one unit of a building
type BuyBuildingCommand struct {
	BuildingID string
}

// BuyBuildingHandler handles BuyBuildingCommand
type BuyBuildingHandler struct {
	actionRunner
}

// NewBuyBuildingHandler creates a new BuyBuildingHandler
func NewBuyBuildingHandler(session *gameApp.Session, m mediator.Mediator) *BuyBuildingHandler {
	return &BuyBuildingHandler{actionRunner: newActionRunner(session, m)}
}

// Handle executes the BuyBuilding command
func (h *BuyBuildingHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*BuyBuildingCommand)
	if !ok {
		return nil, invalidRequest("BuyBuildingCommand")
	}
	id := catalog.BuildingID(cmd.BuildingID)
	engine := h.session.Engine()

	return h.apply(ctx,
		func(st *game.State, _ time.Time) (bool, error) {
			return engine.BuyBuilding(st, id)
		},
		func(before, after balances) []journalEntry {
			return []journalEntry{locEntry(ledger.TransactionTypeBuyBuilding, before, after,
				fmt.Sprintf("Hired %s", buildingName(engine.Catalog(), id)), "building", cmd.BuildingID)}
		})
}

// BuyUpgradeCommand purchases a one-time upgrade
type BuyUpgradeCommand struct {
	UpgradeID string
}

// BuyUpgradeHandler handles BuyUpgradeCommand
type BuyUpgradeHandler struct {
	actionRunner
}

// NewBuyUpgradeHandler creates a new BuyUpgradeHandler
func NewBuyUpgradeHandler(session *gameApp.Session, m mediator.Mediator) *BuyUpgradeHandler {
	return &BuyUpgradeHandler{actionRunner: newActionRunner(session, m)}
}

// Handle executes the BuyUpgrade command
func (h *BuyUpgradeHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*BuyUpgradeCommand)
	if !ok {
		return nil, invalidRequest("BuyUpgradeCommand")
	}
	id := catalog.UpgradeID(cmd.UpgradeID)
	engine := h.session.Engine()

	return h.apply(ctx,
		func(st *game.State, _ time.Time) (bool, error) {
			return engine.BuyUpgrade(st, id)
		},
		func(before, after balances) []journalEntry {
			return []journalEntry{locEntry(ledger.TransactionTypeBuyUpgrade, before, after,
				fmt.Sprintf("Bought upgrade %s", cmd.UpgradeID), "upgrade", cmd.UpgradeID)}
		})
}

// BuyHardwareCommand purchases a one-time piece of hardware
type BuyHardwareCommand struct {
	HardwareID string
}

// BuyHardwareHandler handles BuyHardwareCommand
type BuyHardwareHandler struct {
	actionRunner
}

// NewBuyHardwareHandler creates a new BuyHardwareHandler
func NewBuyHardwareHandler(session *gameApp.Session, m mediator.Mediator) *BuyHardwareHandler {
	return &BuyHardwareHandler{actionRunner: newActionRunner(session, m)}
}

// Handle executes the BuyHardware command
func (h *BuyHardwareHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*BuyHardwareCommand)
	if !ok {
		return nil, invalidRequest("BuyHardwareCommand")
	}
	id := catalog.HardwareID(cmd.HardwareID)
	engine := h.session.Engine()

	return h.apply(ctx,
		func(st *game.State, _ time.Time) (bool, error) {
			return engine.BuyHardware(st, id)
		},
		func(before, after balances) []journalEntry {
			return []journalEntry{locEntry(ledger.TransactionTypeBuyHardware, before, after,
				fmt.Sprintf("Bought hardware %s", cmd.HardwareID), "hardware", cmd.HardwareID)}
		})
}

func buildingName(cat *catalog.Catalog, id catalog.BuildingID) string {
	if b, err := cat.Building(id); err == nil {
		return b.Name
	}
	return string(id)
}
