package stream

import (
	"errors"
	"fmt"

	gameApp "github.com/andrescamacho/devempire-go/internal/application/game"
	gameCommands "github.com/andrescamacho/devempire-go/internal/application/game/commands"
	"github.com/andrescamacho/devempire-go/internal/application/mediator"
	"github.com/andrescamacho/devempire-go/internal/domain/catalog"
)

// ErrUnknownAction is returned for action names the stream does not accept
var ErrUnknownAction = errors.New("unknown action")

// Outbound message types
const (
	MessageState  = "state"
	MessageResult = "result"
	MessageError  = "error"
)

// ActionMessage is a player action sent by a client. Only the fields the
// action needs are read.
type ActionMessage struct {
	Action   string  `json:"action"`
	ID       string  `json:"id,omitempty"`
	Quantity int     `json:"quantity,omitempty"`
	Amount   float64 `json:"amount,omitempty"`
	Enabled  bool    `json:"enabled,omitempty"`
}

// Command maps the message onto its mediator command. Tick steps are not
// reachable from the stream.
func (a ActionMessage) Command() (mediator.Request, error) {
	switch a.Action {
	case "type":
		return &gameCommands.ManualInputCommand{}, nil
	case "squash_bug":
		return &gameCommands.SquashBugCommand{}, nil
	case "buy_building":
		return &gameCommands.BuyBuildingCommand{BuildingID: a.ID}, nil
	case "buy_upgrade":
		return &gameCommands.BuyUpgradeCommand{UpgradeID: a.ID}, nil
	case "buy_hardware":
		return &gameCommands.BuyHardwareCommand{HardwareID: a.ID}, nil
	case "accept_contract":
		return &gameCommands.AcceptContractCommand{ContractID: a.ID}, nil
	case "cancel_contract":
		return &gameCommands.CancelContractCommand{}, nil
	case "complete_contract":
		return &gameCommands.CompleteContractCommand{}, nil
	case "refresh_contracts":
		return &gameCommands.GenerateContractsCommand{}, nil
	case "shortcut":
		return &gameCommands.TakeShortcutCommand{}, nil
	case "pay_debt":
		return &gameCommands.PayDebtCommand{Amount: a.Amount}, nil
	case "buy_stock":
		return &gameCommands.BuyStockCommand{StockID: a.ID, Quantity: a.Quantity}, nil
	case "sell_stock":
		return &gameCommands.SellStockCommand{StockID: a.ID, Quantity: a.Quantity}, nil
	case "specialize":
		return &gameCommands.SetSpecializationCommand{Specialization: a.ID}, nil
	case "unlock_skill":
		return &gameCommands.UnlockSkillCommand{SkillID: a.ID}, nil
	case "upgrade_office":
		return &gameCommands.UpgradeOfficeCommand{}, nil
	case "toggle_ai":
		return &gameCommands.ToggleIllegalAICommand{Enabled: a.Enabled}, nil
	case "prestige":
		return &gameCommands.PrestigeCommand{}, nil
	case "reset":
		return &gameCommands.ResetCommand{}, nil
	case "intro_seen":
		return &gameCommands.MarkIntroSeenCommand{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, a.Action)
	}
}

// StateMessage carries the state after a change
type StateMessage struct {
	Type     string                  `json:"type"`
	State    *gameApp.StateView      `json:"state"`
	Unlocked []catalog.AchievementID `json:"unlocked,omitempty"`
}

// ResultMessage answers the client that sent an action
type ResultMessage struct {
	Type    string `json:"type"`
	Action  string `json:"action"`
	Applied bool   `json:"applied"`
}

// ErrorMessage reports a rejected action to the client that sent it
type ErrorMessage struct {
	Type   string `json:"type"`
	Action string `json:"action,omitempty"`
	Error  string `json:"error"`
}
