package cli

import (
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	gameCommands "github.com/andrescamacho/devempire-go/internal/application/game/commands"
	"github.com/andrescamacho/devempire-go/internal/application/mediator"
)

// NewTypeCommand creates the type command
func NewTypeCommand() *cobra.Command {
	var times int

	cmd := &cobra.Command{
		Use:   "type",
		Short: "Write code by hand",
		Long: `Type code manually. Each input yields your click power in LOC and
adds burnout strain; while burned out, typing does nothing.

Examples:
  devempire type
  devempire type --times 20`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if times < 1 {
				return fmt.Errorf("--times must be at least 1")
			}
			requests := make([]mediator.Request, times)
			for i := range requests {
				requests[i] = &gameCommands.ManualInputCommand{}
			}
			return runAction(requests...)
		},
	}

	cmd.Flags().IntVar(&times, "times", 1, "Number of inputs to send")

	return cmd
}

// NewSquashCommand creates the squash command
func NewSquashCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "squash",
		Short: "Squash the bug on screen for a bounty",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(&gameCommands.SquashBugCommand{})
		},
	}
}

// NewBuyCommand creates the buy command with subcommands
func NewBuyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buy",
		Short: "Hire staff, buy upgrades and hardware",
		Long: `Spend LOC in the shop. Run "devempire shop" for ids and prices.

Examples:
  devempire buy building intern
  devempire buy upgrade mechanical_keyboard
  devempire buy hardware mech_keyboard_v1`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "building <building-id>",
		Short: "Hire one unit of staff",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(&gameCommands.BuyBuildingCommand{BuildingID: args[0]})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "upgrade <upgrade-id>",
		Short: "Buy a one-time upgrade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(&gameCommands.BuyUpgradeCommand{UpgradeID: args[0]})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "hardware <hardware-id>",
		Short: "Buy a piece of hardware",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(&gameCommands.BuyHardwareCommand{HardwareID: args[0]})
		},
	})

	return cmd
}

// NewContractCommand creates the contract command with subcommands
func NewContractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contract",
		Short: "Client contract operations",
		Long: `Take on client work. Accepted contracts fill with the code you write and
can be delivered once the required LOC is reached.

Examples:
  devempire contract refresh
  devempire contract accept 3f6e2a1c-...
  devempire contract complete
  devempire contract cancel`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "accept <contract-id>",
		Short: "Accept an offered contract",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(&gameCommands.AcceptContractCommand{ContractID: args[0]})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "cancel",
		Short: "Abandon the active contract",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(&gameCommands.CancelContractCommand{})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "complete",
		Short: "Deliver the active contract",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(&gameCommands.CompleteContractCommand{})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "refresh",
		Short: "Replace the offered contracts with new ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(&gameCommands.GenerateContractsCommand{})
		},
	})

	return cmd
}

// NewDebtCommand creates the debt command with subcommands
func NewDebtCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "debt",
		Short: "Technical debt operations",
		Long: `Shortcuts hand you LOC now and slow production until the debt is paid.

Examples:
  devempire debt shortcut
  devempire debt pay 500
  devempire debt pay`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "shortcut",
		Short: "Cut a corner for a quick LOC boost",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(&gameCommands.TakeShortcutCommand{})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "pay [amount]",
		Short: "Pay down technical debt (all of it when no amount is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount := math.MaxFloat64
			if len(args) == 1 {
				parsed, err := strconv.ParseFloat(args[0], 64)
				if err != nil || parsed <= 0 {
					return fmt.Errorf("invalid amount %q: must be a positive number", args[0])
				}
				amount = parsed
			}
			return runAction(&gameCommands.PayDebtCommand{Amount: amount})
		},
	})

	return cmd
}

// NewStockCommand creates the stock command with subcommands
func NewStockCommand() *cobra.Command {
	var quantity int

	cmd := &cobra.Command{
		Use:   "stock",
		Short: "Trade on the stock market",
		Long: `Buy and sell shares of tech companies. Prices move every few seconds
while the game loop runs.

Examples:
  devempire stock buy microhard --quantity 5
  devempire stock sell pear`,
	}
	cmd.PersistentFlags().IntVar(&quantity, "quantity", 1, "Number of shares")

	cmd.AddCommand(&cobra.Command{
		Use:   "buy <stock-id>",
		Short: "Buy shares at the current price",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(&gameCommands.BuyStockCommand{StockID: args[0], Quantity: quantity})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "sell <stock-id>",
		Short: "Sell shares at the current price",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(&gameCommands.SellStockCommand{StockID: args[0], Quantity: quantity})
		},
	})

	return cmd
}

// NewCareerCommand creates the career command with subcommands
func NewCareerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "career",
		Short: "Specialization, skills, office and the illegal AI",
		Long: `Shape the company.

Specializations: frontend, backend, devops, fullstack

Examples:
  devempire career specialize devops
  devempire career skill touch_typing
  devempire career office
  devempire career ai on`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:       "specialize <specialization>",
		Short:     "Choose a specialization",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"frontend", "backend", "devops", "fullstack"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(&gameCommands.SetSpecializationCommand{Specialization: args[0]})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "skill <skill-id>",
		Short: "Unlock a skill",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(&gameCommands.UnlockSkillCommand{SkillID: args[0]})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "office",
		Short: "Move to the next office tier",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(&gameCommands.UpgradeOfficeCommand{})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:       "ai <on|off>",
		Short:     "Switch the illegal AI on or off",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "on":
				return runAction(&gameCommands.ToggleIllegalAICommand{Enabled: true})
			case "off":
				return runAction(&gameCommands.ToggleIllegalAICommand{Enabled: false})
			default:
				return fmt.Errorf("expected on or off, got %q", args[0])
			}
		},
	})

	return cmd
}

// NewPrestigeCommand creates the prestige command
func NewPrestigeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prestige",
		Short: "Sell the company for shares and start over",
		Long: `Trade your lifetime output for prestige shares. Each share permanently
boosts production by 10%. Everything else starts over.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(&gameCommands.PrestigeCommand{})
		},
	}
}

// NewResetCommand creates the reset command
func NewResetCommand() *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Wipe the save and start from nothing",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return fmt.Errorf("reset erases all progress including shares; pass --yes to confirm")
			}
			return runAction(&gameCommands.ResetCommand{})
		},
	}

	cmd.Flags().BoolVar(&confirm, "yes", false, "Confirm the reset")

	return cmd
}

// NewIntroSeenCommand creates the intro-seen command
func NewIntroSeenCommand() *cobra.Command {
	return &cobra.Command{
		Use:    "intro-seen",
		Short:  "Mark the intro as seen",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAction(&gameCommands.MarkIntroSeenCommand{})
		},
	}
}
