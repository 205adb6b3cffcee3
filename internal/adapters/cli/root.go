package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	slot       string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "devempire",
		Short: "DevEmpire - an idle game about running a software company",
		Long: `DevEmpire grows a software company from a lone developer typing code
into an empire of staff, hardware and contracts.

Every action works on the saved game directly. "devempire run" keeps the game
ticking in the foreground; while it runs, actions go through its websocket stream.

Examples:
  devempire type
  devempire buy building intern
  devempire contract refresh
  devempire contract accept <contract-id>
  devempire stock buy microhard --quantity 5
  devempire status
  devempire run`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml, ./configs, /etc/devempire)")
	rootCmd.PersistentFlags().StringVar(&slot, "slot", "",
		"Save slot (default: user config, then game.save_slot)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	// Game loop and read models
	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewStatusCommand())
	rootCmd.AddCommand(NewShopCommand())

	// Player actions
	rootCmd.AddCommand(NewTypeCommand())
	rootCmd.AddCommand(NewSquashCommand())
	rootCmd.AddCommand(NewBuyCommand())
	rootCmd.AddCommand(NewContractCommand())
	rootCmd.AddCommand(NewDebtCommand())
	rootCmd.AddCommand(NewStockCommand())
	rootCmd.AddCommand(NewCareerCommand())
	rootCmd.AddCommand(NewPrestigeCommand())
	rootCmd.AddCommand(NewResetCommand())
	rootCmd.AddCommand(NewIntroSeenCommand())

	// Bookkeeping
	rootCmd.AddCommand(NewLedgerCommand())
	rootCmd.AddCommand(NewSaveCommand())
	rootCmd.AddCommand(NewConfigCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
