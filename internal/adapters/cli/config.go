package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/andrescamacho/devempire-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage DevEmpire configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (DEVEMPIRE_* prefix, DATABASE_URL)
2. Config file (config.yaml)
3. Default values

User preferences (default save slot, number locale) are stored in
~/.devempire/config.json

Examples:
  devempire config show
  devempire config set-slot weekend
  devempire config set-locale de-DE
  devempire config clear`,
	}

	// Add subcommands
	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetSlotCommand())
	cmd.AddCommand(newConfigSetLocaleCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long: `Display the current configuration settings.

Shows both system configuration and user preferences.

Example:
  devempire config show`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load system config
			cfg, err := loadConfig()
			if err != nil {
				fmt.Printf("Warning: %v\n", err)
				fmt.Println("Using default configuration.")
				cfg = config.LoadConfigOrDefault(configPath)
			}

			// Load user config
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Printf("Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			// Display configuration
			fmt.Println("DevEmpire Configuration")
			fmt.Println("=======================")

			fmt.Println("User Preferences:")
			fmt.Printf("  Config file:      %s\n", userConfigHandler.GetConfigPath())
			fmt.Printf("  Default Slot:     %s\n", orNotSet(userCfg.DefaultSlot))
			fmt.Printf("  Locale:           %s\n", orNotSet(userCfg.Locale))
			fmt.Printf("  Active Slot:      %s\n", resolveSlot(cfg))

			fmt.Println("\nDatabase:")
			fmt.Printf("  Type:             %s\n", cfg.Database.Type)
			switch {
			case cfg.Database.Type == "sqlite":
				fmt.Printf("  Path:             %s\n", cfg.Database.Path)
			case cfg.Database.URL != "":
				fmt.Printf("  URL:              %s\n", maskPassword(cfg.Database.URL))
			default:
				fmt.Printf("  Host:             %s\n", cfg.Database.Host)
				fmt.Printf("  Port:             %d\n", cfg.Database.Port)
				fmt.Printf("  Database:         %s\n", cfg.Database.Name)
				fmt.Printf("  User:             %s\n", cfg.Database.User)
				fmt.Printf("  Max Connections:  %d\n", cfg.Database.MaxConns)
			}

			fmt.Println("\nGame Loop:")
			fmt.Printf("  Tick:             %s\n", cfg.Game.TickInterval)
			fmt.Printf("  Market:           %s\n", cfg.Game.MarketInterval)
			fmt.Printf("  Burnout Relax:    %s\n", cfg.Game.RelaxInterval)
			fmt.Printf("  Autosave:         %s\n", cfg.Game.AutosaveInterval)
			fmt.Printf("  Hack Chance:      %g per tick\n", cfg.Game.HackChance)
			if cfg.Game.Seed != 0 {
				fmt.Printf("  Seed:             %d\n", cfg.Game.Seed)
			}

			fmt.Println("\nState Stream:")
			fmt.Printf("  Enabled:          %t\n", cfg.Server.Enabled)
			fmt.Printf("  Endpoint:         ws://%s%s\n", cfg.Server.Address, cfg.Server.Path)
			fmt.Printf("  Ping Interval:    %s\n", cfg.Server.PingInterval)

			fmt.Println("\nMetrics:")
			fmt.Printf("  Enabled:          %t\n", cfg.Metrics.Enabled)
			fmt.Printf("  Endpoint:         http://%s:%d%s\n", cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)

			fmt.Println("\nRuntime:")
			fmt.Printf("  PID File:         %s\n", cfg.Runtime.PIDFile)
			fmt.Printf("  Shutdown Timeout: %s\n", cfg.Runtime.ShutdownTimeout)

			fmt.Println("\nLogging:")
			fmt.Printf("  Level:            %s\n", cfg.Logging.Level)
			fmt.Printf("  Format:           %s\n", cfg.Logging.Format)
			fmt.Printf("  Output:           %s\n", cfg.Logging.Output)

			return nil
		},
	}

	return cmd
}

// newConfigSetSlotCommand creates the config set-slot subcommand
func newConfigSetSlotCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-slot <slot>",
		Short: "Set default save slot",
		Long: `Set the save slot used when --slot is not given.

Example:
  devempire config set-slot weekend`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := userConfigHandler.SetDefaultSlot(args[0]); err != nil {
				return fmt.Errorf("failed to set default slot: %w", err)
			}

			fmt.Println("✓ Default save slot set")
			fmt.Printf("  Slot: %s\n", args[0])
			fmt.Printf("\nOverride with --slot.\n")

			return nil
		},
	}

	return cmd
}

// newConfigSetLocaleCommand creates the config set-locale subcommand
func newConfigSetLocaleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-locale <bcp47-tag>",
		Short: "Set number formatting locale",
		Long: `Set the locale used to format numbers in status, shop and ledger output.

Examples:
  devempire config set-locale en-US
  devempire config set-locale de-DE`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, err := language.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid locale %q: %w", args[0], err)
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := userConfigHandler.SetLocale(tag.String()); err != nil {
				return fmt.Errorf("failed to set locale: %w", err)
			}

			p := newPrinter(tag.String())
			fmt.Println("✓ Locale set")
			fmt.Printf("  Locale:  %s\n", tag)
			fmt.Printf("  Example: %s LOC\n", formatLOC(p, 1234567.5))

			return nil
		},
	}

	return cmd
}

// newConfigClearCommand creates the config clear subcommand
func newConfigClearCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear user preferences",
		Long: `Remove the default save slot and locale.

Example:
  devempire config clear`,
		RunE: func(cmd *cobra.Command, args []string) error {
			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if err := userConfigHandler.Clear(); err != nil {
				return fmt.Errorf("failed to clear user config: %w", err)
			}

			fmt.Println("✓ User preferences cleared")

			return nil
		},
	}

	return cmd
}

// maskPassword hides the password of a connection URL for display
func maskPassword(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "xxxxx")
	}
	return u.String()
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
