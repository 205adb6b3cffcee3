package config

import "time"

// GameConfig holds the tick driver and engine settings
type GameConfig struct {
	// Passive production step
	TickInterval time.Duration `mapstructure:"tick_interval" validate:"required,min=10ms"`

	// Stock random walk step
	MarketInterval time.Duration `mapstructure:"market_interval" validate:"required"`

	// Burnout relaxation step
	RelaxInterval time.Duration `mapstructure:"relax_interval" validate:"required"`

	// Minimum time between two autosaves
	AutosaveInterval time.Duration `mapstructure:"autosave_interval" validate:"required,min=1s"`

	// Per-tick probability that an active illegal AI gets caught
	HackChance float64 `mapstructure:"hack_chance" validate:"min=0,max=1"`

	// Random seed; 0 draws one from the OS
	Seed uint64 `mapstructure:"seed"`

	// Snapshot slot the game is saved to
	SaveSlot string `mapstructure:"save_slot" validate:"required,max=64"`
}
