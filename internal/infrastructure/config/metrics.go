package config

import "time"

// MetricsConfig controls the Prometheus endpoint served by the game loop.
// One-shot CLI commands never start it.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Bound to localhost by default; the endpoint exposes the save's balances
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`
	Path string `mapstructure:"path" validate:"omitempty,startswith=/"`

	// How often the ledger cash flow gauges are recomputed from the journal
	LedgerInterval time.Duration `mapstructure:"ledger_interval" validate:"omitempty,min=1s"`
}
