package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults: a local SQLite file unless postgres is configured
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "devempire.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "devempire"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "devempire"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.MaxConns == 0 {
		cfg.Database.MaxConns = 4
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9090
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.LedgerInterval == 0 {
		cfg.Metrics.LedgerInterval = 60 * time.Second
	}

	// Game defaults
	if cfg.Game.TickInterval == 0 {
		cfg.Game.TickInterval = 100 * time.Millisecond
	}
	if cfg.Game.MarketInterval == 0 {
		cfg.Game.MarketInterval = 3 * time.Second
	}
	if cfg.Game.RelaxInterval == 0 {
		cfg.Game.RelaxInterval = 200 * time.Millisecond
	}
	if cfg.Game.AutosaveInterval == 0 {
		cfg.Game.AutosaveInterval = 5 * time.Second
	}
	if cfg.Game.HackChance == 0 {
		cfg.Game.HackChance = 0.005
	}
	if cfg.Game.SaveSlot == "" {
		cfg.Game.SaveSlot = "default"
	}

	// Stream server defaults
	if cfg.Server.Address == "" {
		cfg.Server.Address = "localhost:8765"
	}
	if cfg.Server.Path == "" {
		cfg.Server.Path = "/ws"
	}
	if cfg.Server.PingInterval == 0 {
		cfg.Server.PingInterval = 30 * time.Second
	}

	// Runtime defaults
	if cfg.Runtime.PIDFile == "" {
		cfg.Runtime.PIDFile = "/tmp/devempire.pid"
	}
	if cfg.Runtime.ShutdownTimeout == 0 {
		cfg.Runtime.ShutdownTimeout = 10 * time.Second
	}
}
