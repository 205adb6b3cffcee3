package config

import "time"

// RuntimeConfig holds process level settings of the game loop
type RuntimeConfig struct {
	// PID file guarding against two loops writing the same save
	PIDFile string `mapstructure:"pid_file" validate:"required"`

	// Graceful shutdown timeout
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`
}
