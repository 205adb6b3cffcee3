package config

import "time"

// ServerConfig holds the live state stream configuration
type ServerConfig struct {
	// Enable the websocket stream while the game loop runs
	Enabled bool `mapstructure:"enabled"`

	// Listen address (host:port)
	Address string `mapstructure:"address" validate:"required_if=Enabled true"`

	// Websocket endpoint path
	Path string `mapstructure:"path" validate:"required,startswith=/"`

	// Keepalive ping period for connected clients
	PingInterval time.Duration `mapstructure:"ping_interval" validate:"required"`
}
