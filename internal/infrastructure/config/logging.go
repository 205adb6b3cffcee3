package config

// LoggingConfig controls the structured log of the game loop and CLI
type LoggingConfig struct {
	// debug logs every command the mediator runs, info only lifecycle events
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`

	// "text" for a terminal, "json" for log shippers
	Format string `mapstructure:"format" validate:"required,oneof=json text"`

	// stderr keeps stdout free for status and ledger tables
	Output string `mapstructure:"output" validate:"required,oneof=stdout stderr file"`

	// Appended to, never truncated
	FilePath string `mapstructure:"file_path" validate:"required_if=Output file"`

	// Adds source file:line to every record
	IncludeCaller bool `mapstructure:"include_caller"`
}
