package config

import (
	"io"
	"time"
)

// ConfigBuilder provides a fluent API for building Config instances.
type ConfigBuilder struct {
	cfg *Config
}

// NewConfigBuilder creates a new ConfigBuilder with default values.
func NewConfigBuilder() *ConfigBuilder {
	return &ConfigBuilder{
		cfg: NewConfig(),
	}
}

// Build returns the built Config.
func (b *ConfigBuilder) Build() *Config {
	return b.cfg
}

// WithAddr sets the server listen address.
func (b *ConfigBuilder) WithAddr(addr string) *ConfigBuilder {
	b.cfg.Server.Addr = addr
	return b
}

// WithMaxGames sets the registry capacity.
func (b *ConfigBuilder) WithMaxGames(n int) *ConfigBuilder {
	b.cfg.Server.MaxGames = n
	return b
}

// WithTimeouts sets the read, write and idle timeouts.
func (b *ConfigBuilder) WithTimeouts(read, write, idle time.Duration) *ConfigBuilder {
	b.cfg.Server.ReadTimeout = read
	b.cfg.Server.WriteTimeout = write
	b.cfg.Server.IdleTimeout = idle
	return b
}

// WithAllowedOrigins enables CORS for the given origins.
func (b *ConfigBuilder) WithAllowedOrigins(origins ...string) *ConfigBuilder {
	b.cfg.Server.AllowedOrigins = origins
	return b
}

// WithStreamBuffer sets the per-subscriber update queue length.
func (b *ConfigBuilder) WithStreamBuffer(n int) *ConfigBuilder {
	b.cfg.Server.StreamBuffer = n
	return b
}

// WithFromBlack draws the console board from Black's side.
func (b *ConfigBuilder) WithFromBlack(enabled bool) *ConfigBuilder {
	b.cfg.Console.FromBlack = enabled
	return b
}

// WithFollowTurn redraws the console board from the side on move.
func (b *ConfigBuilder) WithFollowTurn(enabled bool) *ConfigBuilder {
	b.cfg.Console.FollowTurn = enabled
	return b
}

// WithCoordinates controls the console margin labels.
func (b *ConfigBuilder) WithCoordinates(enabled bool) *ConfigBuilder {
	b.cfg.Console.Coordinates = enabled
	return b
}

// WithOutput sets the output writer.
func (b *ConfigBuilder) WithOutput(w io.Writer) *ConfigBuilder {
	b.cfg.OutputFile = w
	return b
}

// WithLogFile sets the diagnostics writer.
func (b *ConfigBuilder) WithLogFile(w io.Writer) *ConfigBuilder {
	b.cfg.LogFile = w
	return b
}

// WithVerbosity sets the verbosity level.
func (b *ConfigBuilder) WithVerbosity(level int) *ConfigBuilder {
	b.cfg.Verbosity = level
	return b
}
