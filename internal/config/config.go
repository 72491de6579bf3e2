// Package config provides configuration for the chess server and console.
package config

import (
	"io"
	"os"
)

// Config holds all program configuration.
type Config struct {
	Verbosity int // 0=nothing, 1=lifecycle and access logs

	// Sub-configurations
	Server  *ServerConfig
	Console *ConsoleConfig

	// Output streams
	OutputFile io.Writer
	LogFile    io.Writer
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Verbosity:  1,
		Server:     NewServerConfig(),
		Console:    NewConsoleConfig(),
		OutputFile: os.Stdout,
		LogFile:    os.Stderr,
	}
}

// SetOutput sets the output writer.
func (c *Config) SetOutput(w io.Writer) {
	c.OutputFile = w
}

// SetLogFile sets the diagnostics writer.
func (c *Config) SetLogFile(w io.Writer) {
	c.LogFile = w
}

// Validate checks every sub-configuration.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	return c.Console.Validate()
}
