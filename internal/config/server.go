package config

import (
	"fmt"
	"time"

	"github.com/lgbarn/chess-rules-go/internal/errors"
)

// ServerConfig holds settings for the HTTP server.
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080"
	Addr string

	// Timeouts applied to the http.Server
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	// MaxGames caps the number of live games in the registry
	MaxGames int

	// StreamBuffer is the per-subscriber queue length for board updates
	StreamBuffer int

	// AllowedOrigins enables CORS for the listed origins (empty = same origin only)
	AllowedOrigins []string
}

// NewServerConfig creates a ServerConfig with default values.
func NewServerConfig() *ServerConfig {
	return &ServerConfig{
		Addr:            ":8080",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    10 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		MaxGames:        100,
		StreamBuffer:    8,
	}
}

// Validate checks that the server configuration is usable.
func (s *ServerConfig) Validate() error {
	if s.Addr == "" {
		return fmt.Errorf("empty listen address: %w", errors.ErrInvalidConfig)
	}
	if s.ReadTimeout <= 0 || s.WriteTimeout <= 0 || s.IdleTimeout <= 0 || s.ShutdownTimeout <= 0 {
		return fmt.Errorf("timeouts must be positive: %w", errors.ErrInvalidConfig)
	}
	if s.MaxGames < 1 {
		return fmt.Errorf("max games (%d) < 1: %w", s.MaxGames, errors.ErrInvalidConfig)
	}
	if s.StreamBuffer < 1 {
		return fmt.Errorf("stream buffer (%d) < 1: %w", s.StreamBuffer, errors.ErrInvalidConfig)
	}
	return nil
}
