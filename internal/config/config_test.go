package config

import (
	"bytes"
	"errors"
	"testing"
	"time"

	chesserrors "github.com/lgbarn/chess-rules-go/internal/errors"
)

// TestServerConfig_Defaults verifies ServerConfig has sensible defaults
func TestServerConfig_Defaults(t *testing.T) {
	cfg := NewServerConfig()

	if cfg.Addr != ":8080" {
		t.Errorf("Addr = %q, want %q", cfg.Addr, ":8080")
	}
	if cfg.MaxGames != 100 {
		t.Errorf("MaxGames = %d, want 100", cfg.MaxGames)
	}
	if cfg.ReadTimeout != 10*time.Second || cfg.WriteTimeout != 10*time.Second {
		t.Errorf("read/write timeouts = %v/%v, want 10s", cfg.ReadTimeout, cfg.WriteTimeout)
	}
	if len(cfg.AllowedOrigins) != 0 {
		t.Errorf("AllowedOrigins = %v, want none", cfg.AllowedOrigins)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

// TestServerConfig_Validate verifies server config validation
func TestServerConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServerConfig)
		wantErr bool
	}{
		{"defaults", func(*ServerConfig) {}, false},
		{"empty address", func(s *ServerConfig) { s.Addr = "" }, true},
		{"zero read timeout", func(s *ServerConfig) { s.ReadTimeout = 0 }, true},
		{"negative shutdown timeout", func(s *ServerConfig) { s.ShutdownTimeout = -time.Second }, true},
		{"no games allowed", func(s *ServerConfig) { s.MaxGames = 0 }, true},
		{"no stream buffer", func(s *ServerConfig) { s.StreamBuffer = 0 }, true},
		{"single game", func(s *ServerConfig) { s.MaxGames = 1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewServerConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, chesserrors.ErrInvalidConfig) {
				t.Errorf("Validate() error %v does not wrap ErrInvalidConfig", err)
			}
		})
	}
}

// TestConsoleConfig_Defaults verifies ConsoleConfig has sensible defaults
func TestConsoleConfig_Defaults(t *testing.T) {
	cfg := NewConsoleConfig()

	if cfg.FromBlack || cfg.FollowTurn {
		t.Error("board should be drawn from White's side by default")
	}
	if !cfg.Coordinates {
		t.Error("Coordinates should be true by default")
	}
	if cfg.Prompt != "> " {
		t.Errorf("Prompt = %q, want %q", cfg.Prompt, "> ")
	}
}

// TestConsoleConfig_Validate rejects contradictory orientation settings
func TestConsoleConfig_Validate(t *testing.T) {
	cfg := &ConsoleConfig{FromBlack: true, FollowTurn: true}
	if err := cfg.Validate(); !errors.Is(err, chesserrors.ErrInvalidConfig) {
		t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
	}
}

// TestConfig_SubConfigs verifies that Config carries both sub-configs
func TestConfig_SubConfigs(t *testing.T) {
	cfg := NewConfig()

	if cfg.Server == nil || cfg.Console == nil {
		t.Fatal("sub-configs should be set")
	}
	if cfg.Verbosity != 1 {
		t.Errorf("Verbosity = %d, want 1", cfg.Verbosity)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	cfg.Server.MaxGames = 0
	if err := cfg.Validate(); err == nil {
		t.Error("Validate() should report the server error")
	}
}

// TestConfig_SetOutput verifies output stream setting
func TestConfig_SetOutput(t *testing.T) {
	cfg := NewConfig()
	out := &bytes.Buffer{}
	log := &bytes.Buffer{}

	cfg.SetOutput(out)
	cfg.SetLogFile(log)

	if cfg.OutputFile != out {
		t.Error("SetOutput did not set OutputFile")
	}
	if cfg.LogFile != log {
		t.Error("SetLogFile did not set LogFile")
	}
}

// TestConfigBuilder verifies the builder pattern works correctly
func TestConfigBuilder(t *testing.T) {
	cfg := NewConfigBuilder().
		WithAddr("127.0.0.1:9000").
		WithMaxGames(3).
		WithTimeouts(time.Second, 2*time.Second, 3*time.Second).
		WithAllowedOrigins("http://localhost:3000").
		WithStreamBuffer(2).
		WithFollowTurn(true).
		WithCoordinates(false).
		WithVerbosity(0).
		Build()

	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Errorf("Addr = %q", cfg.Server.Addr)
	}
	if cfg.Server.MaxGames != 3 {
		t.Errorf("MaxGames = %d, want 3", cfg.Server.MaxGames)
	}
	if cfg.Server.WriteTimeout != 2*time.Second || cfg.Server.IdleTimeout != 3*time.Second {
		t.Errorf("timeouts = %v/%v", cfg.Server.WriteTimeout, cfg.Server.IdleTimeout)
	}
	if len(cfg.Server.AllowedOrigins) != 1 {
		t.Errorf("AllowedOrigins = %v", cfg.Server.AllowedOrigins)
	}
	if cfg.Server.StreamBuffer != 2 {
		t.Errorf("StreamBuffer = %d, want 2", cfg.Server.StreamBuffer)
	}
	if !cfg.Console.FollowTurn || cfg.Console.Coordinates {
		t.Errorf("console = %+v", cfg.Console)
	}
	if cfg.Verbosity != 0 {
		t.Errorf("Verbosity = %d, want 0", cfg.Verbosity)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}
