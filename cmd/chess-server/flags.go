// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lgbarn/chess-rules-go/internal/config"
)

var (
	// Listener options
	addr         = flag.String("addr", getenv("CHESS_ADDR", ":8080"), "Listen address")
	readTimeout  = flag.Duration("read-timeout", getenvDuration("CHESS_READ_TIMEOUT", 10*time.Second), "HTTP read timeout")
	writeTimeout = flag.Duration("write-timeout", getenvDuration("CHESS_WRITE_TIMEOUT", 10*time.Second), "HTTP write timeout")
	idleTimeout  = flag.Duration("idle-timeout", getenvDuration("CHESS_IDLE_TIMEOUT", 60*time.Second), "HTTP keep-alive idle timeout")
	shutdownWait = flag.Duration("shutdown-timeout", getenvDuration("CHESS_SHUTDOWN_TIMEOUT", 5*time.Second), "Grace period for in-flight requests on shutdown")
	origins      = flag.String("origins", getenv("CHESS_ORIGINS", ""), "Comma-separated origins allowed for CORS and websockets")

	// Session options
	maxGames     = flag.Int("max-games", getenvInt("CHESS_MAX_GAMES", 100), "Maximum number of live games")
	streamBuffer = flag.Int("stream-buffer", getenvInt("CHESS_STREAM_BUFFER", 8), "Queued board updates per websocket client")

	// Logging
	logFile   = flag.String("l", "", "Write diagnostics to log file")
	appendLog = flag.String("L", "", "Append diagnostics to log file")
	quiet     = flag.Bool("s", false, "Silent mode (no lifecycle or access logs)")

	// Other options
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags applies command-line flags to the configuration.
func applyFlags(b *config.ConfigBuilder) *config.Config {
	b.WithAddr(*addr).
		WithTimeouts(*readTimeout, *writeTimeout, *idleTimeout).
		WithMaxGames(*maxGames).
		WithStreamBuffer(*streamBuffer).
		WithAllowedOrigins(splitList(*origins)...)

	if *quiet {
		b.WithVerbosity(0)
	}

	cfg := b.Build()
	cfg.Server.ShutdownTimeout = *shutdownWait
	return cfg
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(strings.TrimSpace(v)); err == nil {
			return d
		}
	}
	return def
}
