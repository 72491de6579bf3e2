// chess-server serves two-player chess games over HTTP and websockets.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/httpx"
	"github.com/lgbarn/chess-rules-go/internal/session"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("chess-server version %s\n", programVersion)
		os.Exit(0)
	}

	cfg := applyFlags(config.NewConfigBuilder())
	setupLogFile(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	logger := newLogger(cfg)
	registry := session.NewRegistry(cfg.Server.MaxGames, cfg.Server.StreamBuffer)
	srv := httpx.NewServer(registry, cfg.Server, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Listen() }()

	select {
	case err := <-errc:
		if err != nil {
			logger.Printf("listen: %v", err)
			os.Exit(1)
		}
		return
	case <-ctx.Done():
	}

	logger.Printf("shutting down (%d live games)", registry.Len())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("shutdown: %v", err)
	}
	if err := <-errc; err != nil {
		logger.Printf("listen: %v", err)
	}
}

// newLogger returns the lifecycle logger. Verbosity 0 discards it.
func newLogger(cfg *config.Config) *log.Logger {
	w := cfg.LogFile
	if cfg.Verbosity == 0 {
		w = io.Discard
	}
	return log.New(w, "chess-server: ", log.LstdFlags)
}

// setupLogFile configures the log file based on command-line flags.
func setupLogFile(cfg *config.Config) {
	if *logFile != "" {
		file, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating log file %s: %v\n", *logFile, err)
			os.Exit(1)
		}
		cfg.LogFile = file
	}

	if *appendLog != "" {
		file, err := os.OpenFile(*appendLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644) //nolint:gosec // G302: 0644 is appropriate for user-created log files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening log file %s: %v\n", *appendLog, err)
			os.Exit(1)
		}
		cfg.LogFile = file
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: chess-server [options]\n\n")
	fmt.Fprintf(os.Stderr, "Serves two-player chess games over HTTP.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nEndpoints:\n")
	fmt.Fprintf(os.Stderr, "  POST   /api/games                 new game (optional custom position)\n")
	fmt.Fprintf(os.Stderr, "  GET    /api/games                 list live games\n")
	fmt.Fprintf(os.Stderr, "  GET    /api/games/{id}            game state\n")
	fmt.Fprintf(os.Stderr, "  DELETE /api/games/{id}            end a game\n")
	fmt.Fprintf(os.Stderr, "  POST   /api/games/{id}/moves      {\"from\":{\"x\":4,\"y\":6},\"to\":{\"x\":4,\"y\":4}}\n")
	fmt.Fprintf(os.Stderr, "  GET    /api/games/{id}/moves?x=&y= legal moves of one piece\n")
	fmt.Fprintf(os.Stderr, "  GET    /api/games/{id}/history    committed moves\n")
	fmt.Fprintf(os.Stderr, "  POST   /api/games/{id}/promotion  {\"piece\":\"queen\",\"colour\":\"white\"}\n")
	fmt.Fprintf(os.Stderr, "  GET    /api/games/{id}/ws         websocket stream of game states\n")
	fmt.Fprintf(os.Stderr, "\nEnvironment: CHESS_ADDR, CHESS_MAX_GAMES, CHESS_STREAM_BUFFER, CHESS_ORIGINS,\n")
	fmt.Fprintf(os.Stderr, "CHESS_READ_TIMEOUT, CHESS_WRITE_TIMEOUT, CHESS_IDLE_TIMEOUT, CHESS_SHUTDOWN_TIMEOUT\n")
}
