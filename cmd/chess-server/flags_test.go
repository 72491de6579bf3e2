package main

import (
	"testing"
	"time"

	"github.com/lgbarn/chess-rules-go/internal/config"
	"github.com/lgbarn/chess-rules-go/internal/testutil"
)

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"http://a.example", []string{"http://a.example"}},
		{" http://a.example , ,http://b.example ", []string{"http://a.example", "http://b.example"}},
	}
	for _, tt := range tests {
		testutil.AssertEqual(t, splitList(tt.in), tt.want)
	}
}

func TestGetenvFallbacks(t *testing.T) {
	t.Setenv("CHESS_TEST_STR", "value")
	t.Setenv("CHESS_TEST_INT", "42")
	t.Setenv("CHESS_TEST_BAD_INT", "many")
	t.Setenv("CHESS_TEST_DUR", "3s")

	testutil.AssertEqual(t, getenv("CHESS_TEST_STR", "def"), "value")
	testutil.AssertEqual(t, getenv("CHESS_TEST_UNSET", "def"), "def")
	testutil.AssertEqual(t, getenvInt("CHESS_TEST_INT", 1), 42)
	testutil.AssertEqual(t, getenvInt("CHESS_TEST_BAD_INT", 1), 1)
	testutil.AssertEqual(t, getenvDuration("CHESS_TEST_DUR", time.Second), 3*time.Second)
	testutil.AssertEqual(t, getenvDuration("CHESS_TEST_UNSET", time.Second), time.Second)
}

func TestApplyFlags_Defaults(t *testing.T) {
	cfg := applyFlags(config.NewConfigBuilder())
	testutil.AssertNoError(t, cfg.Validate())
	testutil.AssertEqual(t, cfg.Server.Addr, ":8080")
	testutil.AssertEqual(t, cfg.Server.MaxGames, 100)
	if len(cfg.Server.AllowedOrigins) != 0 {
		t.Errorf("AllowedOrigins = %v", cfg.Server.AllowedOrigins)
	}
}

func TestNewLogger_Quiet(t *testing.T) {
	cfg := config.NewConfigBuilder().WithVerbosity(0).Build()
	if newLogger(cfg).Writer() == cfg.LogFile {
		t.Error("quiet logger still writes to the log file")
	}
}
