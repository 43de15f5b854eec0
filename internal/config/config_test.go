package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Storage.Backend != BackendBolt {
		t.Errorf("default backend: got %q, want bolt", cfg.Storage.Backend)
	}
	if cfg.Storage.StateKey != "timerState" {
		t.Errorf("default state key: got %q", cfg.Storage.StateKey)
	}
	if cfg.Engine.TickInterval != time.Second {
		t.Errorf("default tick interval: got %v", cfg.Engine.TickInterval)
	}
	if cfg.Address() != "0.0.0.0:8080" {
		t.Errorf("default address: got %q", cfg.Address())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "redis")
	t.Setenv("STATE_KEY", "customKey")
	t.Setenv("TICK_INTERVAL", "250ms")
	t.Setenv("FLUSH_INTERVAL", "5")
	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Storage.Backend != BackendRedis {
		t.Errorf("backend: got %q, want redis", cfg.Storage.Backend)
	}
	if cfg.Storage.StateKey != "customKey" {
		t.Errorf("state key: got %q", cfg.Storage.StateKey)
	}
	if cfg.Engine.TickInterval != 250*time.Millisecond {
		t.Errorf("tick interval: got %v", cfg.Engine.TickInterval)
	}
	// Bare integers are treated as seconds.
	if cfg.Storage.FlushInterval != 5*time.Second {
		t.Errorf("flush interval: got %v", cfg.Storage.FlushInterval)
	}
	if cfg.Address() != "0.0.0.0:9090" {
		t.Errorf("address: got %q", cfg.Address())
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "cassette-tape")
	if _, err := Load(); err == nil {
		t.Fatal("unknown backend accepted")
	}
}
