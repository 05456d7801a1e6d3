package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Server.Port != 8080 {
		t.Fatalf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Service.Timeout != 10*time.Second {
		t.Fatalf("Timeout = %v, want 10s", cfg.Service.Timeout)
	}
	if cfg.Physics.ChargeStrength >= 0 {
		t.Fatalf("ChargeStrength = %v, want repulsive", cfg.Physics.ChargeStrength)
	}
	if cfg.Render.Width <= 0 || cfg.Render.Height <= 0 {
		t.Fatalf("render canvas %gx%g, want positive", cfg.Render.Width, cfg.Render.Height)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load error = %v, want nil for missing file", err)
	}
	if cfg.Server.Port != 8080 {
		t.Fatalf("Port = %d, want default 8080", cfg.Server.Port)
	}
}

func TestLoadYAMLOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kgraph.yaml")
	body := "server:\n  port: 3000\nservice:\n  base_url: http://graph.internal\nphysics:\n  charge_strength: -500\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.Server.Port != 3000 {
		t.Fatalf("Port = %d, want 3000", cfg.Server.Port)
	}
	if cfg.Service.BaseURL != "http://graph.internal" {
		t.Fatalf("BaseURL = %q", cfg.Service.BaseURL)
	}
	if cfg.Physics.ChargeStrength != -500 {
		t.Fatalf("ChargeStrength = %v, want -500", cfg.Physics.ChargeStrength)
	}
	// Untouched keys keep their defaults.
	if cfg.Service.Timeout != 10*time.Second {
		t.Fatalf("Timeout = %v, want default 10s", cfg.Service.Timeout)
	}
}

func TestLoadDurationStrings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kgraph.yaml")
	body := "service:\n  timeout: 2s\nphysics:\n  tick_interval: 50ms\n"
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.Service.Timeout != 2*time.Second {
		t.Fatalf("Timeout = %v, want 2s", cfg.Service.Timeout)
	}
	if cfg.Physics.TickInterval != 50*time.Millisecond {
		t.Fatalf("TickInterval = %v, want 50ms", cfg.Physics.TickInterval)
	}
}

func TestLoadBadDurationString(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kgraph.yaml")
	if err := os.WriteFile(path, []byte("service:\n  timeout: soon\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load error = nil for unparseable duration, want error")
	}
}

func TestLoadEnvWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kgraph.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 3000\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	t.Setenv("KGRAPH_PORT", "4000")
	t.Setenv("KGRAPH_SERVICE_TIMEOUT", "2s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if cfg.Server.Port != 4000 {
		t.Fatalf("Port = %d, want env override 4000", cfg.Server.Port)
	}
	if cfg.Service.Timeout != 2*time.Second {
		t.Fatalf("Timeout = %v, want 2s", cfg.Service.Timeout)
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kgraph.yaml")
	if err := os.WriteFile(path, []byte("server: ["), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load error = nil, want parse error")
	}
}
