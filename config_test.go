package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:8050" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
}

func TestLoadConfig_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dash.yaml")
	yaml := `
server:
  addr: ":9000"
  shutdown_timeout: 2s
data:
  backend: sqlite
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := Config{
		Server: ServerConfig{Addr: ":9000", ShutdownTimeout: 2 * time.Second},
		Data:   DataConfig{Path: "spacex_launch_dash.csv", Backend: "sqlite"},
		Log:    LogConfig{Level: "debug", Format: "text"},
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("server: [oops"), 0o644)
	if _, err := LoadConfig(path); err == nil || !strings.Contains(err.Error(), "parse config yaml") {
		t.Errorf("error = %v, want parse error", err)
	}
}

func TestConfig_ApplyEnv(t *testing.T) {
	env := map[string]string{
		"SPACEX_DASH_ADDR":       "0.0.0.0:80",
		"SPACEX_DASH_BACKEND":    "sqlite",
		"SPACEX_DASH_LOG_FORMAT": "json",
		"SPACEX_DASH_DATA":       "",
	}
	cfg := DefaultConfig()
	cfg.applyEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	if cfg.Server.Addr != "0.0.0.0:80" || cfg.Data.Backend != "sqlite" || cfg.Log.Format != "json" {
		t.Errorf("env not applied: %+v", cfg)
	}
	if cfg.Data.Path != "spacex_launch_dash.csv" {
		t.Errorf("empty env value overrode data path: %q", cfg.Data.Path)
	}
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dash.yaml")
	os.WriteFile(path, []byte("server:\n  addr: \":9000\"\n"), 0o644)
	t.Setenv("SPACEX_DASH_ADDR", ":9100")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Addr != ":9100" {
		t.Errorf("addr = %q, want env value", cfg.Server.Addr)
	}
}

func TestConfig_Validate(t *testing.T) {
	cases := map[string]func(*Config){
		"empty addr":      func(c *Config) { c.Server.Addr = "" },
		"zero timeout":    func(c *Config) { c.Server.ShutdownTimeout = 0 },
		"empty data path": func(c *Config) { c.Data.Path = "" },
		"unknown backend": func(c *Config) { c.Data.Backend = "postgres" },
		"unknown level":   func(c *Config) { c.Log.Level = "chatty" },
		"unknown format":  func(c *Config) { c.Log.Format = "xml" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := DefaultConfig()
			mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
