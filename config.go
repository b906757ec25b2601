package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"spacex-dash/logging"
)

const (
	backendMemory = "memory"
	backendSQLite = "sqlite"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Data   DataConfig   `yaml:"data"`
	Log    LogConfig    `yaml:"log"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type DataConfig struct {
	Path    string `yaml:"path"`
	Backend string `yaml:"backend"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig listens where a Dash app would and reads the CSV from the working directory.
func DefaultConfig() Config {
	return Config{
		Server: ServerConfig{Addr: "127.0.0.1:8050", ShutdownTimeout: 5 * time.Second},
		Data:   DataConfig{Path: "spacex_launch_dash.csv", Backend: backendMemory},
		Log:    LogConfig{Level: "info", Format: "text"},
	}
}

// LoadConfig layers the YAML file at path (optional) and the environment over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config yaml: %w", err)
		}
	}
	cfg.applyEnv(os.LookupEnv)
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	for name, dst := range map[string]*string{
		"SPACEX_DASH_ADDR":       &c.Server.Addr,
		"SPACEX_DASH_DATA":       &c.Data.Path,
		"SPACEX_DASH_BACKEND":    &c.Data.Backend,
		"SPACEX_DASH_LOG_LEVEL":  &c.Log.Level,
		"SPACEX_DASH_LOG_FORMAT": &c.Log.Format,
	} {
		if v, ok := lookup(name); ok && v != "" {
			*dst = v
		}
	}
}

func (c Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is empty"))
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("server.shutdown_timeout must be positive, got %s", c.Server.ShutdownTimeout))
	}
	if c.Data.Path == "" {
		errs = append(errs, errors.New("data.path is empty"))
	}
	if c.Data.Backend != backendMemory && c.Data.Backend != backendSQLite {
		errs = append(errs, fmt.Errorf("data.backend %q: want %s or %s", c.Data.Backend, backendMemory, backendSQLite))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if !logging.ValidFormat(c.Log.Format) {
		errs = append(errs, fmt.Errorf("log.format %q: want text or json", c.Log.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
