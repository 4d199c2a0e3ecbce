package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"quiz/internal/backend/duckdb"
)

const (
	backendMemory = "memory"
	backendDuckDB = "duckdb"
)

// config describes the quizd YAML configuration.
type config struct {
	Server struct {
		ListenAddr string `yaml:"listen_addr"`
		Backend    string `yaml:"backend"`
	} `yaml:"server"`
	Catalog struct {
		Path string `yaml:"path"`
	} `yaml:"catalog"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
	DuckDB struct {
		DSN string `yaml:"dsn"`
	} `yaml:"duckdb"`
}

// loadConfig reads and validates the configuration file.
// An empty path yields the defaults.
func loadConfig(path string) (config, error) {
	var cfg config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, err
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = ":8000"
	}
	if cfg.Server.Backend == "" {
		cfg.Server.Backend = backendMemory
	}
	if cfg.CORS.AllowedOrigins == nil {
		cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	switch cfg.Server.Backend {
	case backendMemory:
	case backendDuckDB:
		if !duckdb.IsMemoryDSN(cfg.DuckDB.DSN) {
			return cfg, fmt.Errorf("duckdb.dsn %q: only in-memory databases are supported", cfg.DuckDB.DSN)
		}
	default:
		return cfg, fmt.Errorf("server.backend %q is not supported", cfg.Server.Backend)
	}
	if _, err := parseLevel(cfg.Log.Level); err != nil {
		return cfg, err
	}
	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		return cfg, fmt.Errorf("log.format %q must be text or json", cfg.Log.Format)
	}
	return cfg, nil
}

// parseLevel converts a config log level to a slog level.
func parseLevel(value string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return 0, fmt.Errorf("log.level %q: %w", value, err)
	}
	return level, nil
}

// newLogger builds the daemon logger from a validated config.
func newLogger(cfg config, w io.Writer) *slog.Logger {
	level, _ := parseLevel(cfg.Log.Level)
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
