// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"

	"github.com/spf13/pflag"
)

// StructuredConfig is the top-level configuration container for
// mission-control. It is populated by merging command-line flags,
// environment variables, an optional JSON file and built-in defaults.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Remote holds the remote config endpoint settings.
	Remote Remote `envPrefix:"REMOTE_"`

	// Storage holds the disk cache settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Workers holds background refresh settings.
	Workers Workers `envPrefix:"WORKERS_"`

	// Server holds settings of the development config server.
	Server Server `envPrefix:"SERVER_"`

	// Metrics holds the Prometheus exporter settings.
	Metrics Metrics `envPrefix:"METRICS_"`

	// App holds process-level settings (local defaults, logging).
	App App `envPrefix:"APP_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / --config flag.
	JSONFilePath string `env:"CONFIG"`
}

// Remote describes where the remote config document lives.
type Remote struct {
	// URL is the absolute http(s) URL of the JSON config document.
	// An empty URL disables refreshing; lookups then resolve from the
	// cache and local defaults only.
	// Env: REMOTE_URL
	URL string `env:"URL"`

	// RequestTimeout bounds a single fetch. Zero keeps the HTTP client
	// default (no timeout).
	// Env: REMOTE_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the disk cache settings.
type Storage struct {
	// DB holds the cache database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the SQLite cache database.
type DB struct {
	// DSN is the SQLite file path. ":memory:" keeps the cache in process
	// memory only (nothing survives a restart).
	// Env: STORAGE_DB_DSN
	DSN string `env:"DSN"`
}

// Workers holds background worker settings.
type Workers struct {
	// RefreshInterval is the period of the background refresh job used by
	// the watch command.
	// Env: WORKERS_REFRESH_INTERVAL
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL"`
}

// Server holds settings of the development config server.
type Server struct {
	// HTTPAddress is the host:port the server listens on.
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// ConfigFile is the JSON document served at /config.
	// Env: SERVER_CONFIG_FILE
	ConfigFile string `env:"CONFIG_FILE"`
}

// Metrics holds the Prometheus exporter settings.
type Metrics struct {
	// Address is the host:port serving /metrics. Empty disables the exporter.
	// Env: METRICS_ADDRESS
	Address string `env:"ADDRESS"`
}

// App holds process-level settings.
type App struct {
	// LocalDefaultsPath points at a JSON object used as the local tier.
	// Env: APP_LOCAL_DEFAULTS
	LocalDefaultsPath string `env:"LOCAL_DEFAULTS"`

	// LogFile is where the client logger writes. Empty selects a "logs"
	// file next to the executable.
	// Env: APP_LOG_FILE
	LogFile string `env:"LOG_FILE"`

	// LogLevel is a zerolog level name.
	// Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// defaultConfig is the lowest-priority source.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		Remote:  Remote{RequestTimeout: 15 * time.Second},
		Storage: Storage{DB: DB{DSN: "missioncontrol-cache.db"}},
		Workers: Workers{RefreshInterval: 5 * time.Minute},
		Server:  Server{HTTPAddress: "localhost:8080"},
		App:     App{LogLevel: "info"},
	}
}

// GetStructuredConfig loads, merges, and validates the configuration from all
// available sources in the following priority order (earlier sources win,
// later sources only fill fields that are still zero):
//  1. Command-line flags registered on fs (may be nil)
//  2. Environment variables
//  3. JSON file (path resolved from sources 1 and 2)
//  4. Built-in defaults
func GetStructuredConfig(fs *pflag.FlagSet) (*StructuredConfig, error) {
	return newConfigBuilder().
		withFlags(fs).
		withEnv().
		withJSON().
		withDefaults().
		build()
}
