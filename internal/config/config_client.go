// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
)

// ClientConfig is the view of [StructuredConfig] used by the config client
// commands (get, dump, watch).
type ClientConfig struct {
	// RemoteURL is the config document URL; empty disables refreshing.
	RemoteURL string
	// RequestTimeout bounds a single fetch.
	RequestTimeout time.Duration
	// CacheDSN is the SQLite cache location.
	CacheDSN string
	// RefreshInterval is the period of the background refresh job.
	RefreshInterval time.Duration
	// LocalDefaultsPath is the optional local tier file.
	LocalDefaultsPath string
	// MetricsAddress enables the Prometheus exporter when non-empty.
	MetricsAddress string
	// LogFile and LogLevel configure the client logger.
	LogFile  string
	LogLevel string
}

// ServerConfig is the view of [StructuredConfig] used by the development
// config server.
type ServerConfig struct {
	// HTTPAddress is the listen address.
	HTTPAddress string
	// ConfigFile is the served JSON document.
	ConfigFile string
	// LogFile and LogLevel configure the server logger.
	LogFile  string
	LogLevel string
}

// GetClientConfig builds and validates the client view of the merged
// configuration.
func GetClientConfig(fs *pflag.FlagSet) (*ClientConfig, error) {
	cfg, err := GetStructuredConfig(fs)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		RemoteURL:         cfg.Remote.URL,
		RequestTimeout:    cfg.Remote.RequestTimeout,
		CacheDSN:          cfg.Storage.DB.DSN,
		RefreshInterval:   cfg.Workers.RefreshInterval,
		LocalDefaultsPath: cfg.App.LocalDefaultsPath,
		MetricsAddress:    cfg.Metrics.Address,
		LogFile:           cfg.App.LogFile,
		LogLevel:          cfg.App.LogLevel,
	}

	return clientCfg, clientCfg.validate()
}

// GetServerConfig builds and validates the server view of the merged
// configuration.
func GetServerConfig(fs *pflag.FlagSet) (*ServerConfig, error) {
	cfg, err := GetStructuredConfig(fs)
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	serverCfg := &ServerConfig{
		HTTPAddress: cfg.Server.HTTPAddress,
		ConfigFile:  cfg.Server.ConfigFile,
		LogFile:     cfg.App.LogFile,
		LogLevel:    cfg.App.LogLevel,
	}

	return serverCfg, serverCfg.validate()
}
