// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"net/url"
)

// validate checks source-independent invariants of the merged config.
func (cfg *StructuredConfig) validate() error {
	if cfg.Remote.RequestTimeout < 0 {
		return fmt.Errorf("%w: negative request timeout", ErrInvalidRemoteConfigs)
	}
	if cfg.Workers.RefreshInterval < 0 {
		return fmt.Errorf("%w: negative refresh interval", ErrInvalidWorkerConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.RemoteURL != "" {
		if err := validateRemoteURL(cfg.RemoteURL); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidRemoteConfigs, err)
		}
	}

	if cfg.CacheDSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.RefreshInterval <= 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ServerConfig) validate() error {
	if cfg.HTTPAddress == "" || cfg.ConfigFile == "" {
		return ErrInvalidServerConfigs
	}

	return nil
}

func validateRemoteURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host in %q", raw)
	}

	return nil
}
