// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"io"

	"github.com/MKhiriev/mission-control/models"
)

// Client is the contract the CLI commands run against.
type Client interface {
	// Resolve installs the local defaults and, when a remote URL is
	// configured, refreshes once. A failed refresh is returned but leaves
	// the cached and local tiers usable.
	Resolve(ctx context.Context) error

	// Lookup reads key from the resolved tiers.
	Lookup(key string, kind models.Kind) (models.Value, bool)

	// Snapshot returns the merged config and its dates.
	Snapshot() Snapshot

	// Watch refreshes periodically and writes one JSON line per refresh
	// outcome to out until ctx is done.
	Watch(ctx context.Context, out io.Writer) error

	// Close releases the cache database.
	Close() error
}
