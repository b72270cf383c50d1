// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store persists the last successfully fetched remote config so that
// it survives process restarts.
//
// Two implementations of [CacheStore] are provided: a SQLite-backed store
// whose schema is managed by the embedded goose migrations, and an in-memory
// store used for ":memory:" DSNs and in tests.
package store

import (
	"context"
	"time"

	"github.com/MKhiriev/mission-control/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/cache_store_mock.go -package=mock

// CacheStore holds at most one cached config together with the time it was
// written. Writes replace the previous entry atomically; the last writer wins.
type CacheStore interface {
	// Write replaces the cached config. at is stored as the cache date.
	Write(ctx context.Context, cfg models.ConfigMap, at time.Time) error

	// Read returns the cached config and its cache date, or [ErrCacheEmpty]
	// when nothing has been written yet.
	Read(ctx context.Context) (models.ConfigMap, time.Time, error)

	// Clear removes the cached entry. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
