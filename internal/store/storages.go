// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/mission-control/internal/logger"
)

// Storages groups the storage backends used by the config client. Call
// [Storages.Close] to release the database connection, if any.
type Storages struct {
	// ConfigCache is the disk (or memory) tier of the resolution engine.
	ConfigCache CacheStore

	db *DB
}

// NewStorages initialises the storage layer for dsn:
//  1. [MemoryDSN] (or an empty DSN) selects the in-memory store.
//  2. Anything else is treated as a SQLite file path: the file is created if
//     it does not exist, migrations are applied, and a SQLite store is
//     returned.
func NewStorages(ctx context.Context, dsn string, log *logger.Logger) (*Storages, error) {
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("store")
	log.Info().Str("dsn", dsn).Msg("creating new storages...")

	if dsn == "" || dsn == MemoryDSN {
		return &Storages{ConfigCache: NewMemoryCacheStore()}, nil
	}

	db, err := NewConnectSQLite(ctx, dsn, log)
	if err != nil {
		return nil, fmt.Errorf("sqlite connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Storages{
		ConfigCache: NewSQLiteCacheStore(db, log),
		db:          db,
	}, nil
}

// Close releases the database connection. It is safe to call on a memory
// backed Storages.
func (s *Storages) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
