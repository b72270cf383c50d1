package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/mission-control/internal/logger"
	"github.com/MKhiriev/mission-control/models"
)

// sqliteCacheStore is the SQLite-backed implementation of [CacheStore]. It
// keeps a single row in the config_cache table.
type sqliteCacheStore struct {
	db     *DB
	logger *logger.Logger
}

// NewSQLiteCacheStore constructs a [CacheStore] on top of an already migrated
// database.
func NewSQLiteCacheStore(db *DB, log *logger.Logger) CacheStore {
	log.Debug().Msg("creating sqlite config cache store")
	return &sqliteCacheStore{db: db, logger: log}
}

// Write implements [CacheStore]. The payload, its digest and the cache date
// are replaced in one REPLACE statement.
func (s *sqliteCacheStore) Write(ctx context.Context, cfg models.ConfigMap, at time.Time) error {
	payload, err := encodePayload(cfg)
	if err != nil {
		return err
	}

	query, args, err := buildWriteQuery(string(payload), cfg.Digest(), at)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).Str("func", "*sqliteCacheStore.Write").Msg("error writing config cache")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	s.logger.Debug().Int("keys", len(cfg)).Time("cached_at", at).Msg("config cache written")
	return nil
}

// Read implements [CacheStore].
func (s *sqliteCacheStore) Read(ctx context.Context) (models.ConfigMap, time.Time, error) {
	query, args, err := buildReadQuery()
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		payload  string
		digest   string
		cachedAt int64
	)
	rows, err := s.db.QueryContext(ctx, query, args...)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, time.Time{}, ErrCacheEmpty
	case err != nil:
		s.logger.Err(err).Str("func", "*sqliteCacheStore.Read").Msg("error querying config cache")
		return nil, time.Time{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, time.Time{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		return nil, time.Time{}, ErrCacheEmpty
	}
	if err = rows.Scan(&payload, &digest, &cachedAt); err != nil {
		s.logger.Err(err).Str("func", "*sqliteCacheStore.Read").Msg("error scanning config cache")
		return nil, time.Time{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	cfg, err := decodePayload([]byte(payload))
	if err != nil {
		return nil, time.Time{}, err
	}
	if cfg.Digest() != digest {
		return nil, time.Time{}, fmt.Errorf("%w: digest mismatch", ErrCacheCorrupted)
	}

	return cfg, time.Unix(0, cachedAt), nil
}

// Clear implements [CacheStore].
func (s *sqliteCacheStore) Clear(ctx context.Context) error {
	query, args, err := buildClearQuery()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).Str("func", "*sqliteCacheStore.Clear").Msg("error clearing config cache")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
