package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

const (
	configCacheTable = "config_cache"

	// configCacheRowID is the only row the table can hold.
	configCacheRowID = 1
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// buildWriteQuery replaces the cached row in a single statement.
func buildWriteQuery(payload, digest string, at time.Time) (string, []any, error) {
	return psql.
		Replace(configCacheTable).
		Columns("id", "payload", "digest", "cached_at").
		Values(configCacheRowID, payload, digest, at.UnixNano()).
		ToSql()
}

func buildReadQuery() (string, []any, error) {
	return psql.
		Select("payload", "digest", "cached_at").
		From(configCacheTable).
		Where(sq.Eq{"id": configCacheRowID}).
		ToSql()
}

func buildClearQuery() (string, []any, error) {
	return psql.
		Delete(configCacheTable).
		Where(sq.Eq{"id": configCacheRowID}).
		ToSql()
}
