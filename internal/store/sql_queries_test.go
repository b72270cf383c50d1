package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildWriteQuery(t *testing.T) {
	at := time.Unix(1700000000, 42)

	query, args, err := buildWriteQuery(`{"a":1}`, "abc", at)
	require.NoError(t, err)

	assert.Equal(t, "REPLACE INTO config_cache (id,payload,digest,cached_at) VALUES (?,?,?,?)", query)
	assert.Equal(t, []any{configCacheRowID, `{"a":1}`, "abc", at.UnixNano()}, args)
}

func TestBuildReadQuery(t *testing.T) {
	query, args, err := buildReadQuery()
	require.NoError(t, err)

	assert.Equal(t, "SELECT payload, digest, cached_at FROM config_cache WHERE id = ?", query)
	assert.Equal(t, []any{configCacheRowID}, args)
}

func TestBuildClearQuery(t *testing.T) {
	query, args, err := buildClearQuery()
	require.NoError(t, err)

	assert.Equal(t, "DELETE FROM config_cache WHERE id = ?", query)
	assert.Equal(t, []any{configCacheRowID}, args)
}
