package store

import (
	"database/sql"

	"github.com/MKhiriev/mission-control/internal/logger"
	"github.com/MKhiriev/mission-control/migrations"
)

// DB is a SQLite connection pool paired with the logger of its owner.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.logger)
}
