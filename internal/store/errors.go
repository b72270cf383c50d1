package store

import "errors"

// Sentinel errors returned by cache stores. Callers should use [errors.Is] to
// match against these values.
var (
	// ErrCacheEmpty is returned by Read when no config has been cached yet.
	ErrCacheEmpty = errors.New("config cache is empty")

	// ErrCacheCorrupted is returned by Read when the stored payload cannot be
	// decoded or does not match its recorded digest.
	ErrCacheCorrupted = errors.New("config cache is corrupted")
)

// Low-level database operation errors. These are wrapped around the driver
// error when a SQL-level operation fails.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when the SELECT of the cached row fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when a REPLACE or DELETE fails.
	ErrExecutingStatement = errors.New("failed to execute sql statement")

	// ErrScanningRow is returned when scanning the cached row fails.
	ErrScanningRow = errors.New("failed to scan config cache row")
)
