package adapter

import "errors"

var (
	// ErrNoRemoteURL means no remote URL was configured.
	ErrNoRemoteURL = errors.New("no remote url configured")

	// ErrBadResponseCode covers transport failures and non-200 responses.
	ErrBadResponseCode = errors.New("bad response code")

	// ErrInvalidData means the response body is empty, not JSON, or not a
	// JSON object.
	ErrInvalidData = errors.New("invalid config data")
)
