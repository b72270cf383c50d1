package server

import "context"

// Server is the lifecycle contract of the development config server.
type Server interface {
	// RunServer serves until a stop signal arrives.
	RunServer()

	// Run serves until ctx is done or the listener fails, then shuts down.
	Run(ctx context.Context) error

	// Shutdown gracefully stops the server.
	Shutdown()
}
