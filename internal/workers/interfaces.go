// Package workers runs the long-lived background tasks of the watch command
// together and stops them together.
package workers

import "context"

// Worker is a background task. Run blocks until ctx is done or the task
// fails, and returns nil on a clean stop.
type Worker interface {
	Run(ctx context.Context) error
}

// WorkerFunc adapts a function to [Worker].
type WorkerFunc func(ctx context.Context) error

func (f WorkerFunc) Run(ctx context.Context) error { return f(ctx) }
