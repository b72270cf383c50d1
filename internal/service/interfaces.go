// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service implements the resolution engine: three config tiers
// (remote, cached, local) consulted in that order, a single-flight refresh
// against the remote document, and delivery of refresh outcomes on a serial
// dispatcher goroutine.
package service

import (
	"context"
	"time"

	"github.com/MKhiriev/mission-control/internal/notify"
	"github.com/MKhiriev/mission-control/models"
)

// ConfigService resolves settings and keeps the remote tier fresh.
//
// Lookups never block on a refresh. Refresh outcomes (state mutation,
// delegate and subscriber notification, completion callbacks) are delivered
// in that order on one dispatcher goroutine. Callbacks must not block waiting
// for another refresh of the same service.
type ConfigService interface {
	// Launch sets the local tier and the remote URL. A non-empty URL starts a
	// refresh whose failure is only logged.
	Launch(local models.ConfigMap, remoteURL string)

	// SetRemoteURL replaces the remote URL. A non-empty URL starts a refresh.
	SetRemoteURL(remoteURL string)

	// RemoteURL returns the configured remote URL.
	RemoteURL() string

	// Lookup returns the value stored under key in the first tier (remote,
	// cached, local) whose entry can be read as kind.
	Lookup(key string, kind models.Kind) (models.Value, bool)

	// Refresh fetches the remote document without blocking. Calls made while
	// a fetch is in flight join it. completion (may be nil) receives the
	// outcome after observers have been notified.
	Refresh(completion func(error))

	// RefreshContext is the blocking form of Refresh. ctx bounds the wait
	// only; it never cancels the shared fetch.
	RefreshContext(ctx context.Context) error

	// Config returns the merged view of all tiers, remote winning. The map is
	// never nil.
	Config() models.ConfigMap

	// RefreshDate is the time of the last successful refresh.
	RefreshDate() (time.Time, bool)

	// CacheDate is the time the cached tier was written.
	CacheDate() (time.Time, bool)

	SetDelegate(d notify.Delegate)
	Delegate() notify.Delegate
	Subscribe(name models.EventName, fn func(models.Notification)) notify.Subscription
	Unsubscribe(id string) bool
	Listen(ctx context.Context, name models.EventName) <-chan models.Notification

	// ResetRemote forgets the remote tier and the refresh date.
	ResetRemote()

	// ResetAll returns the service to its initial state and clears the disk
	// cache. Subscribers stay registered; the delegate is dropped.
	ResetAll(ctx context.Context) error

	// Close cancels an in-flight fetch, waits for pending completions to be
	// delivered and stops the dispatcher. Refresh after Close completes with
	// [ErrServiceClosed]. Called from a callback, or while one is running,
	// Close returns without waiting; Done reports when shutdown has finished.
	Close()

	// Done is closed once Close has delivered every pending completion and
	// stopped the dispatcher.
	Done() <-chan struct{}
}

// Recorder receives refresh telemetry.
type Recorder interface {
	// ObserveRefresh records one refresh outcome and its duration.
	ObserveRefresh(outcome string, d time.Duration)

	// SetConfigKeys records the number of keys in the merged config.
	SetConfigKeys(n int)
}

// RefreshJob refreshes a service periodically.
type RefreshJob interface {
	// Start launches the job. An interval of zero or less means 5 minutes.
	Start(ctx context.Context, interval time.Duration)

	// Stop cancels the job and waits for it to exit.
	Stop()
}
