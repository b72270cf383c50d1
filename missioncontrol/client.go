// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package missioncontrol

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/mission-control/internal/adapter"
	"github.com/MKhiriev/mission-control/internal/logger"
	"github.com/MKhiriev/mission-control/internal/metrics"
	"github.com/MKhiriev/mission-control/internal/notify"
	"github.com/MKhiriev/mission-control/internal/service"
	"github.com/MKhiriev/mission-control/internal/store"
)

// storeOpenTimeout bounds opening and migrating the cache database.
const storeOpenTimeout = 10 * time.Second

// Client is a remote configuration handle. Construct one per process (or
// per test) with [New] and share it. All methods are safe for concurrent
// use.
type Client struct {
	svc      service.ConfigService
	storages *store.Storages
	logger   *logger.Logger
}

// New builds a Client. Without options it fetches over HTTP with no timeout,
// keeps the cache in memory and discards logs.
func New(opts ...Option) (*Client, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	log := o.logger
	if log == nil {
		log = logger.Nop()
	}

	fetcher := o.fetcher
	if fetcher == nil {
		fetcher = adapter.NewHTTPFetcher(o.requestTimeout, log)
	}

	var storages *store.Storages
	cache := o.cacheStore
	if cache == nil {
		ctx, cancel := context.WithTimeout(context.Background(), storeOpenTimeout)
		defer cancel()

		var err error
		storages, err = store.NewStorages(ctx, o.cacheDSN, log)
		if err != nil {
			return nil, fmt.Errorf("error opening config cache: %w", err)
		}
		cache = storages.ConfigCache
	}

	var recorder service.Recorder
	if o.registerer != nil {
		r, err := metrics.NewRecorder(o.registerer)
		if err != nil {
			_ = storages.Close()
			return nil, fmt.Errorf("error registering metrics: %w", err)
		}
		recorder = r
	}

	var svcOpts []service.Option
	if o.now != nil {
		svcOpts = append(svcOpts, service.WithClock(o.now))
	}

	return &Client{
		svc:      service.NewConfigService(fetcher, cache, notify.NewHub(log), recorder, log, svcOpts...),
		storages: storages,
		logger:   log,
	}, nil
}

// Launch installs the local defaults and the remote URL. A non-empty URL
// starts a refresh in the background; its failure is only logged.
func (c *Client) Launch(local ConfigMap, remoteURL string) {
	c.svc.Launch(local, remoteURL)
}

// SetRemoteURL changes the remote URL. A non-empty URL starts a refresh.
func (c *Client) SetRemoteURL(remoteURL string) { c.svc.SetRemoteURL(remoteURL) }

// RemoteURL returns the configured remote URL.
func (c *Client) RemoteURL() string { return c.svc.RemoteURL() }

// Refresh fetches the remote document in the background. completion, which
// may be nil, runs after the delegate and subscribers have been notified.
// Calls made while a fetch is in flight share its outcome.
func (c *Client) Refresh(completion func(error)) { c.svc.Refresh(completion) }

// RefreshContext refreshes and waits for the outcome. ctx bounds the wait
// only; the fetch itself carries on for the other callers sharing it.
func (c *Client) RefreshContext(ctx context.Context) error { return c.svc.RefreshContext(ctx) }

// Config returns every setting merged across the tiers, remote winning. The
// result is never nil.
func (c *Client) Config() ConfigMap { return c.svc.Config() }

// Settings is Config under its earlier name.
func (c *Client) Settings() ConfigMap { return c.svc.Config() }

// Lookup returns the first value under key whose kind fits.
func (c *Client) Lookup(key string, kind Kind) (Value, bool) { return c.svc.Lookup(key, kind) }

// RefreshDate is the time of the last successful refresh in this process.
func (c *Client) RefreshDate() (time.Time, bool) { return c.svc.RefreshDate() }

// CacheDate is the time the cached document was written, possibly by an
// earlier process.
func (c *Client) CacheDate() (time.Time, bool) { return c.svc.CacheDate() }

func (c *Client) SetDelegate(d Delegate) { c.svc.SetDelegate(d) }

func (c *Client) Delegate() Delegate { return c.svc.Delegate() }

// Subscribe calls fn for every event named name. fn runs on the client's
// notification goroutine and must not block on the Client.
func (c *Client) Subscribe(name EventName, fn func(Notification)) Subscription {
	return c.svc.Subscribe(name, fn)
}

func (c *Client) Unsubscribe(id string) bool { return c.svc.Unsubscribe(id) }

// Listen delivers events on a channel until ctx is done. Events are dropped
// when the channel buffer is full.
func (c *Client) Listen(ctx context.Context, name EventName) <-chan Notification {
	return c.svc.Listen(ctx, name)
}

// ResetRemote forgets the remote tier and the refresh date.
func (c *Client) ResetRemote() { c.svc.ResetRemote() }

// ResetAll returns the client to its freshly constructed state and clears
// the persisted cache. Subscribers are kept; the delegate is dropped.
func (c *Client) ResetAll(ctx context.Context) error { return c.svc.ResetAll(ctx) }

// Close cancels an in-flight fetch, delivers pending completions and
// releases the cache database.
//
// Close may be called from a completion, delegate or subscriber callback. It
// then returns without waiting and the database is released once the
// remaining callbacks have run; Done reports when that has happened.
func (c *Client) Close() error {
	c.svc.Close()

	select {
	case <-c.svc.Done():
		return c.storages.Close()
	default:
	}

	go func() {
		<-c.svc.Done()
		if err := c.storages.Close(); err != nil {
			c.logger.Err(err).Msg("error closing cache storage")
		}
	}()
	return nil
}

// Done is closed once Close has delivered every pending callback.
func (c *Client) Done() <-chan struct{} { return c.svc.Done() }
