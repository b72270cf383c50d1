// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/MKhiriev/mission-control/internal/adapter"
	"github.com/MKhiriev/mission-control/internal/logger"
	"github.com/MKhiriev/mission-control/internal/notify"
	"github.com/MKhiriev/mission-control/internal/store"
	"github.com/MKhiriev/mission-control/models"
)

const (
	refreshKey = "refresh"

	// cacheIOTimeout bounds disk cache reads and writes.
	cacheIOTimeout = 5 * time.Second
)

// Option customises a config service.
type Option func(*configService)

// WithClock replaces time.Now, e.g. for deterministic tests.
func WithClock(now func() time.Time) Option {
	return func(s *configService) {
		if now != nil {
			s.now = now
		}
	}
}

type configService struct {
	fetcher  adapter.Fetcher
	cache    store.CacheStore
	hub      *notify.Hub
	recorder Recorder
	logger   *logger.Logger
	now      func() time.Time

	mu          sync.RWMutex
	local       models.ConfigMap
	cached      models.ConfigMap
	remote      models.ConfigMap
	remoteURL   string
	refreshDate time.Time
	cacheDate   time.Time
	cacheLoaded bool

	flight   singleflight.Group
	dispatch *dispatcher

	// lifetime is cancelled by Close to abort an in-flight fetch.
	lifetime context.Context
	cancel   context.CancelFunc

	closeMu sync.RWMutex
	closed  bool
	pending sync.WaitGroup
	done    chan struct{}
}

// NewConfigService wires the resolution engine. hub and recorder may be nil.
func NewConfigService(
	fetcher adapter.Fetcher,
	cache store.CacheStore,
	hub *notify.Hub,
	recorder Recorder,
	log *logger.Logger,
	opts ...Option,
) ConfigService {
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("config-service")
	if hub == nil {
		hub = notify.NewHub(log)
	}
	if recorder == nil {
		recorder = NopRecorder{}
	}

	lifetime, cancel := context.WithCancel(context.Background())
	s := &configService{
		fetcher:  fetcher,
		cache:    cache,
		hub:      hub,
		recorder: recorder,
		logger:   log,
		now:      time.Now,
		dispatch: newDispatcher(log),
		lifetime: lifetime,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// ── setup ────────────────────────────────────────────────────────────────────

func (s *configService) Launch(local models.ConfigMap, remoteURL string) {
	s.mu.Lock()
	s.local = local.Clone()
	s.remoteURL = remoteURL
	s.mu.Unlock()

	s.logger.Info().Int("local_keys", len(local)).Str("url", remoteURL).Msg("launched")

	if remoteURL != "" {
		s.Refresh(s.logFailure)
	}
}

func (s *configService) SetRemoteURL(remoteURL string) {
	s.mu.Lock()
	s.remoteURL = remoteURL
	s.mu.Unlock()

	if remoteURL != "" {
		s.Refresh(s.logFailure)
	}
}

func (s *configService) RemoteURL() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.remoteURL
}

func (s *configService) logFailure(err error) {
	if err != nil {
		s.logger.Warn().Err(err).Msg("background refresh failed")
	}
}

// ── reads ────────────────────────────────────────────────────────────────────

func (s *configService) Lookup(key string, kind models.Kind) (models.Value, bool) {
	s.loadCache()

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, tier := range [...]models.ConfigMap{s.remote, s.cached, s.local} {
		if v, ok := tier[key]; ok && v.Fits(kind) {
			return v, true
		}
	}
	return models.Value{}, false
}

func (s *configService) Config() models.ConfigMap {
	s.loadCache()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.Merge(s.local, s.cached, s.remote)
}

func (s *configService) RefreshDate() (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshDate, !s.refreshDate.IsZero()
}

func (s *configService) CacheDate() (time.Time, bool) {
	s.loadCache()

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cacheDate, !s.cacheDate.IsZero()
}

// loadCache reads the disk cache into the cached tier once. A refresh that
// completes first makes the load unnecessary.
func (s *configService) loadCache() {
	s.mu.RLock()
	loaded := s.cacheLoaded
	s.mu.RUnlock()
	if loaded {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cacheLoaded {
		return
	}
	s.cacheLoaded = true

	if s.cache == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cacheIOTimeout)
	defer cancel()

	cfg, at, err := s.cache.Read(ctx)
	switch {
	case errors.Is(err, store.ErrCacheEmpty):
		s.logger.Debug().Msg("no cached config")
	case err != nil:
		s.logger.Warn().Err(err).Msg("error loading cached config, ignoring cache")
	default:
		s.cached = cfg
		s.cacheDate = at
		s.logger.Debug().Int("keys", len(cfg)).Time("cached_at", at).Msg("cached config loaded")
	}
}

// ── refresh ──────────────────────────────────────────────────────────────────

func (s *configService) Refresh(completion func(error)) {
	s.closeMu.RLock()
	if s.closed {
		s.closeMu.RUnlock()
		if completion != nil {
			go completion(ErrServiceClosed)
		}
		return
	}
	s.pending.Add(1)
	s.closeMu.RUnlock()

	go func() {
		defer s.pending.Done()

		// stays set if the flight exits without returning
		err := ErrRefreshAborted
		defer func() {
			if completion != nil {
				s.dispatch.Submit(func() { completion(err) })
			}
		}()

		_, err, _ = s.flight.Do(refreshKey, func() (any, error) {
			return nil, s.refresh()
		})
	}()
}

func (s *configService) RefreshContext(ctx context.Context) error {
	done := make(chan error, 1)
	s.Refresh(func(err error) { done <- err })

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// refresh performs one fetch and waits until its outcome has been applied and
// announced on the dispatcher.
func (s *configService) refresh() error {
	remoteURL := s.RemoteURL()
	started := s.now()

	cfg, err := s.fetch(remoteURL, started)

	applied := make(chan struct{})
	s.dispatch.Submit(func() {
		defer close(applied)
		s.apply(cfg, err, started)
	})
	<-applied

	return err
}

// fetch turns a fetcher panic into ErrRefreshAborted. If the fetcher ends its
// goroutine instead of returning, the failure is still applied.
func (s *configService) fetch(remoteURL string, started time.Time) (cfg models.ConfigMap, err error) {
	returned := false
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Msg("fetcher panicked")
			cfg, err = nil, fmt.Errorf("%w: fetcher panicked: %v", ErrRefreshAborted, r)
			return
		}
		if !returned {
			s.dispatch.Submit(func() { s.apply(nil, ErrRefreshAborted, started) })
		}
	}()

	cfg, err = s.fetcher.Fetch(s.lifetime, remoteURL)
	returned = true
	return cfg, err
}

// apply runs on the dispatcher.
func (s *configService) apply(cfg models.ConfigMap, err error, started time.Time) {
	now := s.now()
	s.recorder.ObserveRefresh(outcomeOf(err), now.Sub(started))

	if err != nil {
		s.logger.Warn().Err(err).Msg("refresh failed")
		s.hub.PostFailure(err)
		return
	}

	s.mu.Lock()
	old := s.remote
	s.remote = cfg
	s.cached = cfg
	s.cacheLoaded = true
	s.refreshDate = now
	s.cacheDate = now
	keys := len(models.Merge(s.local, s.cached, s.remote))
	s.mu.Unlock()

	s.recorder.SetConfigKeys(keys)
	s.writeCache(cfg, now)

	s.logger.Info().Int("keys", len(cfg)).Bool("changed", !old.Equal(cfg)).Msg("remote config refreshed")
	s.hub.PostRefresh(old, cfg)
}

func (s *configService) writeCache(cfg models.ConfigMap, at time.Time) {
	if s.cache == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cacheIOTimeout)
	defer cancel()

	if err := s.cache.Write(ctx, cfg, at); err != nil {
		s.logger.Error().Err(err).Msg("error writing config cache")
	}
}

// ── observers ────────────────────────────────────────────────────────────────

func (s *configService) SetDelegate(d notify.Delegate) { s.hub.SetDelegate(d) }

func (s *configService) Delegate() notify.Delegate { return s.hub.Delegate() }

func (s *configService) Subscribe(name models.EventName, fn func(models.Notification)) notify.Subscription {
	return s.hub.Subscribe(name, fn)
}

func (s *configService) Unsubscribe(id string) bool { return s.hub.Unsubscribe(id) }

func (s *configService) Listen(ctx context.Context, name models.EventName) <-chan models.Notification {
	return s.hub.Listen(ctx, name)
}

// ── reset / close ────────────────────────────────────────────────────────────

func (s *configService) ResetRemote() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.remote = nil
	s.refreshDate = time.Time{}
}

func (s *configService) ResetAll(ctx context.Context) error {
	s.mu.Lock()
	s.local = nil
	s.cached = nil
	s.remote = nil
	s.remoteURL = ""
	s.refreshDate = time.Time{}
	s.cacheDate = time.Time{}
	s.cacheLoaded = true
	s.mu.Unlock()

	s.hub.SetDelegate(nil)

	if s.cache == nil {
		return nil
	}
	return s.cache.Clear(ctx)
}

func (s *configService) Close() {
	s.closeMu.Lock()
	if s.closed {
		s.closeMu.Unlock()
		return
	}
	s.closed = true
	s.closeMu.Unlock()

	// a callback calling Close would wait for itself
	inCallback := s.dispatch.Busy()

	s.cancel()
	go func() {
		s.pending.Wait()
		s.dispatch.Close()
		close(s.done)
	}()

	if inCallback {
		return
	}
	<-s.done
}

func (s *configService) Done() <-chan struct{} {
	return s.done
}
