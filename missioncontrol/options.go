package missioncontrol

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/MKhiriev/mission-control/internal/logger"
	"github.com/MKhiriev/mission-control/internal/store"
)

type options struct {
	logger         *logger.Logger
	cacheDSN       string
	cacheStore     CacheStore
	fetcher        Fetcher
	requestTimeout time.Duration
	registerer     prometheus.Registerer
	now            func() time.Time
}

func defaultOptions() options {
	return options{
		cacheDSN: store.MemoryDSN,
	}
}

// Option configures a [Client].
type Option func(*options)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &logger.Logger{Logger: l}
	}
}

// WithCacheDSN persists the cached tier to a SQLite file at dsn. The default,
// ":memory:", keeps it in process memory only.
func WithCacheDSN(dsn string) Option {
	return func(o *options) {
		o.cacheDSN = dsn
	}
}

// WithCacheStore replaces the cache backend. It takes precedence over
// WithCacheDSN.
func WithCacheStore(s CacheStore) Option {
	return func(o *options) {
		o.cacheStore = s
	}
}

// WithFetcher replaces the HTTP fetcher.
func WithFetcher(f Fetcher) Option {
	return func(o *options) {
		o.fetcher = f
	}
}

// WithRequestTimeout bounds a single fetch of the HTTP fetcher. Zero means
// no timeout.
func WithRequestTimeout(d time.Duration) Option {
	return func(o *options) {
		o.requestTimeout = d
	}
}

// WithMetrics registers refresh metrics on reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithClock replaces time.Now for refresh and cache dates.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}
