// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MKhiriev/mission-control/internal/logger"
)

// Exporter serves a Prometheus registry over HTTP.
type Exporter struct {
	server *http.Server
	logger *logger.Logger
}

// Handler returns the exporter routes: GET /metrics and GET /health.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
	router.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return router
}

// NewExporter creates an exporter listening on addr.
func NewExporter(addr string, gatherer prometheus.Gatherer, log *logger.Logger) *Exporter {
	return &Exporter{
		server: &http.Server{
			Addr:              addr,
			Handler:           Handler(gatherer),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: log.WithComponent("metrics"),
	}
}

// Start serves in the background until Shutdown.
func (e *Exporter) Start() {
	e.logger.Info().Str("address", e.server.Addr).Msg("metrics exporter started")

	go func() {
		if err := e.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.logger.Err(err).Msg("metrics exporter stopped")
		}
	}()
}

// Shutdown stops the exporter.
func (e *Exporter) Shutdown(ctx context.Context) error {
	return e.server.Shutdown(ctx)
}
