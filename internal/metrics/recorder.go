// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "missioncontrol"

// Recorder records refresh outcomes and the size of the resolved config.
type Recorder struct {
	refreshes  *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	configKeys prometheus.Gauge
	lastOK     prometheus.Gauge
}

// NewRecorder creates the collectors and registers them on reg. A collector
// that is already registered on reg is reused, so several recorders may
// share one registry.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		return nil, errors.New("metrics: nil registerer")
	}

	r := &Recorder{
		refreshes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "refreshes_total",
				Help:      "Total number of remote config refreshes by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "refresh_duration_seconds",
				Help:      "Duration of remote config refreshes in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
			},
			[]string{"outcome"},
		),
		configKeys: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "config_keys",
			Help:      "Number of keys in the resolved config after the last successful refresh",
		}),
		lastOK: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_success_timestamp_seconds",
			Help:      "Unix time of the last successful refresh",
		}),
	}

	var err error
	if r.refreshes, err = register(reg, r.refreshes); err != nil {
		return nil, err
	}
	if r.duration, err = register(reg, r.duration); err != nil {
		return nil, err
	}
	if r.configKeys, err = register(reg, r.configKeys); err != nil {
		return nil, err
	}
	if r.lastOK, err = register(reg, r.lastOK); err != nil {
		return nil, err
	}

	return r, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, fmt.Errorf("error registering collector: %w", err)
	}
	return c, nil
}

// ObserveRefresh counts one refresh attempt.
func (r *Recorder) ObserveRefresh(outcome string, d time.Duration) {
	r.refreshes.WithLabelValues(outcome).Inc()
	r.duration.WithLabelValues(outcome).Observe(d.Seconds())
	if outcome == "success" {
		r.lastOK.SetToCurrentTime()
	}
}

// SetConfigKeys sets the resolved config size gauge.
func (r *Recorder) SetConfigKeys(n int) {
	r.configKeys.Set(float64(n))
}
