// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package metrics exposes refresh telemetry of the config service as
// Prometheus metrics.
//
// [Recorder] implements the service's telemetry hook and registers its
// collectors on a caller supplied prometheus.Registerer. [Exporter] serves
// the registry over HTTP at /metrics.
package metrics
