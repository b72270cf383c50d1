// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client wires the config service, its cache database, the HTTP
// fetcher and the metrics exporter into the process run by the
// missioncontrol command line tool.
package client
