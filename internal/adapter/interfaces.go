// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the transport used to download the remote config
// document.
//
// The primary abstraction is [Fetcher], which decouples the resolution engine
// from the underlying protocol. The package ships an HTTP implementation
// ([NewHTTPFetcher]) built on resty.
//
// Every failure is reported as one of the sentinel values defined in
// errors.go so that callers can use [errors.Is] regardless of the cause
// (e.g. [ErrBadResponseCode] for a 404 or a refused connection).
package adapter

import (
	"context"

	"github.com/MKhiriev/mission-control/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/fetcher_mock.go -package=mock

// Fetcher downloads and decodes the remote config document.
type Fetcher interface {
	// Fetch issues a single GET to remoteURL and returns the decoded JSON
	// object. It returns [ErrNoRemoteURL] for an empty URL,
	// [ErrBadResponseCode] when the request fails or the status is not 200,
	// and [ErrInvalidData] when the body is not a JSON object.
	Fetch(ctx context.Context, remoteURL string) (models.ConfigMap, error)
}
