// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package handler

import "errors"

var (
	// errNoHandlersAreCreated is returned by NewHandlers when the server
	// configuration has no HTTP address.
	errNoHandlersAreCreated = errors.New("no handlers are created")

	// errNoConfigDocument is returned by NewHandlers when no document file
	// is configured to be served.
	errNoConfigDocument = errors.New("no config document to serve")
)
