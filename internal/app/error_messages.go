// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app holds the human-readable messages written into response bodies
// by the development config server.
package app

const (
	// MsgDocumentNotFound is returned when the configured document file does
	// not exist.
	MsgDocumentNotFound = "config document not found"

	// MsgDocumentNotReadable is returned when the document file exists but
	// the server process may not read it.
	MsgDocumentNotReadable = "config document is not readable"

	// MsgInternalServerError is returned for any other failure.
	MsgInternalServerError = "internal server error"
)
