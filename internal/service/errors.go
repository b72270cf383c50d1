package service

import (
	"context"
	"errors"

	"github.com/MKhiriev/mission-control/internal/adapter"
)

// ErrServiceClosed is reported to refreshes requested after Close.
var ErrServiceClosed = errors.New("config service is closed")

// ErrRefreshAborted is reported when the fetcher panics or exits its goroutine
// instead of returning.
var ErrRefreshAborted = errors.New("refresh aborted")

// Refresh outcome labels passed to [Recorder.ObserveRefresh].
const (
	OutcomeSuccess       = "success"
	OutcomeNoRemoteURL   = "no_remote_url"
	OutcomeBadResponse   = "bad_response_code"
	OutcomeInvalidData   = "invalid_data"
	OutcomeCanceled      = "canceled"
	OutcomeUnknownFailed = "error"
)

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCanceled
	case errors.Is(err, adapter.ErrNoRemoteURL):
		return OutcomeNoRemoteURL
	case errors.Is(err, adapter.ErrBadResponseCode):
		return OutcomeBadResponse
	case errors.Is(err, adapter.ErrInvalidData):
		return OutcomeInvalidData
	default:
		return OutcomeUnknownFailed
	}
}
