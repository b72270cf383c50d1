// Package utils provides general-purpose helpers shared by the client and the
// development config server: the resty HTTP client wrapper, JSON response
// writing and ID generation.
package utils

import (
	"time"

	"github.com/MKhiriev/mission-control/internal/logger"
	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly,
// while allowing extension with additional application-specific behavior.
//
// Example usage:
//
//	client := utils.NewHTTPClient(utils.WithTimeout(10 * time.Second))
//	resp, err := client.R().Get("https://example.com/config.json")
type HTTPClient struct {
	*resty.Client
}

// HTTPClientOption customises a client built by [NewHTTPClient].
type HTTPClientOption func(*resty.Client)

// WithTimeout bounds every request. Zero means no timeout.
func WithTimeout(d time.Duration) HTTPClientOption {
	return func(c *resty.Client) {
		c.SetTimeout(d)
	}
}

// WithLogger routes resty's internal warnings and errors to l.
func WithLogger(l *logger.Logger) HTTPClientOption {
	return func(c *resty.Client) {
		if l != nil {
			c.SetLogger(restyLogger{l})
		}
	}
}

// NewHTTPClient creates an independent client with its own connection pool.
// Retries are disabled.
func NewHTTPClient(opts ...HTTPClientOption) *HTTPClient {
	client := resty.New().SetRetryCount(0)
	for _, opt := range opts {
		opt(client)
	}
	return &HTTPClient{Client: client}
}

// restyLogger adapts *logger.Logger to resty.Logger.
type restyLogger struct {
	l *logger.Logger
}

func (r restyLogger) Errorf(format string, v ...interface{}) {
	r.l.Error().Msgf(format, v...)
}

func (r restyLogger) Warnf(format string, v ...interface{}) {
	r.l.Warn().Msgf(format, v...)
}

func (r restyLogger) Debugf(format string, v ...interface{}) {
	r.l.Debug().Msgf(format, v...)
}
