package adapter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/mission-control/internal/logger"
	"github.com/MKhiriev/mission-control/internal/utils"
	"github.com/MKhiriev/mission-control/models"
)

type httpFetcher struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPFetcher constructs the resty-backed [Fetcher]. requestTimeout bounds
// a single fetch; zero leaves the client without a timeout. Retries are
// disabled and redirects follow resty's default policy.
func NewHTTPFetcher(requestTimeout time.Duration, log *logger.Logger) Fetcher {
	if log == nil {
		log = logger.Nop()
	}
	log = log.WithComponent("fetcher")

	client := utils.NewHTTPClient(
		utils.WithTimeout(requestTimeout),
		utils.WithLogger(log),
	)

	return &httpFetcher{client: client, logger: log}
}

// Fetch implements [Fetcher].
func (h *httpFetcher) Fetch(ctx context.Context, remoteURL string) (models.ConfigMap, error) {
	remoteURL = strings.TrimSpace(remoteURL)
	if remoteURL == "" {
		return nil, ErrNoRemoteURL
	}

	started := time.Now()
	resp, err := h.client.R().
		SetContext(ctx).
		Get(remoteURL)
	if err != nil {
		h.logger.Debug().Err(err).Str("url", remoteURL).Dur("took", time.Since(started)).Msg("fetch failed")
		return nil, fmt.Errorf("%w: %w", ErrBadResponseCode, err)
	}

	h.logger.Debug().
		Str("url", remoteURL).
		Int("status", resp.StatusCode()).
		Int("bytes", len(resp.Body())).
		Dur("took", time.Since(started)).
		Msg("fetched remote config")

	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	cfg, skipped, err := models.ParseConfigMap(resp.Body())
	if err != nil {
		return nil, mapParseError(err)
	}
	if len(skipped) > 0 {
		h.logger.Warn().Strs("keys", skipped).Msg("skipped non-scalar config entries")
	}

	return cfg, nil
}
