// Package handler assembles the transport handlers of the development
// config server.
package handler

import (
	"github.com/MKhiriev/mission-control/internal/config"
	"github.com/MKhiriev/mission-control/internal/handler/http"
	"github.com/MKhiriev/mission-control/internal/logger"
	"github.com/MKhiriev/mission-control/models"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(cfg *config.ServerConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg == nil || cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}
	if cfg.ConfigFile == "" {
		return nil, errNoConfigDocument
	}

	return &Handlers{
		HTTP: http.NewHandler(cfg.ConfigFile, buildInfo, logger),
	}, nil
}
