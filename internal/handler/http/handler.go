package http

import (
	"github.com/MKhiriev/mission-control/internal/logger"
	"github.com/MKhiriev/mission-control/models"
)

type Handler struct {
	documentPath string
	buildInfo    models.AppBuildInfo

	logger *logger.Logger
}

func NewHandler(documentPath string, buildInfo models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Str("document", documentPath).Msg("http handler created")
	return &Handler{
		documentPath: documentPath,
		buildInfo:    buildInfo,
		logger:       logger,
	}
}
