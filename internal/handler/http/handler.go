package http

import (
	"github.com/MKhiriev/go-field-sync/internal/logger"
	"github.com/MKhiriev/go-field-sync/internal/service"
	"github.com/MKhiriev/go-field-sync/internal/validators"
	"github.com/MKhiriev/go-field-sync/models"
)

type Handler struct {
	services *service.Services

	// adminKey guards device registration. Admin routes are not mounted
	// when it is empty.
	adminKey  string
	buildInfo models.AppBuildInfo

	validator validators.Validator
	logger    *logger.Logger
}

func NewHandler(services *service.Services, adminKey string, buildInfo models.AppBuildInfo, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		adminKey:  adminKey,
		buildInfo: buildInfo,
		validator: validators.NewDocumentValidator(),
		logger:    logger,
	}
}
