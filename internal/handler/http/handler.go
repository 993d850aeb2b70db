package http

import (
	"github.com/ddanilova/organizer-sync/internal/logger"
	"github.com/ddanilova/organizer-sync/internal/service"
)

// Handler holds the dependencies shared by all HTTP endpoints.
type Handler struct {
	services *service.Services
	logger   *logger.Logger
}

// NewHandler creates a Handler backed by the given service layer.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	return &Handler{
		services: services,
		logger:   logger,
	}
}
