package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/career-prep-api/internal/dto"
	"github.com/noah-isme/career-prep-api/internal/service"
	"github.com/noah-isme/career-prep-api/internal/utils"
)

// ExperimentHandler serves A/B significance checks for application material.
type ExperimentHandler struct {
	service service.ExperimentService
	logger  zerolog.Logger
}

// NewExperimentHandler constructs the handler.
func NewExperimentHandler(service service.ExperimentService, logger zerolog.Logger) *ExperimentHandler {
	return &ExperimentHandler{
		service: service,
		logger:  logger.With().Str("component", "experiment_handler").Logger(),
	}
}

// Register attaches experiment endpoints to the router group.
func (h *ExperimentHandler) Register(router fiber.Router) {
	router.Post("/significance", h.significance)
}

func (h *ExperimentHandler) significance(c *fiber.Ctx) error {
	var payload dto.SignificanceRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Significance(c.UserContext(), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "experiment evaluated", result)
}
