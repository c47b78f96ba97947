package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/career-prep-api/internal/service"
	"github.com/noah-isme/career-prep-api/internal/utils"
)

// ReadinessHandler serves score previews that are neither narrated nor stored.
type ReadinessHandler struct {
	service service.ReadinessService
	logger  zerolog.Logger
}

// NewReadinessHandler constructs the handler.
func NewReadinessHandler(service service.ReadinessService, logger zerolog.Logger) *ReadinessHandler {
	return &ReadinessHandler{
		service: service,
		logger:  logger.With().Str("component", "readiness_handler").Logger(),
	}
}

// Register attaches the readiness endpoint under /interviews.
func (h *ReadinessHandler) Register(router fiber.Router) {
	router.Get("/:id/readiness", h.preview)
}

func (h *ReadinessHandler) preview(c *fiber.Ctx) error {
	interviewID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	preview, err := h.service.Preview(c.UserContext(), userIDFromContext(c), interviewID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "readiness computed", preview)
}
