package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/career-prep-api/internal/dto"
	"github.com/noah-isme/career-prep-api/internal/service"
	"github.com/noah-isme/career-prep-api/internal/utils"
)

// PredictionHandler serves interview success predictions.
type PredictionHandler struct {
	service service.InterviewPredictionService
	logger  zerolog.Logger
}

// NewPredictionHandler constructs the handler.
func NewPredictionHandler(service service.InterviewPredictionService, logger zerolog.Logger) *PredictionHandler {
	return &PredictionHandler{
		service: service,
		logger:  logger.With().Str("component", "prediction_handler").Logger(),
	}
}

// Register attaches the create endpoint. Extra handlers, such as a rate
// limiter, run before it.
func (h *PredictionHandler) Register(router fiber.Router, guards ...fiber.Handler) {
	handlers := append(guards, h.create)
	router.Post("", handlers...)
}

// RegisterInterviewRoutes attaches read endpoints under /interviews.
func (h *PredictionHandler) RegisterInterviewRoutes(router fiber.Router) {
	router.Get("/:id/predictions", h.list)
	router.Get("/:id/predictions/latest", h.latest)
}

func (h *PredictionHandler) create(c *fiber.Ctx) error {
	var payload dto.PredictionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	prediction, err := h.service.Predict(c.UserContext(), userIDFromContext(c), payload)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "prediction generated", prediction)
}

func (h *PredictionHandler) latest(c *fiber.Ctx) error {
	interviewID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	prediction, err := h.service.Latest(c.UserContext(), userIDFromContext(c), interviewID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "prediction retrieved", prediction)
}

func (h *PredictionHandler) list(c *fiber.Ctx) error {
	interviewID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	limit, err := parseQueryInt(c, "limit")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	predictions, err := h.service.List(c.UserContext(), userIDFromContext(c), interviewID, limit)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "predictions retrieved", predictions)
}
