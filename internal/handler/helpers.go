package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/career-prep-api/internal/middleware"
	"github.com/noah-isme/career-prep-api/internal/service"
	"github.com/noah-isme/career-prep-api/internal/utils"
)

const predictionFailedMessage = "could not generate prediction"

func parseUintParam(c *fiber.Ctx, name string) (uint, error) {
	value := strings.TrimSpace(c.Params(name))
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil || parsed == 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(parsed), nil
}

func parseQueryInt(c *fiber.Ctx, key string) (int, error) {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return parsed, nil
}

func userIDFromContext(c *fiber.Ctx) uint {
	switch id := c.Locals("user_id").(type) {
	case uint:
		return id
	case int:
		if id > 0 {
			return uint(id)
		}
	}
	return 0
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

func validationMessage(err error) (string, bool) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "", false
	}

	parts := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		parts = append(parts, fmt.Sprintf("%s failed on %s", fieldErr.Field(), fieldErr.Tag()))
	}
	return "validation failed: " + strings.Join(parts, "; "), true
}

// respondError maps service errors onto HTTP statuses.
func respondError(c *fiber.Ctx, logger zerolog.Logger, err error) error {
	if message, ok := validationMessage(err); ok {
		return utils.SendErrorCode(c, fiber.StatusBadRequest, message, "validation_failed")
	}

	log := requestLogger(logger, c)
	switch {
	case errors.Is(err, service.ErrUnauthenticated):
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrJobMismatch):
		return utils.SendErrorCode(c, fiber.StatusBadRequest, err.Error(), "job_mismatch")
	case errors.Is(err, service.ErrInvalidExperiment):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInterviewNotFound), errors.Is(err, service.ErrPredictionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrPredictionTimeout):
		log.Warn().Err(err).Msg("prediction timed out")
		return utils.SendError(c, fiber.StatusGatewayTimeout, predictionFailedMessage)
	case errors.Is(err, service.ErrPredictionFailed), errors.Is(err, service.ErrNarratorUnavailable):
		log.Error().Err(err).Msg("prediction narrative failed")
		return utils.SendError(c, fiber.StatusBadGateway, predictionFailedMessage)
	default:
		log.Error().Err(err).Msg("internal server error")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
