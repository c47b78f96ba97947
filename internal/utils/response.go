package utils

import "github.com/gofiber/fiber/v2"

// APIResponse describes the common structure for API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`
}

// SendSuccess sends a successful JSON response with a message.
func SendSuccess(c *fiber.Ctx, message string, data interface{}) error {
	return SendSuccessWithStatus(c, fiber.StatusOK, message, data)
}

// SendSuccessWithStatus sends a success payload using the provided HTTP status code.
func SendSuccessWithStatus(c *fiber.Ctx, status int, message string, data interface{}) error {
	if message == "" {
		message = "success"
	}
	if status == 0 {
		status = fiber.StatusOK
	}

	return c.Status(status).JSON(APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// SendError sends an error JSON response with the given status code. The
// error field carries a machine readable code derived from the status when
// none is supplied.
func SendError(c *fiber.Ctx, status int, message string) error {
	return SendErrorCode(c, status, message, "")
}

// SendErrorCode sends an error JSON response with an explicit error code.
func SendErrorCode(c *fiber.Ctx, status int, message, code string) error {
	if message == "" {
		message = "error"
	}
	if code == "" {
		code = errorCode(status)
	}

	return c.Status(status).JSON(APIResponse{
		Success: false,
		Message: message,
		Error:   code,
	})
}

func errorCode(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "bad_request"
	case fiber.StatusUnauthorized:
		return "unauthorized"
	case fiber.StatusForbidden:
		return "forbidden"
	case fiber.StatusNotFound:
		return "not_found"
	case fiber.StatusTooManyRequests:
		return "rate_limited"
	case fiber.StatusBadGateway:
		return "upstream_error"
	case fiber.StatusGatewayTimeout:
		return "upstream_timeout"
	default:
		return "internal_error"
	}
}
