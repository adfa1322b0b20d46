package server

import (
	"errors"

	"github.com/Abhi1565/JobHunt-backend/internal/apperr"
	"github.com/Abhi1565/JobHunt-backend/internal/logger"
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

const internalErrorMessage = "Internal server error"

type envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
	Data      any    `json:"data,omitempty"`
	Warning   string `json:"warning,omitempty"`
	Field     string `json:"field,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}

func respond(c *fiber.Ctx, status int, message string, data any) error {
	return c.Status(status).JSON(envelope{Success: true, Message: message, Data: data})
}

func statusOf(err error) int {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}

	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return fiber.StatusBadRequest
	case apperr.KindAuthorization:
		return fiber.StatusForbidden
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindConflict:
		return fiber.StatusConflict
	case apperr.KindTransient:
		return fiber.StatusServiceUnavailable
	case apperr.KindUnknown, apperr.KindFatalConfig:
		return fiber.StatusInternalServerError
	default:
		return fiber.StatusInternalServerError
	}
}

func errorHandler(c *fiber.Ctx, err error) error {
	status := statusOf(err)
	body := envelope{Success: false, Message: err.Error()}

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		body.Message = appErr.Message
		body.Field = appErr.Field
		body.Retryable = appErr.Retryable
	}

	if status == fiber.StatusInternalServerError {
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeHttp).
			Errorf("%s %s failed: %v", c.Method(), c.OriginalURL(), err)
		body.Message = internalErrorMessage
	}
	if status == fiber.StatusServiceUnavailable {
		body.Message = "Service temporarily unavailable, please retry."
	}

	return c.Status(status).JSON(body)
}
