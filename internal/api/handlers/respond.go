package handlers

import (
	"bytes"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/deepmindcheck/web/internal/api/templates"
	"github.com/deepmindcheck/web/internal/backend"
	"github.com/deepmindcheck/web/internal/workflow"
	"github.com/deepmindcheck/web/pkg/logger"
)

// errorResponse maps workflow and backend failures onto the JSON error
// shape the pages consume: {error, kind}. Every kind is recoverable; the
// caller may submit again once the message is shown.
func errorResponse(c *fiber.Ctx, err error) error {
	var ve *workflow.ValidationError
	if errors.As(err, &ve) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ve.Message,
			"kind":  "validation",
			"field": ve.Field,
		})
	}

	if errors.Is(err, workflow.ErrBusy) {
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": "An analysis is already in progress. Please wait for it to finish.",
			"kind":  "busy",
		})
	}

	var se *backend.ServiceError
	if errors.As(err, &se) {
		status := se.StatusCode
		if status < 400 {
			status = fiber.StatusBadGateway
		}
		return c.Status(status).JSON(fiber.Map{
			"error": se.Message,
			"kind":  "service",
		})
	}

	if backend.IsTransport(err) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Unable to reach the analysis service. Please try again.",
			"kind":  "transport",
		})
	}

	logger.Error("Unhandled handler error", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Something went wrong. Please try again.",
		"kind":  "internal",
	})
}

func renderPage(c *fiber.Ctx, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := templates.Render(&buf, name, data); err != nil {
		logger.Error("Failed to render page",
			zap.String("page", name),
			zap.Error(err),
		)
		return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}
