package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/deepmindcheck/web/internal/catalog"
)

type MetaHandler struct {
	catalog *catalog.Service
}

func NewMetaHandler(svc *catalog.Service) *MetaHandler {
	return &MetaHandler{catalog: svc}
}

func (h *MetaHandler) HandleModels(c *fiber.Ctx) error {
	cat := h.catalog.Models(c.Context())
	return c.JSON(fiber.Map{
		"available_models": cat.AvailableModels,
		"default_model":    cat.DefaultModel,
	})
}

// HandleHealth reports this service plus backend reachability. The reply
// stays 200 either way; callers read the body.
func (h *MetaHandler) HandleHealth(c *fiber.Ctx) error {
	reachable := h.catalog.Healthy(c.Context())

	status := "healthy"
	if !reachable {
		status = "degraded"
	}

	return c.JSON(fiber.Map{
		"status": status,
		"backend": fiber.Map{
			"reachable": reachable,
			"breaker":   h.catalog.BreakerState().String(),
		},
		"time": time.Now().Unix(),
	})
}
