package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/deepmindcheck/web/internal/middleware/session"
	"github.com/deepmindcheck/web/internal/view"
	"github.com/deepmindcheck/web/internal/workflow"
	"github.com/deepmindcheck/web/pkg/logger"
	"github.com/deepmindcheck/web/pkg/textstat"
)

type AnalysisHandler struct {
	workflow *workflow.Workflow
}

func NewAnalysisHandler(wf *workflow.Workflow) *AnalysisHandler {
	return &AnalysisHandler{workflow: wf}
}

// HandleAnalyze runs the submission workflow for the caller's session and
// returns the presentation-ready result.
func (h *AnalysisHandler) HandleAnalyze(c *fiber.Ctx) error {
	var req struct {
		Text    string `json:"text"`
		Model   string `json:"model"`
		Explain bool   `json:"explain"`
	}

	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse analyze request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
			"kind":  "validation",
		})
	}

	result, err := h.workflow.Submit(c.Context(), session.FromCtx(c), workflow.SubmitCommand{
		Text:    req.Text,
		Model:   req.Model,
		Explain: req.Explain,
	})
	if err != nil {
		return errorResponse(c, err)
	}

	return c.JSON(view.BuildResult(result, 0))
}

// HandleFeedback relays a star rating to the analysis service. Ratings are
// fire-and-forget; a failure is reported but the star choice stands.
func (h *AnalysisHandler) HandleFeedback(c *fiber.Ctx) error {
	var req struct {
		AnalysisID string `json:"analysis_id"`
		Rating     int    `json:"rating"`
	}

	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse feedback request body", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
			"kind":  "validation",
		})
	}

	if err := h.workflow.Rate(c.Context(), session.FromCtx(c), req.AnalysisID, req.Rating); err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Feedback submitted",
		"stars":   view.Stars(req.Rating),
		"label":   view.RatingLabel(req.Rating),
	})
}

// HandleCounter is the one-shot recount used when the live socket is not
// available. No debounce here; callers own their own pacing.
func (h *AnalysisHandler) HandleCounter(c *fiber.Ctx) error {
	var req struct {
		Text string `json:"text"`
	}

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
			"kind":  "validation",
		})
	}

	status := h.workflow.LengthStatus(req.Text)
	return c.JSON(view.BuildCounter(status, textstat.Measure(req.Text), h.workflow.Limits()))
}

// HandleReset clears the session's current result. Clearing a session with
// nothing current succeeds the same way.
func (h *AnalysisHandler) HandleReset(c *fiber.Ctx) error {
	h.workflow.Reset(session.FromCtx(c))
	return c.JSON(fiber.Map{
		"message": "Cleared",
	})
}
