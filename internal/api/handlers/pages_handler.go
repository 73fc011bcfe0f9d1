package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/deepmindcheck/web/internal/catalog"
	"github.com/deepmindcheck/web/internal/middleware/session"
	"github.com/deepmindcheck/web/internal/view"
	"github.com/deepmindcheck/web/internal/workflow"
	"github.com/deepmindcheck/web/pkg/logger"
)

const appVersion = "1.0.0"

type PagesHandler struct {
	catalog  *catalog.Service
	workflow *workflow.Workflow
}

func NewPagesHandler(svc *catalog.Service, wf *workflow.Workflow) *PagesHandler {
	return &PagesHandler{
		catalog:  svc,
		workflow: wf,
	}
}

func (h *PagesHandler) HandleHome(c *fiber.Ctx) error {
	data := h.catalog.Dashboard(c.Context())
	return renderPage(c, "home", view.HomePage{
		Title:          "DeepMindCheck",
		TotalAnalyses:  data.Stats.TotalAnalyses,
		BackendHealthy: !h.catalog.Degraded(),
	})
}

// HandleAnalyze renders the analysis form. When the session already holds a
// result, the page shows it together with any stars the visitor gave.
func (h *PagesHandler) HandleAnalyze(c *fiber.Ctx) error {
	limits := h.workflow.Limits()
	models := h.catalog.Models(c.Context())

	page := view.AnalyzePage{
		Title:     "Text Analysis",
		Models:    view.ModelOptions(&models),
		DemoTexts: view.DemoTexts,
		MinChars:  limits.Min,
		MaxChars:  limits.Max,
	}

	s := h.workflow.Session(session.FromCtx(c))
	if current := s.Current(); current != nil {
		result := view.BuildResult(current, s.Rating(current.ID))
		page.Result = &result
	}

	return renderPage(c, "analyze", page)
}

func (h *PagesHandler) HandleAbout(c *fiber.Ctx) error {
	data := h.catalog.Dashboard(c.Context())
	return renderPage(c, "about", view.AboutPage{
		Title:    "About DeepMindCheck",
		Version:  appVersion,
		Features: view.AboutFeatures,
		Stats: view.AboutStats{
			AnalysesCompleted: data.Stats.TotalAnalyses,
			AccuracyRate:      85.3,
			UserSatisfaction:  4.2,
			ResponseTime:      0.8,
		},
	})
}

func (h *PagesHandler) HandleContact(c *fiber.Ctx) error {
	return renderPage(c, "contact", view.ContactPage{
		Title: "Contact Us",
		Sent:  c.Query("sent") == "1",
	})
}

// HandleContactSubmit validates the form and redirects back on success so a
// refresh cannot resubmit it. Nothing is stored; the submission is logged.
func (h *PagesHandler) HandleContactSubmit(c *fiber.Ctx) error {
	page := view.ContactPage{
		Title:   "Contact Us",
		Errors:  make(map[string]string),
		Name:    strings.TrimSpace(c.FormValue("name")),
		Email:   strings.TrimSpace(c.FormValue("email")),
		Subject: strings.TrimSpace(c.FormValue("subject")),
		Message: strings.TrimSpace(c.FormValue("message")),
	}

	if page.Name == "" {
		page.Errors["name"] = "Name is required"
	}
	if page.Email == "" {
		page.Errors["email"] = "Email is required"
	} else if !strings.Contains(page.Email, "@") {
		page.Errors["email"] = "Enter a valid email address"
	}
	if page.Message == "" {
		page.Errors["message"] = "Message is required"
	}

	if len(page.Errors) > 0 {
		return renderPage(c, "contact", page)
	}

	logger.Info("Contact form submission",
		zap.String("email", page.Email),
		zap.String("subject", page.Subject),
	)

	return c.Redirect("/contact?sent=1", fiber.StatusSeeOther)
}

func (h *PagesHandler) HandleDashboard(c *fiber.Ctx) error {
	data := h.catalog.Dashboard(c.Context())
	return renderPage(c, "dashboard", view.DashboardPage{
		Title:         "Analytics Dashboard",
		TotalAnalyses: data.Stats.TotalAnalyses,
	})
}
