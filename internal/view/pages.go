package view

import "github.com/deepmindcheck/web/internal/backend"

type ModelOption struct {
	ID          string
	Name        string
	Description string
	Selected    bool
}

var modelDescriptions = map[string]string{
	"baseline": "Fast and reliable",
	"advanced": "Higher accuracy",
	"ensemble": "Best of both worlds",
}

// ModelOptions pairs catalog entries with their blurbs, marking the
// catalog's default as selected.
func ModelOptions(catalog *backend.ModelCatalog) []ModelOption {
	opts := make([]ModelOption, 0, len(catalog.AvailableModels))
	for _, id := range catalog.AvailableModels {
		opts = append(opts, ModelOption{
			ID:          id,
			Name:        DisplayName(id) + " Model",
			Description: modelDescriptions[id],
			Selected:    id == catalog.DefaultModel,
		})
	}
	return opts
}

// DemoTexts seed the analyze form with one-click samples.
var DemoTexts = []string{
	"I'm feeling really happy and optimistic about my future today!",
	"I've been feeling overwhelmed and worried about everything lately.",
	"I can't seem to find motivation to do anything and feel hopeless.",
}

type HomePage struct {
	Title          string
	TotalAnalyses  int64
	BackendHealthy bool
}

type AnalyzePage struct {
	Title     string
	Models    []ModelOption
	DemoTexts []string
	MinChars  int
	MaxChars  int
	Result    *Result
}

type AboutFeature struct {
	Title       string
	Description string
}

// AboutFeatures is the static feature list shown on the about page.
var AboutFeatures = []AboutFeature{
	{
		Title:       "Advanced AI Analysis",
		Description: "State-of-the-art natural language processing models trained on mental health data.",
	},
	{
		Title:       "Privacy Protected",
		Description: "Your data is processed securely and anonymously. We never store personal information.",
	},
	{
		Title:       "Real-time Results",
		Description: "Get instant analysis results with detailed confidence scores and explanations.",
	},
	{
		Title:       "Research-backed",
		Description: "Built on peer-reviewed research and validated through extensive testing.",
	},
}

// AboutStats mixes the live analysis count with published model figures.
type AboutStats struct {
	AnalysesCompleted int64
	AccuracyRate      float64
	UserSatisfaction  float64
	ResponseTime      float64
}

type AboutPage struct {
	Title    string
	Version  string
	Features []AboutFeature
	Stats    AboutStats
}

type ContactPage struct {
	Title   string
	Sent    bool
	Errors  map[string]string
	Name    string
	Email   string
	Subject string
	Message string
}

type DashboardPage struct {
	Title         string
	TotalAnalyses int64
}
