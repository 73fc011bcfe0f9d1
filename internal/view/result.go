// Package view builds the typed values handed to templates and page
// scripts. Builders are pure; nothing here talks to the network.
package view

import (
	"fmt"
	"math"
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/deepmindcheck/web/internal/backend"
)

// Confidence tiers drive the result styling.
const (
	TierHigh   = "high"
	TierMedium = "medium"
	TierLow    = "low"
)

// ConfidenceTier buckets a confidence score for display.
func ConfidenceTier(confidence float64) string {
	switch {
	case confidence >= 0.8:
		return TierHigh
	case confidence >= 0.6:
		return TierMedium
	default:
		return TierLow
	}
}

// ConfidencePercent renders a score the way the result header shows it,
// one decimal: 0.85 becomes "85.0%".
func ConfidencePercent(confidence float64) string {
	return fmt.Sprintf("%.1f%%", confidence*100)
}

var displayNames = map[string]string{
	backend.PredictionNeutral:    "Neutral",
	backend.PredictionDepression: "Depression",
	backend.PredictionAnxiety:    "Anxiety",
	backend.PredictionStress:     "Stress",
}

// DisplayName renders a prediction class for humans. Unknown classes keep
// their name with the first letter upper-cased rather than being dropped.
func DisplayName(class string) string {
	if name, ok := displayNames[class]; ok {
		return name
	}
	if class == "" {
		return "Unknown"
	}
	r, size := utf8.DecodeRuneInString(class)
	return string(unicode.ToUpper(r)) + class[size:]
}

type ProbabilityBar struct {
	Class   string  `json:"class"`
	Label   string  `json:"label"`
	Percent float64 `json:"percent"`
	Width   string  `json:"width"`
}

// ProbabilityBars builds one bar per class, percent = value*100 rounded to
// one decimal, ordered by descending probability with ties broken by class
// name so equal payloads always render identically.
func ProbabilityBars(probabilities map[string]float64) []ProbabilityBar {
	type classProb struct {
		class string
		p     float64
	}

	ordered := make([]classProb, 0, len(probabilities))
	for class, p := range probabilities {
		ordered = append(ordered, classProb{class: class, p: p})
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].p != ordered[j].p {
			return ordered[i].p > ordered[j].p
		}
		return ordered[i].class < ordered[j].class
	})

	bars := make([]ProbabilityBar, 0, len(ordered))
	for _, cp := range ordered {
		percent := math.Round(cp.p*1000) / 10
		bars = append(bars, ProbabilityBar{
			Class:   cp.class,
			Label:   DisplayName(cp.class),
			Percent: percent,
			Width:   fmt.Sprintf("%.1f%%", percent),
		})
	}
	return bars
}

type Star struct {
	Value  int    `json:"value"`
	Active bool   `json:"active"`
	Label  string `json:"label"`
}

var ratingLabels = []string{"Poor", "Fair", "Good", "Very Good", "Excellent"}

// Stars builds the five-star widget with the first selected stars active.
func Stars(selected int) []Star {
	stars := make([]Star, 5)
	for i := range stars {
		value := i + 1
		stars[i] = Star{
			Value:  value,
			Active: value <= selected,
			Label:  ratingLabels[i],
		}
	}
	return stars
}

// RatingLabel names a rating, empty outside 1 through 5.
func RatingLabel(rating int) string {
	if rating < 1 || rating > 5 {
		return ""
	}
	return ratingLabels[rating-1]
}

// Result is everything a rendered analysis needs, presentation-ready.
type Result struct {
	ID               string               `json:"id"`
	Prediction       string               `json:"prediction"`
	PredictionLabel  string               `json:"prediction_label"`
	Confidence       float64              `json:"confidence"`
	ConfidenceText   string               `json:"confidence_text"`
	ConfidenceTier   string               `json:"confidence_tier"`
	Probabilities    map[string]float64   `json:"probabilities"`
	Bars             []ProbabilityBar     `json:"probability_bars"`
	Message          string               `json:"message"`
	Recommendations  []string             `json:"recommendations"`
	Explanation      *backend.Explanation `json:"explanation,omitempty"`
	ModelUsed        string               `json:"model_used"`
	ResponseTime     float64              `json:"response_time"`
	ResponseTimeText string               `json:"response_time_text"`
	TextLength       int                  `json:"text_length"`
	Stars            []Star               `json:"stars"`
	Rated            bool                 `json:"rated"`
	Rating           int                  `json:"rating,omitempty"`
	RatingLabel      string               `json:"rating_label,omitempty"`
}

// BuildResult shapes a backend result for display. rating is the stars the
// visitor already gave this analysis, zero when unrated.
func BuildResult(r *backend.AnalysisResult, rating int) Result {
	return Result{
		ID:               r.ID,
		Prediction:       r.Prediction,
		PredictionLabel:  DisplayName(r.Prediction),
		Confidence:       r.Confidence,
		ConfidenceText:   ConfidencePercent(r.Confidence),
		ConfidenceTier:   ConfidenceTier(r.Confidence),
		Probabilities:    r.Probabilities,
		Bars:             ProbabilityBars(r.Probabilities),
		Message:          r.Message,
		Recommendations:  r.Recommendations,
		Explanation:      r.Explanation,
		ModelUsed:        r.ModelUsed,
		ResponseTime:     r.ResponseTime,
		ResponseTimeText: fmt.Sprintf("%.2fs", r.ResponseTime),
		TextLength:       r.TextLength,
		Stars:            Stars(rating),
		Rated:            rating > 0,
		Rating:           rating,
		RatingLabel:      RatingLabel(rating),
	}
}
