// Package workflow owns the submission and feedback rules: one analysis in
// flight per visitor, local validation before any network call, and
// fire-and-forget star ratings.
package workflow

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/deepmindcheck/web/internal/backend"
	"github.com/deepmindcheck/web/internal/metrics"
	"github.com/deepmindcheck/web/pkg/logger"
)

// Analyzer is the slice of the backend client the workflow consumes.
type Analyzer interface {
	Analyze(ctx context.Context, req backend.AnalysisRequest) (*backend.AnalysisResult, error)
	SubmitFeedback(ctx context.Context, analysisID string, rating int) error
}

type SubmitCommand struct {
	Text    string
	Model   string
	Explain bool
}

type Workflow struct {
	client   Analyzer
	limits   Limits
	sessions *Manager
}

func New(client Analyzer, limits Limits, sessions *Manager) *Workflow {
	if limits.Min == 0 && limits.Max == 0 {
		limits = DefaultLimits()
	}
	return &Workflow{
		client:   client,
		limits:   limits,
		sessions: sessions,
	}
}

func (w *Workflow) Limits() Limits {
	return w.limits
}

// Session returns the visitor's session, creating it on first sight.
func (w *Workflow) Session(id string) *Session {
	return w.sessions.GetOrCreate(id)
}

// Submit runs one analysis for the session. While one is in flight, every
// further Submit fails with ErrBusy without touching the network. The busy
// flag is cleared on every exit path, so a failed submission can be retried
// immediately.
func (w *Workflow) Submit(ctx context.Context, sessionID string, cmd SubmitCommand) (*backend.AnalysisResult, error) {
	s := w.sessions.GetOrCreate(sessionID)

	if !s.analyzing.CompareAndSwap(false, true) {
		metrics.BusyRejections.Inc()
		return nil, ErrBusy
	}
	defer s.analyzing.Store(false)

	text := strings.TrimSpace(cmd.Text)
	if err := w.validateText(text); err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := w.client.Analyze(ctx, backend.AnalysisRequest{
		Text:    text,
		Model:   cmd.Model,
		Explain: cmd.Explain,
	})
	metrics.AnalysisDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.AnalysisTotal.WithLabelValues("error").Inc()
		logger.Error("Analysis request failed",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		return nil, err
	}

	metrics.AnalysisTotal.WithLabelValues("success").Inc()
	metrics.PredictionTotal.WithLabelValues(result.Prediction).Inc()
	metrics.ConfidenceScore.Observe(result.Confidence)

	s.setCurrent(result)

	logger.Info("Analysis completed",
		zap.String("session_id", sessionID),
		zap.String("prediction", result.Prediction),
		zap.Float64("confidence", result.Confidence),
		zap.Int("text_length", result.TextLength),
	)

	return result, nil
}

func (w *Workflow) validateText(text string) error {
	n := trimmedLength(text)
	if n < w.limits.Min {
		metrics.ValidationRejections.WithLabelValues("too_short").Inc()
		return &ValidationError{
			Field:   "text",
			Message: fmt.Sprintf("Text must be at least %d characters long", w.limits.Min),
		}
	}
	if n > w.limits.Max {
		metrics.ValidationRejections.WithLabelValues("too_long").Inc()
		return &ValidationError{
			Field:   "text",
			Message: fmt.Sprintf("Text must be less than %d characters", w.limits.Max),
		}
	}
	return nil
}

// Rate submits a star rating for an analysis. Ratings are fire-and-forget:
// one POST, no retry, and the outcome never blocks the next submission.
func (w *Workflow) Rate(ctx context.Context, sessionID, analysisID string, rating int) error {
	if rating < 1 || rating > 5 {
		metrics.ValidationRejections.WithLabelValues("bad_rating").Inc()
		return &ValidationError{
			Field:   "rating",
			Message: "Rating must be between 1 and 5",
		}
	}
	if analysisID == "" {
		metrics.ValidationRejections.WithLabelValues("missing_analysis_id").Inc()
		return &ValidationError{
			Field:   "analysis_id",
			Message: "analysis_id is required",
		}
	}

	if err := w.client.SubmitFeedback(ctx, analysisID, rating); err != nil {
		metrics.FeedbackTotal.WithLabelValues(strconv.Itoa(rating), "error").Inc()
		logger.Error("Feedback submission failed",
			zap.String("session_id", sessionID),
			zap.String("analysis_id", analysisID),
			zap.Error(err),
		)
		return err
	}

	metrics.FeedbackTotal.WithLabelValues(strconv.Itoa(rating), "success").Inc()
	w.sessions.GetOrCreate(sessionID).markRated(analysisID, rating)

	logger.Info("Feedback submitted",
		zap.String("analysis_id", analysisID),
		zap.Int("rating", rating),
	)
	return nil
}

// Reset forgets the session's current result. Resetting a session with
// nothing current is fine.
func (w *Workflow) Reset(sessionID string) {
	w.sessions.GetOrCreate(sessionID).clearCurrent()
}

// LengthStatus measures a draft against the limits.
func (w *Workflow) LengthStatus(text string) LengthStatus {
	return MeasureLength(text, w.limits)
}
