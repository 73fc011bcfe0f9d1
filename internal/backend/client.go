// Package backend is the HTTP client for the external text classification
// service. It owns the wire types, the error taxonomy, and the anti-forgery
// token handling the service's POST endpoints expect.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/deepmindcheck/web/pkg/logger"
)

const (
	analyzePath   = "/api/analyze/"
	feedbackPath  = "/api/feedback/"
	modelInfoPath = "/api/model-info/"
	dashboardPath = "/api/analytics/dashboard/"
	healthPath    = "/api/health/"

	maxResponseBytes = 1 << 20
)

type Options struct {
	BaseURL string
	Timeout time.Duration

	// Anti-forgery plumbing. The cookie set by the service is echoed back
	// in the header on every POST.
	CSRFCookie    string
	CSRFHeader    string
	CSRFPrimePath string
}

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	csrfCookie string
	csrfHeader string
	primePath  string

	mu      sync.RWMutex
	scraped string
}

func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("backend base URL is required")
	}

	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend base URL: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("backend base URL must be absolute, got %q", opts.BaseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.CSRFCookie == "" {
		opts.CSRFCookie = "csrftoken"
	}
	if opts.CSRFHeader == "" {
		opts.CSRFHeader = "X-CSRFToken"
	}
	if opts.CSRFPrimePath == "" {
		opts.CSRFPrimePath = "/analyze/"
	}

	logger.Info("Backend client initialized", zap.String("base_url", base.String()))

	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
			Jar:     jar,
		},
		csrfCookie: opts.CSRFCookie,
		csrfHeader: opts.CSRFHeader,
		primePath:  opts.CSRFPrimePath,
	}, nil
}

// Analyze submits text for classification. Exactly one HTTP request is
// made per call; the method never retries.
func (c *Client) Analyze(ctx context.Context, req AnalysisRequest) (*AnalysisResult, error) {
	var result AnalysisResult
	if err := c.postJSON(ctx, "analyze", analyzePath, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SubmitFeedback reports a star rating for a prior analysis. Any 2xx answer
// counts as accepted; the response body is ignored.
func (c *Client) SubmitFeedback(ctx context.Context, analysisID string, rating int) error {
	req := FeedbackRequest{AnalysisID: analysisID, Rating: rating}
	return c.postJSON(ctx, "feedback", feedbackPath, req, nil)
}

func (c *Client) ModelInfo(ctx context.Context) (*ModelCatalog, error) {
	var catalog ModelCatalog
	if err := c.getJSON(ctx, "model-info", modelInfoPath, &catalog); err != nil {
		return nil, err
	}
	return &catalog, nil
}

func (c *Client) Dashboard(ctx context.Context) (*DashboardData, error) {
	var data DashboardData
	if err := c.getJSON(ctx, "dashboard", dashboardPath, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (c *Client) Health(ctx context.Context) error {
	var status HealthStatus
	if err := c.getJSON(ctx, "health", healthPath, &status); err != nil {
		return err
	}
	if status.Status != "healthy" {
		return serviceErr("health", http.StatusOK, "service reports "+status.Status)
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, op, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.Token(); token != "" {
		req.Header.Set(c.csrfHeader, token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportErr(op, err)
	}
	defer resp.Body.Close()

	return c.decode(op, resp, out)
}

func (c *Client) getJSON(ctx context.Context, op, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path), nil)
	if err != nil {
		return fmt.Errorf("failed to create %s request: %w", op, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return transportErr(op, err)
	}
	defer resp.Body.Close()

	return c.decode(op, resp, out)
}

func (c *Client) decode(op string, resp *http.Response, out interface{}) error {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return transportErr(op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return serviceErr(op, resp.StatusCode, errorMessage(data, resp.StatusCode))
	}

	// Some failure modes come back as 2xx bodies carrying only an error field.
	var probe struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &probe); err == nil && probe.Error != "" {
		return serviceErr(op, resp.StatusCode, probe.Error)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		logger.Error("Failed to decode backend response",
			zap.String("op", op),
			zap.Error(err),
		)
		return serviceErr(op, resp.StatusCode, "invalid response from analysis service")
	}
	return nil
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.String() + path
}

func errorMessage(data []byte, status int) string {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Error != "" {
		return body.Error
	}
	return http.StatusText(status)
}
