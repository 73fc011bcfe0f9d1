package backend

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	client, err := NewClient(Options{BaseURL: ts.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client, ts
}

func TestNewClientRejectsBadURLs(t *testing.T) {
	if _, err := NewClient(Options{}); err == nil {
		t.Error("expected error for empty base URL")
	}
	if _, err := NewClient(Options{BaseURL: "/just/a/path"}); err == nil {
		t.Error("expected error for relative base URL")
	}
}

func TestAnalyzeDecodesResult(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}

		var req AnalysisRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		if req.Text != "I have been feeling anxious lately." {
			t.Errorf("text = %q", req.Text)
		}
		if req.Model != "advanced" {
			t.Errorf("model = %q, want advanced", req.Model)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "a1b2c3",
			"prediction": "anxiety",
			"confidence": 0.87,
			"probabilities": {"anxiety": 0.87, "neutral": 0.08, "depression": 0.03, "stress": 0.02},
			"model_used": "advanced",
			"response_time": 0.42,
			"text_length": 36,
			"message": "Signs of anxiety detected.",
			"recommendations": ["Consider talking to someone you trust."]
		}`))
	})

	client, _ := newTestClient(t, mux)

	result, err := client.Analyze(context.Background(), AnalysisRequest{
		Text:  "I have been feeling anxious lately.",
		Model: "advanced",
	})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	if result.ID != "a1b2c3" {
		t.Errorf("ID = %q, want a1b2c3", result.ID)
	}
	if result.Prediction != "anxiety" {
		t.Errorf("Prediction = %q, want anxiety", result.Prediction)
	}
	if result.Confidence != 0.87 {
		t.Errorf("Confidence = %v, want 0.87", result.Confidence)
	}
	if result.ResponseTime != 0.42 {
		t.Errorf("ResponseTime = %v, want 0.42", result.ResponseTime)
	}
	if result.TextLength != 36 {
		t.Errorf("TextLength = %d, want 36", result.TextLength)
	}
	if len(result.Probabilities) != 4 {
		t.Errorf("Probabilities has %d entries, want 4", len(result.Probabilities))
	}
	if len(result.Recommendations) != 1 {
		t.Errorf("Recommendations has %d entries, want 1", len(result.Recommendations))
	}
}

func TestAnalyzeAcceptsProcessingTimeKey(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "x", "prediction": "neutral", "processing_time": 1.25}`))
	})

	client, _ := newTestClient(t, mux)

	result, err := client.Analyze(context.Background(), AnalysisRequest{Text: "some text"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.ResponseTime != 1.25 {
		t.Errorf("ResponseTime = %v, want 1.25 from processing_time", result.ResponseTime)
	}
}

func TestAnalyzePrefersResponseTimeKey(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "x", "response_time": 0.5, "processing_time": 9.9}`))
	})

	client, _ := newTestClient(t, mux)

	result, err := client.Analyze(context.Background(), AnalysisRequest{Text: "some text"})
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if result.ResponseTime != 0.5 {
		t.Errorf("ResponseTime = %v, want response_time to win", result.ResponseTime)
	}
}

func TestAnalyzeServiceErrorCarriesStatusAndMessage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "Text must be at least 10 characters long"}`))
	})

	client, _ := newTestClient(t, mux)

	_, err := client.Analyze(context.Background(), AnalysisRequest{Text: "short"})

	var se *ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("expected ServiceError, got %T: %v", err, err)
	}
	if se.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want 400", se.StatusCode)
	}
	if se.Message != "Text must be at least 10 characters long" {
		t.Errorf("Message = %q", se.Message)
	}
	if IsTransport(err) {
		t.Error("a service refusal must not look like a transport failure")
	}
}

func TestAnalyzeServiceErrorFallsBackToStatusText(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`<html>nginx says no</html>`))
	})

	client, _ := newTestClient(t, mux)

	_, err := client.Analyze(context.Background(), AnalysisRequest{Text: "long enough text"})

	var se *ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("expected ServiceError, got %T", err)
	}
	if se.Message != "Service Unavailable" {
		t.Errorf("Message = %q, want status text fallback", se.Message)
	}
}

func TestAnalyzeErrorFieldInOKBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": "model temporarily unavailable"}`))
	})

	client, _ := newTestClient(t, mux)

	_, err := client.Analyze(context.Background(), AnalysisRequest{Text: "long enough text"})

	var se *ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("expected ServiceError, got %T: %v", err, err)
	}
	if se.Message != "model temporarily unavailable" {
		t.Errorf("Message = %q", se.Message)
	}
}

func TestAnalyzeMalformedBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analyze/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`this is not json {{{`))
	})

	client, _ := newTestClient(t, mux)

	_, err := client.Analyze(context.Background(), AnalysisRequest{Text: "long enough text"})

	var se *ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("expected ServiceError, got %T: %v", err, err)
	}
	if se.Message != "invalid response from analysis service" {
		t.Errorf("Message = %q", se.Message)
	}
}

func TestUnreachableServiceIsTransportError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	client, err := NewClient(Options{BaseURL: url})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = client.Analyze(context.Background(), AnalysisRequest{Text: "long enough text"})

	if !IsTransport(err) {
		t.Fatalf("expected transport error, got %T: %v", err, err)
	}
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatal("expected TransportError in chain")
	}
	if te.Op != "analyze" {
		t.Errorf("Op = %q, want analyze", te.Op)
	}
}

func TestSubmitFeedbackSendsPayloadAndIgnoresBody(t *testing.T) {
	var got FeedbackRequest
	mux := http.NewServeMux()
	mux.HandleFunc("/api/feedback/", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decoding request: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`created!! (not json)`))
	})

	client, _ := newTestClient(t, mux)

	if err := client.SubmitFeedback(context.Background(), "a1b2c3", 4); err != nil {
		t.Fatalf("SubmitFeedback: %v", err)
	}
	if got.AnalysisID != "a1b2c3" {
		t.Errorf("analysis_id = %q, want a1b2c3", got.AnalysisID)
	}
	if got.Rating != 4 {
		t.Errorf("rating = %d, want 4", got.Rating)
	}
}

func TestModelInfoDecodesCatalog(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/model-info/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"available_models": ["baseline", "advanced", "ensemble"], "default_model": "baseline"}`))
	})

	client, _ := newTestClient(t, mux)

	catalog, err := client.ModelInfo(context.Background())
	if err != nil {
		t.Fatalf("ModelInfo: %v", err)
	}
	if len(catalog.AvailableModels) != 3 {
		t.Errorf("AvailableModels = %v", catalog.AvailableModels)
	}
	if catalog.DefaultModel != "baseline" {
		t.Errorf("DefaultModel = %q, want baseline", catalog.DefaultModel)
	}
}

func TestDashboardDecodesStats(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/analytics/dashboard/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"stats": {"total_analyses": 1234}, "charts": {}}`))
	})

	client, _ := newTestClient(t, mux)

	data, err := client.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("Dashboard: %v", err)
	}
	if data.Stats.TotalAnalyses != 1234 {
		t.Errorf("TotalAnalyses = %d, want 1234", data.Stats.TotalAnalyses)
	}
}

func TestHealth(t *testing.T) {
	status := `{"status": "healthy"}`
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(status))
	})

	client, _ := newTestClient(t, mux)

	if err := client.Health(context.Background()); err != nil {
		t.Errorf("healthy service reported error: %v", err)
	}

	status = `{"status": "starting"}`
	err := client.Health(context.Background())
	var se *ServiceError
	if !errors.As(err, &se) {
		t.Fatalf("expected ServiceError for non-healthy status, got %v", err)
	}
	if se.Message != "service reports starting" {
		t.Errorf("Message = %q", se.Message)
	}
}
