package backend

import "encoding/json"

// Prediction classes the analysis service can return.
const (
	PredictionNeutral    = "neutral"
	PredictionDepression = "depression"
	PredictionAnxiety    = "anxiety"
	PredictionStress     = "stress"
)

// Classes lists the known prediction classes in canonical order.
var Classes = []string{PredictionNeutral, PredictionDepression, PredictionAnxiety, PredictionStress}

// AnalysisRequest is built fresh for every submission and never persisted.
type AnalysisRequest struct {
	Text    string `json:"text"`
	Model   string `json:"model,omitempty"`
	Explain bool   `json:"explain,omitempty"`
}

type Explanation struct {
	Reasoning             string `json:"reasoning"`
	ConfidenceExplanation string `json:"confidence_explanation"`
	Disclaimer            string `json:"disclaimer"`
}

type AnalysisResult struct {
	ID              string             `json:"id"`
	Prediction      string             `json:"prediction"`
	Confidence      float64            `json:"confidence"`
	Probabilities   map[string]float64 `json:"probabilities"`
	ModelUsed       string             `json:"model_used"`
	ResponseTime    float64            `json:"response_time"`
	TextLength      int                `json:"text_length"`
	Message         string             `json:"message"`
	Recommendations []string           `json:"recommendations"`
	Explanation     *Explanation       `json:"explanation,omitempty"`
}

// UnmarshalJSON also accepts the service's processing_time key, which older
// deployments emit instead of response_time.
func (r *AnalysisResult) UnmarshalJSON(data []byte) error {
	type alias AnalysisResult
	aux := struct {
		*alias
		ProcessingTime float64 `json:"processing_time"`
	}{alias: (*alias)(r)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if r.ResponseTime == 0 {
		r.ResponseTime = aux.ProcessingTime
	}
	return nil
}

type FeedbackRequest struct {
	AnalysisID string `json:"analysis_id"`
	Rating     int    `json:"rating"`
}

type ModelCatalog struct {
	AvailableModels []string `json:"available_models"`
	DefaultModel    string   `json:"default_model"`
}

type DashboardStats struct {
	TotalAnalyses int64 `json:"total_analyses"`
}

type DashboardData struct {
	Stats  DashboardStats             `json:"stats"`
	Charts map[string]json.RawMessage `json:"charts"`
}

type HealthStatus struct {
	Status string `json:"status"`
}
