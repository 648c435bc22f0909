package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"optifuel/api/internal/apperr"
	"optifuel/api/internal/model"
)

// Predictor produces a fuel forecast and its feature attribution
type Predictor interface {
	Predict(ctx context.Context, req *model.PredictionRequest) (float64, error)
	Explain(ctx context.Context, req *model.PredictionRequest) (map[string]float64, error)
}

// PredictionClient calls the external ML service over HTTP
type PredictionClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewPredictionClient creates a client for the ML service at baseURL
func NewPredictionClient(baseURL string, timeout time.Duration) *PredictionClient {
	return &PredictionClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Predict returns the forecast for req. Transport failures and non-2xx
// answers are Unavailable; a malformed or non-positive answer is Internal.
func (c *PredictionClient) Predict(ctx context.Context, req *model.PredictionRequest) (float64, error) {
	var resp model.PredictionResponse
	if err := c.post(ctx, "/predict", req, &resp); err != nil {
		return 0, err
	}
	if resp.PredictedFuelConsumption <= 0 {
		return 0, apperr.New(apperr.Internal, fmt.Sprintf("prediction service returned a non-positive forecast %v", resp.PredictedFuelConsumption))
	}
	return resp.PredictedFuelConsumption, nil
}

// Explain returns per-feature contributions for req
func (c *PredictionClient) Explain(ctx context.Context, req *model.PredictionRequest) (map[string]float64, error) {
	out := make(map[string]float64)
	if err := c.post(ctx, "/explain", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *PredictionClient) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", path, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build %s request: %w", path, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return apperr.Wrap(apperr.Unavailable, "the prediction service is currently unavailable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return apperr.Wrap(apperr.Unavailable, "the prediction service is currently unavailable",
			fmt.Errorf("%s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(snippet))))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperr.Wrap(apperr.Internal, "the prediction service returned an unreadable response", err)
	}
	return nil
}
