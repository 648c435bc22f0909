package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"optifuel/api/internal/apperr"
)

func TestPredictionClientPredict(t *testing.T) {
	var received map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/predict", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"predicted_fuel_consumption": 4521.75}`))
	}))
	defer server.Close()

	client := NewPredictionClient(server.URL+"/", 2*time.Second)
	predicted, err := client.Predict(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, 4521.75, predicted)

	assert.Equal(t, "Tanker Ship", received["ship_type"])
	assert.Equal(t, "Warri-Bonny", received["route_id"])
	assert.EqualValues(t, 82, received["engine_efficiency"])
	assert.EqualValues(t, 6, received["month"])
}

func TestPredictionClientExplain(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/explain", r.URL.Path)
		_, _ = w.Write([]byte(`{"distance": 812.4, "fuel_type_HFO": -20.5}`))
	}))
	defer server.Close()

	client := NewPredictionClient(server.URL, 2*time.Second)
	contributions, err := client.Explain(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"distance": 812.4, "fuel_type_HFO": -20.5}, contributions)
}

func TestPredictionClientFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   apperr.Code
	}{
		{"server error", http.StatusInternalServerError, `{"detail":"model not loaded"}`, apperr.Unavailable},
		{"rejected input", http.StatusUnprocessableEntity, `{"detail":"bad"}`, apperr.Unavailable},
		{"malformed body", http.StatusOK, `not json`, apperr.Internal},
		{"non-positive forecast", http.StatusOK, `{"predicted_fuel_consumption": 0}`, apperr.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewPredictionClient(server.URL, 2*time.Second).Predict(context.Background(), validRequest())
			assert.Equal(t, tt.want, apperr.CodeOf(err))
		})
	}
}

func TestPredictionClientUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewPredictionClient(url, time.Second).Predict(context.Background(), validRequest())
	assert.True(t, apperr.Is(err, apperr.Unavailable))
	assert.Equal(t, "the prediction service is currently unavailable", apperr.MessageOf(err))
}
