package cashflow

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleForecast(t *testing.T) {
	handler := NewHandler(newTestForecaster(), 30, zerolog.Nop())

	body := `{
		"transactions": [
			{"date": "2024-01-01", "amount": 1000},
			{"date": "2024-01-11", "amount": -400}
		],
		"horizon_days": 30
	}`

	req := httptest.NewRequest("POST", "/forecast", strings.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleForecast(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var prediction CashFlowPrediction
	err := json.NewDecoder(w.Body).Decode(&prediction)
	require.NoError(t, err)
	assert.InDelta(t, 2727.27, prediction.PredictedIncome, 0.01)
	assert.InDelta(t, 1090.91, prediction.PredictedExpenses, 0.01)
}

func TestHandleForecast_DefaultHorizon(t *testing.T) {
	handler := NewHandler(newTestForecaster(), 30, zerolog.Nop())

	req := httptest.NewRequest("POST", "/forecast", strings.NewReader(`{"transactions": []}`))
	w := httptest.NewRecorder()
	handler.HandleForecast(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var prediction CashFlowPrediction
	require.NoError(t, json.NewDecoder(w.Body).Decode(&prediction))
	assert.Equal(t, "USD", prediction.Currency)
}

func TestHandleForecast_InvalidRequests(t *testing.T) {
	handler := NewHandler(newTestForecaster(), 30, zerolog.Nop())

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{`},
		{"negative horizon", `{"transactions": [], "horizon_days": -5}`},
		{"huge horizon", `{"transactions": [], "horizon_days": 99999}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/forecast", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			handler.HandleForecast(w, req)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
