package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stock-predictor-api/internal/models"
	"stock-predictor-api/internal/services"
)

type stubProvider struct {
	bars []models.DailyBar
	err  error
}

func (s *stubProvider) DailyHistory(ctx context.Context, symbol string, days int) ([]models.DailyBar, error) {
	return s.bars, s.err
}

type stubForecaster struct {
	price float64
	err   error
	calls int
}

func (s *stubForecaster) NextPrice(ctx context.Context, ticker string, years int) (float64, error) {
	s.calls++
	return s.price, s.err
}

func newTestApp(provider services.HistoryProvider, forecaster services.PriceForecaster) *fiber.App {
	svc := services.NewPredictionService(
		services.NewMarketDataService(provider),
		services.NewForecastService(forecaster),
	)
	app := fiber.New(fiber.Config{ErrorHandler: CustomErrorHandler})
	app.Get("/predict", NewPredictHandler(svc, 5*time.Second).Predict)
	return app
}

func flatBar(y int, m time.Month, d int, price float64) models.DailyBar {
	return models.DailyBar{
		Date:  time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		Open:  price,
		High:  price,
		Low:   price,
		Close: price,
	}
}

func doPredict(t *testing.T, app *fiber.App, url string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func errorBody(t *testing.T, body []byte) string {
	t.Helper()
	var er models.ErrorResponse
	require.NoError(t, json.Unmarshal(body, &er))
	return er.Error
}

func TestPredictValidationErrors(t *testing.T) {
	app := newTestApp(&stubProvider{}, &stubForecaster{})

	tests := []struct {
		name      string
		url       string
		wantError string
	}{
		{"missing ticker", "/predict", "ticker is required"},
		{"empty ticker", "/predict?ticker=", "ticker is required"},
		{"days not integer", "/predict?ticker=LMT&days=abc", "days must be an integer"},
		{"days present but empty", "/predict?ticker=LMT&days=", "days must be an integer"},
		{"days zero", "/predict?ticker=LMT&days=0", "days must be between 1 and 30"},
		{"days negative", "/predict?ticker=LMT&days=-1", "days must be between 1 and 30"},
		{"days too large", "/predict?ticker=LMT&days=31", "days must be between 1 and 30"},
		{"ticker with punctuation", "/predict?ticker=BRK.B", "invalid ticker"},
		{"ticker too long", "/predict?ticker=ABCDEFGHIJK", "invalid ticker"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doPredict(t, app, tt.url)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, tt.wantError, errorBody(t, body))
		})
	}
}

func TestPredictNoDataReturns404(t *testing.T) {
	forecaster := &stubForecaster{price: 50}
	app := newTestApp(&stubProvider{}, forecaster)

	status, body := doPredict(t, app, "/predict?ticker=ZZZZ&days=7")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "no data found", errorBody(t, body))
	assert.Zero(t, forecaster.calls, "forecaster must not run on empty history")
}

func TestPredictUpstreamFailures(t *testing.T) {
	t.Run("fetch failure", func(t *testing.T) {
		app := newTestApp(&stubProvider{err: errors.New("boom")}, &stubForecaster{})

		status, body := doPredict(t, app, "/predict?ticker=LMT&days=7")
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "data fetch failed: boom", errorBody(t, body))
	})

	t.Run("prediction failure", func(t *testing.T) {
		provider := &stubProvider{bars: []models.DailyBar{flatBar(2024, time.January, 3, 100)}}
		app := newTestApp(provider, &stubForecaster{err: errors.New("boom")})

		status, body := doPredict(t, app, "/predict?ticker=LMT&days=7")
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "ML prediction failed: boom", errorBody(t, body))
	})
}

func TestPredictSuccess(t *testing.T) {
	provider := &stubProvider{bars: []models.DailyBar{
		flatBar(2024, time.January, 3, 100),
		flatBar(2024, time.January, 4, 102),
		flatBar(2024, time.January, 5, 104), // Friday
	}}
	app := newTestApp(provider, &stubForecaster{price: 123.456})

	status, body := doPredict(t, app, "/predict?ticker=lmt&days=7")
	require.Equal(t, http.StatusOK, status)

	var resp models.PredictionResponse
	require.NoError(t, json.Unmarshal(body, &resp))

	assert.Equal(t, "LMT", resp.Ticker, "ticker must be upper-cased")
	assert.Equal(t, "RandomForest-1day", resp.Model)

	require.Len(t, resp.Predictions, 4, "N historical points plus one forecast")
	for i, p := range resp.Predictions {
		assert.Equal(t, i+1, p.Day)
	}

	last := resp.Predictions[3]
	assert.Equal(t, "2024-01-08", last.Date, "Friday history forecasts the following Monday")
	assert.Equal(t, 123.46, last.PredictedPrice, "forecast price rounded to 2 decimals")
}

func TestPredictDefaultsDaysToSeven(t *testing.T) {
	provider := &stubProvider{bars: []models.DailyBar{flatBar(2024, time.January, 3, 100)}}
	app := newTestApp(provider, &stubForecaster{price: 50})

	status, _ := doPredict(t, app, "/predict?ticker=LMT")
	assert.Equal(t, http.StatusOK, status)
}
