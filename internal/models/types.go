package models

import "time"

// ModelName is the label reported for every prediction response.
const ModelName = "RandomForest-1day"

// DailyBar is one trading day of raw OHLC data as returned by a market
// data provider.
type DailyBar struct {
	Date  time.Time `json:"date"`
	Open  float64   `json:"open"`
	High  float64   `json:"high"`
	Low   float64   `json:"low"`
	Close float64   `json:"close"`
}

// HistoricalPoint is one summarized trading day: the average of the day's
// OHLC prices, rounded to cents.
type HistoricalPoint struct {
	Date         time.Time
	AveragePrice float64
}

// ForecastPoint is the single model-generated price for the next trading
// day after the historical window.
type ForecastPoint struct {
	Date           time.Time
	PredictedPrice float64
}

// PredictionPoint is one entry of the response series. Day is a 1-based
// position over historical points followed by the forecast point.
type PredictionPoint struct {
	Date           string  `json:"date"`
	PredictedPrice float64 `json:"predicted_price"`
	Day            int     `json:"day"`
}

// PredictionResponse is the /predict payload.
type PredictionResponse struct {
	Ticker      string            `json:"ticker"`
	Model       string            `json:"model"`
	GeneratedAt string            `json:"generated_at"`
	Predictions []PredictionPoint `json:"predictions"`
}

// Stock is one entry of the static /stocks list.
type Stock struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Sector string `json:"sector"`
}

// StockListResponse is the /stocks payload.
type StockListResponse struct {
	Stocks []Stock `json:"stocks"`
	Count  int     `json:"count"`
}

// ErrorResponse is the body returned on every failure path.
type ErrorResponse struct {
	Error string `json:"error"`
}
