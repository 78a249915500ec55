package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"stock-predictor-api/internal/models"
)

const dateLayout = "2006-01-02"

// PredictionService coordinates the prediction pipeline:
// validate -> fetch history -> forecast -> assemble. Control flow is
// strictly linear; each request is independent and holds no shared state.
type PredictionService struct {
	market   *MarketDataService
	forecast *ForecastService
	logger   zerolog.Logger
}

func NewPredictionService(market *MarketDataService, forecast *ForecastService) *PredictionService {
	return &PredictionService{
		market:   market,
		forecast: forecast,
		logger:   log.With().Str("component", "prediction").Logger(),
	}
}

// Predict runs the full pipeline for raw query parameters. Validation
// failures return before any collaborator is called; an empty history
// returns before the forecaster is called.
func (s *PredictionService) Predict(ctx context.Context, rawTicker, rawDays string) (*models.PredictionResponse, error) {
	ticker, days, err := ValidateRequest(rawTicker, rawDays)
	if err != nil {
		return nil, err
	}

	history, err := s.market.FetchHistory(ctx, ticker, days)
	if err != nil {
		return nil, err
	}

	point, err := s.forecast.NextPoint(ctx, ticker, history)
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("ticker", ticker).
		Int("days", days).
		Int("history_points", len(history)).
		Msg("forecast generated")

	return assemble(ticker, history, point), nil
}

// assemble merges the historical series and the forecast point into one
// ordered sequence with a contiguous 1-based day index.
func assemble(ticker string, history []models.HistoricalPoint, point models.ForecastPoint) *models.PredictionResponse {
	predictions := make([]models.PredictionPoint, 0, len(history)+1)
	for _, h := range history {
		predictions = append(predictions, models.PredictionPoint{
			Date:           h.Date.Format(dateLayout),
			PredictedPrice: h.AveragePrice,
		})
	}
	predictions = append(predictions, models.PredictionPoint{
		Date:           point.Date.Format(dateLayout),
		PredictedPrice: point.PredictedPrice,
	})

	for i := range predictions {
		predictions[i].Day = i + 1
	}

	return &models.PredictionResponse{
		Ticker:      ticker,
		Model:       models.ModelName,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Predictions: predictions,
	}
}
