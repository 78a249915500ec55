package services

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"stock-predictor-api/internal/models"
	"stock-predictor-api/pkg/utils"
)

// trainingYears is the fixed training-history length passed to the
// regression model. Not user-configurable.
const trainingYears = 5

// PriceForecaster returns one predicted price for the next period, given a
// ticker and a training-history length in years.
type PriceForecaster interface {
	NextPrice(ctx context.Context, ticker string, years int) (float64, error)
}

// ForecastService adapts the external regression forecaster into a single
// dated ForecastPoint.
type ForecastService struct {
	forecaster PriceForecaster
	logger     zerolog.Logger
}

func NewForecastService(forecaster PriceForecaster) *ForecastService {
	return &ForecastService{
		forecaster: forecaster,
		logger:     log.With().Str("component", "forecaster").Logger(),
	}
}

// NextPoint calls the forecaster and dates the result at the next trading
// day after the last historical point. history must be non-empty and
// ascending by date.
func (s *ForecastService) NextPoint(ctx context.Context, ticker string, history []models.HistoricalPoint) (models.ForecastPoint, error) {
	price, err := s.forecaster.NextPrice(ctx, ticker, trainingYears)
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", ticker).Msg("prediction failed")
		return models.ForecastPoint{}, &UpstreamError{Stage: StagePrediction, Err: err}
	}

	lastDate := history[len(history)-1].Date
	return models.ForecastPoint{
		Date:           utils.NextTradingDay(lastDate),
		PredictedPrice: utils.Round2(price),
	}, nil
}
