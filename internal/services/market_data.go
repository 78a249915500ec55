package services

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"stock-predictor-api/internal/models"
	"stock-predictor-api/pkg/utils"
)

// HistoryProvider fetches raw daily bars for a symbol covering up to the
// given number of calendar days, ending at the most recent trading day.
type HistoryProvider interface {
	DailyHistory(ctx context.Context, symbol string, days int) ([]models.DailyBar, error)
}

// MarketDataService retrieves and summarizes historical prices.
type MarketDataService struct {
	provider HistoryProvider
	logger   zerolog.Logger
}

func NewMarketDataService(provider HistoryProvider) *MarketDataService {
	return &MarketDataService{
		provider: provider,
		logger:   log.With().Str("component", "market_data").Logger(),
	}
}

// FetchHistory retrieves the raw table for (ticker, days) and reduces it to
// one averaged-price point per trading day, ascending by date. An empty
// table is a not-found condition, not a provider failure.
func (s *MarketDataService) FetchHistory(ctx context.Context, ticker string, days int) ([]models.HistoricalPoint, error) {
	bars, err := s.provider.DailyHistory(ctx, ticker, days)
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", ticker).Msg("history fetch failed")
		return nil, &UpstreamError{Stage: StageDataFetch, Err: err}
	}
	if len(bars) == 0 {
		return nil, ErrNoData
	}

	points := Summarize(bars)
	s.logger.Debug().Str("ticker", ticker).Int("points", len(points)).Msg("history summarized")
	return points, nil
}

// Summarize reduces raw bars to one HistoricalPoint per day: the OHLC mean
// rounded to 2 decimals. Output is always ascending by date; the last
// point's date anchors the forecast date, so provider ordering must not
// leak through.
func Summarize(bars []models.DailyBar) []models.HistoricalPoint {
	points := make([]models.HistoricalPoint, 0, len(bars))
	for _, bar := range bars {
		avg := (bar.Open + bar.High + bar.Low + bar.Close) / 4
		points = append(points, models.HistoricalPoint{
			Date:         bar.Date,
			AveragePrice: utils.Round2(avg),
		})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})

	return points
}
