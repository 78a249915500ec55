package alphavantage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"stock-predictor-api/internal/models"
)

const defaultBaseURL = "https://www.alphavantage.co/query"

// Client fetches daily history from the Alpha Vantage TIME_SERIES_DAILY
// endpoint. Requires an API key.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient(apiKey string) *Client {
	return &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		// Free tier allows 5 requests per minute.
		limiter: rate.NewLimiter(rate.Every(12*time.Second), 2),
	}
}

type dailySeriesResponse struct {
	TimeSeries   map[string]dailyQuote `json:"Time Series (Daily)"`
	ErrorMessage string                `json:"Error Message"`
	Note         string                `json:"Note"`
}

type dailyQuote struct {
	Open  string `json:"1. open"`
	High  string `json:"2. high"`
	Low   string `json:"3. low"`
	Close string `json:"4. close"`
}

// DailyHistory fetches daily OHLC bars for the last days calendar days,
// ascending by date. Unknown symbols come back as an empty series.
func (c *Client) DailyHistory(ctx context.Context, symbol string, days int) ([]models.DailyBar, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s?function=TIME_SERIES_DAILY&symbol=%s&apikey=%s", c.baseURL, symbol, c.apiKey)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("alpha vantage returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var seriesResp dailySeriesResponse
	if err := json.Unmarshal(body, &seriesResp); err != nil {
		return nil, err
	}

	if seriesResp.ErrorMessage != "" {
		return nil, fmt.Errorf("alpha vantage: %s", seriesResp.ErrorMessage)
	}
	if seriesResp.Note != "" {
		return nil, fmt.Errorf("alpha vantage: %s", seriesResp.Note)
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -days)

	bars := make([]models.DailyBar, 0, days)
	for dateStr, quote := range seriesResp.TimeSeries {
		date, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("alpha vantage: bad date %q: %w", dateStr, err)
		}
		if date.Before(cutoff) {
			continue
		}

		bar, err := parseBar(date, quote)
		if err != nil {
			return nil, err
		}
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Date.Before(bars[j].Date)
	})

	return bars, nil
}

func parseBar(date time.Time, quote dailyQuote) (models.DailyBar, error) {
	open, err := strconv.ParseFloat(quote.Open, 64)
	if err != nil {
		return models.DailyBar{}, fmt.Errorf("alpha vantage: bad open %q: %w", quote.Open, err)
	}
	high, err := strconv.ParseFloat(quote.High, 64)
	if err != nil {
		return models.DailyBar{}, fmt.Errorf("alpha vantage: bad high %q: %w", quote.High, err)
	}
	low, err := strconv.ParseFloat(quote.Low, 64)
	if err != nil {
		return models.DailyBar{}, fmt.Errorf("alpha vantage: bad low %q: %w", quote.Low, err)
	}
	closePrice, err := strconv.ParseFloat(quote.Close, 64)
	if err != nil {
		return models.DailyBar{}, fmt.Errorf("alpha vantage: bad close %q: %w", quote.Close, err)
	}

	return models.DailyBar{
		Date:  date,
		Open:  open,
		High:  high,
		Low:   low,
		Close: closePrice,
	}, nil
}
