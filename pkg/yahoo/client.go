package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"golang.org/x/time/rate"

	"stock-predictor-api/internal/models"
)

const defaultBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// Client fetches daily history from the Yahoo Finance chart API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

func NewClient() *Client {
	return &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		// Conservative pacing against the unofficial API.
		limiter: rate.NewLimiter(rate.Every(2*time.Second), 5),
	}
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []float64 `json:"open"`
					High  []float64 `json:"high"`
					Low   []float64 `json:"low"`
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// DailyHistory fetches daily OHLC bars covering up to days calendar days
// ending at the most recent trading day, ascending by date. Days with no
// quote (nulls in the chart arrays) are skipped.
func (c *Client) DailyHistory(ctx context.Context, symbol string, days int) ([]models.DailyBar, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/%s?interval=1d&range=%dd", c.baseURL, symbol, days)

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo finance returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var chartResp chartResponse
	if err := json.Unmarshal(body, &chartResp); err != nil {
		return nil, err
	}

	if chartResp.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo finance: %s", chartResp.Chart.Error.Description)
	}

	if len(chartResp.Chart.Result) == 0 || len(chartResp.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil
	}

	result := chartResp.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	// Null entries keep their slot in the arrays, so a length mismatch
	// means a malformed payload, not a closed market day.
	n := len(result.Timestamp)
	if len(quote.Open) != n || len(quote.High) != n || len(quote.Low) != n || len(quote.Close) != n {
		return nil, fmt.Errorf("yahoo finance: quote arrays do not match %d timestamps", n)
	}

	bars := make([]models.DailyBar, 0, n)
	for i, ts := range result.Timestamp {
		if quote.Close[i] <= 0 {
			continue
		}
		day := time.Unix(ts, 0).UTC()
		bars = append(bars, models.DailyBar{
			Date:  time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
			Open:  quote.Open[i],
			High:  quote.High[i],
			Low:   quote.Low[i],
			Close: quote.Close[i],
		})
	}

	sort.Slice(bars, func(i, j int) bool {
		return bars[i].Date.Before(bars[j].Date)
	})

	return bars, nil
}
