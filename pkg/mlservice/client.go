package mlservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client calls the external regression forecasting service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type predictRequest struct {
	Ticker string `json:"ticker"`
	Years  int    `json:"years"`
}

type predictResponse struct {
	PredictedPrice float64 `json:"predicted_price"`
}

// NextPrice asks the service for one predicted price for the next period,
// trained on the given number of years of history.
func (c *Client) NextPrice(ctx context.Context, ticker string, years int) (float64, error) {
	jsonData, err := json.Marshal(predictRequest{Ticker: ticker, Years: years})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/predict", bytes.NewBuffer(jsonData))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("ml service returned %d: %s", resp.StatusCode, string(body))
	}

	var predictResp predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&predictResp); err != nil {
		return 0, err
	}

	return predictResp.PredictedPrice, nil
}
