package twsesync

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

type twseClient struct {
	baseURL string
	http    *http.Client
}

func newTwseClient() *twseClient {
	baseURL := strings.TrimSpace(os.Getenv("TWSE_API_BASE_URL"))
	if baseURL == "" {
		baseURL = "https://openapi.twse.com.tw/v1"
	}
	timeout := 30 * time.Second
	if v := strings.TrimSpace(os.Getenv("TWSE_HTTP_TIMEOUT_SECONDS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			timeout = time.Duration(n) * time.Second
		}
	}
	return &twseClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// fetchStockDayAll pulls the full daily snapshot. The exchange publishes one
// array covering every listed security for the most recent trading day.
func (c *twseClient) fetchStockDayAll(ctx context.Context) ([]stockDayRecord, error) {
	url := c.baseURL + "/exchangeReport/STOCK_DAY_ALL"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("twse api status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var records []stockDayRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode twse response: %w", err)
	}
	return records, nil
}
