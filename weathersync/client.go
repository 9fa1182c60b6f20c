package weathersync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

type cwaClient struct {
	baseURL  string
	authCode string
	http     *http.Client
}

func newCwaClient() (*cwaClient, error) {
	baseURL := strings.TrimSpace(os.Getenv("CWA_API_BASE_URL"))
	if baseURL == "" {
		baseURL = "https://opendata.cwa.gov.tw"
	}
	authCode := strings.TrimSpace(os.Getenv("CWA_AUTH_CODE"))
	if authCode == "" {
		return nil, errors.New("CWA_AUTH_CODE is empty")
	}
	return &cwaClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		authCode: authCode,
		http:     &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// fetchObservations pulls current observations for the given station ids.
func (c *cwaClient) fetchObservations(ctx context.Context, stationIDs []string) (*cwaResponse, error) {
	q := url.Values{}
	q.Set("Authorization", c.authCode)
	q.Set("StationId", strings.Join(stationIDs, ","))
	endpoint := c.baseURL + "/api/v1/rest/datastore/O-A0001-001?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
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
		return nil, fmt.Errorf("cwa api status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload cwaResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode cwa response: %w", err)
	}
	if payload.Success != "true" {
		return nil, errors.New("cwa api reported failure")
	}
	return &payload, nil
}

// configuredStations parses CWA_STATIONS, formatted as
// "County:lowlandId,mountainId" entries joined with ";".
func configuredStations() []countyStations {
	raw := strings.TrimSpace(os.Getenv("CWA_STATIONS"))
	if raw == "" {
		return nil
	}
	var stations []countyStations
	for _, entry := range strings.Split(raw, ";") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 2)
		if len(parts) != 2 {
			continue
		}
		ids := strings.SplitN(parts[1], ",", 2)
		station := countyStations{County: strings.TrimSpace(parts[0]), LowlandStationID: strings.TrimSpace(ids[0])}
		if len(ids) == 2 {
			station.MountainStationID = strings.TrimSpace(ids[1])
		}
		if station.County == "" || station.LowlandStationID == "" {
			continue
		}
		stations = append(stations, station)
	}
	return stations
}
