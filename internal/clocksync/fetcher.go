package clocksync

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// TimeResponse is the wire format of the authoritative time endpoint
type TimeResponse struct {
	ServerTime string `json:"serverTime"`
	Timestamp  int64  `json:"timestamp"` // milliseconds since epoch
}

// Fetcher retrieves the current authoritative time over the network
type Fetcher interface {
	FetchServerTime(ctx context.Context) (*TimeResponse, error)
}

const fetchTimeout = 10 * time.Second

// HTTPFetcher fetches the authoritative time from an HTTP endpoint
type HTTPFetcher struct {
	endpoint string
	client   *http.Client
}

// NewHTTPFetcher creates a fetcher for the given server-time endpoint URL
func NewHTTPFetcher(endpoint string) *HTTPFetcher {
	return &HTTPFetcher{
		endpoint: endpoint,
		client:   &http.Client{Timeout: fetchTimeout},
	}
}

// FetchServerTime performs a single GET against the time endpoint
func (f *HTTPFetcher) FetchServerTime(ctx context.Context) (*TimeResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build server time request: %w", err)
	}
	// Belt and braces: the endpoint already disables caching server-side
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch server time: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected server time status: %d", resp.StatusCode)
	}

	var result TimeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode server time response: %w", err)
	}

	return &result, nil
}
