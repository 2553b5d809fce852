package winners

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
)

// APIClient talks to the club's weekly-winners REST API.
type APIClient struct {
	httpClient *http.Client
	BaseURL    string
}

// NewClient creates a new winners client.
func NewClient(baseURL string) WinnersClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    baseURL,
	}
}

var _ WinnersClient = (*APIClient)(nil)

// GetWinners reads the cached winners for (season, week).
func (c *APIClient) GetWinners(season, week int) (*WeeklyWinners, error) {
	url := fmt.Sprintf("%s/api/weekly-winners?season=%d&week=%d", c.BaseURL, season, week)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		return nil, &CacheReadError{URL: url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	log.Debug("Reading weekly winners cache", "url", url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &CacheReadError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	// Not yet cached.
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &CacheReadError{URL: url, Err: fmt.Errorf("status %d: %s", resp.StatusCode, string(body))}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &CacheReadError{URL: url, Err: err}
	}
	// An empty or null body is a miss, not an error.
	if len(bytes.TrimSpace(body)) == 0 || bytes.Equal(bytes.TrimSpace(body), []byte("null")) {
		return nil, nil
	}

	var envelope winnersResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, &CacheReadError{URL: url, Err: err}
	}
	return envelope.Winners, nil
}

// PutWinners upserts the winners for (season, week).
func (c *APIClient) PutWinners(season, week int, w WeeklyWinners) error {
	url := c.BaseURL + "/api/weekly-winners"

	body, err := json.Marshal(upsertRequest{Season: season, Week: week, Winners: w})
	if err != nil {
		return &CacheWriteError{Season: season, Week: week, Err: err}
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return &CacheWriteError{Season: season, Week: week, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	log.Debug("Upserting weekly winners cache", "url", url, "season", season, "week", week)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &CacheWriteError{Season: season, Week: week, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return &CacheWriteError{Season: season, Week: week, Err: fmt.Errorf("status %d: %s", resp.StatusCode, string(respBody))}
	}
	return nil
}
