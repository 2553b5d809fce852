package standings

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

// APIClient talks to the club's standings REST API.
type APIClient struct {
	httpClient *http.Client
	BaseURL    string
	authToken  string
}

// NewClient creates a new standings client. The auth token is optional and is
// sent as a bearer token on write requests when present.
func NewClient(baseURL, authToken string) StandingsClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		BaseURL:    baseURL,
		authToken:  authToken,
	}
}

// Ensure APIClient implements the StandingsClient interface.
var _ StandingsClient = (*APIClient)(nil)

// GetStandings fetches the player-season records for a season (month 1-12).
func (c *APIClient) GetStandings(season int) ([]PlayerSeasonRecord, error) {
	url := fmt.Sprintf("%s/api/standings?season=%d", c.BaseURL, season)

	req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Reason: "failed to create request", Err: err}
	}
	req.Header.Set("Accept", "application/json")

	log.Debug("Requesting standings", "url", url)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Reason: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(resp.Body)
		log.Error("Received non-2xx status from standings API", "status", resp.StatusCode, "body", string(body))
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode, Reason: "non-2xx response"}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode, Reason: "failed to read response body", Err: err}
	}

	// The API contract is an array of records. A `null` body would decode into
	// a nil slice without an error and read as an empty roster downstream, so
	// anything that is not an array is rejected here.
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode, Reason: "payload is not an array of player records"}
	}
	var records []PlayerSeasonRecord
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, &FetchError{URL: url, StatusCode: resp.StatusCode, Reason: "payload is not an array of player records", Err: err}
	}

	log.Info("Fetched standings", "season", season, "count", len(records))
	return records, nil
}

// UpdatePlayerStats applies a partial counter update to a single player.
func (c *APIClient) UpdatePlayerStats(playerID string, patch StatPatch) (PlayerSeasonRecord, error) {
	url := fmt.Sprintf("%s/api/standings/%s", c.BaseURL, playerID)

	body, err := json.Marshal(patch)
	if err != nil {
		return PlayerSeasonRecord{}, fmt.Errorf("failed to marshal stat patch: %w", err)
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return PlayerSeasonRecord{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.authToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.authToken)
	}

	log.Debug("Updating player stats", "url", url, "playerID", playerID)
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return PlayerSeasonRecord{}, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		log.Error("Received non-2xx status from standings API", "status", resp.StatusCode, "body", string(respBody))
		return PlayerSeasonRecord{}, fmt.Errorf("stat update for %s rejected with status %d", playerID, resp.StatusCode)
	}

	var updated PlayerSeasonRecord
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		return PlayerSeasonRecord{}, fmt.Errorf("failed to decode updated record: %w", err)
	}
	return updated, nil
}
