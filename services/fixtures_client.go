package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"golmaster-backend/utils"
)

// ErrFixturesNotConfigured means the WC2026 API key is absent. Handlers
// surface it differently from a transient fetch failure so operators can
// tell "feed is misconfigured" from "feed is down".
var ErrFixturesNotConfigured = errors.New("WC2026_API_KEY is not configured")

const defaultFixturesBaseURL = "https://api.wc2026api.com"

// FixtureRecord is one raw match from the WC2026 feed, before any
// normalization. Untrusted input: every string may be absent.
type FixtureRecord struct {
	ID           int64     `json:"id"`
	Round        *string   `json:"round"`
	GroupName    *string   `json:"group_name"`
	HomeTeam     *string   `json:"home_team"`
	HomeTeamCode *string   `json:"home_team_code"`
	AwayTeam     *string   `json:"away_team"`
	AwayTeamCode *string   `json:"away_team_code"`
	Stadium      *string   `json:"stadium"`
	StadiumCity  *string   `json:"stadium_city"`
	KickoffUTC   time.Time `json:"kickoff_utc"`
	HomeScore    *int      `json:"home_score"`
	AwayScore    *int      `json:"away_score"`
	Status       *string   `json:"status"`
}

// FixturesClient fetches raw match records from the WC2026 API.
type FixturesClient struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// normalizeFixturesBaseURL trims trailing slashes and rewrites the www
// host to the api host, which is where the feed actually answers.
func normalizeFixturesBaseURL(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return defaultFixturesBaseURL
	}
	base = strings.TrimRight(base, "/")
	if strings.Contains(base, "://www.wc2026api.com") {
		base = strings.Replace(base, "://www.wc2026api.com", "://api.wc2026api.com", 1)
	}
	return base
}

// NewFixturesClientFromEnv builds a client from WC2026_API_KEY and
// WC2026_API_BASE_URL. Returns ErrFixturesNotConfigured when the key is
// unset.
func NewFixturesClientFromEnv() (*FixturesClient, error) {
	apiKey := os.Getenv("WC2026_API_KEY")
	if apiKey == "" {
		return nil, ErrFixturesNotConfigured
	}
	return &FixturesClient{
		BaseURL: normalizeFixturesBaseURL(os.Getenv("WC2026_API_BASE_URL")),
		APIKey:  apiKey,
		Client:  utils.HTTPClient,
	}, nil
}

// FetchMatches GETs /matches from the feed. A non-200 response or a body
// that is not a JSON array is a hard failure; the caller aborts the sync
// rather than reconciling a partial or malformed payload.
func (c *FixturesClient) FetchMatches() ([]FixtureRecord, error) {
	req, err := http.NewRequest(http.MethodGet, c.BaseURL+"/matches", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("WC2026 API request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("WC2026 API response read failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("WC2026 API request failed with status %d", resp.StatusCode)
	}

	var records []FixtureRecord
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, fmt.Errorf("WC2026 API returned an invalid matches payload: %w", err)
	}
	return records, nil
}
