package sportsdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/corner-edge/internal/config"
	"github.com/yourusername/corner-edge/internal/metrics"
)

const (
	apiKeyHeader = "x-apisports-key"

	endpointFixtures   = "fixtures"
	endpointStatistics = "fixtures/statistics"
	endpointTeams      = "teams"

	cornerKicksType = "Corner Kicks"
)

// Fixture is a flattened fixture from the upstream listing.
type Fixture struct {
	APIFixtureID  int64
	Date          time.Time
	Status        string
	HomeTeamAPIID int64
	HomeTeamName  string
	AwayTeamAPIID int64
	AwayTeamName  string
	GoalsHome     *int
	GoalsAway     *int
}

// FixtureStatistics holds the post-match statistics relevant to corner
// predictions.
type FixtureStatistics struct {
	FixtureID   int64
	CornersHome *int
	CornersAway *int
}

// TeamInfo is a flattened team entry from the upstream listing.
type TeamInfo struct {
	APITeamID int64
	Name      string
}

// Client talks to the football data API with rate limiting, retries and a
// statistics cache.
type Client struct {
	http     *RateLimitedHTTPClient
	cache    *StatsCache
	baseURL  string
	apiKey   string
	leagueID int
	logger   *logrus.Logger
}

// NewClient creates a new sports API client from configuration.
func NewClient(cfg *config.SportsAPIConfig, logger *logrus.Logger) *Client {
	httpCfg := DefaultHTTPClientConfig()
	httpCfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	httpCfg.MaxRetries = cfg.RetryAttempts
	httpCfg.RateLimit = cfg.RateLimitPerSecond
	httpCfg.RateBurst = cfg.RateLimitBurst

	return &Client{
		http:     NewRateLimitedHTTPClient(httpCfg, logger),
		cache:    NewStatsCache(time.Duration(cfg.CacheTTLSeconds) * time.Second),
		baseURL:  cfg.BaseURL,
		apiKey:   cfg.APIKey,
		leagueID: cfg.LeagueID,
		logger:   logger,
	}
}

// Close releases client resources
func (c *Client) Close() error {
	return c.http.Close()
}

// FetchFixturesByDate lists the league's fixtures on one calendar day.
func (c *Client) FetchFixturesByDate(ctx context.Context, date time.Time, season int) ([]Fixture, error) {
	params := url.Values{}
	params.Set("league", strconv.Itoa(c.leagueID))
	params.Set("season", strconv.Itoa(season))
	params.Set("date", date.Format("2006-01-02"))

	var envelope fixturesEnvelope
	if err := c.get(ctx, endpointFixtures, params, &envelope); err != nil {
		return nil, err
	}

	fixtures := make([]Fixture, 0, len(envelope.Response))
	for _, entry := range envelope.Response {
		fixtures = append(fixtures, entry.flatten())
	}
	return fixtures, nil
}

// FetchFixtureByID retrieves a single fixture with its goal counts.
func (c *Client) FetchFixtureByID(ctx context.Context, fixtureID int64) (*Fixture, error) {
	params := url.Values{}
	params.Set("id", strconv.FormatInt(fixtureID, 10))

	var envelope fixturesEnvelope
	if err := c.get(ctx, endpointFixtures, params, &envelope); err != nil {
		return nil, err
	}
	if len(envelope.Response) == 0 {
		return nil, fmt.Errorf("fixture %d: %w", fixtureID, ErrStatsUnavailable)
	}

	fixture := envelope.Response[0].flatten()
	return &fixture, nil
}

// FetchFixtureStatistics retrieves corner counts for a finished fixture.
// Results are cached; finished fixtures never change upstream.
func (c *Client) FetchFixtureStatistics(ctx context.Context, fixtureID int64) (*FixtureStatistics, error) {
	if stats, found := c.cache.Get(fixtureID); found {
		return stats, nil
	}

	params := url.Values{}
	params.Set("fixture", strconv.FormatInt(fixtureID, 10))

	var envelope statisticsEnvelope
	if err := c.get(ctx, endpointStatistics, params, &envelope); err != nil {
		return nil, err
	}
	if len(envelope.Response) < 2 {
		return nil, fmt.Errorf("fixture %d: %w", fixtureID, ErrStatsUnavailable)
	}

	stats := &FixtureStatistics{
		FixtureID:   fixtureID,
		CornersHome: envelope.Response[0].cornerCount(),
		CornersAway: envelope.Response[1].cornerCount(),
	}
	if stats.CornersHome == nil || stats.CornersAway == nil {
		return nil, fmt.Errorf("fixture %d: %w", fixtureID, ErrStatsUnavailable)
	}

	c.cache.Set(fixtureID, stats)
	return stats, nil
}

// FetchTeams lists the league's teams for a season.
func (c *Client) FetchTeams(ctx context.Context, season int) ([]TeamInfo, error) {
	params := url.Values{}
	params.Set("league", strconv.Itoa(c.leagueID))
	params.Set("season", strconv.Itoa(season))

	var envelope teamsEnvelope
	if err := c.get(ctx, endpointTeams, params, &envelope); err != nil {
		return nil, err
	}

	teams := make([]TeamInfo, 0, len(envelope.Response))
	for _, entry := range envelope.Response {
		teams = append(teams, TeamInfo{
			APITeamID: entry.Team.ID,
			Name:      entry.Team.Name,
		})
	}
	return teams, nil
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	requestURL := fmt.Sprintf("%s/%s?%s", c.baseURL, endpoint, params.Encode())

	headers := http.Header{}
	headers.Set(apiKeyHeader, c.apiKey)

	start := time.Now()
	resp, err := c.http.Get(ctx, requestURL, headers)
	if err != nil {
		metrics.RecordAPIRequest(endpoint, "error", time.Since(start).Seconds())
		return fmt.Errorf("requesting %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	metrics.RecordAPIRequest(endpoint, strconv.Itoa(resp.StatusCode), time.Since(start).Seconds())

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &APIError{
			Endpoint:   endpoint,
			StatusCode: resp.StatusCode,
			Message:    string(body),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", endpoint, err)
	}

	c.logger.WithFields(logrus.Fields{
		"endpoint": endpoint,
		"duration": time.Since(start).Round(time.Millisecond),
	}).Debug("Sports API request completed")

	return nil
}

// Upstream response envelopes

type fixturesEnvelope struct {
	Response []fixtureEntry `json:"response"`
}

type fixtureEntry struct {
	Fixture struct {
		ID     int64     `json:"id"`
		Date   time.Time `json:"date"`
		Status struct {
			Short string `json:"short"`
		} `json:"status"`
	} `json:"fixture"`
	Teams struct {
		Home teamRef `json:"home"`
		Away teamRef `json:"away"`
	} `json:"teams"`
	Goals struct {
		Home *int `json:"home"`
		Away *int `json:"away"`
	} `json:"goals"`
}

type teamRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (f fixtureEntry) flatten() Fixture {
	return Fixture{
		APIFixtureID:  f.Fixture.ID,
		Date:          f.Fixture.Date,
		Status:        f.Fixture.Status.Short,
		HomeTeamAPIID: f.Teams.Home.ID,
		HomeTeamName:  f.Teams.Home.Name,
		AwayTeamAPIID: f.Teams.Away.ID,
		AwayTeamName:  f.Teams.Away.Name,
		GoalsHome:     f.Goals.Home,
		GoalsAway:     f.Goals.Away,
	}
}

type statisticsEnvelope struct {
	Response []teamStatistics `json:"response"`
}

type teamStatistics struct {
	Team       teamRef `json:"team"`
	Statistics []struct {
		Type  string          `json:"type"`
		Value json.RawMessage `json:"value"`
	} `json:"statistics"`
}

// cornerCount extracts the corner kick total. The upstream encodes values
// inconsistently as numbers, numeric strings or null.
func (ts teamStatistics) cornerCount() *int {
	for _, stat := range ts.Statistics {
		if stat.Type != cornerKicksType {
			continue
		}
		return parseStatValue(stat.Value)
	}
	return nil
}

func parseStatValue(raw json.RawMessage) *int {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var asInt int
	if err := json.Unmarshal(raw, &asInt); err == nil {
		return &asInt
	}

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		if parsed, err := strconv.Atoi(asString); err == nil {
			return &parsed
		}
	}

	return nil
}

type teamsEnvelope struct {
	Response []struct {
		Team teamRef `json:"team"`
	} `json:"response"`
}
