package sportsdata

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/corner-edge/internal/config"
)

func testClient(t *testing.T, serverURL string) *Client {
	t.Helper()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)

	cfg := &config.SportsAPIConfig{
		BaseURL:            serverURL,
		APIKey:             "test-key",
		LeagueID:           39,
		TimeoutSeconds:     5,
		RetryAttempts:      0,
		RateLimitPerSecond: 100,
		RateLimitBurst:     100,
		CacheTTLSeconds:    300,
	}
	client := NewClient(cfg, logger)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func statisticsPayload(home, away interface{}) string {
	type stat struct {
		Type  string      `json:"type"`
		Value interface{} `json:"value"`
	}
	payload := map[string]interface{}{
		"response": []map[string]interface{}{
			{
				"team": map[string]interface{}{"id": 1, "name": "Arsenal"},
				"statistics": []stat{
					{Type: "Shots on Goal", Value: 4},
					{Type: "Corner Kicks", Value: home},
				},
			},
			{
				"team": map[string]interface{}{"id": 2, "name": "Chelsea"},
				"statistics": []stat{
					{Type: "Corner Kicks", Value: away},
				},
			},
		},
	}
	encoded, _ := json.Marshal(payload)
	return string(encoded)
}

func TestFetchFixtureStatistics(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "test-key", r.Header.Get("x-apisports-key"))
		assert.Equal(t, "12345", r.URL.Query().Get("fixture"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(statisticsPayload(7, "4")))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	stats, err := client.FetchFixtureStatistics(context.Background(), 12345)
	require.NoError(t, err)
	require.NotNil(t, stats.CornersHome)
	require.NotNil(t, stats.CornersAway)
	assert.Equal(t, 7, *stats.CornersHome)
	assert.Equal(t, 4, *stats.CornersAway)

	// Second fetch comes from the cache
	stats, err = client.FetchFixtureStatistics(context.Background(), 12345)
	require.NoError(t, err)
	assert.Equal(t, 7, *stats.CornersHome)
	assert.Equal(t, 1, requests)

	hits, misses := client.cache.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)
}

func TestFetchFixtureStatisticsUnavailable(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty response", body: `{"response":[]}`},
		{name: "single team only", body: `{"response":[{"team":{"id":1,"name":"Arsenal"},"statistics":[{"type":"Corner Kicks","value":5}]}]}`},
		{name: "null corner values", body: statisticsPayload(nil, nil)},
		{name: "unparseable corner value", body: statisticsPayload("n/a", 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := testClient(t, server.URL)

			_, err := client.FetchFixtureStatistics(context.Background(), 99)
			assert.ErrorIs(t, err, ErrStatsUnavailable)
		})
	}
}

func TestFetchFixturesByDate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "39", r.URL.Query().Get("league"))
		assert.Equal(t, "2023", r.URL.Query().Get("season"))
		assert.Equal(t, "2023-10-07", r.URL.Query().Get("date"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":[{
			"fixture":{"id":1001,"date":"2023-10-07T14:00:00Z","status":{"short":"FT"}},
			"teams":{"home":{"id":42,"name":"Arsenal"},"away":{"id":49,"name":"Chelsea"}},
			"goals":{"home":2,"away":1}
		}]}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	fixtures, err := client.FetchFixturesByDate(context.Background(), mustParseDate(t, "2023-10-07"), 2023)
	require.NoError(t, err)
	require.Len(t, fixtures, 1)

	fixture := fixtures[0]
	assert.Equal(t, int64(1001), fixture.APIFixtureID)
	assert.Equal(t, "FT", fixture.Status)
	assert.Equal(t, int64(42), fixture.HomeTeamAPIID)
	assert.Equal(t, "Arsenal", fixture.HomeTeamName)
	assert.Equal(t, int64(49), fixture.AwayTeamAPIID)
	require.NotNil(t, fixture.GoalsHome)
	require.NotNil(t, fixture.GoalsAway)
	assert.Equal(t, 2, *fixture.GoalsHome)
	assert.Equal(t, 1, *fixture.GoalsAway)
}

func TestFetchFixtureByIDNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":[]}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	_, err := client.FetchFixtureByID(context.Background(), 404404)
	assert.ErrorIs(t, err, ErrStatsUnavailable)
}

func TestFetchTeams(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"response":[
			{"team":{"id":42,"name":"Arsenal"}},
			{"team":{"id":49,"name":"Chelsea"}}
		]}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	teams, err := client.FetchTeams(context.Background(), 2023)
	require.NoError(t, err)
	require.Len(t, teams, 2)
	assert.Equal(t, int64(42), teams[0].APITeamID)
	assert.Equal(t, "Chelsea", teams[1].Name)
}

func TestGetReturnsAPIErrorOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"message":"invalid api key"}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL)

	_, err := client.FetchTeams(context.Background(), 2023)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "teams", apiErr.Endpoint)
	assert.Contains(t, apiErr.Message, "invalid api key")
}

func TestParseStatValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want *int
	}{
		{name: "number", raw: `7`, want: intPtr(7)},
		{name: "numeric string", raw: `"12"`, want: intPtr(12)},
		{name: "null", raw: `null`, want: nil},
		{name: "empty", raw: ``, want: nil},
		{name: "non numeric string", raw: `"55%"`, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseStatValue(json.RawMessage(tt.raw))
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func intPtr(v int) *int {
	return &v
}

func mustParseDate(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return parsed
}
