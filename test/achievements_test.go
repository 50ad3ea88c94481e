//go:build integration_test

package test

import (
	"context"
	"io"
	"net/http"
	"strings"

	"github.com/2beens/healthtrack/internal/achievements"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestAchievements() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	browser := s.newBrowser()
	doLogin(ctx, t, browser)

	for _, input := range []achievements.Input{
		{Title: "Morning run", Category: "fitness", Metric: "km", Amount: "5.5"},
		{Title: "Evening run", Category: "fitness", Metric: "km", Amount: "3"},
		{Title: "Slept well", Category: "sleep", Metric: "hours", Amount: "8"},
	} {
		resp := doJSON(ctx, t, browser, "POST", "/api/achievements", input)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		require.NoError(t, resp.Body.Close())
	}

	resp := doJSON(ctx, t, browser, "POST", "/api/achievements", achievements.Input{Title: ""})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errResp map[string][]string
	decodeBody(t, resp, &errResp)
	assert.NotEmpty(t, errResp["errors"])

	resp = doJSON(ctx, t, browser, "GET", "/api/achievements?category=fitness", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page achievements.PageResponse
	decodeBody(t, resp, &page)
	assert.Equal(t, 2, page.Total)
	require.Len(t, page.Items, 2)

	resp = doJSON(ctx, t, browser, "GET", "/api/trends/weekly", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var weekly achievements.WeeklyTrendsResponse
	decodeBody(t, resp, &weekly)
	require.Len(t, weekly.Items, 8)
	// all three were added this week, which is the last bucket
	assert.Equal(t, 3, weekly.Items[7].Count)
	for _, bucket := range weekly.Items[:7] {
		assert.Zero(t, bucket.Count)
	}

	resp = doJSON(ctx, t, browser, "GET", "/achievements/export.csv", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	csvBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	lines := strings.Split(strings.TrimSpace(string(csvBytes)), "\n")
	assert.Len(t, lines, 4)
	assert.Contains(t, string(csvBytes), "Morning run")
}

func (s *IntegrationTestSuite) TestAchievements_Anonymous() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	resp := doJSON(ctx, t, s.httpClient, "POST", "/api/achievements", achievements.Input{
		Title: "Sneaky", Category: "fitness", Metric: "km", Amount: "1",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp = doJSON(ctx, t, s.httpClient, "GET", "/achievements", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var overview achievements.OverviewResponse
	decodeBody(t, resp, &overview)
	assert.Empty(t, overview.Trends)
	assert.Equal(t, "Please log in to see your achievements.", overview.Message)
}
