//go:build integration_test

package test

import (
	"context"
	"io"
	"net/http"

	"github.com/2beens/healthtrack/internal/audit"
	"github.com/2beens/healthtrack/internal/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestVersionAndNotFound() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	resp := doJSON(ctx, t, s.httpClient, "GET", "/usr/42/version", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, "test-version-info", string(body))

	resp = doJSON(ctx, t, s.httpClient, "GET", "/no-such-page", nil)
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
	var errResp map[string]string
	decodeBody(t, resp, &errResp)
	assert.Equal(t, "Not found", errResp["error"])
}

func (s *IntegrationTestSuite) TestStatus() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	resp := doJSON(ctx, t, s.httpClient, "GET", "/status", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var before status.Response
	decodeBody(t, resp, &before)
	assert.True(t, before.DB.Connected)
	assert.False(t, before.UserGold.Exists)

	doRegister(ctx, t, s.httpClient, testUsername, testPassword)

	resp = doJSON(ctx, t, s.httpClient, "GET", "/status", nil)
	var after status.Response
	decodeBody(t, resp, &after)
	assert.True(t, after.UserGold.Exists)
}

func (s *IntegrationTestSuite) TestNutritionLookup() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	resp := doJSON(ctx, t, s.httpClient, "POST", "/tools/nutrition", map[string]string{"q": "apple"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var nutritionResp struct {
		Q     string `json:"q"`
		Items []struct {
			Name     string  `json:"name"`
			Calories float64 `json:"calories"`
		} `json:"items"`
	}
	decodeBody(t, resp, &nutritionResp)
	assert.Equal(t, "apple", nutritionResp.Q)
	require.Len(t, nutritionResp.Items, 1)
	assert.Equal(t, "apple", nutritionResp.Items[0].Name)
	assert.Equal(t, 52.0, nutritionResp.Items[0].Calories)
}

func (s *IntegrationTestSuite) TestAuditLog() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	browser := s.newBrowser()
	doLogin(ctx, t, browser)

	resp := doJSON(ctx, t, browser, "POST", "/tools/bmi", map[string]any{"height": 1.8, "weight": 90})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp = doJSON(ctx, t, browser, "GET", "/audit-log", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list audit.ListResponse
	decodeBody(t, resp, &list)

	var actions []string
	for _, entry := range list.Items {
		actions = append(actions, entry.Action)
	}
	// newest first
	assert.Equal(t, []string{"bmi_calc_success", "login_success", "register"}, actions)
	require.NotNil(t, list.Items[0].Username)
	assert.Equal(t, testUsername, *list.Items[0].Username)
}
