//go:build integration_test

package test

import (
	"context"
	"net/http"
	"time"

	"github.com/2beens/healthtrack/internal/period"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type periodInput struct {
	StartDate   string `json:"start_date"`
	CycleLength string `json:"cycle_length,omitempty"`
}

type periodLog struct {
	ID          int    `json:"id"`
	StartDate   string `json:"start_date"`
	CycleLength int    `json:"cycle_length"`
}

type periodOverview struct {
	Logs       []periodLog `json:"logs"`
	NextWindow *struct {
		Start string `json:"start"`
		End   string `json:"end"`
		Cycle int    `json:"cycle"`
	} `json:"next_window"`
	Calendar period.Calendar `json:"calendar"`
}

func (s *IntegrationTestSuite) TestPeriod() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	browser := s.newBrowser()
	doLogin(ctx, t, browser)

	resp := doJSON(ctx, t, browser, "GET", "/tools/period", nil)
	assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
	assert.Equal(t, "/period", resp.Header.Get("Location"))
	require.NoError(t, resp.Body.Close())

	resp = doJSON(ctx, t, browser, "POST", "/period", periodInput{StartDate: "not a date"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errResp map[string]string
	decodeBody(t, resp, &errResp)
	assert.Equal(t, "Enter a valid start date (YYYY-MM-DD).", errResp["error"])

	resp = doJSON(ctx, t, browser, "POST", "/period", periodInput{StartDate: "2025-01-01", CycleLength: "90"})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	older := time.Now().UTC().AddDate(0, 0, -40).Format(period.DateLayout)
	latest := time.Now().UTC().AddDate(0, 0, -10).Format(period.DateLayout)
	for _, input := range []periodInput{
		{StartDate: older},
		{StartDate: latest, CycleLength: "30"},
	} {
		resp = doJSON(ctx, t, browser, "POST", "/period", input)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		require.NoError(t, resp.Body.Close())
	}

	resp = doJSON(ctx, t, browser, "GET", "/period", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var overview periodOverview
	decodeBody(t, resp, &overview)

	require.Len(t, overview.Logs, 2)
	assert.Equal(t, latest, overview.Logs[0].StartDate)
	assert.Equal(t, 30, overview.Logs[0].CycleLength)
	assert.Equal(t, period.DefaultCycleLength, overview.Logs[1].CycleLength)

	require.NotNil(t, overview.NextWindow)
	assert.Equal(t, time.Now().UTC().AddDate(0, 0, 20).Format(period.DateLayout), overview.NextWindow.Start)
	assert.Equal(t, 30, overview.NextWindow.Cycle)
	assert.NotEmpty(t, overview.Calendar.Days)
}
