//go:build integration_test

package test

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/2beens/healthtrack/internal/meds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestMedications() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	browser := s.newBrowser()
	doLogin(ctx, t, browser)

	// every 6 hours, the horizon fits 4 doses
	resp := doJSON(ctx, t, browser, "POST", "/meds", meds.MedicationInput{
		Name:          "Ibuprofen",
		Dosage:        "200mg",
		FreqType:      "interval",
		IntervalHours: "6",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var interval meds.ScheduledMedication
	decodeBody(t, resp, &interval)
	assert.Equal(t, "Ibuprofen", interval.Name)
	require.NotNil(t, interval.IntervalHours)
	assert.Equal(t, 6, *interval.IntervalHours)
	require.Len(t, interval.Upcoming, 4)
	assert.Equal(t, 18*time.Hour, interval.Upcoming[3].Sub(interval.Upcoming[0]))

	resp = doJSON(ctx, t, browser, "POST", "/meds", meds.MedicationInput{
		Name:       "Vitamin D",
		FreqType:   "weekly",
		TimeOfDay:  "09:30",
		DaysOfWeek: "Mon,Thu",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var weekly meds.ScheduledMedication
	decodeBody(t, resp, &weekly)
	require.Len(t, weekly.Upcoming, 4)
	for _, dose := range weekly.Upcoming {
		assert.Contains(t, []time.Weekday{time.Monday, time.Thursday}, dose.Weekday())
		assert.Equal(t, 9, dose.Hour())
		assert.Equal(t, 30, dose.Minute())
	}

	resp = doJSON(ctx, t, browser, "POST", "/meds", meds.MedicationInput{
		Name:          "Too rare",
		FreqType:      "interval",
		IntervalHours: "72",
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var errResp map[string]string
	decodeBody(t, resp, &errResp)
	assert.Equal(t, meds.ErrIntervalOutOfRange.Error(), errResp["error"])

	resp = doJSON(ctx, t, browser, "GET", "/meds", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list meds.ListResponse
	decodeBody(t, resp, &list)
	require.Len(t, list.Items, 2)

	resp = doJSON(ctx, t, browser, "DELETE", fmt.Sprintf("/meds/%d", interval.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp = doJSON(ctx, t, browser, "DELETE", fmt.Sprintf("/meds/%d", interval.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp = doJSON(ctx, t, browser, "GET", "/meds", nil)
	decodeBody(t, resp, &list)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Vitamin D", list.Items[0].Name)
}

func (s *IntegrationTestSuite) TestMedications_OtherUsersAreInvisible() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	owner := s.newBrowser()
	doLogin(ctx, t, owner)
	resp := doJSON(ctx, t, owner, "POST", "/meds", meds.MedicationInput{
		Name:      "Melatonin",
		FreqType:  "daily",
		TimeOfDay: "22:00",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var added meds.ScheduledMedication
	decodeBody(t, resp, &added)
	require.Len(t, added.Upcoming, 2)

	other := s.newBrowser()
	doRegister(ctx, t, other, "someone-else", testPassword)
	resp = doJSON(ctx, t, other, "POST", "/login", credentials{Username: "someone-else", Password: testPassword})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp = doJSON(ctx, t, other, "GET", "/meds", nil)
	var list meds.ListResponse
	decodeBody(t, resp, &list)
	assert.Empty(t, list.Items)

	resp = doJSON(ctx, t, other, "DELETE", fmt.Sprintf("/meds/%d", added.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	require.NoError(t, resp.Body.Close())
}
