//go:build integration_test

package test

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/2beens/healthtrack/internal/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestRegisterAndLogin() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registered := doRegister(ctx, t, s.httpClient, testUsername, testPassword)
	assert.Equal(t, testUsername, registered.Username)
	assert.Equal(t, "/login", registered.Redirect)

	cases := map[string]struct {
		path         string
		body         credentials
		expectedCode int
		expectedErr  string
	}{
		"register, username taken": {
			path:         "/register",
			body:         credentials{Username: testUsername, Password: testPassword, Confirm: testPassword},
			expectedCode: http.StatusConflict,
			expectedErr:  "Username already exists.",
		},
		"register, weak password": {
			path:         "/register",
			body:         credentials{Username: "other", Password: "password", Confirm: "password"},
			expectedCode: http.StatusBadRequest,
			expectedErr:  "Password must be at least 8 characters and include lowercase, uppercase, number and special character.",
		},
		"login, bad password": {
			path:         "/login",
			body:         credentials{Username: testUsername, Password: "bad-password"},
			expectedCode: http.StatusUnauthorized,
			expectedErr:  "Invalid credentials",
		},
		"login, bad username": {
			path:         "/login",
			body:         credentials{Username: "bad-username", Password: testPassword},
			expectedCode: http.StatusUnauthorized,
			expectedErr:  "Invalid credentials",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			resp := doJSON(ctx, t, s.httpClient, "POST", tc.path, tc.body)
			require.Equal(t, tc.expectedCode, resp.StatusCode)

			var errResp map[string]string
			decodeBody(t, resp, &errResp)
			assert.Equal(t, tc.expectedErr, errResp["error"])
		})
	}
}

func (s *IntegrationTestSuite) TestLoginThenLogout() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	browser := s.newBrowser()
	token := doLogin(ctx, t, browser)

	// the header works as well as the cookie
	req, err := http.NewRequestWithContext(ctx, "GET", serverEndpoint+"/login", nil)
	require.NoError(t, err)
	req.Header.Set(auth.SessionHeader, token)
	resp, err := s.httpClient.Do(req)
	require.NoError(t, err)
	var loginView map[string]any
	decodeBody(t, resp, &loginView)
	assert.Equal(t, true, loginView["logged_in"])

	resp = doJSON(ctx, t, browser, "GET", "/meds", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, resp.Body.Close())

	resp = doJSON(ctx, t, browser, "POST", "/logout", nil)
	require.NoError(t, resp.Body.Close())

	resp = doJSON(ctx, t, browser, "GET", "/meds", nil)
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	require.NoError(t, resp.Body.Close())
}

func (s *IntegrationTestSuite) TestLoginRateLimiting() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// simulate login requests brute force attack
	// config allows 10 login attempts per minute, the 11th gets a 429
	for i := 1; i <= 15; i++ {
		resp := doJSON(ctx, t, s.httpClient, "POST", "/login", credentials{
			Username: "test-user",
			Password: "test-pass",
		})

		if i <= 10 {
			require.Equal(t, http.StatusUnauthorized, resp.StatusCode, "iteration: %d", i)
			assert.Empty(t, resp.Header.Get("Retry-After"), "iteration: %d", i)
		} else {
			require.Equal(t, http.StatusTooManyRequests, resp.StatusCode, "iteration: %d", i)
			retryAfter, err := strconv.Atoi(resp.Header.Get("Retry-After"))
			require.NoError(t, err, "iteration: %d", i)
			assert.True(t, retryAfter > 0, "iteration: %d", i)
		}
		assert.Equal(t, "10", resp.Header.Get("X-RateLimit-Limit"))

		assert.NoError(t, resp.Body.Close())
	}
}
