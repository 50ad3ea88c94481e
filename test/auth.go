//go:build integration_test

package test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/2beens/healthtrack/internal/account"

	"github.com/stretchr/testify/require"
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Confirm  string `json:"confirm,omitempty"`
}

func doJSON(ctx context.Context, t *testing.T, client *http.Client, method, path string, body any) *http.Response {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		reqJson, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewBuffer(reqJson)
	}

	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, reqBody)
	require.NoError(t, err)
	req.Header.Set("User-Agent", "test-agent")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(respBytes, v), string(respBytes))
}

func doRegister(ctx context.Context, t *testing.T, client *http.Client, username, password string) account.RegisterResponse {
	t.Helper()
	resp := doJSON(ctx, t, client, "POST", "/register", credentials{
		Username: username,
		Password: password,
		Confirm:  password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var registerResp account.RegisterResponse
	decodeBody(t, resp, &registerResp)
	return registerResp
}

// doLogin registers the test user, logs in with client and returns the session token.
func doLogin(ctx context.Context, t *testing.T, client *http.Client) string {
	t.Helper()
	doRegister(ctx, t, client, testUsername, testPassword)

	resp := doJSON(ctx, t, client, "POST", "/login", credentials{
		Username: testUsername,
		Password: testPassword,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var loginResp account.LoginResponse
	decodeBody(t, resp, &loginResp)
	require.NotEmpty(t, loginResp.Token)
	return loginResp.Token
}
