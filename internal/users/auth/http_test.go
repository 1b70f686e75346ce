// Copyright (c) 2026 Hirefly. All rights reserved.
// Author: engineering@hirefly.dev

package auth_test

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirefly/hirefly/internal/platform/middleware"
	"github.com/hirefly/hirefly/internal/platform/sec"
	"github.com/hirefly/hirefly/internal/users/auth"
)

// newTestServer wires a real token service, in-memory stores, and the auth
// router into an httptest server.
func newTestServer(t *testing.T) (*httptest.Server, *memoryUserRepository) {
	t.Helper()

	tokens, err := sec.NewTokenService("http-test-secret", "hirefly.dev", time.Hour)
	require.NoError(t, err)

	repo := newMemoryUserRepository()
	service := auth.NewService(repo, newMemoryStateStore(), nil, tokens)
	authenticator := middleware.NewAuthenticator(tokens, service)
	handler := auth.NewHandler(service, authenticator, "http://localhost:3000")

	server := httptest.NewServer(handler.Routes())
	t.Cleanup(server.Close)

	return server, repo
}

func postJSON(t *testing.T, client *http.Client, url, body, bearer string) *http.Response {
	t.Helper()

	request, err := http.NewRequest(http.MethodPost, url, strings.NewReader(body))
	require.NoError(t, err)
	request.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		request.Header.Set("Authorization", "Bearer "+bearer)
	}

	response, err := client.Do(request)
	require.NoError(t, err)
	return response
}

func decodeData(t *testing.T, response *http.Response) map[string]any {
	t.Helper()
	defer response.Body.Close()

	var envelope struct {
		Data map[string]any `json:"data"`
	}
	require.NoError(t, json.NewDecoder(response.Body).Decode(&envelope))
	return envelope.Data
}

/*
TestAuthFlow_RegisterLoginChangePassword walks the full credential lifecycle
over HTTP: register, log in, use the bearer token on a protected route, and
verify the rotated password.
*/
func TestAuthFlow_RegisterLoginChangePassword(t *testing.T) {
	server, _ := newTestServer(t)
	client := server.Client()

	// ── 1. Register ──────────────────────────────────────────────────
	response := postJSON(t, client, server.URL+"/register",
		`{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","password":"first-password"}`, "")
	require.Equal(t, http.StatusCreated, response.StatusCode)

	registered := decodeData(t, response)
	assert.Equal(t, "member", registered["role"])
	assert.NotContains(t, registered, "password_hash")

	// ── 2. Login ─────────────────────────────────────────────────────
	response = postJSON(t, client, server.URL+"/login",
		`{"email":"ada@example.com","password":"first-password"}`, "")
	require.Equal(t, http.StatusOK, response.StatusCode)

	token, _ := decodeData(t, response)["access_token"].(string)
	require.NotEmpty(t, token)

	// ── 3. Protected route without a token is refused ────────────────
	response = postJSON(t, client, server.URL+"/change-password",
		`{"current_password":"first-password","new_password":"second-password"}`, "")
	response.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)

	// ── 4. Change password with the bearer token ─────────────────────
	response = postJSON(t, client, server.URL+"/change-password",
		`{"current_password":"first-password","new_password":"second-password"}`, token)
	response.Body.Close()
	assert.Equal(t, http.StatusNoContent, response.StatusCode)

	// ── 5. Old password refused, new password accepted ───────────────
	response = postJSON(t, client, server.URL+"/login",
		`{"email":"ada@example.com","password":"first-password"}`, "")
	response.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)

	response = postJSON(t, client, server.URL+"/login",
		`{"email":"ada@example.com","password":"second-password"}`, "")
	response.Body.Close()
	assert.Equal(t, http.StatusOK, response.StatusCode)
}

/*
TestAuthFlow_LoginErrorsAreUniform verifies over HTTP that unknown emails and
wrong passwords produce byte-identical error bodies.
*/
func TestAuthFlow_LoginErrorsAreUniform(t *testing.T) {
	server, _ := newTestServer(t)
	client := server.Client()

	response := postJSON(t, client, server.URL+"/register",
		`{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","password":"real-password"}`, "")
	response.Body.Close()
	require.Equal(t, http.StatusCreated, response.StatusCode)

	read := func(body string) string {
		response := postJSON(t, client, server.URL+"/login", body, "")
		defer response.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, response.StatusCode)

		var envelope map[string]any
		require.NoError(t, json.NewDecoder(response.Body).Decode(&envelope))
		message, _ := envelope["error"].(string)
		return message
	}

	unknownEmail := read(`{"email":"nobody@example.com","password":"real-password"}`)
	wrongPassword := read(`{"email":"ada@example.com","password":"wrong-password"}`)

	assert.Equal(t, unknownEmail, wrongPassword)
}

/*
TestAuthFlow_BasicLogin verifies the Basic-credential login path issues a
token, and that malformed or missing credentials are refused.
*/
func TestAuthFlow_BasicLogin(t *testing.T) {
	server, _ := newTestServer(t)
	client := server.Client()

	response := postJSON(t, client, server.URL+"/register",
		`{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","password":"basic-password"}`, "")
	response.Body.Close()
	require.Equal(t, http.StatusCreated, response.StatusCode)

	doBasic := func(header string) *http.Response {
		request, err := http.NewRequest(http.MethodPost, server.URL+"/login/basic", nil)
		require.NoError(t, err)
		if header != "" {
			request.Header.Set("Authorization", header)
		}
		response, err := client.Do(request)
		require.NoError(t, err)
		return response
	}

	// 1. Missing header
	response = doBasic("")
	response.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)

	// 2. Wrong password
	bad := base64.StdEncoding.EncodeToString([]byte("ada@example.com:wrong"))
	response = doBasic("Basic " + bad)
	response.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)

	// 3. Correct credentials yield a verifiable bearer token
	good := base64.StdEncoding.EncodeToString([]byte("ada@example.com:basic-password"))
	response = doBasic("Basic " + good)
	require.Equal(t, http.StatusOK, response.StatusCode)

	token, _ := decodeData(t, response)["access_token"].(string)
	require.NotEmpty(t, token)

	protected := postJSON(t, client, server.URL+"/change-password",
		`{"current_password":"basic-password","new_password":"rotated-password"}`, token)
	protected.Body.Close()
	assert.Equal(t, http.StatusNoContent, protected.StatusCode)
}

/*
TestAuthFlow_DeletedAccountTokenRejected verifies that a bearer token stops
working the moment its account disappears.
*/
func TestAuthFlow_DeletedAccountTokenRejected(t *testing.T) {
	server, repo := newTestServer(t)
	client := server.Client()

	response := postJSON(t, client, server.URL+"/register",
		`{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","password":"some-password"}`, "")
	registered := decodeData(t, response)
	require.Equal(t, http.StatusCreated, response.StatusCode)

	response = postJSON(t, client, server.URL+"/login",
		`{"email":"ada@example.com","password":"some-password"}`, "")
	token, _ := decodeData(t, response)["access_token"].(string)
	require.NotEmpty(t, token)

	// Delete the account out from under the live token
	accountID, _ := registered["id"].(string)
	delete(repo.users, accountID)

	response = postJSON(t, client, server.URL+"/change-password",
		`{"current_password":"some-password","new_password":"other-password"}`, token)
	response.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, response.StatusCode)
}
