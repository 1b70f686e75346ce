// Copyright (c) 2026 Hirefly. All rights reserved.
// Author: engineering@hirefly.dev

package auth_test

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirefly/hirefly/internal/platform/apperr"
	"github.com/hirefly/hirefly/internal/platform/sec"
	"github.com/hirefly/hirefly/internal/users/auth"
)

// fakeProvider returns a canned profile for any authorization code.
type fakeProvider struct {
	profile     *auth.Profile
	exchangeErr error
}

func (f *fakeProvider) AuthCodeURL(state string) string {
	return "https://provider.example.com/authorize?state=" + url.QueryEscape(state)
}

func (f *fakeProvider) ExchangeCodeForProfile(ctx context.Context, code string) (*auth.Profile, error) {
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return f.profile, nil
}

func graceProfile() *auth.Profile {
	return &auth.Profile{
		Subject:    "google-subject-42",
		Email:      "grace@example.com",
		GivenName:  "Grace",
		FamilyName: "Hopper",
		Picture:    "https://example.com/grace.png",
	}
}

// beginAndExtractState runs BeginFederatedLogin and pulls the state back out
// of the returned authorization URL.
func beginAndExtractState(t *testing.T, service *auth.Service) string {
	t.Helper()

	authURL, err := service.BeginFederatedLogin(context.Background())
	require.NoError(t, err)

	parsed, err := url.Parse(authURL)
	require.NoError(t, err)

	state := parsed.Query().Get("state")
	require.NotEmpty(t, state)
	return state
}

/*
TestFederatedLogin_CreatesAccountOnFirstArrival verifies that completing a
federated login for an unknown email creates a passwordless member account
and issues a token for it.
*/
func TestFederatedLogin_CreatesAccountOnFirstArrival(t *testing.T) {
	repo := newMemoryUserRepository()
	service := newTestService(repo, newMemoryStateStore(), &fakeProvider{profile: graceProfile()})

	state := beginAndExtractState(t, service)

	result, err := service.CompleteFederatedLogin(context.Background(), state, "auth-code")
	require.NoError(t, err)

	assert.True(t, result.IsNewAccount)
	assert.Equal(t, sec.RoleMember, result.Role)
	assert.True(t, strings.HasPrefix(result.AccessToken, "token-for-"))

	// The created account is passwordless and carries the provider subject
	created, err := repo.FindByEmail(context.Background(), "grace@example.com")
	require.NoError(t, err)
	assert.False(t, created.HasPassword())
	assert.Equal(t, "google-subject-42", created.GoogleID)
	assert.Equal(t, "Grace", created.FirstName)

	// Passwordless accounts cannot log in locally
	_, err = service.Login(context.Background(), auth.LoginInput{Email: "grace@example.com", Password: ""})
	assert.Error(t, err)
}

/*
TestFederatedLogin_MatchesExistingByEmail verifies that a federated login
against an account that registered with a password lands in the existing
account instead of creating another one.
*/
func TestFederatedLogin_MatchesExistingByEmail(t *testing.T) {
	repo := newMemoryUserRepository()
	service := newTestService(repo, newMemoryStateStore(), &fakeProvider{profile: graceProfile()})

	// Account registered the classic way, same email as the provider profile
	existing := registerTestUser(t, service, "grace@example.com", "local-password")

	state := beginAndExtractState(t, service)
	result, err := service.CompleteFederatedLogin(context.Background(), state, "auth-code")
	require.NoError(t, err)

	assert.False(t, result.IsNewAccount)
	assert.Equal(t, "token-for-"+existing.ID, result.AccessToken)

	// Exactly one account exists
	_, total, err := repo.List(context.Background(), 100, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, total)

	// The local password still works after the federated login
	_, err = service.Login(context.Background(), auth.LoginInput{Email: "grace@example.com", Password: "local-password"})
	assert.NoError(t, err)
}

/*
TestFederatedLogin_StateSingleUse verifies that a state is consumed on first
redemption: replaying the callback fails like an unknown state.
*/
func TestFederatedLogin_StateSingleUse(t *testing.T) {
	repo := newMemoryUserRepository()
	service := newTestService(repo, newMemoryStateStore(), &fakeProvider{profile: graceProfile()})

	state := beginAndExtractState(t, service)

	_, err := service.CompleteFederatedLogin(context.Background(), state, "auth-code")
	require.NoError(t, err)

	_, err = service.CompleteFederatedLogin(context.Background(), state, "auth-code")
	require.Error(t, err)
	assert.Equal(t, "FEDERATED_LOGIN_FAILED", apperr.As(err).Code)
}

/*
TestFederatedLogin_UnknownState verifies that a forged or expired state is
rejected before the code exchange.
*/
func TestFederatedLogin_UnknownState(t *testing.T) {
	service := newTestService(newMemoryUserRepository(), newMemoryStateStore(), &fakeProvider{profile: graceProfile()})

	_, err := service.CompleteFederatedLogin(context.Background(), "never-issued", "auth-code")
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "FEDERATED_LOGIN_FAILED", appError.Code)
	assert.Equal(t, 401, appError.HTTPStatus)
}

/*
TestFederatedLogin_ExchangeFailure verifies that a provider exchange failure
collapses into the single federated-login error code.
*/
func TestFederatedLogin_ExchangeFailure(t *testing.T) {
	provider := &fakeProvider{exchangeErr: errors.New("provider unreachable")}
	service := newTestService(newMemoryUserRepository(), newMemoryStateStore(), provider)

	state := beginAndExtractState(t, service)

	_, err := service.CompleteFederatedLogin(context.Background(), state, "bad-code")
	require.Error(t, err)
	assert.Equal(t, "FEDERATED_LOGIN_FAILED", apperr.As(err).Code)
}

/*
TestFederatedLogin_ProfileWithoutEmail verifies that a profile missing an
email cannot be matched or enrolled.
*/
func TestFederatedLogin_ProfileWithoutEmail(t *testing.T) {
	provider := &fakeProvider{profile: &auth.Profile{Subject: "s1"}}
	service := newTestService(newMemoryUserRepository(), newMemoryStateStore(), provider)

	state := beginAndExtractState(t, service)

	_, err := service.CompleteFederatedLogin(context.Background(), state, "auth-code")
	require.Error(t, err)
	assert.Equal(t, "FEDERATED_LOGIN_FAILED", apperr.As(err).Code)
}

/*
TestFederatedLogin_NotConfigured verifies both entry points fail with 503
when no provider is wired.
*/
func TestFederatedLogin_NotConfigured(t *testing.T) {
	service := newTestService(newMemoryUserRepository(), newMemoryStateStore(), nil)

	_, err := service.BeginFederatedLogin(context.Background())
	require.Error(t, err)
	assert.Equal(t, 503, apperr.As(err).HTTPStatus)

	_, err = service.CompleteFederatedLogin(context.Background(), "state", "code")
	require.Error(t, err)
	assert.Equal(t, 503, apperr.As(err).HTTPStatus)
}
