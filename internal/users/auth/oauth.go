// Copyright (c) 2026 Hirefly. All rights reserved.
// Author: engineering@hirefly.dev

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/hirefly/hirefly/internal/platform/apperr"
	"github.com/hirefly/hirefly/internal/platform/sec"
	"github.com/hirefly/hirefly/pkg/uuid"
)

// # Federated Login Contracts

// Profile is the provider-neutral subset of an identity provider's userinfo
// document that the login bridge needs.
type Profile struct {
	Subject    string
	Email      string
	GivenName  string
	FamilyName string
	Picture    string
}

// ProfileProvider abstracts an OAuth2/OIDC identity provider.
//
// Implementations own the client credentials, endpoints, and scopes; the
// service only ever sees an authorization URL and a verified profile.
type ProfileProvider interface {

	// AuthCodeURL builds the provider's authorization URL carrying the given
	// anti-CSRF state.
	AuthCodeURL(state string) string

	// ExchangeCodeForProfile redeems an authorization code for the
	// authenticated user's profile.
	ExchangeCodeForProfile(ctx context.Context, code string) (*Profile, error)
}

// FederatedLogin is the outcome of a completed federated login.
type FederatedLogin struct {
	AccessToken  string
	Role         sec.Role
	IsNewAccount bool
}

// # Federated Login Flow

/*
BeginFederatedLogin mints a single-use anti-CSRF state and returns the
provider authorization URL to redirect the browser to.

Parameters:
  - ctx: context.Context

Returns:
  - string: Provider authorization URL
  - error: ServiceUnavailable when no provider is configured
*/
func (service *Service) BeginFederatedLogin(ctx context.Context) (string, error) {
	if service.provider == nil {
		return "", apperr.ServiceUnavailable("Federated login is not configured")
	}

	state, err := sec.GenerateSecureToken(OAuthStateLength)
	if err != nil {
		return "", fmt.Errorf("auth_service_oauth_state_failed: %w", err)
	}

	if err := service.states.Put(ctx, state, OAuthStateTTL); err != nil {
		return "", fmt.Errorf("auth_service_oauth_state_store_failed: %w", err)
	}

	return service.provider.AuthCodeURL(state), nil
}

/*
CompleteFederatedLogin consumes the callback from the identity provider and
returns a signed access token for the matched-or-created local account.

Steps:

 1. Consume the anti-CSRF state (single use; replays fail).
 2. Exchange the authorization code for the provider profile.
 3. Match an existing account by email, or create a passwordless one.
 4. Issue a standard access token.

Accounts are matched by email regardless of how they originally registered,
so a member who signed up with a password can later arrive through the
provider and land in the same account. Any verification failure collapses
into one federated-login error so the callback cannot be used as an oracle.

Parameters:
  - ctx: context.Context
  - state: string (anti-CSRF value echoed back by the provider)
  - code: string (authorization code)

Returns:
  - *FederatedLogin: Access token plus account facts
  - error: apperr.FederatedLogin on any verification failure
*/
func (service *Service) CompleteFederatedLogin(ctx context.Context, state, code string) (*FederatedLogin, error) {
	if service.provider == nil {
		return nil, apperr.ServiceUnavailable("Federated login is not configured")
	}

	if err := service.states.Take(ctx, state); err != nil {
		return nil, apperr.FederatedLogin(fmt.Errorf("oauth_state_rejected: %w", err))
	}

	profile, err := service.provider.ExchangeCodeForProfile(ctx, code)
	if err != nil {
		return nil, apperr.FederatedLogin(fmt.Errorf("oauth_exchange_failed: %w", err))
	}
	if profile.Email == "" {
		return nil, apperr.FederatedLogin(errors.New("oauth_profile_missing_email"))
	}

	user, created, err := service.findOrCreateFederatedUser(ctx, profile)
	if err != nil {
		return nil, apperr.FederatedLogin(err)
	}

	accessToken, err := service.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &FederatedLogin{
		AccessToken:  accessToken,
		Role:         user.Role,
		IsNewAccount: created,
	}, nil
}

// findOrCreateFederatedUser matches an account by the profile email, creating
// a passwordless member account on first arrival. The created account carries
// the provider subject but no local password hash, so it cannot pass local
// credential verification.
func (service *Service) findOrCreateFederatedUser(ctx context.Context, profile *Profile) (*User, bool, error) {
	user, err := service.users.FindByEmail(ctx, profile.Email)
	if err == nil {
		return user, false, nil
	}
	if !apperr.IsAppError(err) {
		return nil, false, fmt.Errorf("oauth_lookup_failed: %w", err)
	}

	user = &User{
		ID:        uuid.New(),
		FirstName: profile.GivenName,
		LastName:  profile.FamilyName,
		Email:     profile.Email,
		Role:      sec.RoleMember,
		GoogleID:  profile.Subject,
		ImageURL:  profile.Picture,
	}

	if err := service.users.Create(ctx, user); err != nil {
		return nil, false, fmt.Errorf("oauth_account_create_failed: %w", err)
	}

	return user, true, nil
}
