// Copyright (c) 2026 Hirefly. All rights reserved.
// Author: engineering@hirefly.dev

package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v3/userinfo"

// GoogleProvider implements ProfileProvider against Google's OAuth2 endpoints.
type GoogleProvider struct {
	config *oauth2.Config
}

// NewGoogleProvider configures a Google OAuth2 client. The redirect URL must
// match one registered on the Google Cloud credential.
func NewGoogleProvider(clientID, clientSecret, redirectURL string) *GoogleProvider {
	return &GoogleProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// AuthCodeURL builds the Google authorization URL carrying the given state.
func (provider *GoogleProvider) AuthCodeURL(state string) string {
	return provider.config.AuthCodeURL(state)
}

/*
ExchangeCodeForProfile redeems the authorization code for an access token and
fetches the authenticated user's profile from the userinfo endpoint.

Parameters:
  - ctx: context.Context
  - code: string

Returns:
  - *Profile: Provider-verified identity facts
  - error: Exchange or userinfo failures
*/
func (provider *GoogleProvider) ExchangeCodeForProfile(ctx context.Context, code string) (*Profile, error) {
	token, err := provider.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("google_oauth_exchange_failed: %w", err)
	}

	// The oauth2 client injects the bearer token and handles refresh.
	client := provider.config.Client(ctx, token)
	response, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("google_oauth_userinfo_failed: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google_oauth_userinfo_status: %d", response.StatusCode)
	}

	var payload struct {
		Sub        string `json:"sub"`
		Email      string `json:"email"`
		GivenName  string `json:"given_name"`
		FamilyName string `json:"family_name"`
		Picture    string `json:"picture"`
	}
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("google_oauth_userinfo_decode_failed: %w", err)
	}

	return &Profile{
		Subject:    payload.Sub,
		Email:      payload.Email,
		GivenName:  payload.GivenName,
		FamilyName: payload.FamilyName,
		Picture:    payload.Picture,
	}, nil
}
