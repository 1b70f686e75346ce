// Copyright (c) 2026 Hirefly. All rights reserved.
// Author: engineering@hirefly.dev

/*
Package auth implements the user identity and access layer.

It defines the core account entity and the logic for credential verification,
token issuance, and federated (OAuth) login.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.
*/
package auth

import (
	"time"

	"github.com/hirefly/hirefly/internal/platform/sec"
)

// # Domain Entities

// User represents a registered Hirefly account.
//
// # Secrets
//
// PasswordHash is empty for accounts created through federated login; such
// accounts can never authenticate with a password, only through the identity
// provider. The plaintext password is never stored, and the hash is written
// exactly once per password value; profile updates never touch it.
type User struct {
	ID           string   `json:"id"`
	FirstName    string   `json:"first_name"`
	LastName     string   `json:"last_name"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.Role `json:"role"`

	// GoogleID is the provider-assigned subject for federated accounts.
	GoogleID string `json:"-"`

	ImageURL  string    `json:"image_url,omitempty"`
	Headline  string    `json:"headline,omitempty"`
	Location  string    `json:"location,omitempty"`
	LinkedIn  string    `json:"linkedin,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HasPassword reports whether the account can authenticate locally.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// Identity returns the authorization snapshot used by the middleware chain.
func (u *User) Identity() *sec.Identity {
	return &sec.Identity{
		AccountID: u.ID,
		Email:     u.Email,
		Role:      u.Role,
	}
}

// # Field Identifiers

// Global field names for validation and identity mapping in the auth domain.
const (
	FieldFirstName       = "first_name"
	FieldLastName        = "last_name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
	FieldAccessToken     = "access_token"
)
