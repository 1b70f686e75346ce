// Copyright (c) 2026 Hirefly. All rights reserved.
// Author: engineering@hirefly.dev

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	// FindByID returns the account with the given ID, or an error when the
	// account does not exist (including accounts deleted after a token was
	// issued against them).
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail returns the account with the given unique email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Create persists a brand-new account. The PasswordHash field is stored
	// as-is: an empty hash is persisted as NULL for federated accounts.
	Create(ctx context.Context, user *User) error

	// Update persists changes to mutable profile fields. It never writes the
	// password hash; that is the exclusive job of UpdatePassword.
	Update(ctx context.Context, user *User) error

	// UpdatePassword replaces only the account's password hash.
	UpdatePassword(ctx context.Context, userID, newHash string) error

	// Delete removes the account permanently.
	Delete(ctx context.Context, id string) error

	// List returns a page of accounts plus the total count.
	List(ctx context.Context, limit, offset int) ([]User, int, error)
}

// # Volatile Data Access

// OAuthStateStore stores the single-use anti-CSRF states minted when a
// federated login begins.
type OAuthStateStore interface {

	// Put stores a state for a limited duration.
	Put(ctx context.Context, state string, ttl time.Duration) error

	// Take consumes a state: it fails when the state is unknown or expired,
	// and removes it so a second callback with the same state also fails.
	Take(ctx context.Context, state string) error
}
