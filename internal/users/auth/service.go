// Copyright (c) 2026 Hirefly. All rights reserved.
// Author: engineering@hirefly.dev

/*
Package auth implements the identity and access management core.

It handles registration with secure password hashing, credential
verification, stateless access-token issuance, and the federated (Google)
login bridge.

Architecture:

  - Service: Orchestrates business logic (Register, Login, federated login).
  - Repository: Abstracted interfaces for Postgres (accounts) and Redis (OAuth states).
  - Security: Leverages bcrypt hashing and HMAC-signed tokens via platform/sec.

# Review Process

This package is critical for security. Any change to hashing, credential
comparison, or token issuance must be reviewed by the security owners.
*/
package auth

import (
	"context"
	"fmt"

	"github.com/hirefly/hirefly/internal/platform/apperr"
	"github.com/hirefly/hirefly/internal/platform/sec"
	"github.com/hirefly/hirefly/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for minting signed access tokens.
//
// The validity window is owned by the provider (fixed at construction), so a
// caller cannot vary the lifetime of individual tokens.
type TokenProvider interface {
	GenerateAccessToken(accountID, email, role string) (string, error)
}

// Service implements the authentication use cases.
type Service struct {
	users    UserRepository
	states   OAuthStateStore
	provider ProfileProvider
	tokens   TokenProvider
}

// NewService constructs a new [Service] with its dependencies.
//
// provider may be nil when federated login is not configured; the federated
// entry points then fail with a service-unavailable error.
func NewService(users UserRepository, states OAuthStateStore, provider ProfileProvider, tokens TokenProvider) *Service {
	return &Service{
		users:    users,
		states:   states,
		provider: provider,
		tokens:   tokens,
	}
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

/*
Register validates, hashes, and persists a brand new account.

The plaintext password is hashed exactly here and nowhere else on the
registration path; the stored value is only ever the bcrypt hash.

Parameters:
  - ctx: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: Conflict (if the email is taken) or storage errors
*/
func (service *Service) Register(ctx context.Context, input RegisterInput) (*User, error) {

	// Verify email uniqueness. Return a client-safe Conflict error.
	_, err := service.users.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, apperr.Conflict("Email is already registered")
	}

	// Never store plaintext. Cost factor is fixed in sec.PasswordHashCost.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Time-sortable ID to prevent index fragmentation.
	user := &User{
		ID:           uuid.New(),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         sec.RoleMember,
	}

	if err := service.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	return user, nil
}

// # Credential Verification

// checkCredentials looks up exactly one account by email and compares the
// supplied plaintext against the stored hash.
//
// Unknown email, wrong password, and federated-only accounts (no local
// secret) all return the identical error, so no caller, and therefore no
// HTTP response, can distinguish them. No side effects.
func (service *Service) checkCredentials(ctx context.Context, email, password string) (*User, error) {
	user, err := service.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	if !user.HasPassword() {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}

	return user, nil
}

// VerifyCredentials implements [middleware.CredentialVerifier] for the
// Basic-credential login path.
func (service *Service) VerifyCredentials(ctx context.Context, email, password string) (*sec.Identity, error) {
	user, err := service.checkCredentials(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return user.Identity(), nil
}

// ResolveAccount implements [middleware.AccountResolver] for the bearer
// middleware: it re-reads the account named by a verified token subject so
// that post-issuance role changes and deletions take effect immediately.
func (service *Service) ResolveAccount(ctx context.Context, accountID string) (*sec.Identity, error) {
	user, err := service.users.FindByID(ctx, accountID)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired token")
	}
	return user.Identity(), nil
}

// # Login Flow

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult represents a successfully authenticated login.
type LoginResult struct {
	AccessToken string
	User        *User
}

/*
Login validates credentials and issues a signed access token.

Parameters:
  - ctx: context.Context
  - input: LoginInput

Returns:
  - *LoginResult: Transport-ready token plus the account
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	user, err := service.checkCredentials(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	accessToken, err := service.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return &LoginResult{
		AccessToken: accessToken,
		User:        user,
	}, nil
}

// IssueToken mints an access token for an already-authenticated account.
// Used by the Basic-credential login path, where the middleware has verified
// the password before the handler runs.
func (service *Service) IssueToken(ctx context.Context, accountID string) (string, error) {
	user, err := service.users.FindByID(ctx, accountID)
	if err != nil {
		return "", apperr.Unauthorized("Invalid credentials")
	}

	accessToken, err := service.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return "", fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	return accessToken, nil
}

// # Password Management

/*
ChangePassword allows an authenticated user to rotate their credentials.

This and Register are the only two paths that hash a password: the hash is
re-computed exactly once, only because the secret value itself changed.

Parameters:
  - ctx: context.Context
  - accountID: string
  - currentPassword: string
  - newPassword: string

Returns:
  - error: Unauthorized or storage failures
*/
func (service *Service) ChangePassword(ctx context.Context, accountID, currentPassword, newPassword string) error {
	user, err := service.users.FindByID(ctx, accountID)
	if err != nil {
		return err
	}

	// Federated-only accounts have no current password to verify against.
	if !user.HasPassword() || !sec.CheckPasswordHash(currentPassword, user.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("auth_service_change_password_hash_failed: %w", err)
	}

	if err := service.users.UpdatePassword(ctx, accountID, hashedPassword); err != nil {
		return fmt.Errorf("auth_service_change_password_update_failed: %w", err)
	}

	return nil
}
