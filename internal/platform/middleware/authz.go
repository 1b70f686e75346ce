// Copyright (c) 2026 Hirefly. All rights reserved.
// Author: engineering@hirefly.dev

// Package middleware provides the HTTP middleware chain for the Hirefly API server.
//
// # Architecture
//
// Middleware intercepts incoming HTTP requests to apply global policies
// before they reach the domain handlers. This file holds the authentication
// and authorization chain: bearer-token resolution, basic-credential
// extraction, and role gating.
package middleware

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/hirefly/hirefly/internal/platform/apperr"
	"github.com/hirefly/hirefly/internal/platform/constants"
	"github.com/hirefly/hirefly/internal/platform/ctxutil"
	"github.com/hirefly/hirefly/internal/platform/respond"
	"github.com/hirefly/hirefly/internal/platform/sec"
)

// # Contracts

// TokenVerifier defines the interface needed to verify access tokens.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the concrete
// [sec.TokenService], allowing mocks to be injected during unit testing.
type TokenVerifier interface {
	VerifyToken(tokenString string) (*sec.AuthClaims, error)
}

// AccountResolver resolves a token subject back into a live account identity.
//
// The bearer middleware calls this on every request so that role changes made
// after token issuance are observed, and so that a token whose account has
// been deleted stops working immediately.
type AccountResolver interface {
	ResolveAccount(ctx context.Context, accountID string) (*sec.Identity, error)
}

// CredentialVerifier checks an identifier/password pair against the account
// store. Implementations must return the same error for unknown identifiers
// and wrong passwords.
type CredentialVerifier interface {
	VerifyCredentials(ctx context.Context, email, password string) (*sec.Identity, error)
}

// # Bearer-Token Authentication

// Authenticator bundles token verification with account resolution.
//
// # Ordering by Construction
//
// [Authenticator.RequireRole] is a method rather than a free function: a role
// gate can only be built from an Authenticator, and the returned middleware
// always runs bearer resolution before the role check. Mounting a role gate
// without authentication is therefore impossible, not merely a runtime bug.
type Authenticator struct {
	verifier TokenVerifier
	accounts AccountResolver
}

// NewAuthenticator constructs an [Authenticator] from its two collaborators.
func NewAuthenticator(verifier TokenVerifier, accounts AccountResolver) *Authenticator {
	return &Authenticator{verifier: verifier, accounts: accounts}
}

// RequireToken enforces 'Authorization: Bearer <token>' authentication.
//
// # Flow
//  1. Reject with 401 when the header is absent or not in Bearer form.
//  2. Verify the token via [TokenVerifier]; any failure (signature, expiry,
//     malformed, wrong algorithm) yields the same generic 401.
//  3. Re-fetch the account by the token subject via [AccountResolver]; a
//     deleted account or resolution failure also yields 401.
//  4. Inject the resolved [*sec.Identity] into the request context.
func (a *Authenticator) RequireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		authHeader := request.Header.Get(constants.HeaderAuthorization)

		// ── 1. Header Presence & Format ───────────────────────────────────
		if authHeader == "" {
			respond.Error(writer, request, apperr.Unauthorized("Bearer token required in Authorization header"))
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], constants.AuthSchemeBearer) {
			respond.Error(writer, request, apperr.Unauthorized("Bearer token required in Authorization header"))
			return
		}

		// ── 2. Token Verification ─────────────────────────────────────────
		// One generic message for every verification failure: the response
		// never discloses whether the token was expired, tampered, or garbage.
		claims, err := a.verifier.VerifyToken(parts[1])
		if err != nil {
			respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
			return
		}

		// ── 3. Account Resolution ─────────────────────────────────────────
		// The token only proves who the account WAS at issuance. Re-reading
		// the store picks up role changes and surfaces deleted accounts.
		identity, err := a.accounts.ResolveAccount(request.Context(), claims.Subject)
		if err != nil {
			respond.Error(writer, request, apperr.Unauthorized("Invalid or expired token"))
			return
		}

		// ── 4. Context Injection ──────────────────────────────────────────
		ctx := ctxutil.WithIdentity(request.Context(), identity)
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// # Role Authorization

// RequireRole returns middleware that admits only accounts whose role meets
// or exceeds the target role.
//
// # Usage
//
// The returned middleware performs bearer authentication itself (it wraps
// [Authenticator.RequireToken]), so routes use either RequireToken or
// RequireRole, never both.
//
// # Flow
//  1. Resolve the identity exactly as [RequireToken] does.
//  2. Compare the live role against the target using [sec.Role.AtLeast].
//  3. Abort with HTTP 403 Forbidden on insufficient privilege.
func (a *Authenticator) RequireRole(role sec.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		roleCheck := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			identity := ctxutil.GetIdentity(request.Context())

			// RequireToken has always run at this point; a nil identity here
			// would be a wiring defect, and the safe answer is still 401.
			if identity == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			if !identity.Role.AtLeast(role) {
				respond.Error(writer, request, apperr.Forbidden("Insufficient permissions"))
				return
			}

			next.ServeHTTP(writer, request)
		})

		return a.RequireToken(roleCheck)
	}
}

// # Basic-Credential Authentication

// BasicAuth enforces 'Authorization: Basic <base64(email:password)>'
// authentication for the non-token login path.
//
// # Flow
//  1. Reject with 401 "credentials required" when the header is absent.
//  2. Decode the base64 blob and split identifier from password on the first
//     colon. Malformed input is treated exactly like bad credentials; no
//     parsing detail leaks to the caller.
//  3. Verify via [CredentialVerifier]; inject the identity on success.
func BasicAuth(verifier CredentialVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Header Presence ────────────────────────────────────────
			if authHeader == "" {
				respond.Error(writer, request, apperr.Unauthorized("Credentials required in Authorization header"))
				return
			}

			// ── 2. Scheme & Payload Parsing ───────────────────────────────
			email, password, ok := decodeBasicCredentials(authHeader)
			if !ok {
				respond.Error(writer, request, apperr.Unauthorized("Invalid credentials"))
				return
			}

			// ── 3. Credential Verification ────────────────────────────────
			identity, err := verifier.VerifyCredentials(request.Context(), email, password)
			if err != nil {
				respond.Error(writer, request, apperr.Unauthorized("Invalid credentials"))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────
			ctx := ctxutil.WithIdentity(request.Context(), identity)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// decodeBasicCredentials parses a Basic Authorization header value into its
// identifier and password. The password may itself contain colons; only the
// first colon separates the pair.
func decodeBasicCredentials(authHeader string) (email, password string, ok bool) {
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], constants.AuthSchemeBasic) {
		return "", "", false
	}

	decoded, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return "", "", false
	}

	email, password, found := strings.Cut(string(decoded), ":")
	if !found || email == "" {
		return "", "", false
	}

	return email, password, true
}
