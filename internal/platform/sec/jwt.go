// Copyright (c) 2026 Hirefly. All rights reserved.
// Author: engineering@hirefly.dev

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, token signing) from
// the domain logic. It acts as an infrastructure service injected into the
// application layer via small interfaces (TokenProvider, TokenVerifier).
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is the single error returned for every verification
// failure. Signature mismatch, malformed structure, wrong algorithm, and
// expiry are deliberately indistinguishable to the caller.
var ErrInvalidToken = errors.New("sec: invalid token")

// AuthClaims represents the payload embedded inside an access token.
//
// # Contents
//
// The subject carries the account ID; email and role are convenience claims
// for logging and debugging. Authorization decisions never trust the embedded
// role: the bearer middleware re-reads the account from storage so that role
// changes after issuance are observed.
type AuthClaims struct {
	jwt.RegisteredClaims

	// Custom application claims are abbreviated to keep the token compact.
	Email string `json:"eml,omitempty"`
	Role  string `json:"rol,omitempty"`
}

// TokenService issues and verifies HS256-signed access tokens.
//
// # Statelessness
//
// A token's validity window is fixed at issuance and checked purely against
// the embedded timestamps. Any process holding the signing secret can verify
// any token with no shared state, and there is no revocation list: a leaked
// token stays valid until its natural expiry.
type TokenService struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

// NewTokenService creates a TokenService with an immutable signing secret,
// issuer, and validity duration.
//
// The secret is process-wide configuration; an empty secret is a fatal
// misconfiguration and must abort startup.
func NewTokenService(secret, issuer string, ttl time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, errors.New("sec: token signing secret must not be empty")
	}
	if ttl <= 0 {
		return nil, errors.New("sec: token ttl must be positive")
	}

	return &TokenService{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
	}, nil
}

// GenerateAccessToken creates a signed access token for an account.
//
// The expiry is always issued-at plus the service's fixed TTL; callers
// cannot extend or shrink individual tokens.
func (service *TokenService) GenerateAccessToken(accountID, email, role string) (string, error) {
	currentTime := time.Now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(service.ttl)),
		},
		Email: email,
		Role:  role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// VerifyToken checks the signature and validity of a token string.
//
// # Algorithm Confusion
//
// The key function only ever hands the secret to HMAC methods. A token
// declaring "none", an RSA method, or any other algorithm is rejected before
// signature comparison, so the configured algorithm cannot be downgraded by
// the token itself.
func (service *TokenService) VerifyToken(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("sec: unexpected signing method: %v", token.Header["alg"])
		}
		return service.secret, nil
	}, jwt.WithIssuer(service.issuer))

	// Collapse every parse/validation failure into one opaque error so the
	// response cannot act as an oracle for why the token was rejected.
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
