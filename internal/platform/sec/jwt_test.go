// Copyright (c) 2026 Hirefly. All rights reserved.
// Author: engineering@hirefly.dev

package sec_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirefly/hirefly/internal/platform/sec"
)

const testIssuer = "hirefly.dev"

func newTestService(t *testing.T, ttl time.Duration) *sec.TokenService {
	t.Helper()

	service, err := sec.NewTokenService("unit-test-signing-secret", testIssuer, ttl)
	require.NoError(t, err)
	return service
}

/*
TestNewTokenService_RejectsEmptySecret verifies the constructor refuses an
empty signing secret.
*/
func TestNewTokenService_RejectsEmptySecret(t *testing.T) {
	_, err := sec.NewTokenService("", testIssuer, time.Hour)
	assert.Error(t, err)
}

/*
TestNewTokenService_RejectsNonPositiveTTL verifies the constructor refuses a
zero or negative validity window.
*/
func TestNewTokenService_RejectsNonPositiveTTL(t *testing.T) {
	_, err := sec.NewTokenService("secret", testIssuer, 0)
	assert.Error(t, err)
}

/*
TestVerifyToken_RoundTrip verifies that a freshly issued token validates and
carries the original claims.
*/
func TestVerifyToken_RoundTrip(t *testing.T) {
	service := newTestService(t, time.Hour)

	token, err := service.GenerateAccessToken("account-123", "ada@example.com", "member")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.VerifyToken(token)
	require.NoError(t, err)

	assert.Equal(t, "account-123", claims.Subject)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "member", claims.Role)
	assert.Equal(t, testIssuer, claims.Issuer)
}

/*
TestVerifyToken_Expired verifies that an expired token is rejected with the
generic invalid-token error.
*/
func TestVerifyToken_Expired(t *testing.T) {
	// A negative TTL is rejected at construction, so build the expired token
	// by hand with the same secret and issuer.
	service := newTestService(t, time.Hour)

	past := time.Now().Add(-2 * time.Hour)
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "account-123",
			Issuer:    testIssuer,
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Minute)),
		},
	})
	signed, err := expired.SignedString([]byte("unit-test-signing-secret"))
	require.NoError(t, err)

	_, err = service.VerifyToken(signed)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
}

/*
TestVerifyToken_TamperedSignature verifies that flipping a byte of the token
invalidates it.
*/
func TestVerifyToken_TamperedSignature(t *testing.T) {
	service := newTestService(t, time.Hour)

	token, err := service.GenerateAccessToken("account-123", "ada@example.com", "member")
	require.NoError(t, err)

	// Flip the last character of the signature segment
	tampered := token[:len(token)-1]
	if token[len(token)-1] == 'A' {
		tampered += "B"
	} else {
		tampered += "A"
	}

	_, err = service.VerifyToken(tampered)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
}

/*
TestVerifyToken_WrongSecret verifies that a token signed with another secret
is rejected.
*/
func TestVerifyToken_WrongSecret(t *testing.T) {
	issuing, err := sec.NewTokenService("other-secret", testIssuer, time.Hour)
	require.NoError(t, err)

	token, err := issuing.GenerateAccessToken("account-123", "ada@example.com", "member")
	require.NoError(t, err)

	verifying := newTestService(t, time.Hour)
	_, err = verifying.VerifyToken(token)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
}

/*
TestVerifyToken_WrongIssuer verifies that a token from a different issuer is
rejected even when the signature is valid.
*/
func TestVerifyToken_WrongIssuer(t *testing.T) {
	issuing, err := sec.NewTokenService("unit-test-signing-secret", "someone-else.dev", time.Hour)
	require.NoError(t, err)

	token, err := issuing.GenerateAccessToken("account-123", "ada@example.com", "member")
	require.NoError(t, err)

	verifying := newTestService(t, time.Hour)
	_, err = verifying.VerifyToken(token)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
}

/*
TestVerifyToken_AlgorithmNone verifies that an unsigned token declaring the
"none" algorithm is rejected before signature comparison.
*/
func TestVerifyToken_AlgorithmNone(t *testing.T) {
	service := newTestService(t, time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "account-123",
			Issuer:    testIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
}

/*
TestVerifyToken_MissingSubject verifies that a structurally valid token with
no subject claim is rejected.
*/
func TestVerifyToken_MissingSubject(t *testing.T) {
	service := newTestService(t, time.Hour)

	anonymous := jwt.NewWithClaims(jwt.SigningMethodHS256, sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	token, err := anonymous.SignedString([]byte("unit-test-signing-secret"))
	require.NoError(t, err)

	_, err = service.VerifyToken(token)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
}

/*
TestVerifyToken_Garbage verifies that malformed input is rejected with the
same opaque error as every other failure.
*/
func TestVerifyToken_Garbage(t *testing.T) {
	service := newTestService(t, time.Hour)

	for _, input := range []string{"", "not-a-token", "a.b.c"} {
		_, err := service.VerifyToken(input)
		assert.ErrorIs(t, err, sec.ErrInvalidToken)
	}
}
