// Copyright (c) 2026 Hirefly. All rights reserved.
// Author: engineering@hirefly.dev

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the fixed validity window stamped into every access
	// token at issuance. One week, independent of anything that happens to
	// the account afterwards; there is no revocation.
	AccessTokenTTL = 7 * 24 * time.Hour

	// OAuthStateTTL bounds how long a federated-login round trip may take
	// between the redirect to the provider and the callback.
	OAuthStateTTL = 10 * time.Minute

	// OAuthStateLength is the byte length of the random anti-CSRF state.
	OAuthStateLength = 16
)
