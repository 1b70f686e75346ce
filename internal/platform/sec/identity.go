// Copyright (c) 2026 Hirefly. All rights reserved.
// Author: engineering@hirefly.dev

package sec

// Identity is the authorization snapshot of an account, resolved per request
// by the authentication middleware and stored in the request context.
//
// # Freshness
//
// Unlike the claims embedded in an access token, an Identity is re-read from
// the account store on every bearer request. A role change or account
// deletion therefore takes effect immediately, even for tokens that were
// issued before the change.
type Identity struct {
	// AccountID is the account's primary key (UUIDv7).
	AccountID string `json:"account_id"`
	// Email is the account's unique login identifier.
	Email string `json:"email"`
	// Role is the account's current authorization tier.
	Role Role `json:"role"`
}
