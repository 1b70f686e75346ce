// Copyright (c) 2026 Hirefly. All rights reserved.
// Author: engineering@hirefly.dev

package sec

// # User Roles

// Role represents the authorization tier granted to an account.
type Role string

const (
	// Unrestricted access, including user administration
	RoleAdmin Role = "admin"

	// Default role for standard registered users
	RoleMember Role = "member"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return r.level() >= target.level()
}

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	return r.level() > 0
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r Role) level() int {

	// Linear scale (10-40) leaves room for intermediate roles
	switch r {
	case RoleAdmin:
		return 40
	case RoleMember:
		return 10
	default:
		return 0
	}
}
