// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package sec

// # User Roles

// Role is the authorization tier assigned to an account.
//
// The numeric values are persisted in the users.role lookup table and must
// never be reordered. Roles are static configuration: they are seeded by
// migration and never created or destroyed at runtime.
type Role int

const (
	// Unrestricted system access
	RoleAdministrator Role = 0

	// Content moderation: genres, analytics read
	RoleManagement Role = 1

	// Own-content CRUD plus social actions
	RoleRegularUser Role = 2

	// Read-only, rate/content limited
	RoleUnregistered Role = 3
)

// # Membership

// In reports whether the role is a member of the allowed set.
//
// Roles form a closed set with no hierarchy: an operation names the exact
// roles it accepts, and membership is the only test applied.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// Valid reports whether the value is one of the four defined roles.
func (r Role) Valid() bool {
	return r >= RoleAdministrator && r <= RoleUnregistered
}

// Name returns the display name stored in the role lookup table.
func (r Role) Name() string {
	switch r {
	case RoleAdministrator:
		return "Administrator"
	case RoleManagement:
		return "Management"
	case RoleRegularUser:
		return "Regular User"
	case RoleUnregistered:
		return "Unregistered"
	default:
		return "Unknown"
	}
}
