// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mixlist/mixlist/internal/platform/sec"
)

/*
TestHashPassword_RoundTrip verifies that a hashed password verifies against
the original plaintext and nothing else.
*/
func TestHashPassword_RoundTrip(t *testing.T) {
	stored, err := sec.HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEmpty(t, stored)

	// Stored format is salt:hash, never the plaintext.
	assert.NotContains(t, stored, "correct horse")
	assert.Contains(t, stored, ":")

	assert.True(t, sec.CheckPasswordHash("correct horse battery staple", stored))
	assert.False(t, sec.CheckPasswordHash("wrong password", stored))
	assert.False(t, sec.CheckPasswordHash("", stored))
}

/*
TestHashPassword_UniqueSalts verifies two hashes of the same password differ.
*/
func TestHashPassword_UniqueSalts(t *testing.T) {
	first, err := sec.HashPassword("same-password")
	require.NoError(t, err)
	second, err := sec.HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

/*
TestCheckPasswordHash_MalformedStored verifies that corrupt stored values
never verify.
*/
func TestCheckPasswordHash_MalformedStored(t *testing.T) {
	tests := []struct {
		name   string
		stored string
	}{
		{"empty", ""},
		{"no_separator", "abcdef0123456789"},
		{"bad_salt_hex", "zz:abcdef"},
		{"bad_hash_hex", "abcdef:zz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, sec.CheckPasswordHash("anything", tt.stored))
		})
	}
}

/*
TestGenerateSecureToken verifies length and uniqueness of opaque tokens.
*/
func TestGenerateSecureToken(t *testing.T) {
	first, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)
	second, err := sec.GenerateSecureToken(32)
	require.NoError(t, err)

	// 32 random bytes hex-encode to 64 characters.
	assert.Len(t, first, 64)
	assert.NotEqual(t, first, second)
}

/*
TestHashToken verifies the digest is deterministic and never the input.
*/
func TestHashToken(t *testing.T) {
	digest := sec.HashToken("my-session-token")

	assert.Len(t, digest, 64)
	assert.Equal(t, digest, sec.HashToken("my-session-token"))
	assert.NotEqual(t, digest, sec.HashToken("other-token"))
}

/*
TestRole_In verifies strict set membership with no role hierarchy.
*/
func TestRole_In(t *testing.T) {
	tests := []struct {
		name    string
		role    sec.Role
		allowed []sec.Role
		want    bool
	}{
		{"member", sec.RoleManagement, []sec.Role{sec.RoleManagement}, true},
		{"multiple_allowed", sec.RoleRegularUser, []sec.Role{sec.RoleRegularUser, sec.RoleAdministrator}, true},
		// Administrator is NOT implicitly allowed on management routes.
		{"admin_not_hierarchical", sec.RoleAdministrator, []sec.Role{sec.RoleManagement}, false},
		{"management_not_admin", sec.RoleManagement, []sec.Role{sec.RoleAdministrator}, false},
		{"empty_set", sec.RoleAdministrator, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.In(tt.allowed...))
		})
	}
}

/*
TestRole_Valid checks the closed range of defined roles.
*/
func TestRole_Valid(t *testing.T) {
	assert.True(t, sec.RoleAdministrator.Valid())
	assert.True(t, sec.RoleUnregistered.Valid())
	assert.False(t, sec.Role(-1).Valid())
	assert.False(t, sec.Role(4).Valid())
}

/*
TestOwnerOrRole covers the ownership-or-role authorization predicate.
*/
func TestOwnerOrRole(t *testing.T) {
	owner := &sec.Principal{ID: 7, Role: sec.RoleRegularUser}
	admin := &sec.Principal{ID: 1, Role: sec.RoleAdministrator}
	other := &sec.Principal{ID: 9, Role: sec.RoleRegularUser}

	tests := []struct {
		name      string
		principal *sec.Principal
		ownerID   int64
		allowed   []sec.Role
		want      bool
	}{
		{"nil_principal", nil, 7, []sec.Role{sec.RoleAdministrator}, false},
		{"owner_passes", owner, 7, nil, true},
		{"admin_passes_by_role", admin, 7, []sec.Role{sec.RoleAdministrator}, true},
		{"stranger_denied", other, 7, []sec.Role{sec.RoleAdministrator}, false},
		{"role_not_in_set", other, 7, []sec.Role{sec.RoleManagement}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sec.OwnerOrRole(tt.principal, tt.ownerID, tt.allowed...))
		})
	}
}
