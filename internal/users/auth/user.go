// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

/*
Package auth implements the user identity and session management layer.

It defines the core domain entities (User, Session) and logic for
authentication, session lifecycle, and principal resolution.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no external
dependencies and encapsulate all business rules related to user identity.

Sessions are opaque: the client holds a random token whose SHA-256 hash is the
only thing the server stores. Authorization decisions never trust data baked
into the token — every request re-resolves the account, so role changes and
deletions take effect immediately.
*/
package auth

import (
	"time"

	"github.com/mixlist/mixlist/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Mixlist platform.
type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Explicitly omitted from JSON for security.
	AvatarURL    string     `json:"avatar_url,omitempty"`
	Role         sec.Role   `json:"role_id"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// Principal converts the account into its per-request authorization view.
func (u *User) Principal() *sec.Principal {
	return &sec.Principal{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// Session represents an active opaque-token session.
//
// Sessions carry an absolute expiry: they are never extended by activity.
type Session struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	TokenHash string    `json:"-"` // Hashed value of the opaque token. Omitted for security.
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Expired reports whether the session's absolute lifetime has passed.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldLogin    = "login"
	FieldToken    = "token"
	FieldUser     = "user"
	FieldMessage  = "message"
)

// # Validation Constraints

const (
	// MaxUsernameLength bounds usernames for display and storage.
	MaxUsernameLength = 16

	// MinPasswordLength is the minimum accepted password size.
	MinPasswordLength = 6
)
