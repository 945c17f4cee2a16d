// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

// Package sec provides cryptographic primitives for the platform: password
// hashing, opaque session token generation, and the role model consulted by
// every protected operation.
//
// # Architecture
//
// This package isolates security-sensitive code from domain logic. It has no
// dependencies on storage or transport and is safe to import from any layer.
package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// # Session Tokens

// GenerateSecureToken returns a hex-encoded, cryptographically random token
// of the given byte length. Used for opaque session identifiers.
func GenerateSecureToken(length int) (string, error) {
	raw := make([]byte, length)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("sec: failed to generate token: %w", err)
	}
	return hex.EncodeToString(raw), nil
}

// HashToken returns the SHA-256 hex digest of a token.
//
// Only the digest is persisted, so a leaked session table does not yield
// usable tokens.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// # Principal

// Principal is the resolved identity of the actor behind a request.
//
// It is attached to the request context by the session middleware and read by
// the authorization gate. A nil *Principal means anonymous (Unregistered
// access rules apply). The snapshot is resolved fresh from the principal
// cache on every request, so a role change takes effect on the next request
// without re-login.
type Principal struct {
	ID       int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role_id"`
}

// OwnerOrRole reports whether the principal owns the target entity or holds
// one of the allowed roles. A nil principal never passes.
//
// Evaluation is pure: no side effects, safe to re-evaluate on every request.
func OwnerOrRole(p *Principal, entityOwnerID int64, allowed ...Role) bool {
	if p == nil {
		return false
	}
	if p.ID == entityOwnerID {
		return true
	}
	return p.Role.In(allowed...)
}
