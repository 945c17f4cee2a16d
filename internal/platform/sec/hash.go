// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package sec

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/scrypt"
)

// Stored password format: "<salt-hex>:<hash-hex>".
//
// The salt is 16 random bytes, the derived key is 64 bytes. Verification
// recomputes the hash with the stored salt and compares in constant time, so
// neither the plaintext nor a fast hash of it is ever persisted or compared.
const (
	saltLength = 16
	keyLength  = 64

	// scrypt cost parameters (interactive-login profile).
	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

// HashPassword derives a salted scrypt hash for a plain-text password.
func HashPassword(plainTextPassword string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("sec: failed to generate salt: %w", err)
	}

	hash, err := scrypt.Key([]byte(plainTextPassword), salt, scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}

	return hex.EncodeToString(salt) + ":" + hex.EncodeToString(hash), nil
}

// CheckPasswordHash verifies a plain-text password against a stored salt:hash
// pair using a constant-time comparison of the recomputed hash.
func CheckPasswordHash(plainTextPassword, stored string) bool {
	saltHex, hashHex, ok := strings.Cut(stored, ":")
	if !ok {
		return false
	}

	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false
	}
	expected, err := hex.DecodeString(hashHex)
	if err != nil {
		return false
	}

	computed, err := scrypt.Key([]byte(plainTextPassword), salt, scryptN, scryptR, scryptP, len(expected))
	if err != nil {
		return false
	}

	return subtle.ConstantTimeCompare(computed, expected) == 1
}
