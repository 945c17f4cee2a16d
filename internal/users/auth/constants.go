// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package auth

import "time"

// # Session Constraints

const (
	// SessionTTL is the absolute duration a session remains valid. Sessions
	// are not renewed by activity: after 24 hours the token stops resolving
	// and the user must log in again.
	SessionTTL = 24 * time.Hour

	// SessionTokenLength is the byte length of the random opaque token.
	SessionTokenLength = 32
)
