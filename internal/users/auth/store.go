// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id int64) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string (matched case-insensitively; emails are stored lowercase)

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		ListAll returns every account. Used to warm the principal cache.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*User: All accounts
		  - error: Database retrieval failures
	*/
	ListAll(context context.Context) ([]*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User (ID, CreatedAt, UpdatedAt assigned by the database)

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		Update persists changes to mutable profile fields.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, user *User) error

	/*
		UpdatePassword replaces only the user's password hash.

		Parameters:
		  - context: context.Context
		  - userID: int64
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	UpdatePassword(context context.Context, userID int64, newHash string) error

	/*
		UpdateRole replaces only the user's role assignment.

		Parameters:
		  - context: context.Context
		  - userID: int64
		  - role: int

		Returns:
		  - error: Persistence failures
	*/
	UpdateRole(context context.Context, userID int64, role int) error

	/*
		TouchLastLogin stamps the account's last successful login time.

		Parameters:
		  - context: context.Context
		  - userID: int64

		Returns:
		  - error: Persistence failures
	*/
	TouchLastLogin(context context.Context, userID int64) error

	/*
		Delete permanently removes the account row.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, id int64) error
}

// # Session Data Access

// SessionRepository defines the data access contract for durable sessions.
//
// Postgres is the source of truth for sessions; the Redis cache in front of it
// is an optimization that may be dropped at any time without losing logins.
type SessionRepository interface {

	/*
		Create persists a new session for an authenticated login.

		Parameters:
		  - context: context.Context
		  - session: *Session

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, session *Session) error

	/*
		FindByTokenHash returns the session matching the given token hash.
		Expiry is NOT checked here — callers decide what a dead session means.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - *Session: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByTokenHash(context context.Context, tokenHash string) (*Session, error)

	/*
		DeleteByTokenHash removes a single session.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - error: Persistence failures
	*/
	DeleteByTokenHash(context context.Context, tokenHash string) error

	/*
		DeleteAllForUser removes every session belonging to the userID.
		Called when an account is deleted or its role changes.

		Parameters:
		  - context: context.Context
		  - userID: int64

		Returns:
		  - error: Persistence failures
	*/
	DeleteAllForUser(context context.Context, userID int64) error

	/*
		DeleteExpired physically removes sessions whose ExpiresAt is in the past.

		Parameters:
		  - context: context.Context

		Returns:
		  - error: Persistence failures
	*/
	DeleteExpired(context context.Context) error
}

// # Volatile Session Cache

// SessionCacheRepository is the read-through cache in front of the durable
// session store. It maps token hashes to user IDs with the session's
// remaining TTL.
type SessionCacheRepository interface {

	/*
		Set caches a token-hash to user-ID mapping for a limited duration.

		Parameters:
		  - context: context.Context
		  - tokenHash: string
		  - userID: int64
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, tokenHash string, userID int64, ttl time.Duration) error

	/*
		Get retrieves the userID associated with a cached token hash.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - int64: UserID
		  - error: apperr.NotFound on cache miss, or connectivity errors
	*/
	Get(context context.Context, tokenHash string) (int64, error)

	/*
		Delete evicts a cached token hash.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - error: Deletion failures
	*/
	Delete(context context.Context, tokenHash string) error
}
