// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package auth

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/mixlist/mixlist/internal/platform/apperr"
	"github.com/mixlist/mixlist/internal/platform/sec"
)

// PrincipalCache is an in-memory snapshot of every account's authorization
// view (ID, username, email, role).
//
// # Concurrency
//
// Readers load an immutable snapshot map through an atomic pointer and never
// block. Writers (ReloadAll, Invalidate) serialize on a mutex, build a fresh
// map, and swap it in atomically — a request in flight keeps the snapshot it
// started with, the next request sees the new one.
//
// # Freshness
//
// The cache is refreshed in-place whenever the accounts change (the account
// service calls Invalidate after every write), so a role change or deletion
// is visible to the very next request without waiting for a TTL.
type PrincipalCache struct {
	repo   UserRepository
	logger *slog.Logger

	// writeMu serializes snapshot replacement; lookups never take it.
	writeMu  sync.Mutex
	snapshot atomic.Pointer[map[int64]*sec.Principal]
}

// NewPrincipalCache constructs an empty cache. Call [PrincipalCache.ReloadAll]
// once at startup to warm it.
func NewPrincipalCache(repo UserRepository, logger *slog.Logger) *PrincipalCache {
	cache := &PrincipalCache{
		repo:   repo,
		logger: logger,
	}

	empty := make(map[int64]*sec.Principal)
	cache.snapshot.Store(&empty)

	return cache
}

/*
ReloadAll replaces the entire snapshot from storage in one atomic swap.

Parameters:
  - context: context.Context

Returns:
  - error: Database retrieval failures (the previous snapshot stays in place)
*/
func (cache *PrincipalCache) ReloadAll(ctx context.Context) error {
	cache.writeMu.Lock()
	defer cache.writeMu.Unlock()

	users, err := cache.repo.ListAll(ctx)
	if err != nil {
		return err
	}

	next := make(map[int64]*sec.Principal, len(users))
	for _, user := range users {
		next[user.ID] = user.Principal()
	}

	cache.snapshot.Store(&next)
	cache.logger.InfoContext(ctx, "principal_cache_reloaded", slog.Int("accounts", len(next)))

	return nil
}

/*
Invalidate refreshes a single account in the snapshot.

The account is re-read from storage: if it still exists the entry is replaced,
if it was deleted the entry is dropped. Either way the swap is atomic.

Parameters:
  - context: context.Context
  - userID: int64

Returns:
  - error: Database retrieval failures (NotFound is handled, not returned)
*/
func (cache *PrincipalCache) Invalidate(ctx context.Context, userID int64) error {
	cache.writeMu.Lock()
	defer cache.writeMu.Unlock()

	user, err := cache.repo.FindByID(ctx, userID)
	deleted := false
	if err != nil {
		var appError *apperr.AppError
		if errors.As(err, &appError) && appError.Code == "NOT_FOUND" {
			deleted = true
		} else {
			return err
		}
	}

	current := *cache.snapshot.Load()
	next := make(map[int64]*sec.Principal, len(current)+1)
	for id, principal := range current {
		next[id] = principal
	}

	if deleted {
		delete(next, userID)
	} else {
		next[userID] = user.Principal()
	}

	cache.snapshot.Store(&next)
	return nil
}

/*
Lookup resolves a userID to its current principal.

On a snapshot miss (e.g. an account created since the last reload on another
node) it falls back to storage and folds the result into the snapshot.

Parameters:
  - context: context.Context
  - userID: int64

Returns:
  - *sec.Principal: The account's authorization view
  - error: apperr.NotFound if the account no longer exists
*/
func (cache *PrincipalCache) Lookup(ctx context.Context, userID int64) (*sec.Principal, error) {
	current := *cache.snapshot.Load()
	if principal, ok := current[userID]; ok {
		return principal, nil
	}

	// Miss: the snapshot may simply predate this account.
	if err := cache.Invalidate(ctx, userID); err != nil {
		return nil, err
	}

	refreshed := *cache.snapshot.Load()
	if principal, ok := refreshed[userID]; ok {
		return principal, nil
	}

	return nil, apperr.NotFound("User")
}

// Size returns the number of cached principals. Used by health reporting.
func (cache *PrincipalCache) Size() int {
	return len(*cache.snapshot.Load())
}
