// Copyright (c) 2026 Mixlist. All rights reserved.
// Author: dev@mixlist.fm

package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mixlist/mixlist/internal/platform/apperr"
	"github.com/mixlist/mixlist/internal/platform/constants"
)

// # Session Cache (Redis)

// RedisSessionCacheRepository implements SessionCacheRepository.
//
// Keys carry the session's remaining TTL, so the cache can never outlive the
// durable session it fronts. A Redis flush only costs one Postgres round trip
// per active session — logins survive.
type RedisSessionCacheRepository struct {
	client *redis.Client
}

// NewSessionCacheRepository creates a new Redis-backed SessionCacheRepository.
func NewSessionCacheRepository(client *redis.Client) *RedisSessionCacheRepository {
	return &RedisSessionCacheRepository{client: client}
}

/*
Set caches a token-hash to user-ID mapping with the session's remaining TTL.

Parameters:
  - context: context.Context
  - tokenHash: string
  - userID: int64
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisSessionCacheRepository) Set(ctx context.Context, tokenHash string, userID int64, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	key := constants.RedisPrefixSession + tokenHash

	if err := repository.client.Set(ctx, key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}

	return nil
}

/*
Get retrieves the userID for a cached token hash.

Description: Returns apperr.NotFound if the key is absent or expired.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - int64: UserID
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisSessionCacheRepository) Get(ctx context.Context, tokenHash string) (int64, error) {
	key := constants.RedisPrefixSession + tokenHash

	raw, err := repository.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, apperr.NotFound("Session")
		}
		return 0, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("redis_session_corrupt_value: %w", err)
	}

	return userID, nil
}

/*
Delete evicts a cached token hash.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisSessionCacheRepository) Delete(ctx context.Context, tokenHash string) error {
	key := constants.RedisPrefixSession + tokenHash

	if err := repository.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}

	return nil
}
