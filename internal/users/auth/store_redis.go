// Copyright (c) 2026 Hirefly. All rights reserved.
// Author: engineering@hirefly.dev

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hirefly/hirefly/internal/platform/apperr"
	"github.com/hirefly/hirefly/internal/platform/constants"
)

// RedisOAuthStateStore implements OAuthStateStore using Redis.
//
// # Why Redis?
//
// The state must survive across two separate HTTP requests (the redirect to
// the provider and the callback) on any process instance, must expire on its
// own, and must be consumable exactly once. A keyspace with TTLs and an
// atomic GETDEL is precisely that.
type RedisOAuthStateStore struct {
	client *redis.Client
}

// NewOAuthStateStore creates a new Redis-backed OAuthStateStore.
func NewOAuthStateStore(client *redis.Client) *RedisOAuthStateStore {
	return &RedisOAuthStateStore{client: client}
}

/*
Put stores an OAuth state with the given TTL.

Parameters:
  - ctx: context.Context
  - state: string
  - ttl: time.Duration

Returns:
  - error: Storage failures
*/
func (store *RedisOAuthStateStore) Put(ctx context.Context, state string, ttl time.Duration) error {
	key := constants.RedisPrefixOAuthState + state

	if err := store.client.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("redis_oauth_state_put_failed: %w", err)
	}

	return nil
}

/*
Take atomically consumes an OAuth state.

Description: Uses GETDEL so a state can only ever be redeemed once; a replayed
callback with the same state fails like an unknown state.

Returns:
  - error: apperr.NotFound when the state is unknown, expired, or already used
*/
func (store *RedisOAuthStateStore) Take(ctx context.Context, state string) error {
	key := constants.RedisPrefixOAuthState + state

	_, err := store.client.GetDel(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return apperr.NotFound("OAuth state")
		}
		return fmt.Errorf("redis_oauth_state_take_failed: %w", err)
	}

	return nil
}
