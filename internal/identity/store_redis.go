// Copyright (c) 2026 Scrib. All rights reserved.
// Author: m.goullet@scrib.dev

package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mgoullet/scrib/internal/platform/apperr"
	"github.com/mgoullet/scrib/internal/platform/constants"
)

// RedisResetTokenRepository stores password-reset tokens in Redis under a
// fixed key prefix. Expiry is enforced by Redis itself via the key TTL, so
// redeemed-too-late and never-issued both surface as a missing key.
type RedisResetTokenRepository struct {
	client *redis.Client
}

// NewResetTokenRepository creates a Redis implementation of the ResetTokenRepository.
func NewResetTokenRepository(client *redis.Client) *RedisResetTokenRepository {
	return &RedisResetTokenRepository{client: client}
}

// Set stores the hashed token keyed to the user for the given duration.
func (repository *RedisResetTokenRepository) Set(ctx context.Context, tokenHash, userID string, ttl time.Duration) error {
	key := constants.RedisPrefixResetToken + tokenHash

	if err := repository.client.Set(ctx, key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_set_failed: %w", err)
	}

	return nil
}

// Get returns the user associated with the hashed token.
//
// # Returns
//
// Returns [apperr.NotFound] when the token is unknown or already expired.
func (repository *RedisResetTokenRepository) Get(ctx context.Context, tokenHash string) (string, error) {
	key := constants.RedisPrefixResetToken + tokenHash

	userID, err := repository.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Reset token")
		}
		return "", fmt.Errorf("redis_reset_token_get_failed: %w", err)
	}

	return userID, nil
}

// Delete removes the token after a successful redemption.
func (repository *RedisResetTokenRepository) Delete(ctx context.Context, tokenHash string) error {
	key := constants.RedisPrefixResetToken + tokenHash

	if err := repository.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_delete_failed: %w", err)
	}

	return nil
}
