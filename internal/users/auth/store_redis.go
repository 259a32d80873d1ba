// Copyright (c) 2026 Revu. All rights reserved.
// Author: platform@revu.app

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/revuhq/revu/internal/platform/apperr"
	"github.com/revuhq/revu/internal/platform/constants"
)

// # Confirmation Code Repository

// RedisConfirmationCodeRepository implements ConfirmationCodeRepository using Redis.
//
// # Key Shape
//
// Codes are keyed by user ID (auth:confirmation_code:<userID>), so writing
// a new code atomically replaces the previous one. Expiry is delegated to
// the Redis TTL, no sweeper required.
type RedisConfirmationCodeRepository struct {
	client *redis.Client
}

// NewConfirmationCodeRepository creates a new Redis-backed ConfirmationCodeRepository.
func NewConfirmationCodeRepository(client *redis.Client) *RedisConfirmationCodeRepository {
	return &RedisConfirmationCodeRepository{client: client}
}

/*
Set stores the code hash for a user with a TTL, replacing any previous code.

Parameters:
  - context: context.Context
  - userID: string
  - codeHash: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisConfirmationCodeRepository) Set(context context.Context, userID string, codeHash string, ttl time.Duration) error {

	// Use constants for key prefix
	key := constants.RedisPrefixConfirmationCode + userID

	// Set the hash with TTL; an existing code for the user is overwritten
	if err := repository.client.Set(context, key, codeHash, ttl).Err(); err != nil {
		return fmt.Errorf("redis_confirmation_code_set_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
Get retrieves the stored code hash for a user.

Description: Returns apperr.NotFound if no code is pending or it has expired.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - string: Stored bcrypt hash
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisConfirmationCodeRepository) Get(context context.Context, userID string) (string, error) {

	// Use constants for key prefix
	key := constants.RedisPrefixConfirmationCode + userID

	// Get the hash from Redis
	codeHash, err := repository.client.Get(context, key).Result()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Confirmation code is invalid or expired")
		}
		return "", fmt.Errorf("redis_confirmation_code_get_failed: %w", err)
	}

	// Return the hash
	return codeHash, nil
}
