// Copyright (c) 2026 Eternize. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/eternize/eternize/internal/platform/apperr"
	"github.com/eternize/eternize/internal/platform/constants"
)

// # Session Store

// RedisSessionStore implements SessionStore using Redis.
//
// Each session lives under its token hash with the refresh TTL; a per-user
// set indexes the hashes so every device can be revoked at once.
type RedisSessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a new Redis-backed SessionStore.
func NewSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{client: client}
}

/*
Save stores a refresh session under its token hash and indexes it per user.

Parameters:
  - context: context.Context
  - tokenHash: string
  - userID: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (store *RedisSessionStore) Save(context context.Context, tokenHash, userID string, ttl time.Duration) error {

	// Use constants for key prefix
	key := constants.RedisPrefixSession + tokenHash
	indexKey := constants.RedisPrefixUserSessions + userID

	// Set the session with TTL
	if err := store.client.Set(context, key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_save_failed: %w", err)
	}

	// Index the hash for bulk revocation. The index outlives expired members;
	// RevokeAll tolerates stale hashes.
	if err := store.client.SAdd(context, indexKey, tokenHash).Err(); err != nil {
		return fmt.Errorf("redis_session_index_failed: %w", err)
	}
	if err := store.client.Expire(context, indexKey, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_index_expire_failed: %w", err)
	}

	return nil
}

/*
Resolve returns the userID owning the session with the given token hash.

Description: Returns apperr.NotFound if the session is absent or expired.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - string: UserID
  - error: apperr.NotFound or connectivity errors
*/
func (store *RedisSessionStore) Resolve(context context.Context, tokenHash string) (string, error) {

	// Use constants for key prefix
	key := constants.RedisPrefixSession + tokenHash

	// Get the session from Redis
	userID, err := store.client.Get(context, key).Result()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Session not found or expired")
		}
		return "", fmt.Errorf("redis_session_resolve_failed: %w", err)
	}

	// Return the userID
	return userID, nil
}

/*
Revoke removes one session and its index entry.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - error: Deletion failures
*/
func (store *RedisSessionStore) Revoke(context context.Context, tokenHash string) error {

	// Use constants for key prefix
	key := constants.RedisPrefixSession + tokenHash

	// Resolve the owner so the index entry can be cleaned up too
	userID, err := store.client.Get(context, key).Result()
	if err == nil {
		indexKey := constants.RedisPrefixUserSessions + userID
		_ = store.client.SRem(context, indexKey, tokenHash).Err()
	}

	// Delete the session from Redis
	if err := store.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_session_revoke_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
RevokeAll removes every session belonging to the userID.

Description: Security nuking of all active sessions for a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Batch revocation failures
*/
func (store *RedisSessionStore) RevokeAll(context context.Context, userID string) error {

	// Use constants for key prefix
	indexKey := constants.RedisPrefixUserSessions + userID

	// Collect every indexed token hash
	hashes, err := store.client.SMembers(context, indexKey).Result()
	if err != nil {
		return fmt.Errorf("redis_session_revoke_all_failed: %w", err)
	}

	// Delete each session key
	for _, hash := range hashes {
		_ = store.client.Del(context, constants.RedisPrefixSession+hash).Err()
	}

	// Drop the index itself
	if err := store.client.Del(context, indexKey).Err(); err != nil {
		return fmt.Errorf("redis_session_index_delete_failed: %w", err)
	}

	return nil
}

// # Reset Token Repository

// RedisResetTokenRepository implements ResetTokenRepository using Redis.
type RedisResetTokenRepository struct {
	client *redis.Client
}

// NewResetTokenRepository creates a new Redis-backed ResetTokenRepository.
func NewResetTokenRepository(client *redis.Client) *RedisResetTokenRepository {
	return &RedisResetTokenRepository{client: client}
}

/*
Set stores a reset token with its associated userID and TTL.

Parameters:
  - context: context.Context
  - token: string
  - userID: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisResetTokenRepository) Set(context context.Context, token string, userID string, ttl time.Duration) error {

	// Use constants for key prefix
	key := constants.RedisPrefixResetToken + token

	// Set the token with TTL
	if err := repository.client.Set(context, key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_set_failed: %w", err)
	}

	// Return nil on success
	return nil
}

/*
Get retrieves the userID for a given token.

Description: Returns apperr.NotFound if the token is absent or expired.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - string: Original UserID
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisResetTokenRepository) Get(context context.Context, token string) (string, error) {

	// Use constants for key prefix
	key := constants.RedisPrefixResetToken + token

	// Get the token from Redis
	userID, err := repository.client.Get(context, key).Result()

	// Handle errors
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Reset token is invalid or expired")
		}
		return "", fmt.Errorf("redis_reset_token_get_failed: %w", err)
	}

	// Return the userID
	return userID, nil
}

/*
Delete removes the token from Redis.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisResetTokenRepository) Delete(context context.Context, token string) error {

	// Use constants for key prefix
	key := constants.RedisPrefixResetToken + token

	// Delete the token from Redis
	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_delete_failed: %w", err)
	}

	// Return nil on success
	return nil
}
