// Copyright (c) 2026 Getemall. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/getemall/getemall/internal/platform/constants"
)

// RedisStore keeps sessions as JSON documents under "session:<id>".
//
// Every load and save resets the TTL, giving a sliding expiry.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed [Store].
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Load implements [Store].
func (store *RedisStore) Load(ctx context.Context, id string) (*Session, error) {
	payload, err := store.client.GetEx(ctx, key(id), store.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("session: redis getex failed: %w", err)
	}

	loaded := &Session{}
	if err := json.Unmarshal(payload, loaded); err != nil {
		return nil, fmt.Errorf("session: corrupt session %s: %w", id, err)
	}
	return loaded, nil
}

// Save implements [Store].
func (store *RedisStore) Save(ctx context.Context, session *Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("session: encode failed: %w", err)
	}

	if err := store.client.Set(ctx, key(session.ID), payload, store.ttl).Err(); err != nil {
		return fmt.Errorf("session: redis set failed: %w", err)
	}
	return nil
}

// Delete implements [Store].
func (store *RedisStore) Delete(ctx context.Context, id string) error {
	if err := store.client.Del(ctx, key(id)).Err(); err != nil {
		return fmt.Errorf("session: redis del failed: %w", err)
	}
	return nil
}

func key(id string) string {
	return constants.RedisPrefixSession + id
}
