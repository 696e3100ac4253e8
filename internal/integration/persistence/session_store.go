// Package persistence implements the application's storage ports.
package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/conciliador/backend/internal/application/adapter"
	"github.com/conciliador/backend/internal/domain/entity"
	domainerror "github.com/conciliador/backend/internal/domain/error"
)

const sessionKeyPrefix = "reconciliation:session:"

// redisSessionStore implements adapter.SessionStore on Redis, storing one
// JSON-serialized snapshot per session ID with a TTL.
type redisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore creates a Redis-backed session store. A zero TTL
// keeps snapshots until explicitly deleted.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) adapter.SessionStore {
	return &redisSessionStore{
		client: client,
		ttl:    ttl,
	}
}

// Save stores a snapshot, replacing any previous one under the same ID.
func (s *redisSessionStore) Save(ctx context.Context, snapshot *entity.SessionSnapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKey(snapshot.ID), payload, s.ttl).Err()
}

// Load retrieves a snapshot by session ID.
func (s *redisSessionStore) Load(ctx context.Context, id uuid.UUID) (*entity.SessionSnapshot, error) {
	payload, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domainerror.NewSessionError(
				domainerror.ErrCodeSessionNotFound,
				"no snapshot stored under session "+id.String(),
				domainerror.ErrSessionNotFound,
			)
		}
		return nil, err
	}

	var snapshot entity.SessionSnapshot
	if err := json.Unmarshal(payload, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// Delete removes a snapshot; missing keys are not an error.
func (s *redisSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.client.Del(ctx, sessionKey(id)).Err()
}

func sessionKey(id uuid.UUID) string {
	return sessionKeyPrefix + id.String()
}
