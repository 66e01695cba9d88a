package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// sessionKeyPrefix namespaces session keys so the same Redis instance can be
// shared with other consumers.
const sessionKeyPrefix = "session:"

// SessionRedis stores opaque session tokens in Redis with a server-side TTL.
// The value is the login email the session was established for; the user row
// is re-read on every request, so nothing else needs to live here.
type SessionRedis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionRedis(client *redis.Client, ttl time.Duration) *SessionRedis {
	return &SessionRedis{client: client, ttl: ttl}
}

var _ Sessions = (*SessionRedis)(nil)

func sessionKey(token string) string { return sessionKeyPrefix + token }

// Issue creates a fresh token bound to the given email.
func (s *SessionRedis) Issue(ctx context.Context, email string) (string, error) {
	token := uuid.NewString()
	if err := s.client.Set(ctx, sessionKey(token), email, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Resolve returns the email bound to the token, or ("", nil) when the token
// is unknown or has expired.
func (s *SessionRedis) Resolve(ctx context.Context, token string) (string, error) {
	email, err := s.client.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("resolve session: %w", err)
	}
	return email, nil
}

// Rebind points an existing token at a new email, keeping the remaining TTL.
// A token that has already expired is left alone; the caller simply has to
// log in again.
func (s *SessionRedis) Rebind(ctx context.Context, token, email string) error {
	err := s.client.SetXX(ctx, sessionKey(token), email, redis.KeepTTL).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("rebind session: %w", err)
	}
	return nil
}

// Delete invalidates a token. Deleting an unknown token is a no-op.
func (s *SessionRedis) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
