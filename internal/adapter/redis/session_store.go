package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// sessionKeyPrefix is the single canonical session keyspace. Older dashboards
// juggled two divergently named session keys; the server recognizes only this
// one, keyed by account id.
const sessionKeyPrefix = "session:"

type SessionStore struct {
	rdb *redis.Client
}

func NewSessionStore(rdb *redis.Client) *SessionStore {
	return &SessionStore{rdb: rdb}
}

func (s *SessionStore) Save(ctx context.Context, accountID, token string, ttl time.Duration) error {
	return s.rdb.Set(ctx, sessionKeyPrefix+accountID, token, ttl).Err()
}

// Get returns the cached token, or "" when no session exists.
func (s *SessionStore) Get(ctx context.Context, accountID string) (string, error) {
	token, err := s.rdb.Get(ctx, sessionKeyPrefix+accountID).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return token, err
}

func (s *SessionStore) Delete(ctx context.Context, accountID string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+accountID).Err()
}
