package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"medibook/pkg/domain"
)

// RedisStore keeps sessions in Redis with the TTL matching the token expiry,
// so expired sessions vanish without a sweeper.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

type redisSession struct {
	UserID    string    `json:"user_id"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

func sessionKey(tokenID string) string {
	return "session:" + tokenID
}

func (s *RedisStore) Save(ctx context.Context, sess Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}
	payload, err := json.Marshal(redisSession{
		UserID:    sess.UserID,
		Role:      sess.Role.String(),
		ExpiresAt: sess.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.client.Set(ctx, sessionKey(sess.Token), payload, ttl).Err()
}

func (s *RedisStore) Find(ctx context.Context, tokenID string) (Session, error) {
	raw, err := s.client.Get(ctx, sessionKey(tokenID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Session{}, ErrNotFound
		}
		return Session{}, fmt.Errorf("get session: %w", err)
	}
	var stored redisSession
	if err := json.Unmarshal(raw, &stored); err != nil {
		return Session{}, fmt.Errorf("unmarshal session: %w", err)
	}
	return Session{
		Token:     tokenID,
		UserID:    stored.UserID,
		Role:      domain.Role(stored.Role),
		ExpiresAt: stored.ExpiresAt,
	}, nil
}

func (s *RedisStore) Delete(ctx context.Context, tokenID string) error {
	n, err := s.client.Del(ctx, sessionKey(tokenID)).Result()
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
