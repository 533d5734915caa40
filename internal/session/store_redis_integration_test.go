//go:build integration

package session_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"medibook/internal/session"
	"medibook/pkg/domain"
	"medibook/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *session.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.store = session.NewRedisStore(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func makeSession(ttl time.Duration) session.Session {
	return session.Session{
		Token:     uuid.NewString(),
		UserID:    uuid.NewString(),
		Role:      domain.RoleDoctor,
		ExpiresAt: time.Now().Add(ttl).UTC().Truncate(time.Millisecond),
	}
}

func (s *RedisStoreSuite) TestSaveAndFind() {
	ctx := context.Background()
	sess := makeSession(time.Hour)
	s.Require().NoError(s.store.Save(ctx, sess))

	got, err := s.store.Find(ctx, sess.Token)
	s.Require().NoError(err)
	s.Equal(sess.UserID, got.UserID)
	s.Equal(domain.RoleDoctor, got.Role)
	s.Equal(sess.ExpiresAt, got.ExpiresAt)
}

func (s *RedisStoreSuite) TestExpiredSessionIsRejectedOnSave() {
	sess := makeSession(-time.Minute)
	s.Error(s.store.Save(context.Background(), sess))
}

func (s *RedisStoreSuite) TestTTLEviction() {
	ctx := context.Background()
	sess := makeSession(500 * time.Millisecond)
	s.Require().NoError(s.store.Save(ctx, sess))

	_, err := s.store.Find(ctx, sess.Token)
	s.Require().NoError(err)

	s.Require().Eventually(func() bool {
		_, err := s.store.Find(ctx, sess.Token)
		return err == session.ErrNotFound
	}, 3*time.Second, 100*time.Millisecond, "redis should evict the key when the TTL lapses")
}

func (s *RedisStoreSuite) TestDelete() {
	ctx := context.Background()
	sess := makeSession(time.Hour)
	s.Require().NoError(s.store.Save(ctx, sess))

	s.Require().NoError(s.store.Delete(ctx, sess.Token))

	_, err := s.store.Find(ctx, sess.Token)
	s.ErrorIs(err, session.ErrNotFound)

	s.ErrorIs(s.store.Delete(ctx, sess.Token), session.ErrNotFound)
}
