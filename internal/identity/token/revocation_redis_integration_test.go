//go:build integration

package token_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"listly/internal/identity/token"
	"listly/pkg/testutil/containers"
)

type RedisRevocationSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	list  *token.RedisRevocationList
}

func TestRedisRevocationSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisRevocationSuite))
}

func (s *RedisRevocationSuite) SetupSuite() {
	s.redis = containers.NewRedisContainer(s.T())
	s.list = token.NewRedisRevocationList(s.redis.Client)
}

func (s *RedisRevocationSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisRevocationSuite) TestRevokeAndCheck() {
	ctx := context.Background()

	revoked, err := s.list.IsRevoked(ctx, "jti-1")
	s.Require().NoError(err)
	s.False(revoked)

	s.Require().NoError(s.list.RevokeToken(ctx, "jti-1", time.Hour))

	revoked, err = s.list.IsRevoked(ctx, "jti-1")
	s.Require().NoError(err)
	s.True(revoked)
}

func (s *RedisRevocationSuite) TestRevocationExpiresWithToken() {
	ctx := context.Background()

	s.Require().NoError(s.list.RevokeToken(ctx, "jti-short", 100*time.Millisecond))

	s.Require().Eventually(func() bool {
		revoked, err := s.list.IsRevoked(ctx, "jti-short")
		return err == nil && !revoked
	}, 5*time.Second, 50*time.Millisecond, "the key lapses when the token would have expired")
}

func (s *RedisRevocationSuite) TestEmptyJTI() {
	ctx := context.Background()

	s.Require().NoError(s.list.RevokeToken(ctx, "", time.Hour))

	revoked, err := s.list.IsRevoked(ctx, "")
	s.Require().NoError(err)
	s.False(revoked, "empty jtis are never considered revoked")
}
