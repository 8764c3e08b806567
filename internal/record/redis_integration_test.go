//go:build integration

package record

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"

	"evodex/pkg/models"
)

type RedisStoreSuite struct {
	suite.Suite
	container *tcredis.RedisContainer
	client    *redis.Client
	store     *RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcredis.Run(ctx, "redis:7-alpine")
	s.Require().NoError(err)
	s.container = container

	url, err := container.ConnectionString(ctx)
	s.Require().NoError(err)

	client, err := NewRedisClient(ctx, url)
	s.Require().NoError(err)
	s.client = client
	s.store = NewRedisStore(client, "")
}

func (s *RedisStoreSuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.Close()
	}
	if err := testcontainers.TerminateContainer(s.container); err != nil {
		s.T().Logf("terminate redis container: %v", err)
	}
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.client.FlushAll(context.Background()).Err())
}

func (s *RedisStoreSuite) TestGetMissing() {
	_, err := s.store.Get(context.Background(), "nobody")
	s.ErrorIs(err, ErrNotFound)
}

func (s *RedisStoreSuite) TestPutGetRoundTrip() {
	ctx := context.Background()
	s.Require().NoError(s.store.Put(ctx, models.User{NameSlug: "ashketchum", Version: 1, CaughtFamilyIDs: []string{"K 001", "K 001"}}))

	u, err := s.store.Get(ctx, "ashketchum")
	s.Require().NoError(err)
	s.Equal([]string{"K 001"}, u.CaughtFamilyIDs)

	ttl, err := s.client.TTL(ctx, DefaultRedisPrefix+"ashketchum").Result()
	s.Require().NoError(err)
	s.Equal(int64(-1), int64(ttl), "records never expire")
}

func (s *RedisStoreSuite) TestServiceOverRedis() {
	svc := NewService(s.store, nil, nil)
	u, err := svc.Put(context.Background(), "misty", []string{"J 003"})
	s.Require().NoError(err)
	s.Equal(1, u.Version)
	s.NoError(svc.Ready(context.Background()))
}
