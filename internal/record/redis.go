package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"evodex/pkg/models"
)

// DefaultRedisPrefix namespaces record keys.
const DefaultRedisPrefix = "dex_caught:"

// RedisStore keeps each record as a JSON string under prefix+name, without
// expiry. The client lifecycle is managed by the caller.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	return &RedisStore{client: client, prefix: prefix}
}

// NewRedisClient parses url and verifies the connection.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}

func (s *RedisStore) key(name string) string {
	return s.prefix + name
}

func (s *RedisStore) Get(ctx context.Context, name string) (*models.User, error) {
	b, err := s.client.Get(ctx, s.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}

	var u models.User
	if err := json.Unmarshal(b, &u); err != nil {
		return nil, fmt.Errorf("decode record %s: %w", name, err)
	}
	if u.CaughtFamilyIDs == nil {
		u.CaughtFamilyIDs = []string{}
	}
	return &u, nil
}

func (s *RedisStore) Put(ctx context.Context, u models.User) error {
	u.CaughtFamilyIDs = models.UniqueIDs(u.CaughtFamilyIDs)
	b, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("marshal record %s: %w", u.NameSlug, err)
	}
	if err := s.client.Set(ctx, s.key(u.NameSlug), b, 0).Err(); err != nil {
		return fmt.Errorf("set record %s: %w", u.NameSlug, err)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
