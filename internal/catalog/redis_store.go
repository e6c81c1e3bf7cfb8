package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/shivamcrackers/posbill-backend/pkg/redis"
)

// RedisSnapshotStore keeps the serialized catalog in a single redis string key.
type RedisSnapshotStore struct {
	client *redis.Client
}

// NewRedisSnapshotStore wraps the shared redis client.
func NewRedisSnapshotStore(client *redis.Client) (*RedisSnapshotStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &RedisSnapshotStore{client: client}, nil
}

func (s *RedisSnapshotStore) Load(ctx context.Context, key string) (string, bool, error) {
	payload, err := s.client.Get(ctx, s.client.CatalogKey(key))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return payload, true, nil
}

func (s *RedisSnapshotStore) Save(ctx context.Context, key, payload string) error {
	return s.client.Set(ctx, s.client.CatalogKey(key), payload, 0)
}
