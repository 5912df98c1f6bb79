package flowstate_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"PayFlow/internal/store"

	"github.com/redis/go-redis/v9"
)

// RedisFlowStateRepo keeps one string value per storage key. A zero ttl keeps
// records forever.
type RedisFlowStateRepo struct {
	client redis.UniversalClient
	ttl    time.Duration
}

var _ store.Backend = (*RedisFlowStateRepo)(nil)

func NewRedisFlowStateRepo(client redis.UniversalClient, ttl time.Duration) *RedisFlowStateRepo {
	return &RedisFlowStateRepo{client: client, ttl: ttl}
}

// NewRedisClient connects and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (redis.UniversalClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

func (r *RedisFlowStateRepo) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("redis get flow state: %w", err)
	}
	return data, nil
}

func (r *RedisFlowStateRepo) Save(ctx context.Context, key string, data []byte) error {
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set flow state: %w", err)
	}
	return nil
}

func (r *RedisFlowStateRepo) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del flow state: %w", err)
	}
	return nil
}

func (r *RedisFlowStateRepo) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
