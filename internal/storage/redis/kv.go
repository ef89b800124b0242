package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultStateTTL keeps an idle search session for a week
const DefaultStateTTL = 7 * 24 * time.Hour

// KV satisfies search.KV with expiring Redis strings
type KV struct {
	client *redis.Client
	ttl    time.Duration
}

// NewKV wraps client; ttl <= 0 uses DefaultStateTTL
func NewKV(client *redis.Client, ttl time.Duration) *KV {
	if ttl <= 0 {
		ttl = DefaultStateTTL
	}
	return &KV{client: client, ttl: ttl}
}

func (k *KV) Get(ctx context.Context, key string) ([]byte, bool, error) {
	b, err := k.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (k *KV) Set(ctx context.Context, key string, value []byte) error {
	return k.client.Set(ctx, key, value, k.ttl).Err()
}

func (k *KV) Delete(ctx context.Context, key string) error {
	return k.client.Del(ctx, key).Err()
}

// Shutdown closes the client
func (k *KV) Shutdown(context.Context) error {
	return k.client.Close()
}
