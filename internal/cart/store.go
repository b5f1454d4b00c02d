package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store keeps one cart per customer session. A session that never saved a
// cart reads back an empty one.
type Store interface {
	Get(ctx context.Context, sessionID string) (Cart, error)
	Save(ctx context.Context, sessionID string, c Cart) error
	Delete(ctx context.Context, sessionID string) error
}

type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(addr string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    ttl,
	}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

func (s *RedisStore) Get(ctx context.Context, sessionID string) (Cart, error) {
	raw, err := s.client.Get(ctx, cartKey(sessionID)).Result()
	if err == redis.Nil {
		return Cart{}, nil
	}
	if err != nil {
		return Cart{}, err
	}
	var c Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return Cart{}, fmt.Errorf("corrupt cart for session %s: %w", sessionID, err)
	}
	return c, nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, c Cart) error {
	raw, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, cartKey(sessionID), raw, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, cartKey(sessionID)).Err()
}
