package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/Domenick1991/airbooking-client/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the session under a single Redis key with no expiry;
// the backend decides when a token stops being valid.
type RedisStore struct {
	client redis.Cmdable
	key    string
}

func NewRedisStore(client redis.Cmdable, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

func (r *RedisStore) Get(ctx context.Context) (*domain.Session, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	s := decode(data)
	if s == nil {
		_ = r.client.Del(ctx, r.key).Err()
	}
	return s, nil
}

func (r *RedisStore) Set(ctx context.Context, s domain.Session) error {
	data, err := encode(s)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, r.key, data, 0).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
