package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/airbooking-client/config"
	"github.com/Domenick1991/airbooking-client/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client       redis.Cmdable
	locationsTTL time.Duration
}

func NewClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
}

func NewRedisCache(client redis.Cmdable, locationsTTL time.Duration) *RedisCache {
	return &RedisCache{client: client, locationsTTL: locationsTTL}
}

// GetLocations returns nil, nil on a cache miss.
func (c *RedisCache) GetLocations(ctx context.Context) ([]domain.Airport, error) {
	data, err := c.client.Get(ctx, locationsKey()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var airports []domain.Airport
	if err := json.Unmarshal(data, &airports); err != nil {
		return nil, fmt.Errorf("decode cached locations: %w", err)
	}
	return airports, nil
}

func (c *RedisCache) SetLocations(ctx context.Context, airports []domain.Airport) error {
	payload, err := json.Marshal(airports)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, locationsKey(), payload, c.locationsTTL).Err()
}

// BookingStatus returns the last status recorded for bookingID and whether
// one was recorded at all.
func (c *RedisCache) BookingStatus(ctx context.Context, bookingID string) (domain.BookingStatus, bool, error) {
	v, err := c.client.Get(ctx, bookingStatusKey(bookingID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return domain.BookingStatus(v), true, nil
}

func (c *RedisCache) SetBookingStatus(ctx context.Context, bookingID string, status domain.BookingStatus) error {
	return c.client.Set(ctx, bookingStatusKey(bookingID), string(status), 0).Err()
}

func locationsKey() string {
	return "cache:locations"
}

func bookingStatusKey(bookingID string) string {
	return fmt.Sprintf("status:booking:%s", bookingID)
}
