package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/staybooking/config"
	"github.com/Domenick1991/staybooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache stores rendered listing pages. Keys carry the catalog version, so pages
// from a previous process's catalog are never served.
type RedisCache struct {
	client      *redis.Client
	listingsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, listingsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:      redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		listingsTTL: listingsTTL,
	}
}

// GetListingsPage returns (nil, nil) on a miss.
func (c *RedisCache) GetListingsPage(ctx context.Context, version, query string) (*domain.ListingsPage, error) {
	data, err := c.client.Get(ctx, listingsKey(version, query)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var page domain.ListingsPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *RedisCache) SetListingsPage(ctx context.Context, version, query string, page domain.ListingsPage) error {
	payload, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, listingsKey(version, query), payload, c.listingsTTL).Err()
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func listingsKey(version, query string) string {
	sum := sha1.Sum([]byte(query))
	return fmt.Sprintf("cache:listings:%s:%s", version, hex.EncodeToString(sum[:]))
}
