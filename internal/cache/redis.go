package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nived-gurung/trekbooking/config"
	"github.com/nived-gurung/trekbooking/internal/domain"
)

type RedisCache struct {
	client     *redis.Client
	catalogTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, catalogTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		catalogTTL: catalogTTL,
	}
}

func (c *RedisCache) GetTreks(ctx context.Context) ([]domain.Trek, error) {
	data, err := c.client.Get(ctx, treksKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var treks []domain.Trek
	if err := json.Unmarshal(data, &treks); err != nil {
		return nil, err
	}
	return treks, nil
}

func (c *RedisCache) SetTreks(ctx context.Context, treks []domain.Trek) error {
	payload, err := json.Marshal(treks)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, treksKey(), payload, c.catalogTTL).Err()
}

func (c *RedisCache) GetPackages(ctx context.Context) ([]domain.TravelPackage, error) {
	data, err := c.client.Get(ctx, packagesKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var packages []domain.TravelPackage
	if err := json.Unmarshal(data, &packages); err != nil {
		return nil, err
	}
	return packages, nil
}

func (c *RedisCache) SetPackages(ctx context.Context, packages []domain.TravelPackage) error {
	payload, err := json.Marshal(packages)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, packagesKey(), payload, c.catalogTTL).Err()
}

// InvalidateCatalog drops both list keys; called after ingestion.
func (c *RedisCache) InvalidateCatalog(ctx context.Context) error {
	return c.client.Del(ctx, treksKey(), packagesKey()).Err()
}

func treksKey() string {
	return "cache:treks"
}

func packagesKey() string {
	return "cache:travel_packages"
}
