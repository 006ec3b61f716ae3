package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"resource-booking/internal/pkg/config"
	"resource-booking/internal/pkg/errs"
	"resource-booking/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
)

const (
	resourceListKey           = "cache:resources"
	resourceListGenerationKey = "cache:resources:generation"
)

var errStaleGeneration = errors.New("resource list generation changed")

type ResourceCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewResourceCache(client *redis.Client, ttl time.Duration) *ResourceCache {
	return &ResourceCache{client: client, ttl: ttl}
}

// GetResourceList reports ok=false on a cache miss.
func (c *ResourceCache) GetResourceList(ctx context.Context) ([]*queries.ResourceView, bool, error) {
	data, err := c.client.Get(ctx, resourceListKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, errs.Wrap(err, "failed to read resource list from cache")
	}

	var resources []*queries.ResourceView
	if err := json.Unmarshal(data, &resources); err != nil {
		return nil, false, errs.Wrap(err, "failed to decode cached resource list")
	}
	return resources, true, nil
}

// ResourceListGeneration reports 0 until the first invalidation.
func (c *ResourceCache) ResourceListGeneration(ctx context.Context) (int64, error) {
	generation, err := readGeneration(ctx, c.client)
	return generation, errs.Wrap(err, "failed to read resource list generation")
}

// SetResourceList writes under WATCH on the generation key. A generation
// mismatch, or an invalidation racing the transaction, skips the write.
func (c *ResourceCache) SetResourceList(ctx context.Context, generation int64, resources []*queries.ResourceView) error {
	payload, err := json.Marshal(resources)
	if err != nil {
		return errs.Wrap(err, "failed to encode resource list")
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readGeneration(ctx, tx)
		if err != nil {
			return err
		}
		if current != generation {
			return errStaleGeneration
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, resourceListKey, payload, c.ttl)
			return nil
		})
		return err
	}, resourceListGenerationKey)

	if errors.Is(err, errStaleGeneration) || errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return errs.Wrap(err, "failed to write resource list to cache")
}

func (c *ResourceCache) InvalidateResourceList(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, resourceListGenerationKey)
		pipe.Del(ctx, resourceListKey)
		return nil
	})
	return errs.Wrap(err, "failed to invalidate resource list")
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readGeneration(ctx context.Context, cmd getter) (int64, error) {
	generation, err := cmd.Get(ctx, resourceListGenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return generation, err
}

// NopResourceCache always misses; used when Redis is not configured.
type NopResourceCache struct{}

func (NopResourceCache) GetResourceList(context.Context) ([]*queries.ResourceView, bool, error) {
	return nil, false, nil
}

func (NopResourceCache) ResourceListGeneration(context.Context) (int64, error) {
	return 0, nil
}

func (NopResourceCache) SetResourceList(context.Context, int64, []*queries.ResourceView) error {
	return nil
}

func (NopResourceCache) InvalidateResourceList(context.Context) error {
	return nil
}
