package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"devevents/internal/domain"

	"github.com/redis/go-redis/v9"
)

// Config holds the Redis connection settings.
type Config struct {
	Addr     string
	Password string
	DB       int
}

// NewClient returns a go-redis client and verifies it with a ping.
func NewClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

type eventCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewEventCache returns an EventCache storing events as JSON under "events:<id>",
// guarded by an invalidation counter under "events:<id>:gen".
func NewEventCache(client *redis.Client, ttl time.Duration) domain.EventCache {
	return &eventCache{client: client, ttl: ttl}
}

func (c *eventCache) Get(ctx context.Context, id string) (*domain.Event, error) {
	raw, err := c.client.Get(ctx, eventKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrCacheMiss
		}
		return nil, fmt.Errorf("get cached event: %w", err)
	}
	var e domain.Event
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("decode cached event: %w", err)
	}
	if e.Speakers == nil {
		e.Speakers = []*domain.Speaker{}
	}
	return &e, nil
}

func (c *eventCache) Generation(ctx context.Context, id string) (int64, error) {
	gen, err := c.client.Get(ctx, generationKey(id)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("get cache generation: %w", err)
	}
	return gen, nil
}

// Set writes e only while its generation still equals gen. The generation key is
// watched so an Invalidate racing the write aborts the transaction.
func (c *eventCache) Set(ctx context.Context, e *domain.Event, gen int64) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	genKey := generationKey(e.ID)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return domain.ErrCacheStale
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, eventKey(e.ID), raw, c.ttl)
			return nil
		})
		return err
	}, genKey)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrCacheStale), errors.Is(err, redis.TxFailedErr):
		return domain.ErrCacheStale
	default:
		return fmt.Errorf("set cached event: %w", err)
	}
}

// Invalidate drops the cached event and bumps its generation in one transaction.
// The counter outlives the entry so an in-flight fill always sees the bump.
func (c *eventCache) Invalidate(ctx context.Context, id string) error {
	genKey := generationKey(id)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, c.ttl+generationGrace)
		pipe.Del(ctx, eventKey(id))
		return nil
	})
	if err != nil {
		return fmt.Errorf("invalidate cached event: %w", err)
	}
	return nil
}

// generationGrace keeps a bumped counter alive well past any request timeout.
const generationGrace = time.Hour

func eventKey(id string) string {
	return "events:" + id
}

func generationKey(id string) string {
	return eventKey(id) + ":gen"
}
