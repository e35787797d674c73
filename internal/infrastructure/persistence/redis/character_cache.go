package redis

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/habit-hero/habit-hero/internal/domain/character"
	"github.com/habit-hero/habit-hero/pkg/circuitbreaker"
)

// jsonCache is the subset of *Cache used by CharacterCache.
type jsonCache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// CharacterCache is a read-through, write-through cache in front of a
// character.Repository. Redis failures degrade to the underlying repository,
// and after repeated failures a circuit breaker skips Redis altogether.
type CharacterCache struct {
	next    character.Repository
	cache   jsonCache
	breaker *circuitbreaker.CircuitBreaker
	ttl     time.Duration
	logger  *slog.Logger
}

// NewCharacterCache wraps next. A non-positive ttl uses TTLCharacterCache.
func NewCharacterCache(next character.Repository, cache *Cache, ttl time.Duration, logger *slog.Logger) *CharacterCache {
	if logger == nil {
		logger = slog.Default()
	}
	return newCharacterCache(next, cache, newCacheBreaker(logger), ttl, logger)
}

// newCacheBreaker trips on Redis errors only; a miss is a healthy answer.
func newCacheBreaker(logger *slog.Logger) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.CacheBreaker(
		func(err error) bool { return !errors.Is(err, ErrCacheMiss) },
		func(name string, from, to circuitbreaker.State) {
			logger.Warn("character cache circuit changed",
				"breaker", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	)
}

func newCharacterCache(next character.Repository, cache jsonCache, breaker *circuitbreaker.CircuitBreaker, ttl time.Duration, logger *slog.Logger) *CharacterCache {
	if ttl <= 0 {
		ttl = TTLCharacterCache
	}
	if logger == nil {
		logger = slog.Default()
	}
	if breaker == nil {
		breaker = newCacheBreaker(logger)
	}
	return &CharacterCache{next: next, cache: cache, breaker: breaker, ttl: ttl, logger: logger}
}

func (c *CharacterCache) do(ctx context.Context, fn func(context.Context) error) error {
	return c.breaker.Execute(ctx, fn)
}

// warn logs a cache failure; breaker rejections are expected and logged at debug.
func (c *CharacterCache) warn(msg, userID string, err error) {
	if circuitbreaker.IsRejection(err) {
		c.logger.Debug(msg, "user_id", userID, "error", err)
		return
	}
	c.logger.Warn(msg, "user_id", userID, "error", err)
}

// GetForUser implements character.Repository.
func (c *CharacterCache) GetForUser(ctx context.Context, userID string) (*character.Character, error) {
	var cached character.Character
	err := c.do(ctx, func(ctx context.Context) error {
		return c.cache.Get(ctx, CharacterKey(userID), &cached)
	})
	switch {
	case err == nil:
		if cached.Appearance == nil {
			cached.Appearance = make(map[string]string)
		}
		return &cached, nil
	case !errors.Is(err, ErrCacheMiss):
		c.warn("character cache read failed", userID, err)
	}

	ch, err := c.next.GetForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := c.do(ctx, func(ctx context.Context) error {
		return c.cache.Set(ctx, CharacterKey(userID), ch, c.ttl)
	}); err != nil {
		c.warn("character cache fill failed", userID, err)
	}
	return ch, nil
}

// Save implements character.Repository. The repository is written first;
// on cache write failure the stale entry is dropped.
func (c *CharacterCache) Save(ctx context.Context, ch *character.Character) error {
	if err := c.next.Save(ctx, ch); err != nil {
		return err
	}

	key := CharacterKey(ch.UserID)
	if err := c.do(ctx, func(ctx context.Context) error {
		return c.cache.Set(ctx, key, ch, c.ttl)
	}); err != nil {
		c.warn("character cache write failed", ch.UserID, err)
		// Delete bypasses the breaker so an open circuit still tries to evict.
		if delErr := c.cache.Delete(ctx, key); delErr != nil {
			c.logger.Warn("character cache invalidate failed", "user_id", ch.UserID, "error", delErr)
		}
	}
	return nil
}

var _ character.Repository = (*CharacterCache)(nil)
