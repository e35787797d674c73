// Package redis implements Redis caching for Habit Hero.
//
// Key components:
//   - Cache: namespaced JSON documents with expiry
//   - CharacterCache: read-through cache in front of a character.Repository
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Namespace prefixes every key written by Cache.
const Namespace = "habithero"

// TTLCharacterCache is the default TTL for cached characters.
const TTLCharacterCache = 10 * time.Minute

var (
	// ErrCacheMiss is returned when the key is absent or expired.
	ErrCacheMiss = errors.New("cache: miss")

	// ErrCacheUnavailable is returned when Redis does not answer PING.
	ErrCacheUnavailable = errors.New("cache: redis unavailable")

	// ErrCacheEncoding wraps JSON failures in either direction.
	ErrCacheEncoding = errors.New("cache: bad document")
)

// Config describes how to reach Redis.
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int

	PoolSize     int
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Addr joins host and port.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c Config) options() *redis.Options {
	return &redis.Options{
		Addr:         c.Addr(),
		Password:     c.Password,
		DB:           c.DB,
		PoolSize:     c.PoolSize,
		MaxRetries:   c.MaxRetries,
		DialTimeout:  c.DialTimeout,
		ReadTimeout:  c.ReadTimeout,
		WriteTimeout: c.WriteTimeout,
	}
}

// CharacterKey is the unprefixed key of a user's cached character.
func CharacterKey(userID string) string {
	return "character:" + userID
}

// Cache stores JSON documents under Namespace.
type Cache struct {
	client redis.UniversalClient
}

// NewCache dials Redis and fails fast when PING does not succeed.
func NewCache(ctx context.Context, cfg Config) (*Cache, error) {
	client := redis.NewClient(cfg.options())
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w at %s: %v", ErrCacheUnavailable, cfg.Addr(), err)
	}
	return &Cache{client: client}, nil
}

func (c *Cache) key(k string) string {
	return Namespace + ":" + k
}

// Set encodes value under key. ttl <= 0 keeps the key until deleted.
func (c *Cache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	doc, err := json.Marshal(value)
	if err != nil {
		return errors.Join(ErrCacheEncoding, err)
	}
	if ttl < 0 {
		ttl = 0
	}
	return c.client.Set(ctx, c.key(key), doc, ttl).Err()
}

// Get decodes the document at key into dest.
func (c *Cache) Get(ctx context.Context, key string, dest any) error {
	doc, err := c.client.Get(ctx, c.key(key)).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
		return ErrCacheMiss
	case err != nil:
		return err
	}
	if err := json.Unmarshal(doc, dest); err != nil {
		return errors.Join(ErrCacheEncoding, err)
	}
	return nil
}

// Delete removes keys. Missing keys are not an error.
func (c *Cache) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.key(k)
	}
	return c.client.Del(ctx, full...).Err()
}

// Close releases the connection pool.
func (c *Cache) Close() error {
	return c.client.Close()
}
