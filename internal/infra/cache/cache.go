package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RedisCache JSON кэш поверх Redis
type RedisCache struct {
	client *redis.Client
	prefix string
	logger Logger
}

// NewRedisCache создает кэш; все ключи получают префикс prefix
func NewRedisCache(client *redis.Client, prefix string, logger Logger) *RedisCache {
	return &RedisCache{
		client: client,
		prefix: prefix,
		logger: logger,
	}
}

// Get читает значение по ключу и декодирует его в value
// Если ключа нет, возвращает ErrCacheMiss
func (c *RedisCache) Get(ctx context.Context, key string, value any) error {
	data, err := c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("%w: Get - key=%s: %v", ErrCache, key, err)
	}

	if err := json.Unmarshal(data, value); err != nil {
		c.logger.Warn("cache: dropping undecodable value for key=%s: %v", key, err)
		_ = c.client.Del(ctx, c.prefix+key).Err()
		return ErrCacheMiss
	}

	return nil
}

// Save сохраняет значение в JSON на время ttl
func (c *RedisCache) Save(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%w: Save - key=%s: %v", ErrEncode, key, err)
	}

	if err := c.client.Set(ctx, c.prefix+key, data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: Save - key=%s: %v", ErrCache, key, err)
	}

	return nil
}

// Incr атомарно увеличивает целочисленный счетчик и возвращает новое значение
// Отсутствующий ключ считается нулем; счетчик не истекает
func (c *RedisCache) Incr(ctx context.Context, key string) (int64, error) {
	n, err := c.client.Incr(ctx, c.prefix+key).Result()
	if err != nil {
		return 0, fmt.Errorf("%w: Incr - key=%s: %v", ErrCache, key, err)
	}
	return n, nil
}

// Clear удаляет все ключи, начинающиеся с prefix
func (c *RedisCache) Clear(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, c.prefix+prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("%w: Clear - key=%s: %v", ErrCache, iter.Val(), err)
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("%w: Clear - scan prefix=%s: %v", ErrCache, prefix, err)
	}

	return nil
}

// Noop кэш-заглушка для запуска без Redis: всегда промах
type Noop struct{}

func (Noop) Get(context.Context, string, any) error { return ErrCacheMiss }
func (Noop) Save(context.Context, string, any, time.Duration) error { return nil }
func (Noop) Clear(context.Context, string) error { return nil }
func (Noop) Incr(context.Context, string) (int64, error) { return 0, nil }
