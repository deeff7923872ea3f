package cache

import (
	"context"
	"time"
)

// Cache интерфейс для кэша рассчитанных значений
type Cache interface {
	// Get возвращает значение по ключу, domain.ErrCacheMiss если ключа нет
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Close() error
}
