package inmemory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/domain"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/ports/cache"
)

// entry значение кэша со сроком жизни
type entry struct {
	value     string
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// PositionsCache потокобезопасный in-memory кэш со сроком жизни записей.
// Используется вместо Redis когда внешний кэш не сконфигурирован
type PositionsCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewPositionsCache создаёт новый in-memory кэш
func NewPositionsCache() cache.Cache {
	return &PositionsCache{
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Get возвращает значение по ключу, просроченные записи удаляются лениво
func (c *PositionsCache) Get(ctx context.Context, key string) (string, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrCacheMiss, key)
	}
	if e.expired(c.now()) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return "", fmt.Errorf("%w: %s", domain.ErrCacheMiss, key)
	}
	return e.value, nil
}

// Set сохраняет значение, нулевой TTL означает запись без срока жизни
func (c *PositionsCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	e := entry{value: value}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
	return nil
}

// Delete удаляет значение по ключу
func (c *PositionsCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

// Exists проверяет наличие непросроченного ключа
func (c *PositionsCache) Exists(ctx context.Context, key string) (bool, error) {
	if _, err := c.Get(ctx, key); err != nil {
		return false, nil
	}
	return true, nil
}

func (c *PositionsCache) Close() error {
	return nil
}
