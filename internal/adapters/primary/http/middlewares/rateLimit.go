package middlewares

import (
	"net/http"
	"sync"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/domain"
)

// KeyRateLimiter ограничивает частоту запросов отдельно по каждому
// API-ключу. Дневной объём считает квота в БД, лимитер гасит всплески
type KeyRateLimiter struct {
	mu       sync.Mutex
	limiters map[uuid.UUID]*rate.Limiter

	rps   rate.Limit
	burst int
	log   *slog.Logger
}

func NewKeyRateLimiter(rps float64, burst int, log *slog.Logger) *KeyRateLimiter {
	return &KeyRateLimiter{
		limiters: make(map[uuid.UUID]*rate.Limiter),
		rps:      rate.Limit(rps),
		burst:    burst,
		log:      log,
	}
}

// Handler возвращает middleware. Должен стоять после APIKeyAuth:
// запросы без ключа в контексте не ограничиваются
func (rl *KeyRateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := domain.APIKeyFromContext(c.Request.Context())
		if key == nil {
			c.Next()
			return
		}

		if !rl.limiterFor(key.ID).Allow() {
			rl.log.Warn("rate limit exceeded",
				"api_key_id", key.ID,
				"path", c.Request.URL.Path,
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"status":  "error",
				"code":    http.StatusTooManyRequests,
				"message": "rate limit exceeded",
			})
			return
		}

		c.Next()
	}
}

func (rl *KeyRateLimiter) limiterFor(id uuid.UUID) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	lim, ok := rl.limiters[id]
	if !ok {
		lim = rate.NewLimiter(rl.rps, rl.burst)
		rl.limiters[id] = lim
	}
	return lim
}
