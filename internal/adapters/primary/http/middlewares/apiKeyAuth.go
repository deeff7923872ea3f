package middlewares

import (
	"net/http"
	"strings"

	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/domain"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/ports/repository"
)

// APIKeyAuth проверяет Bearer-токен по хранилищу ключей и кладёт ключ
// в контекст запроса. Неизвестный токен - 401, выключенный ключ - 403
func APIKeyAuth(apiKeys repository.IAPIKeyRepo, log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"code":    http.StatusUnauthorized,
				"message": "missing or malformed API key",
			})
			return
		}

		key, err := apiKeys.GetByToken(c.Request.Context(), token)
		if err != nil {
			log.Warn("unknown api key",
				"error", err,
				"client_ip", c.ClientIP(),
				"path", c.Request.URL.Path,
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"status":  "error",
				"code":    http.StatusUnauthorized,
				"message": "invalid API key",
			})
			return
		}

		if !key.Active {
			log.Warn("disabled api key used",
				"api_key_id", key.ID,
				"client_ip", c.ClientIP(),
			)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"code":    http.StatusForbidden,
				"message": "API key is disabled",
			})
			return
		}

		c.Request = c.Request.WithContext(
			domain.ContextWithAPIKey(c.Request.Context(), key))

		if err := apiKeys.UpdateLastUsed(c.Request.Context(), key.ID); err != nil {
			log.Warn("failed to update api key last_used_at",
				"error", err,
				"api_key_id", key.ID,
			)
		}

		c.Next()
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}
