package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/domain"
)

const RequestIDHeader = "X-Request-Id"

// RequestID выдаёт запросу серверный uuid. Он уходит в заголовок ответа,
// в конверт ответа и становится id журнальной записи, поэтому клиентские
// значения заголовка не принимаются
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := uuid.New()

		c.Request = c.Request.WithContext(
			domain.ContextWithRequestID(c.Request.Context(), id))
		c.Header(RequestIDHeader, id.String())

		c.Next()
	}
}
