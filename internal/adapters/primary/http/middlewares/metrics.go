package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/pkg/metrics"
)

// Metrics пишет счётчик и длительность каждого запроса в Prometheus
func Metrics(m *metrics.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			// Немаршрутизированные пути не раздуваются в отдельные метки
			endpoint = "unmatched"
		}
		m.ObserveRequest(endpoint, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
