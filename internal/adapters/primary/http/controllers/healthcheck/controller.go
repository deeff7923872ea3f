package healthcheckController

import (
	"time"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/ports/service"
)

type HealthCheckController struct {
	db        *sqlx.DB
	ephemeris service.IEphemerisService
	log       *slog.Logger
}

func New(db *sqlx.DB, ephemeris service.IEphemerisService, log *slog.Logger) *HealthCheckController {
	return &HealthCheckController{
		db:        db,
		ephemeris: ephemeris,
		log:       log,
	}
}

func (c *HealthCheckController) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", c.health)
	r.GET("/ready", c.ready)
}

// health базовая проверка (всегда возвращает 200)
func (c *HealthCheckController) health(ctx *gin.Context) {
	ctx.JSON(200, gin.H{
		"status":   "ok",
		"usecases": "natal-api",
	})
}

// ready проверка готовности (БД доступна, эфемериды считаются)
func (c *HealthCheckController) ready(ctx *gin.Context) {
	// Пингуем БД
	if err := c.db.Ping(); err != nil {
		c.log.Error("Database not ready", "error", err)
		ctx.JSON(503, gin.H{
			"status": "not ready",
			"error":  "database unavailable",
		})
		return
	}

	// Пробный расчёт: ловит невыгруженные данные эфемерид
	if c.ephemeris != nil {
		if _, err := c.ephemeris.TrueObliquity(ctx.Request.Context(), time.Now()); err != nil {
			c.log.Error("Ephemeris not ready", "error", err)
			ctx.JSON(503, gin.H{
				"status": "not ready",
				"error":  "ephemeris unavailable",
			})
			return
		}
	}

	ctx.JSON(200, gin.H{
		"status": "ready",
	})
}
