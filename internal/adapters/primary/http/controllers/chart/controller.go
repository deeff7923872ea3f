package chart

import (
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/domain"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/pkg/metrics"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/ports/usecase"
)

type Controller struct {
	ChartUseCase usecase.IChartUseCase
	Metrics      *metrics.Registry
	Log          *slog.Logger

	// Middleware группы /v1: аутентификация и лимитер, собираются в app
	groupMiddlewares []gin.HandlerFunc
}

func New(
	chartUseCase usecase.IChartUseCase,
	m *metrics.Registry,
	log *slog.Logger,
	groupMiddlewares ...gin.HandlerFunc,
) *Controller {
	return &Controller{
		ChartUseCase:     chartUseCase,
		Metrics:          m,
		Log:              log,
		groupMiddlewares: groupMiddlewares,
	}
}

func (c *Controller) RegisterRoutes(router *gin.Engine) {
	v1 := router.Group("/v1", c.groupMiddlewares...)
	{
		v1.POST("/charts/natal", c.natalChart)
		v1.POST("/data/positions", c.bodyPositions)
	}
}

// natalChart считает натальную карту по дате, времени и месту рождения
func (c *Controller) natalChart(ctx *gin.Context) {
	var req NatalChartRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.bindError(ctx, domain.EndpointNatalChart, err)
		return
	}

	query, err := req.toQuery()
	if err != nil {
		c.chartError(ctx, domain.EndpointNatalChart, err)
		return
	}

	chart, err := c.ChartUseCase.NatalChart(ctx.Request.Context(), query)
	if err != nil {
		c.chartError(ctx, domain.EndpointNatalChart, err)
		return
	}

	c.ok(ctx, chart)
}

// bodyPositions отдаёт позиции тел на момент без асцендента и домов
func (c *Controller) bodyPositions(ctx *gin.Context) {
	var req PositionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.bindError(ctx, domain.EndpointPositions, err)
		return
	}

	query, err := req.toQuery()
	if err != nil {
		c.chartError(ctx, domain.EndpointPositions, err)
		return
	}

	positions, err := c.ChartUseCase.BodyPositions(ctx.Request.Context(), query)
	if err != nil {
		c.chartError(ctx, domain.EndpointPositions, err)
		return
	}

	c.ok(ctx, positions)
}

func (c *Controller) ok(ctx *gin.Context, data any) {
	ctx.JSON(http.StatusOK, Response{
		Status:    "ok",
		RequestID: requestID(ctx),
		Data:      data,
	})
}

// bindError тело запроса не разобралось в JSON
func (c *Controller) bindError(ctx *gin.Context, endpoint string, err error) {
	c.Log.Warn("failed to bind request body",
		"error", err,
		"endpoint", endpoint,
	)
	c.chartError(ctx, endpoint, &domain.ChartError{
		Kind: domain.ErrKindParse,
		Msg:  "malformed JSON body",
		Err:  err,
	})
}

// chartError переводит доменную ошибку в HTTP-ответ
func (c *Controller) chartError(ctx *gin.Context, endpoint string, err error) {
	chartErr, ok := domain.AsChartError(err)
	if !ok {
		c.Log.Error("chart request failed",
			"error", err,
			"endpoint", endpoint,
		)
		ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Status:    "error",
			Code:      http.StatusInternalServerError,
			Message:   "internal error",
			RequestID: requestID(ctx),
		})
		return
	}

	status := httpStatus(chartErr.Kind)
	if status >= http.StatusInternalServerError {
		c.Log.Error("chart computation failed",
			"error", chartErr,
			"endpoint", endpoint,
		)
	} else {
		c.Log.Warn("chart request rejected",
			"kind", chartErr.Kind,
			"endpoint", endpoint,
		)
	}

	if c.Metrics != nil {
		c.Metrics.RecordError(endpoint, string(chartErr.Kind))
	}

	ctx.JSON(status, ErrorResponse{
		Status:    "error",
		Code:      status,
		Message:   chartErr.Msg,
		RequestID: requestID(ctx),
		Error: &ErrorDetail{
			Kind:  string(chartErr.Kind),
			Field: chartErr.Field,
			Body:  string(chartErr.Body),
		},
	})
}

func httpStatus(kind domain.ErrorKind) int {
	switch kind {
	case domain.ErrKindParse, domain.ErrKindMissingField:
		return http.StatusBadRequest
	case domain.ErrKindTimezoneResolution, domain.ErrKindPolarLatitude:
		return http.StatusUnprocessableEntity
	case domain.ErrKindQuotaExceeded:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func requestID(ctx *gin.Context) string {
	id := domain.RequestIDFromContext(ctx.Request.Context())
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}
