package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry держит все Prometheus-метрики сервиса
type Registry struct {
	registry *prometheus.Registry

	// HTTP запросы
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestErrors   *prometheus.CounterVec

	// Кэш позиций
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec
}

// NewRegistry создаёт реестр метрик. Реестр собственный, а не глобальный,
// чтобы несколько экземпляров не конфликтовали при регистрации
func NewRegistry() *Registry {
	m := &Registry{
		registry: prometheus.NewRegistry(),

		RequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "natal_api_requests_total",
				Help: "Total number of API requests by endpoint and status",
			},
			[]string{"endpoint", "status"},
		),

		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "natal_api_request_duration_seconds",
				Help:    "Duration of API requests in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
			},
			[]string{"endpoint"},
		),

		RequestErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "natal_api_request_errors_total",
				Help: "Total number of failed API requests by endpoint and error kind",
			},
			[]string{"endpoint", "kind"},
		),

		CacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "natal_api_cache_hits_total",
				Help: "Total number of cache hits by cache type",
			},
			[]string{"cache_type"},
		),

		CacheMisses: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "natal_api_cache_misses_total",
				Help: "Total number of cache misses by cache type",
			},
			[]string{"cache_type"},
		),
	}

	m.registry.MustRegister(
		m.RequestsTotal,
		m.RequestDuration,
		m.RequestErrors,
		m.CacheHits,
		m.CacheMisses,
	)

	return m
}

// Handler возвращает HTTP-обработчик для /metrics
func (m *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRequest фиксирует завершённый запрос
func (m *Registry) ObserveRequest(endpoint, status string, took time.Duration) {
	m.RequestsTotal.WithLabelValues(endpoint, status).Inc()
	m.RequestDuration.WithLabelValues(endpoint).Observe(took.Seconds())
}

// RecordError фиксирует отказ по виду ошибки
func (m *Registry) RecordError(endpoint, kind string) {
	m.RequestErrors.WithLabelValues(endpoint, kind).Inc()
}

// RecordCacheHit фиксирует попадание в кэш
func (m *Registry) RecordCacheHit(cacheType string) {
	m.CacheHits.WithLabelValues(cacheType).Inc()
}

// RecordCacheMiss фиксирует промах кэша
func (m *Registry) RecordCacheMiss(cacheType string) {
	m.CacheMisses.WithLabelValues(cacheType).Inc()
}
