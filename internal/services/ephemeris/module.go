package ephemeris

import (
	"log/slog"
	"time"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/domain"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/pkg/metrics"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/ports/cache"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/ports/service"
)

// Backend расчётный бэкенд эфемерид (адаптер meeus)
type Backend interface {
	BodyLongitude(instant time.Time, body domain.Body) (float64, error)
	SiderealTime(instant time.Time) float64
	TrueObliquity(instant time.Time) float64
}

// Service реализует IEphemerisService: оборачивает бэкенд кэшем позиций
// и переводит ошибки бэкенда в доменные
type Service struct {
	backend Backend
	cache   cache.Cache
	metrics *metrics.Registry
	cfg     Config
	log     *slog.Logger
}

// New создаёт сервис эфемерид. Кэш и метрики опциональны, nil отключает их
func New(backend Backend, positionsCache cache.Cache, m *metrics.Registry, cfg Config, log *slog.Logger) service.IEphemerisService {
	return &Service{
		backend: backend,
		cache:   positionsCache,
		metrics: m,
		cfg:     cfg,
		log:     log,
	}
}
