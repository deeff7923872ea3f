package ephemeris

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/domain"
)

// BodyLongitude возвращает эклиптическую долготу тела, сперва пробуя кэш.
// Кэшированное значение привязано к паре (тело, момент UTC)
func (s *Service) BodyLongitude(ctx context.Context, instant time.Time, body domain.Body) (float64, error) {
	if !body.IsValid() {
		return 0, domain.NewEphemerisLookupError(body, fmt.Errorf("unknown body"))
	}

	key := positionKey(instant, body)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			if lon, perr := strconv.ParseFloat(cached, 64); perr == nil {
				s.recordCache(true)
				return lon, nil
			}
			// Испорченное значение выбрасываем и пересчитываем
			s.log.Warn("malformed cached position dropped", "key", key)
			_ = s.cache.Delete(ctx, key)
		}
		s.recordCache(false)
	}

	lon, err := s.backend.BodyLongitude(instant, body)
	if err != nil {
		return 0, domain.NewEphemerisLookupError(body, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, strconv.FormatFloat(lon, 'f', -1, 64), s.cfg.CacheTTL); err != nil {
			s.log.Warn("failed to cache position", "key", key, "error", err)
		}
	}

	return lon, nil
}

// BodyLongitudes считает долготы тел параллельно, результат либо полный,
// либо ошибка первого отказавшего тела
func (s *Service) BodyLongitudes(ctx context.Context, instant time.Time, bodies []domain.Body) (map[domain.Body]float64, error) {
	var mu sync.Mutex
	longitudes := make(map[domain.Body]float64, len(bodies))

	g, gctx := errgroup.WithContext(ctx)
	for _, body := range bodies {
		body := body
		g.Go(func() error {
			lon, err := s.BodyLongitude(gctx, instant, body)
			if err != nil {
				return err
			}
			mu.Lock()
			longitudes[body] = lon
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return longitudes, nil
}

// SiderealTime возвращает видимое гринвичское звёздное время в часах
func (s *Service) SiderealTime(ctx context.Context, instant time.Time) (float64, error) {
	return s.backend.SiderealTime(instant), nil
}

// TrueObliquity возвращает истинное наклонение эклиптики в градусах
func (s *Service) TrueObliquity(ctx context.Context, instant time.Time) (float64, error) {
	return s.backend.TrueObliquity(instant), nil
}

func positionKey(instant time.Time, body domain.Body) string {
	return fmt.Sprintf("positions:%s:%s", body, instant.UTC().Format(time.RFC3339))
}

func (s *Service) recordCache(hit bool) {
	if s.metrics == nil {
		return
	}
	if hit {
		s.metrics.RecordCacheHit("positions")
	} else {
		s.metrics.RecordCacheMiss("positions")
	}
}
