package chart

import (
	"context"
	"time"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/domain"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/pkg/zodiac"
)

// BodyPositions считает эклиптические позиции планет без асцендента и
// домов. Работает и на полярных широтах. Квота и журнал - как у
// расчёта полной карты.
func (s *Service) BodyPositions(ctx context.Context, query domain.BirthQuery) (*domain.BodyPositions, error) {
	started := time.Now()

	if err := s.reserveQuota(ctx, domain.EndpointPositions, query); err != nil {
		return nil, err
	}

	moment, err := s.Moment.Resolve(ctx, query)
	if err != nil {
		s.journal(ctx, domain.EndpointPositions, query, "", err, time.Since(started))
		return nil, err
	}

	longitudes, err := s.Ephemeris.BodyLongitudes(ctx, moment.UTC, domain.Bodies)
	s.journal(ctx, domain.EndpointPositions, query, moment.Timezone, err, time.Since(started))
	if err != nil {
		return nil, err
	}

	planets := make(map[domain.Body]domain.EclipticPosition, len(longitudes))
	for body, lon := range longitudes {
		planets[body] = domain.EclipticPosition{
			Longitude: lon,
			Sign:      zodiac.SignAt(lon),
			Degree:    zodiac.DegreeInSign(lon),
		}
	}

	s.Log.Info("body positions computed",
		"timezone", moment.Timezone,
		"utc", moment.UTC.Format(time.RFC3339),
		"duration_ms", time.Since(started).Milliseconds(),
	)

	return &domain.BodyPositions{Planets: planets, Moment: moment}, nil
}
