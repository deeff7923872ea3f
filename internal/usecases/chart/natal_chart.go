package chart

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/zebulonh89-dotcom/newastro-backend/internal/domain"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/pkg/zodiac"
	"github.com/zebulonh89-dotcom/newastro-backend/internal/ports/persistence"
)

// NatalChart считает натальную карту: момент рождения в UTC, позиции
// планет по знакам, асцендент и дома по whole-sign системе.
// Исход пишется в журнал, отказ по квоте - до начала расчёта.
func (s *Service) NatalChart(ctx context.Context, query domain.BirthQuery) (*domain.Chart, error) {
	started := time.Now()

	if err := s.reserveQuota(ctx, domain.EndpointNatalChart, query); err != nil {
		return nil, err
	}

	moment, err := s.Moment.Resolve(ctx, query)
	if err != nil {
		s.journal(ctx, domain.EndpointNatalChart, query, "", err, time.Since(started))
		return nil, err
	}

	chart, err := s.computeChart(ctx, query, moment)
	s.journal(ctx, domain.EndpointNatalChart, query, moment.Timezone, err, time.Since(started))
	if err != nil {
		return nil, err
	}

	s.Log.Info("natal chart computed",
		"timezone", moment.Timezone,
		"utc", moment.UTC.Format(time.RFC3339),
		"ascendant", chart.Ascendant.Sign,
		"duration_ms", time.Since(started).Milliseconds(),
	)

	return chart, nil
}

// computeChart выполняет сам расчёт по уже резолвнутому моменту.
// Карта собирается целиком или не собирается вовсе: ошибка на любом
// шаге отменяет весь результат.
func (s *Service) computeChart(
	ctx context.Context,
	query domain.BirthQuery,
	moment domain.ResolvedMoment,
) (*domain.Chart, error) {
	longitudes, err := s.Ephemeris.BodyLongitudes(ctx, moment.UTC, domain.Bodies)
	if err != nil {
		return nil, err
	}

	gast, err := s.Ephemeris.SiderealTime(ctx, moment.UTC)
	if err != nil {
		return nil, err
	}

	obliquity, err := s.Ephemeris.TrueObliquity(ctx, moment.UTC)
	if err != nil {
		return nil, err
	}

	ascLon, err := ascendant(gast, obliquity, query.Latitude, query.Longitude)
	if err != nil {
		return nil, err
	}

	ascSign := zodiac.SignIndex(ascLon)
	planets := make(map[domain.Body]domain.EclipticPosition, len(longitudes))
	for body, lon := range longitudes {
		planets[body] = domain.EclipticPosition{
			Longitude: lon,
			Sign:      zodiac.SignAt(lon),
			Degree:    zodiac.DegreeInSign(lon),
			House:     zodiac.House(zodiac.SignIndex(lon), ascSign),
		}
	}

	return &domain.Chart{
		Ascendant: domain.AscendantPoint{
			Longitude: ascLon,
			Sign:      zodiac.SignName(ascSign),
			Degree:    zodiac.DegreeInSign(ascLon),
		},
		Planets: planets,
		Moment:  moment,
	}, nil
}

// reserveQuota сверяет дневной счётчик ключа с лимитом и при превышении
// той же транзакцией пишет отказ в журнал. Инфраструктурные ошибки не
// блокируют расчёт. Без ключа в контексте квота не применяется.
func (s *Service) reserveQuota(ctx context.Context, endpoint string, query domain.BirthQuery) error {
	if s.RequestRepo == nil {
		return nil
	}

	key := domain.APIKeyFromContext(ctx)
	if key == nil || key.DailyLimit <= 0 {
		return nil
	}

	var quotaErr error
	err := s.RequestRepo.WithTransaction(ctx, func(ctx context.Context, tx persistence.Transaction) error {
		used, err := s.RequestRepo.CountForDayTx(ctx, tx, key.ID, time.Now().UTC())
		if err != nil {
			return fmt.Errorf("failed to count requests for day: %w", err)
		}
		if used < int64(key.DailyLimit) {
			return nil
		}

		rejection := newJournalRow(ctx, endpoint, query, "", key)
		rejection.Status = domain.RequestStatusError
		rejection.ErrorKind = string(domain.ErrKindQuotaExceeded)
		if err := s.RequestRepo.CreateTx(ctx, tx, rejection); err != nil {
			return fmt.Errorf("failed to journal quota rejection: %w", err)
		}

		// запись об отказе должна закоммититься, поэтому сам отказ
		// возвращаем уже после транзакции
		quotaErr = domain.NewQuotaExceededError(key.DailyLimit)
		return nil
	})
	if err != nil {
		s.Log.Warn("quota check failed, allowing request",
			"error", err,
			"api_key_id", key.ID,
			"endpoint", endpoint,
		)
		return nil
	}

	return quotaErr
}

// journal пишет исход запроса в журнал и шлёт событие об использовании
// в Kafka. Ошибки здесь не влияют на ответ клиенту.
func (s *Service) journal(
	ctx context.Context,
	endpoint string,
	query domain.BirthQuery,
	timezone string,
	computeErr error,
	took time.Duration,
) {
	if s.RequestRepo == nil {
		return
	}

	row := newJournalRow(ctx, endpoint, query, timezone, domain.APIKeyFromContext(ctx))
	row.DurationMs = took.Milliseconds()
	if computeErr != nil {
		row.Status = domain.RequestStatusError
		row.ErrorKind = string(domain.KindOf(computeErr))
	}

	if err := s.RequestRepo.Create(ctx, row); err != nil {
		s.Log.Warn("failed to journal request",
			"error", err,
			"endpoint", endpoint,
			"request_id", row.ID,
		)
		return
	}

	if s.Producer == nil {
		return
	}
	if err := s.Producer.SendUsageEvent(ctx, row); err != nil {
		s.Log.Warn("failed to send usage event",
			"error", err,
			"endpoint", endpoint,
			"request_id", row.ID,
		)
	}
}

// newJournalRow собирает журнальную запись с параметрами запроса.
// Id записи берётся из request_id в контексте, чтобы клиент мог найти
// свой запрос в журнале по значению из ответа
func newJournalRow(ctx context.Context, endpoint string, query domain.BirthQuery, timezone string, key *domain.APIKey) *domain.ChartRequest {
	id := domain.RequestIDFromContext(ctx)
	if id == uuid.Nil {
		id = uuid.New()
	}

	row := &domain.ChartRequest{
		ID:        id,
		Endpoint:  endpoint,
		BirthDate: query.Date,
		BirthTime: query.Time,
		Latitude:  query.Latitude,
		Longitude: query.Longitude,
		Timezone:  timezone,
		Status:    domain.RequestStatusSuccess,
		CreatedAt: time.Now().UTC(),
	}
	if key != nil {
		row.APIKeyID = &key.ID
	}
	return row
}
